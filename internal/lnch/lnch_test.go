//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyArgs(t *testing.T) {
	cfg := BuildDefaultConfig()
	args := []string{"-gl", "4", "-el", "1", "-sa", "0.0.0.0", "-sp", "8080", "-md", "-in", "-bw",
		"-mm", "meta.yaml", "-fx", "https://example.org/constructs.csv", "-sq", "sqlite3", "-pc"}
	require.NoError(t, ApplyArgs(cfg, args))

	assert.Equal(t, 4, cfg.LogLevel)
	assert.Equal(t, 1, cfg.EchoLog)
	assert.Equal(t, "0.0.0.0", cfg.HostIP)
	assert.Equal(t, 8080, cfg.HostPort)
	assert.True(t, cfg.RunModel)
	assert.True(t, cfg.InitDB)
	assert.True(t, cfg.BlackAndWhite)
	assert.True(t, cfg.ProfileCPU)
	assert.False(t, cfg.ProfileMEM)
	assert.Equal(t, "meta.yaml", cfg.MetaPath)
	assert.Equal(t, "https://example.org/constructs.csv", cfg.FetchURL)
	assert.Equal(t, "sqlite3", cfg.SQLProvider)
}

func TestApplyArgsErrors(t *testing.T) {
	assert.Error(t, ApplyArgs(BuildDefaultConfig(), []string{"-gl"}))
	assert.Error(t, ApplyArgs(BuildDefaultConfig(), []string{"-sp", "port"}))
	assert.Error(t, ApplyArgs(BuildDefaultConfig(), []string{"-sq", "oracle"}))
	assert.Error(t, ApplyArgs(BuildDefaultConfig(), []string{"-pg", "{not json"}))
}

func TestApplyArgsPostgresLogin(t *testing.T) {
	cfg := BuildDefaultConfig()
	js := `{"Pass": "pw", "Host": "10.0.0.2", "Port": 5433, "DBName": "t", "User": "u"}`
	require.NoError(t, ApplyArgs(cfg, []string{"-pg", js}))
	assert.Equal(t, "pw", cfg.PGLogin.Pass)
	assert.Equal(t, 5433, cfg.PGLogin.Port)
	assert.Equal(t, "10.0.0.2", cfg.PGLogin.Host)
}

func TestReadConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), vv.CONFIGBASIC)
	require.NoError(t, os.WriteFile(fn, []byte(`{"HostPort": 6000, "ModelDir": "m"}`), 0644))

	cfg := BuildDefaultConfig()
	found, err := ReadConfigFile(cfg, fn)
	require.NoError(t, err)
	assert.Equal(t, fn, found)
	assert.Equal(t, 6000, cfg.HostPort)
	assert.Equal(t, "m", cfg.ModelDir)
	// untouched fields keep their defaults
	assert.Equal(t, vv.DEFAULTSQLPROVIDER, cfg.SQLProvider)

	_, err = ReadConfigFile(BuildDefaultConfig(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("TTS_DB_PASSWORD", "secret")
	t.Setenv("TTS_DB_PORT", "6543")
	t.Setenv("TTS_DB_PROVIDER", "pgsql")

	cfg := BuildDefaultConfig()
	require.NoError(t, ApplyEnvironment(cfg))
	assert.Equal(t, "secret", cfg.PGLogin.Pass)
	assert.Equal(t, 6543, cfg.PGLogin.Port)
	assert.Equal(t, "pgsql", cfg.SQLProvider)
	assert.Equal(t, vv.DEFAULTPSQLHOST, cfg.PGLogin.Host)

	t.Setenv("TTS_DB_PROVIDER", "mongo")
	assert.Error(t, ApplyEnvironment(BuildDefaultConfig()))
}

func TestLoadModelMeta(t *testing.T) {
	fn := filepath.Join(t.TempDir(), vv.CONFIGMETA)
	yml := `
process_data:
  sample_data:
    test_size: 0.5
  time_frame:
    windows: ["2020-02-01"]
tune_model:
  k_topics: 7
  coherence_score_method: u_mass
`
	require.NoError(t, os.WriteFile(fn, []byte(yml), 0644))

	meta, err := LoadModelMeta(fn)
	require.NoError(t, err)
	assert.Equal(t, 0.5, meta.ProcessData.SampleData.TestSize)
	assert.Equal(t, uint64(vv.SAMPLESEED), meta.ProcessData.SampleData.RandomState)
	assert.Equal(t, []string{"2020-02-01"}, meta.ProcessData.TimeFrame.Windows)
	assert.Equal(t, vv.WINDOWDAYS, meta.ProcessData.TimeFrame.Days)
	assert.Equal(t, 7, meta.TuneModel.KTopics)
	assert.Equal(t, "u_mass", meta.TuneModel.CoherenceScoreMethod)
	assert.Equal(t, vv.LDATOPN, meta.TuneModel.TopN)
}

func TestLoadModelMetaMissingAndInvalid(t *testing.T) {
	meta, err := LoadModelMeta(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultModelMeta(), meta)

	fn := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("process_data:\n  time_frame:\n    windows: [\"Jan 1\"]\n"), 0644))
	_, err = LoadModelMeta(fn)
	assert.Error(t, err)
}

func TestVersionLine(t *testing.T) {
	cfg := BuildDefaultConfig()
	vl := VersionLine(*cfg)
	assert.Contains(t, vl, vv.MYNAME)
	assert.Contains(t, vl, "sqlite: "+vv.DEFAULTSQLITEPATH)
	assert.NotContains(t, vl, "git:")

	cfg.SQLProvider = "pgsql"
	GitCommit = "64974732"
	defer func() { GitCommit = "" }()
	vl = VersionLine(*cfg)
	assert.Contains(t, vl, "tts_wr@127.0.0.1:5432/topicsDB")
	assert.Contains(t, vl, "git: 64974732")

	bi := BuildInfo(*cfg)
	assert.Contains(t, bi, vv.DEFAULTMODELDIR)
	assert.Contains(t, bi, vv.DEFAULTDATAPATH)
	assert.NotContains(t, bi, "Built")
}
