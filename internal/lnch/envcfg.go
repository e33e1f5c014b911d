//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBEnvironment - storage settings that may arrive as TTS_DB_HOST, TTS_DB_PASSWORD, ...
type DBEnvironment struct {
	Host       string `envconfig:"DB_HOST"`
	Port       int    `envconfig:"DB_PORT"`
	User       string `envconfig:"DB_USER"`
	Password   string `envconfig:"DB_PASSWORD"`
	Name       string `envconfig:"DB_NAME"`
	Provider   string `envconfig:"DB_PROVIDER"`
	SQLitePath string `envconfig:"SQLITE_PATH"`
}

// LoadDotEnv - pull a ".env" file into the environment if there is one; existing variables win
func LoadDotEnv() {
	if err := godotenv.Load(vv.DOTENVFILE); err != nil {
		Msg.TMI(fmt.Sprintf("no '%s' file loaded", vv.DOTENVFILE))
	}
}

// ApplyEnvironment - overlay any non-empty TTS_* variables onto the configuration
func ApplyEnvironment(cfg *str.CurrentConfiguration) error {
	const (
		FAIL1 = "could not process the %s_ environment: %w"
		FAIL2 = "unknown storage provider '%s' in %s_DB_PROVIDER"
	)

	var env DBEnvironment
	if err := envconfig.Process(vv.ENVPREFIX, &env); err != nil {
		return fmt.Errorf(FAIL1, vv.ENVPREFIX, err)
	}

	if env.Host != "" {
		cfg.PGLogin.Host = env.Host
	}
	if env.Port != 0 {
		cfg.PGLogin.Port = env.Port
	}
	if env.User != "" {
		cfg.PGLogin.User = env.User
	}
	if env.Password != "" {
		cfg.PGLogin.Pass = env.Password
	}
	if env.Name != "" {
		cfg.PGLogin.DBName = env.Name
	}
	if env.Provider != "" {
		if !KnownProvider(env.Provider) {
			return fmt.Errorf(FAIL2, env.Provider, vv.ENVPREFIX)
		}
		cfg.SQLProvider = env.Provider
	}
	if env.SQLitePath != "" {
		cfg.SQLitePath = env.SQLitePath
	}
	return nil
}
