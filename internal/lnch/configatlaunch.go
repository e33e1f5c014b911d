//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//

package lnch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/mm"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"os"
	"strconv"
	"text/template"
)

var (
	Config = BuildDefaultConfig()
	Msg    = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION, vv.DEFAULTGOLOGLEVEL, vv.BLACKANDWHITE)
)

// ConfigAtLaunch - read the configuration values from JSON, the environment, and the command line (in that order)
func ConfigAtLaunch() {
	const (
		FAIL1 = "Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead."
		FAIL2 = "Cannot find current working directory"
		FAIL3 = "ConfigAtLaunch() failed to execute help text template"
		FAIL4 = "PostgreSQL was requested but no password was supplied: see '%s' or set %s_DB_PASSWORD"
	)

	args := os.Args[1:len(os.Args)]

	cf := ""
	for i, a := range args {
		if a == "-c" && i+1 < len(args) {
			cf = args[i+1]
		}
	}

	Config = BuildDefaultConfig()
	found, err := ReadConfigFile(Config, cf)
	if err != nil {
		Msg.CRIT(fmt.Sprintf(FAIL1, found))
	} else if found != "" {
		Msg.TMI(fmt.Sprintf("'%s' loaded", found))
	}

	LoadDotEnv()
	Msg.EC(ApplyEnvironment(Config))

	help := func() {
		PrintVersion(*Config)
		cwd, e := os.Getwd()
		if e != nil {
			Msg.CRIT(FAIL2)
			cwd = "(unknown)"
		}

		m := map[string]interface{}{
			"conffile":  vv.CONFIGBASIC,
			"cwd":       cwd,
			"datapath":  Config.DataPath,
			"dotenv":    vv.DOTENVFILE,
			"echoll":    Config.EchoLog,
			"envprefix": vv.ENVPREFIX,
			"host":      Config.HostIP,
			"meta":      Config.MetaPath,
			"port":      Config.HostPort,
			"projurl":   vv.PROJURL,
			"provider":  Config.SQLProvider,
			"ttsll":     Config.LogLevel,
		}

		t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))

		var b bytes.Buffer
		if ee := t.Execute(&b, m); ee != nil {
			Msg.CRIT(FAIL3)
		}
		fmt.Println(Msg.Styled(Msg.Color(b.String())))

		os.Exit(0)
	}

	for _, a := range args {
		switch a {
		case "-vv":
			PrintVersion(*Config)
			os.Exit(1)
		case "-v":
			fmt.Println(vv.VERSION + VersSuppl)
			os.Exit(1)
		case "-h":
			help()
		}
	}

	Msg.EC(ApplyArgs(Config, args))

	if Config.SQLProvider == "pgsql" && Config.PGLogin.Pass == "" {
		Msg.WARN(fmt.Sprintf(FAIL4, vv.CONFIGBASIC, vv.ENVPREFIX))
	}

	UpdateMessageMakerWithConfig(Msg)
}

// ApplyArgs - overlay command line flags onto the configuration
func ApplyArgs(cfg *str.CurrentConfiguration, args []string) error {
	const (
		FAIL1 = "flag %s requires a value"
		FAIL2 = "flag %s: %w"
		FAIL3 = "could not parse the -pg information as a valid collection of credentials: %w"
		FAIL4 = "unknown storage provider '%s': use pgsql, sqlite, or sqlite3"
	)

	next := func(i int) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf(FAIL1, args[i])
		}
		return args[i+1], nil
	}

	nextint := func(i int) (int, error) {
		s, err := next(i)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf(FAIL2, args[i], err)
		}
		return n, nil
	}

	var err error
	for i, a := range args {
		switch a {
		case "-bw":
			cfg.BlackAndWhite = true
		case "-c":
			// consumed before the JSON was read
		case "-el":
			cfg.EchoLog, err = nextint(i)
		case "-fx":
			cfg.FetchURL, err = next(i)
		case "-gl":
			cfg.LogLevel, err = nextint(i)
		case "-gz":
			cfg.Gzip = true
		case "-in":
			cfg.InitDB = true
		case "-md":
			cfg.RunModel = true
		case "-mm":
			cfg.MetaPath, err = next(i)
		case "-pc":
			cfg.ProfileCPU = true
		case "-pg":
			var js string
			js, err = next(i)
			if err == nil {
				var pl str.PostgresLogin
				if e := json.Unmarshal([]byte(js), &pl); e != nil {
					return fmt.Errorf(FAIL3, e)
				}
				cfg.PGLogin = pl
			}
		case "-pm":
			cfg.ProfileMEM = true
		case "-sa":
			cfg.HostIP, err = next(i)
		case "-sp":
			cfg.HostPort, err = nextint(i)
		case "-sq":
			cfg.SQLProvider, err = next(i)
			if err == nil && !KnownProvider(cfg.SQLProvider) {
				return fmt.Errorf(FAIL4, cfg.SQLProvider)
			}
		default:
			// do nothing
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// KnownProvider - is this one of the storage backends we can open?
func KnownProvider(p string) bool {
	switch p {
	case "pgsql", "sqlite", "sqlite3":
		return true
	default:
		return false
	}
}

// ReadConfigFile - decode the JSON configuration into cfg; an empty fn means search "." and then "~/.config/"
// returns the name of the file that was read (or tried) and any decoding error
func ReadConfigFile(cfg *str.CurrentConfiguration, fn string) (string, error) {
	candidates := []string{fn}
	if fn == "" {
		candidates = []string{fmt.Sprintf("%s/%s", vv.CONFIGLOCATION, vv.CONFIGBASIC)}
		if uh, e := os.UserHomeDir(); e == nil {
			candidates = append(candidates, fmt.Sprintf(vv.CONFIGALTAPTH, uh)+vv.CONFIGBASIC)
		}
	}

	for _, c := range candidates {
		loadedcfg, e := os.Open(c)
		if e != nil {
			if fn != "" {
				return c, e
			}
			continue
		}
		decoderc := json.NewDecoder(loadedcfg)
		errc := decoderc.Decode(cfg)
		_ = loadedcfg.Close()
		return c, errc
	}
	return "", nil
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.DataPath = vv.DEFAULTDATAPATH
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.FetchURL = ""
	c.Gzip = false
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.InitDB = false
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.MetaPath = fmt.Sprintf("%s/%s", vv.CONFIGLOCATION, vv.CONFIGMETA)
	c.MetricsFile = vv.DEFAULTMETRICSFILE
	c.ModelDir = vv.DEFAULTMODELDIR
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.ResultsDir = vv.DEFAULTRESULTSDIR
	c.RunModel = false
	c.SQLitePath = vv.DEFAULTSQLITEPATH
	c.SQLProvider = vv.DEFAULTSQLPROVIDER
	c.StaticDir = vv.DEFAULTSTATICDIR

	pl := str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	c.PGLogin = pl

	return &c
}
