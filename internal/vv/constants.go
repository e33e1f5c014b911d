//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "TopicTweetsServer"
	SHORTNAME = "TTS"
	VERSION   = "1.0.3"
	PROJURL   = "https://github.com/e-gun/TopicTweetsServer"

	BLACKANDWHITE  = false
	CONFIGLOCATION = "."
	CONFIGALTAPTH  = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC    = "tts-conf.json"
	CONFIGMETA     = "model-meta.yaml"
	CONFIGSTOPS    = "tts-stops.json"
	DOTENVFILE     = ".env"
	ENVPREFIX      = "TTS"

	DEFAULTDATAPATH     = "data/external/constructs.csv"
	DEFAULTRESULTSDIR   = "data/results"
	DEFAULTMODELDIR     = "models"
	DEFAULTSTATICDIR    = "app/static"
	DEFAULTMETRICSFILE  = "data/results/tts_model_run.prom"
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 2
	DEFAULTPSQLHOST     = "127.0.0.1"
	DEFAULTPSQLUSER     = "tts_wr"
	DEFAULTPSQLPORT     = 5432
	DEFAULTPSQLDB       = "topicsDB"
	DEFAULTSQLPROVIDER  = "sqlite"
	DEFAULTSQLITEPATH   = "data/topics.db"

	JSONINDENT               = "  "
	MAXECHOREQPERSECONDPERIP = 60
	SERVEDFROMHOST           = "127.0.0.1"
	SERVEDFROMPORT           = 5000
	SIMULTANEOUSCONNS        = 4
	TIMEOUTRD                = 15 * time.Second
	TIMEOUTWR                = 60 * time.Second
	WRITEPERMS               = 0644
	DIRPERMS                 = 0755
	DATEFORMAT               = "2006-01-02"
	FIXEDYEAR                = 2020 // the source tweets carry "Jan 02" but no year

	TOPICSTABLE = "topics"
	MATRIXTABLE = "topic_matrix"
)

var (
	LaunchTime = time.Now()
)
