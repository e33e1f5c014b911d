//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	BlackAndWhite bool
	DataPath      string
	EchoLog       int // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	FetchURL      string
	Gzip          bool
	HostIP        string
	HostPort      int
	InitDB        bool
	LogLevel      int
	MetaPath      string
	MetricsFile   string
	ModelDir      string
	PGLogin       PostgresLogin
	ProfileCPU    bool
	ProfileMEM    bool
	ResultsDir    string
	RunModel      bool
	SQLitePath    string
	SQLProvider   string // "pgsql", "sqlite" (modernc), "sqlite3" (mattn, cgo)
	StaticDir     string
}
