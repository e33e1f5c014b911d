//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	HELPTEXTTEMPLATE = `S3command line optionsS0:
   C1-bwC0          disable color output in the console
   C1-cC0 C2{file}C0    read the configuration from this JSON file instead of "C3{{.conffile}}C0"
   C1-elC0 C2{num}C0    set echo server log level (0-3) [C6currentC0: C3{{.echoll}}C0]
   C1-fxC0 C2{url}C0    fetch the source tweets and save them to "C3{{.datapath}}C0"
   C1-glC0 C2{num}C0    set golang log level (0-5) [C6currentC0: C3{{.ttsll}}C0]
   C1-gzC0          enable gzip compression of the server's output
   C1-hC0           print this help information
   C1-inC0          create the tables and load the source tweets [C6providerC0: C3{{.provider}}C0]
   C1-mdC0          run the topic model over every configured window before serving
   C1-mmC0 C2{file}C0   model parameters [C6currentC0: C3{{.meta}}C0]
   C1-pcC0          enable CPU profiling run
   C1-pgC0 C2{string}C0 supply full PostgreSQL credentials C4(*)C0
   C1-pmC0          enable MEM profiling run
   C1-saC0 C2{string}C0 server IP address [C6currentC0: C3{{.host}}C0]
   C1-spC0 C2{num}C0    server port [C6currentC0: C3{{.port}}C0]
   C1-sqC0 C2{string}C0 storage provider: C3pgsqlC0, C3sqliteC0, or C3sqlite3C0 [C6currentC0: C3{{.provider}}C0]
   C1-vC0           print version info and exit
   C1-vvC0          print full version info and exit
     (*) S3exampleS0: 
         C4"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"topicsDB\" ,\"User\": \"tts_wr\"}"C0

     S1NB:S0 database credentials can also come from the environment (C3{{.envprefix}}_DB_PASSWORD, etc.)
         or from a "C3{{.dotenv}}C0" file in "C3{{.cwd}}C0"
         See the sample configuration files at
             C3{{.projurl}}C0
`
)
