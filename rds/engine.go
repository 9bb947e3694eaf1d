package rds

import (
	"sort"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsrds"
)

// EngineID selects the database engine and version for an Instance.
type EngineID string

// Supported engines.
const (
	EngineMySQL57      EngineID = "mysql5.7"
	EnginePostgres1113 EngineID = "postgresql11.13"
)

// engineSpec couples a public engine id with its CDK engine, wire scheme and
// default port.
type engineSpec struct {
	scheme string
	port   float64
	engine func() awsrds.IInstanceEngine
}

var engines = map[EngineID]engineSpec{
	EngineMySQL57: {
		scheme: "mysql",
		port:   3306,
		engine: func() awsrds.IInstanceEngine {
			return awsrds.DatabaseInstanceEngine_Mysql(&awsrds.MySqlInstanceEngineProps{
				Version: awsrds.MysqlEngineVersion_VER_5_7(),
			})
		},
	},
	EnginePostgres1113: {
		scheme: "postgres",
		port:   5432,
		engine: func() awsrds.IInstanceEngine {
			return awsrds.DatabaseInstanceEngine_Postgres(&awsrds.PostgresInstanceEngineProps{
				Version: awsrds.PostgresEngineVersion_VER_11_13(),
			})
		},
	},
}

// SupportedEngines returns the accepted engine ids, sorted.
func SupportedEngines() []string {
	ids := make([]string, 0, len(engines))
	for id := range engines {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return ids
}

func supportedEnginesList() string {
	return strings.Join(SupportedEngines(), ", ")
}
