package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "CAMPUSSWAP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "CAMPUSSWAP_DB_DSN"
	EnvDBHost = "CAMPUSSWAP_DB_HOST"
	EnvDBUser = "CAMPUSSWAP_DB_USER"
	EnvDBName = "CAMPUSSWAP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
