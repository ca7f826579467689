package config

// EnvPrefix is the envconfig prefix; all variables carry the explicit
// METERLINE_ name in their struct tags, so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv   = "METERLINE_APP_ENV"
	EnvPort     = "METERLINE_APP_PORT"
	EnvDBDSN    = "METERLINE_DB_DSN"
	EnvDBHost   = "METERLINE_DB_HOST"
	EnvDBUser   = "METERLINE_DB_USER"
	EnvDBName   = "METERLINE_DB_NAME"
	EnvRedisURL = "METERLINE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
