package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "APEX"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "APEX_DB_DSN"
	EnvDBHost = "APEX_DB_HOST"
	EnvDBUser = "APEX_DB_USER"
	EnvDBName = "APEX_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
