package config

// EnvPrefix namespaces every CellarMate environment variable.
const EnvPrefix = "CELLARMATE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error
// messages).
const (
	EnvAppEnv   = "CELLARMATE_APP_ENV"
	EnvPort     = "CELLARMATE_APP_PORT"
	EnvDBDSN    = "CELLARMATE_DB_DSN"
	EnvDBHost   = "CELLARMATE_DB_HOST"
	EnvDBUser   = "CELLARMATE_DB_USER"
	EnvDBName   = "CELLARMATE_DB_NAME"
	EnvRedisURL = "CELLARMATE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
