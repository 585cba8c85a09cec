package config

const EnvPrefix = "FARMTOFORK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres  = "postgres"
	DBDriverSQLite    = "sqlite"
	DefaultSQLitePath = "farmtofork.db"
)

const (
	EnvAppEnv   = "FARMTOFORK_APP_ENV"
	EnvPort     = "FARMTOFORK_APP_PORT"
	EnvDBDSN    = "FARMTOFORK_DB_DSN"
	EnvDBDriver = "FARMTOFORK_DB_DRIVER"
	EnvDBHost   = "FARMTOFORK_DB_HOST"
	EnvDBUser   = "FARMTOFORK_DB_USER"
	EnvDBName   = "FARMTOFORK_DB_NAME"
	EnvDBPass   = "FARMTOFORK_DB_PASSWORD"

	EnvAIScoreURL     = "FARMTOFORK_AI_SCORE_SERVICE_URL"
	EnvAIScoreEnabled = "FARMTOFORK_AI_SCORE_ENABLED"
	EnvRedisURL       = "FARMTOFORK_REDIS_URL"
	EnvCORSOrigins    = "FARMTOFORK_CORS_ALLOWED_ORIGINS"
	EnvSeedData       = "FARMTOFORK_SEED_DATA"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
