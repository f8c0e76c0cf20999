package config

const (
	EnvPrefix = "PAWHAVEN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	// DevJWTSecret is the insecure fallback used when no signing secret is configured.
	DevJWTSecret = "pawhaven-dev-secret-change-me"

	EnvAppEnv    = "PAWHAVEN_APP_ENV"
	EnvPort      = "PAWHAVEN_APP_PORT"
	EnvDBDSN     = "PAWHAVEN_DB_DSN"
	EnvDBHost    = "PAWHAVEN_DB_HOST"
	EnvDBUser    = "PAWHAVEN_DB_USER"
	EnvDBName    = "PAWHAVEN_DB_NAME"
	EnvUseSQLite = "PAWHAVEN_USE_SQLITE"
	EnvRedisURL  = "PAWHAVEN_REDIS_URL"
	EnvJWTSecret = "PAWHAVEN_JWT_SECRET"
	EnvJWTIssuer = "PAWHAVEN_JWT_ISSUER"
	EnvJWTExpMin = "PAWHAVEN_JWT_EXPIRATION_MINUTES"
	EnvCORS      = "PAWHAVEN_CORS_ORIGINS"
)
