package config

type Config interface {
	EnvConfig
	IdentityConfig
	DatabaseConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	Identity
	Database
	Session
}

func New() Config {
	return mainConfig{}
}
