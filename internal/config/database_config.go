package config

const databaseURLVar = "DATABASE_URL"

type DatabaseConfig interface {
	GetDatabaseURL() string
}

type Database struct{}

var _ DatabaseConfig = Database{}

func (Database) GetDatabaseURL() string {
	return GetEnv(databaseURLVar, "")
}
