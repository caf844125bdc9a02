package config

// GetDatabasePath returns the filesystem path of the SQLite user database.
func GetDatabasePath() string {
	return GetEnvOrDefault("DATABASE_PATH", "data/users.db")
}
