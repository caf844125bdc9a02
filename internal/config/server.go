package config

// GetListenAddr returns the address the HTTP server binds to.
func GetListenAddr() string {
	return ":" + GetEnvOrDefault("PORT", "8080")
}
