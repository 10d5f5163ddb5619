package config

import "os"

// Environment captures the deployment-dependent settings for session
// cookies.
type Environment struct {
	IsDevelopment bool
	Domain        string
	CookieSecure  bool
}

var Env = loadEnvironment()

func loadEnvironment() Environment {
	// No cookie domain configured means local development.
	domain := os.Getenv("COOKIE_DOMAIN")
	isDev := domain == ""

	return Environment{
		IsDevelopment: isDev,
		Domain:        domain,
		CookieSecure:  !isDev,
	}
}
