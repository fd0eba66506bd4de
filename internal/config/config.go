package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv" // optional .env autoload for local development
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required values are enforced by must() and
// missing values cause the program to exit with a fatal log message.
type Config struct {
	Env                string // application environment (e.g. "dev", "prod")
	Port               string // HTTP port to listen on
	DatabaseURL        string // Postgres connection string (pgx format)
	JWTSecret          string // secret used to sign JWTs
	BcryptCost         int    // bcrypt cost for password hashing
	GoogleClientID     string // Google OAuth client id (empty disables federation)
	GoogleClientSecret string // Google OAuth client secret
	GoogleRedirectURL  string // callback URL registered with Google
	FrontendOrigin     string // allow-listed origin the federated login redirects back to
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when present
// so local runs do not need exported variables.
func Load() Config {
	_ = godotenv.Load() // missing .env is fine; real env always wins

	return Config{
		Env:                getEnvOr("APP_ENV", "dev"),
		Port:               must("APP_PORT"),
		DatabaseURL:        must("DATABASE_URL"),
		JWTSecret:          must("JWT_SECRET"),
		BcryptCost:         envInt("BCRYPT_COST", 10),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getEnvOr("GOOGLE_REDIRECT_URL", "http://localhost:3000/auth/google/callback"),
		FrontendOrigin:     getEnvOr("FRONTEND_ORIGIN", "http://localhost:8080"),
	}
}

// GoogleEnabled reports whether federated login is configured.  Both the
// client id and secret must be present for the /auth/google routes to work.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getEnvOr returns the value of an optional environment variable or the
// provided default when unset.
func getEnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an optional integer environment variable, falling back to the
// default on absence and exiting on a malformed value.
func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
