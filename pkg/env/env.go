package env

import "os"

// Prefix namespaces the service's environment variables.
const Prefix = "CELLARMATE_"

// Get returns the value of the given environment variable or a fallback.
// The prefixed form (CELLARMATE_<key>) wins over the bare name, so ambient
// variables shared across services can still be overridden per deployment.
func Get(key, fallback string) string {
	if val := os.Getenv(Prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
