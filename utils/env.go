package utils

import "os"

// EnvOrDefault returns the environment variable value, or fallback when
// it is unset or empty.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
