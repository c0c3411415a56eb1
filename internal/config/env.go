// Package config provides shared configuration utilities.
package config

import (
	"os"

	"github.com/spf13/cast"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt returns the environment variable named by key as an int, or
// fallback if it is unset or not a number.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return fallback
	}
	return n
}
