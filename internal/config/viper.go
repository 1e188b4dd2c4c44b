package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// FirstString returns the first non-empty value among keys.
func FirstString(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(GetString(key)); v != "" {
			return v
		}
	}
	return ""
}
