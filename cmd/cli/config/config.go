package config

import "os"

const defaultAPIURL = "http://localhost:5000"

// APIURL returns the base URL for the schedule API.
// It can be overridden with the DOMINION_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("DOMINION_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}
