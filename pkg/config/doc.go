// Package config loads typed configuration from environment variables.
//
// Configuration structs carry env tags understood by
// github.com/caarlos0/env/v11. Load parses a struct once per type and caches
// the result for the life of the process:
//
//	var cfg views.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// A .env file in the working directory is read via github.com/joho/godotenv
// on first use. Call LoadEnv with explicit paths beforehand to read other
// files instead. ResetCache forgets parsed values and is meant for tests.
package config
