// Package config loads typed configuration from environment variables.
//
// Struct fields are bound with github.com/caarlos0/env tags. Optional dotenv
// files are read first with github.com/joho/godotenv, so a local .env can
// supply values without overriding the real environment. Structs that
// implement Validator are checked after parsing.
package config
