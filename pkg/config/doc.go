// Package config loads environment-driven configuration structs.
//
// It layers godotenv (optional .env file for local development) under
// caarlos0/env struct parsing, and caches each config type so repeated loads
// across packages are cheap and consistent.
//
//	type AppConfig struct {
//		Env        string `env:"APP_ENV" envDefault:"development"`
//		BaseDomain string `env:"BASE_DOMAIN,required"`
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
package config
