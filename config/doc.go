// Package config loads service configuration with Viper.
//
// Values come from a config.yml found next to the binary (cmd/<service>/),
// an optional .env file loaded through godotenv, and environment variables
// named after the dotted key (inspect.addr -> INSPECT_ADDR).
//
// # Usage
//
//	var cfg AppConfig
//	err := config.Load("registry-demo", &cfg, config.WithDefaults(defaults))
package config
