// Package config loads typed configuration from the environment.
//
// It wraps github.com/caarlos0/env/v11 for struct tag parsing and
// github.com/joho/godotenv for .env files. Each struct type is parsed once
// per process and cached, so packages can call Load for the same type
// without re-reading the environment:
//
//	var httpCfg httpserver.Config
//	config.MustLoad(&httpCfg)
//
// LoadEnv reads explicit .env files first when the defaults are not enough;
// Reset clears the cache in tests.
package config
