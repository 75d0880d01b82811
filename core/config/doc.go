// Package config provides configuration management for broad-babel.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// partial configuration.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, export endpoint switch
//   - Database: driver (sqlite, sqlite-pure, mysql) and connection details
//   - Source: download location and known hash of the lookup database
//   - Storage: S3/MinIO credentials and bucket settings
//   - Lookup: table name and column allow-list
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Lookup.Table)
package config
