// Package config provides configuration management for the asset cloner.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of every
// section, so each setting can be overridden by its upper-cased env key
// (game.data_dirs -> GAME_DATA_DIRS).
//
// # Configuration Structure
//
//   - Server: HTTP API port, API key and read timeout
//   - Storage: S3/MinIO credentials and the publish bucket
//   - Log: Logging level and format
//   - Database: optional run ledger (mysql or sqlite)
//   - Game: data directories, layout, templates, output root, archive
//     compression, strict mode and store-entry compatibility
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Game.Roots())
package config
