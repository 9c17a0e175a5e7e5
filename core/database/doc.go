// Package database opens the optional run ledger database.
//
// It wraps GORM and supports two drivers:
//   - mysql: a shared ledger for a team or a build server.
//   - sqlite: a local file next to the tool (the default).
//
// The connection is optional. Commands that can record runs log a warning and
// carry on when Connect fails.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
