// Package logger builds the zap loggers used across the asset cloner.
//
// log.format selects json or console encoding; log.level selects the level,
// with "debug" switching to zap's development config. CLI commands fall back
// to Console when configuration fails.
//
// Two helpers derive scoped loggers:
//
//	l := logger.WithRun(log, runID, "weapon", "zapgun") // run_id, kind, name
//	l.Warn("archive not found", zap.String("archive", name))
//
//	l := logger.WithRayID(log, c) // ray_id from the request
package logger
