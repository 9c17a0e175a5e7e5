// Package loader mounts features on the HTTP API.
//
// A Feature names itself, says whether it is enabled and registers its routes
// in Load. The Manager loads enabled features in registration order and
// returns their names so the serve command can log what it mounted.
package loader
