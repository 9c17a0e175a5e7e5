// Package middleware groups the Fiber middleware mounted by the serve command.
//
//   - rayid tags every request with an X-Ray-ID, reusing a valid incoming one,
//     so request logs and clone run logs can be joined.
//   - auth rejects requests whose X-API-Key does not match server.api_key.
//     Swagger is mounted before it and stays public.
package middleware
