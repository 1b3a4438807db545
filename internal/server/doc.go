// Package server exposes a single store over HTTP.
//
// Routes
//
//   - GET    /kv          list all entries as JSON
//   - GET    /kv/{key}    value as text, 404 if absent
//   - PUT    /kv/{key}    body is the value; ?force=true replaces, 409 otherwise
//   - DELETE /kv/{key}    removed value as text, 404 if absent
//   - POST   /init        empty the store on disk
//   - POST   /flush       write the store to disk
//   - GET    /health      liveness
//
// The server owns the store while it runs and serializes access to it. It
// does not release the store; whoever opened it does that after Shutdown.
package server
