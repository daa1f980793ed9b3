package server

import "github.com/gorilla/mux"

// Registrar is a common interface for everything that mounts routes on
// the HTTP server (JSON services and the websocket endpoint alike).
type Registrar interface {
	Register(router *mux.Router)
}
