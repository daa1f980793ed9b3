package realtime

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sparkdate/spark/internal/app"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origin checks belong to the excluded auth layer
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Registrar ties the websocket endpoint into the HTTP server.
type Registrar struct {
	appCtx     *app.AppContext
	registry   *Registry
	dispatcher *Dispatcher
}

// NewRegistrar creates a Registrar for the realtime endpoint. Registry
// and dispatcher are constructed once in main and injected here and into
// the chat service, so both share the same view of who is connected.
func NewRegistrar(appCtx *app.AppContext, registry *Registry, dispatcher *Dispatcher) *Registrar {
	return &Registrar{appCtx: appCtx, registry: registry, dispatcher: dispatcher}
}

// Register attaches the /ws upgrade handler to the router.
func (r *Registrar) Register(router *mux.Router) {
	router.HandleFunc("/ws", r.handleWS)
}

func (r *Registrar) handleWS(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.appCtx.Logger.Error("websocket upgrade failed", "err", err)
		return
	}

	session := NewSession(conn, r.registry, r.dispatcher, r.appCtx.Logger)
	go session.Run()
}
