package swipe

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sparkdate/spark/internal/app"
	svcErr "github.com/sparkdate/spark/internal/errors"
)

// Registrar ties the swipe service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the swipe service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the swipe routes to the router.
func (r *Registrar) Register(router *mux.Router) {
	service := NewService(r.appCtx)
	router.HandleFunc("/api/like", handleCreateLike(service)).Methods(http.MethodPost)
}

type createLikeRequest struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	IsLike     bool   `json:"isLike"`
}

func handleCreateLike(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body createLikeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			svcErr.WriteJSON(w, svcErr.Validation("invalid request body"))
			return
		}

		result, err := service.RecordLike(req.Context(), body.FromUserID, body.ToUserID, body.IsLike)
		if err != nil {
			svcErr.WriteJSON(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}
