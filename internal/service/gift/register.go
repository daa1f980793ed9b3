package gift

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sparkdate/spark/internal/app"
	svcErr "github.com/sparkdate/spark/internal/errors"
)

// Registrar ties the gift service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the gift service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the gift and balance routes to the router.
func (r *Registrar) Register(router *mux.Router) {
	service := NewService(r.appCtx)
	router.HandleFunc("/api/gifts", handleCreateGift(service)).Methods(http.MethodPost)
	router.HandleFunc("/api/balance", handleGetBalance(service)).Methods(http.MethodGet)
}

type createGiftRequest struct {
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	GiftType   string  `json:"giftType"`
	MessageID  *uint64 `json:"messageId"`
}

func handleCreateGift(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body createGiftRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			svcErr.WriteJSON(w, svcErr.Validation("invalid request body"))
			return
		}

		gift, err := service.SendGift(req.Context(), body.FromUserID, body.ToUserID, body.GiftType, body.MessageID)
		if err != nil {
			svcErr.WriteJSON(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gift)
	}
}

func handleGetBalance(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		view, err := service.Balance(req.Context(), req.URL.Query().Get("userId"))
		if err != nil {
			svcErr.WriteJSON(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(view)
	}
}
