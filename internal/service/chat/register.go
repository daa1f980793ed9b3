package chat

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sparkdate/spark/internal/app"
	svcErr "github.com/sparkdate/spark/internal/errors"
	"github.com/sparkdate/spark/internal/realtime"
)

// Registrar ties the chat service into the HTTP server.
type Registrar struct {
	appCtx     *app.AppContext
	dispatcher *realtime.Dispatcher
}

// NewRegistrar creates a new Registrar for the chat service.
func NewRegistrar(appCtx *app.AppContext, dispatcher *realtime.Dispatcher) *Registrar {
	return &Registrar{appCtx: appCtx, dispatcher: dispatcher}
}

// Register attaches the chat routes to the router.
func (r *Registrar) Register(router *mux.Router) {
	service := NewService(r.appCtx, r.dispatcher)
	router.HandleFunc("/api/matches", handleListMatches(service)).Methods(http.MethodGet)
	router.HandleFunc("/api/matches/{matchID}/messages", handleListMessages(service)).Methods(http.MethodGet)
	router.HandleFunc("/api/matches/{matchID}/messages", handleCreateMessage(service)).Methods(http.MethodPost)
}

func handleListMatches(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		matches, err := service.MatchesForUser(req.Context(), req.URL.Query().Get("userId"))
		if err != nil {
			svcErr.WriteJSON(w, err)
			return
		}
		writeJSON(w, matches)
	}
}

func handleListMessages(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		matchID, err := parseMatchID(req)
		if err != nil {
			svcErr.WriteJSON(w, err)
			return
		}

		messages, err := service.Messages(req.Context(), matchID)
		if err != nil {
			svcErr.WriteJSON(w, err)
			return
		}
		writeJSON(w, messages)
	}
}

type createMessageRequest struct {
	SenderID    string `json:"senderId"`
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
}

func handleCreateMessage(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		matchID, err := parseMatchID(req)
		if err != nil {
			svcErr.WriteJSON(w, err)
			return
		}

		var body createMessageRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			svcErr.WriteJSON(w, svcErr.Validation("invalid request body"))
			return
		}

		message, err := service.SendMessage(req.Context(), matchID, body.SenderID, body.Content, body.MessageType)
		if err != nil {
			svcErr.WriteJSON(w, err)
			return
		}
		writeJSON(w, message)
	}
}

func parseMatchID(req *http.Request) (uint64, error) {
	raw := mux.Vars(req)["matchID"]
	matchID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, svcErr.Validation("matchID must be a valid uint64")
	}
	return matchID, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
