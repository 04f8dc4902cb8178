package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"othello-engine/config"
	"othello-engine/engine"
	"othello-engine/othello"
)

type positionRequest struct {
	Board string `json:"board"`
	Side  int    `json:"side"`
	Depth int    `json:"depth,omitempty"`
}

type positionReply struct {
	Board string `json:"board"`
	Side  int    `json:"side"`
}

type legalReply struct {
	Moves []string `json:"moves"`
}

type bestMoveReply struct {
	Move  string `json:"move"`
	Score int    `json:"score"`
	Nodes uint64 `json:"nodes"`
}

type errorReply struct {
	Error string `json:"error"`
}

type Application struct {
	router      *mux.Router
	handler     http.Handler
	cfg         config.Config
	weights     engine.Weights
	clients     map[*Client]struct{}
	clientsLock sync.RWMutex
	upgrader    websocket.Upgrader
}

func NewApplication(cfg config.Config, w engine.Weights) *Application {
	app := &Application{
		router:  mux.NewRouter(),
		cfg:     cfg,
		weights: w,
		clients: make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	app.router.NotFoundHandler = accessLogger(http.HandlerFunc(notFoundHandler))
	app.router.Use(accessLogger)

	api := app.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/initial", app.initialHandler).Methods(http.MethodGet)
	api.HandleFunc("/legal", app.legalHandler).Methods(http.MethodPost)
	api.HandleFunc("/bestmove", app.bestMoveHandler).Methods(http.MethodPost)
	app.router.HandleFunc("/ws", app.wsHandler)
	app.handler = handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(app.router)
	return app
}

func accessLogger(next http.Handler) http.Handler {
	return handlers.LoggingHandler(log.Logger, next)
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.handler.ServeHTTP(w, r)
}

// Close stops the search of every open websocket session.
func (app *Application) Close() {
	app.clientsLock.RLock()
	defer app.clientsLock.RUnlock()
	for c := range app.clients {
		c.close()
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}

func decodePosition(r *http.Request) (positionRequest, othello.Position, error) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, othello.Position{}, err
	}
	p, err := othello.ParseBoard(req.Board, req.Side)
	return req, p, err
}

func moveNames(mask uint64) []string {
	return lo.Map(othello.Cells(mask), func(c othello.Cell, _ int) string { return c.String() })
}

func (app *Application) initialHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, positionReply{Board: othello.FormatBoard(othello.Initial(), othello.Black), Side: othello.Black})
}

func (app *Application) legalHandler(w http.ResponseWriter, r *http.Request) {
	_, p, err := decodePosition(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorReply{err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, legalReply{Moves: moveNames(othello.LegalMoves(p))})
}

func (app *Application) bestMoveHandler(w http.ResponseWriter, r *http.Request) {
	req, p, err := decodePosition(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorReply{err.Error()})
		return
	}
	res, err := engine.BestMoveContext(r.Context(), p, app.cfg.ClampDepth(req.Depth), &app.weights)
	switch {
	case errors.Is(err, engine.ErrNoLegalMoves):
		writeJSON(w, http.StatusUnprocessableEntity, errorReply{err.Error()})
	case errors.Is(err, engine.ErrCancelled):
		log.Info().Str("board", req.Board).Msg("search abandoned by client")
		writeJSON(w, http.StatusServiceUnavailable, errorReply{err.Error()})
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorReply{err.Error()})
	default:
		writeJSON(w, http.StatusOK, bestMoveReply{Move: res.Cell.String(), Score: res.Score, Nodes: res.Nodes})
	}
}
