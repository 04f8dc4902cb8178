package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"othello-engine/engine"
	"othello-engine/othello"
)

type wsRequest struct {
	Type string `json:"type"`
	positionRequest
}

type wsReply struct {
	Type  string `json:"type"`
	Move  string `json:"move,omitempty"`
	Score int    `json:"score"`
	Nodes uint64 `json:"nodes,omitempty"`
	Busy  bool   `json:"busy"`
	Error string `json:"error,omitempty"`
}

// Client is one websocket session. It owns a Runner, so it has at most one
// search outstanding; a finished search is pushed as a bestmove reply.
type Client struct {
	conn        *websocket.Conn
	application *Application
	runner      engine.Runner
	writeMu     sync.Mutex
	waiters     sync.WaitGroup
}

func (c *Client) send(r wsReply) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(r); err != nil {
		log.Debug().Err(err).Str("remote", c.conn.RemoteAddr().String()).Msg("websocket write")
	}
}

func (c *Client) close() {
	c.runner.Stop()
	c.waiters.Wait()
}

func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("new websocket connection")
	client := &Client{conn: conn, application: app}
	client.runner.Weights = &app.weights
	app.clientsLock.Lock()
	app.clients[client] = struct{}{}
	app.clientsLock.Unlock()
	go client.readLoop()
}

func (c *Client) readLoop() {
	defer func() {
		c.application.clientsLock.Lock()
		delete(c.application.clients, c)
		c.application.clientsLock.Unlock()
		c.close()
		c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("websocket closed")
			return
		}
		var req wsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.send(wsReply{Type: "error", Error: err.Error()})
			continue
		}
		c.handle(req)
	}
}

func (c *Client) handle(req wsRequest) {
	switch req.Type {
	case "go":
		c.start(req.positionRequest)
	case "stop":
		c.runner.Stop()
		c.waiters.Wait()
		c.send(wsReply{Type: "stopped"})
	case "poll":
		c.send(wsReply{Type: "busy", Busy: c.runner.Busy()})
	default:
		c.send(wsReply{Type: "error", Error: "unknown message type " + req.Type})
	}
}

func (c *Client) start(req positionRequest) {
	p, err := othello.ParseBoard(req.Board, req.Side)
	if err != nil {
		c.send(wsReply{Type: "error", Error: err.Error()})
		return
	}
	depth := c.application.cfg.ClampDepth(req.Depth)
	task, err := c.runner.Start(p, depth)
	if err != nil {
		if errors.Is(err, engine.ErrSearchInProgress) {
			c.send(wsReply{Type: "busy", Busy: true})
			return
		}
		c.send(wsReply{Type: "error", Error: err.Error()})
		return
	}
	c.waiters.Add(1)
	go func() {
		defer c.waiters.Done()
		res, err := c.runner.Collect(task)
		switch {
		case errors.Is(err, engine.ErrCancelled):
			// stop replies on its own
		case err != nil:
			c.send(wsReply{Type: "error", Error: err.Error()})
		default:
			c.send(wsReply{Type: "bestmove", Move: res.Cell.String(), Score: res.Score, Nodes: res.Nodes})
		}
	}()
}
