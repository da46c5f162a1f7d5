package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fair_rps/internal/session"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// Client is one websocket connection playing one session. Only the read loop
// touches the session.
type Client struct {
	Conn    *websocket.Conn
	Session *session.Session
	Send    chan []byte
	Done    chan struct{}
}

func NewClient(conn *websocket.Conn, s *session.Session) *Client {
	return &Client{
		Conn:    conn,
		Session: s,
		Send:    make(chan []byte, 16),
		Done:    make(chan struct{}),
	}
}

// Run starts the writer, publishes the first commitment and reads until the
// client exits or disconnects.
func (c *Client) Run() {
	go c.writePump()
	defer close(c.Done)
	defer close(c.Send)

	log := c.Session.Logger()
	log.Info("ws session connected", "remote", c.Conn.RemoteAddr().String())

	if err := c.commit(); err != nil {
		log.Error("ws commit failed", "error", err)
		return
	}
	c.readPump()

	st := c.Session.Exit()
	log.Info("ws session closed", "rounds", st.Rounds)
}

//read
func (c *Client) readPump() {
	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Session.Logger().Warn("ws read error", "error", err)
			}
			return
		}
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))

		done, err := c.handle(raw)
		if err != nil {
			c.Session.Logger().Error("ws session aborted", "error", err)
			c.send(Message{Type: MsgError, Payload: ErrorPayload{Message: "session aborted"}})
			return
		}
		if done {
			return
		}
	}
}

// handle processes one client message. It reports done when the session
// ended normally; an error is fatal for the session.
func (c *Client) handle(raw []byte) (bool, error) {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("malformed message")
		return false, nil
	}

	switch msg.Type {
	case MsgPing:
		c.send(Message{Type: MsgPong})
	case MsgHelp:
		moves := c.Session.Moves()
		c.send(Message{Type: MsgTable, Payload: TablePayload{Moves: moves.Labels(), Table: c.Session.Relation().UserView()}})
	case MsgExit:
		st := c.Session.Exit()
		c.send(Message{Type: MsgBye, Payload: ByePayload{Stats: st}})
		return true, nil
	case MsgMove:
		var p MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.sendError("malformed move payload")
			return false, nil
		}
		res, err := c.Session.Play(p.Index - 1)
		if errors.Is(err, session.ErrInvalidSelection) {
			c.sendError(fmt.Sprintf("invalid move index %d", p.Index))
			return false, nil
		}
		if err != nil {
			return false, err
		}
		c.send(Message{Type: MsgResult, Payload: ResultPayload{
			Round:        res.Round,
			UserMove:     res.UserMove,
			ComputerMove: res.ComputerMove,
			Outcome:      res.Outcome.String(),
			HMAC:         res.Digest,
			Key:          res.Key,
		}})
		if err := c.commit(); err != nil {
			return false, err
		}
	default:
		c.sendError("unknown message type " + msg.Type)
	}
	return false, nil
}

func (c *Client) commit() error {
	start, err := c.Session.Begin()
	if err != nil {
		return err
	}
	c.send(Message{Type: MsgCommit, Payload: CommitPayload{
		Round: start.Round,
		HMAC:  start.Digest,
		Moves: c.Session.Moves().Labels(),
	}})
	return nil
}

func (c *Client) sendError(text string) {
	c.send(Message{Type: MsgError, Payload: ErrorPayload{Message: text}})
}

func (c *Client) send(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.Session.Logger().Error("ws marshal error", "error", err)
		return
	}
	select {
	case c.Send <- data:
	case <-time.After(2 * time.Second):
		c.Session.Logger().Warn("ws send timeout", "type", msg.Type)
	}
}

//write
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Session.Logger().Warn("ws write error", "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
