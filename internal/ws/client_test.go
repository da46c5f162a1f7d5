package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fair_rps/internal/fairness"
	"fair_rps/internal/game"
	"fair_rps/internal/presets"
	"fair_rps/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type decoded struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/play", HandleWS(Options{Presets: presets.NewCatalog(), KeyPolicy: session.PerRound}))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/play" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn, want string) json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg decoded
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read %s: %v", want, err)
	}
	if msg.Type != want {
		t.Fatalf("got message %s (%s); want %s", msg.Type, msg.Payload, want)
	}
	return msg.Payload
}

func TestPlayOverWebsocket(t *testing.T) {
	srv := startServer(t)
	conn := dial(t, srv, "?preset=rpsls")

	var commit CommitPayload
	json.Unmarshal(read(t, conn, MsgCommit), &commit)
	if commit.Round != 1 || len(commit.Moves) != 5 || len(commit.HMAC) != 64 {
		t.Fatalf("unexpected commit %+v", commit)
	}

	// out of range index is recoverable
	conn.WriteJSON(Message{Type: MsgMove, Payload: MovePayload{Index: 9}})
	read(t, conn, MsgError)

	conn.WriteJSON(Message{Type: MsgMove, Payload: MovePayload{Index: 1}})
	var res ResultPayload
	json.Unmarshal(read(t, conn, MsgResult), &res)
	if res.UserMove != "rock" || res.HMAC != commit.HMAC {
		t.Fatalf("unexpected result %+v", res)
	}
	ok, err := fairness.Verify(res.Key, res.ComputerMove, commit.HMAC)
	if err != nil || !ok {
		t.Fatalf("revealed key does not verify: %v %v", ok, err)
	}

	var next CommitPayload
	json.Unmarshal(read(t, conn, MsgCommit), &next)
	if next.Round != 2 {
		t.Fatalf("next round = %d", next.Round)
	}

	conn.WriteJSON(Message{Type: MsgHelp})
	var table TablePayload
	json.Unmarshal(read(t, conn, MsgTable), &table)
	if len(table.Table) != 5 || table.Table[0][0] != "Draw" {
		t.Fatalf("unexpected table %+v", table)
	}
	// rows are computer moves, columns user moves, cells the user's outcome
	moves, _ := game.NewMoveSet(table.Moves)
	rel, _ := game.BuildRelation(moves)
	for pc, row := range table.Table {
		for user, cell := range row {
			if want := rel.Resolve(user, pc).String(); cell != want {
				t.Fatalf("table[%d][%d] = %s; want %s", pc, user, cell, want)
			}
		}
	}

	conn.WriteJSON(Message{Type: MsgExit})
	var bye ByePayload
	json.Unmarshal(read(t, conn, MsgBye), &bye)
	if bye.Stats.Rounds != 1 {
		t.Fatalf("stats = %+v", bye.Stats)
	}
}

func TestInvalidMoveSetRejected(t *testing.T) {
	srv := startServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/play?moves=rock,paper"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %v", resp)
	}
}
