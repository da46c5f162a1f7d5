package ws

const (
	// client - server
	MsgMove = "move"
	MsgHelp = "help"
	MsgExit = "exit"
	MsgPing = "ping"

	// server - client
	MsgCommit = "commit"
	MsgResult = "result"
	MsgTable  = "table"
	MsgError  = "error"
	MsgBye    = "bye"
	MsgPong   = "pong"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}
