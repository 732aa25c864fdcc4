// opcode.go - Names for WebSocket frame opcodes (RFC 6455 section 5.2).
package har

import "github.com/gorilla/websocket"

// opcodeContinuation is not exported by gorilla/websocket.
const opcodeContinuation = 0

// OpcodeName returns a short label for a frame opcode, e.g. "text".
func OpcodeName(opcode int) string {
	switch opcode {
	case opcodeContinuation:
		return "continuation"
	case websocket.TextMessage:
		return "text"
	case websocket.BinaryMessage:
		return "binary"
	case websocket.CloseMessage:
		return "close"
	case websocket.PingMessage:
		return "ping"
	case websocket.PongMessage:
		return "pong"
	default:
		return "reserved"
	}
}

// IsControl reports whether the message is a close, ping or pong frame.
func (m WebSocketMessage) IsControl() bool {
	return m.Opcode == websocket.CloseMessage ||
		m.Opcode == websocket.PingMessage ||
		m.Opcode == websocket.PongMessage
}
