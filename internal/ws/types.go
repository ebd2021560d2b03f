package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged over a
// game socket.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypePromote   MessageType = "promote"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeCapture   MessageType = "capture"
	MessageTypeDrawOffer MessageType = "drawOffer"
	MessageTypeResign    MessageType = "resign"
	MessageTypeDraw      MessageType = "draw"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is sent by a client to play a move. Squares use algebraic
// names such as "e2".
type MovePayload struct {
	From      string `json:"from" validate:"required,len=2"`
	To        string `json:"to" validate:"required,len=2"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,min=1,max=6"`
}

type PromotePayload struct {
	Piece string `json:"piece" validate:"required,min=1,max=6"`
}

type DrawOfferPayload struct {
	From string `json:"from"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into an envelope of type t.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
