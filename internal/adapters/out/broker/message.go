// Package broker delivers issued value transfers to the external value
// transfer service over a message broker. Two transports are provided:
// RabbitMQ with publisher confirms and NATS with server-side deduplication.
// Both carry the same JSON TransferMessage and use the transfer ID as the
// message ID, so a transfer handed over twice can be recognized downstream.
package broker

import (
	"encoding/json"
	"time"

	"escrow/internal/core/domain/model/transfer"
)

const contentType = "application/json"

// TransferMessage is the wire form of a transfer request. Amount is a decimal
// string because JSON numbers lose precision above 2^53.
type TransferMessage struct {
	TransferID string    `json:"transferId"`
	OrderID    string    `json:"orderId"`
	Recipient  string    `json:"recipient"`
	Amount     string    `json:"amount"`
	Kind       string    `json:"kind"`
	IssuedAt   time.Time `json:"issuedAt"`
}

func NewTransferMessage(t *transfer.Transfer) TransferMessage {
	return TransferMessage{
		TransferID: t.ID().String(),
		OrderID:    t.OrderID().String(),
		Recipient:  t.Recipient().String(),
		Amount:     t.Amount().String(),
		Kind:       t.Kind().String(),
		IssuedAt:   t.CreatedAt(),
	}
}

func encode(t *transfer.Transfer) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(NewTransferMessage(t))
}
