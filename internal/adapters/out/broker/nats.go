package broker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"escrow/internal/core/domain/model/transfer"

	"github.com/nats-io/nats.go"
)

// flushTimeout bounds the server round trip when the caller set no deadline.
const flushTimeout = 5 * time.Second

// NATSTransferer publishes transfers on a subject. The transfer ID travels in
// the Nats-Msg-Id header, which JetStream streams use to drop duplicates.
type NATSTransferer struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSTransferer connects to url. The client reconnects on its own;
// publishes made while disconnected are buffered and flushed on reconnect.
func NewNATSTransferer(url, subject string, logger *slog.Logger) (*NATSTransferer, error) {
	logger = logger.With("component", "nats_transferer", "subject", subject)

	conn, err := nats.Connect(url,
		nats.Name("escrow-transfers"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("disconnected from NATS", "error", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("reconnected to NATS", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSTransferer{conn: conn, subject: subject, logger: logger}, nil
}

// Transfer publishes t and flushes, so success means the server received it.
func (p *NATSTransferer) Transfer(ctx context.Context, t *transfer.Transfer) error {
	body, err := encode(t)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(p.subject)
	msg.Header.Set(nats.MsgIdHdr, t.ID().String())
	msg.Header.Set("Content-Type", contentType)
	msg.Data = body

	if err = p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish transfer %s: %w", t.ID(), err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}

	if err = p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush transfer %s: %w", t.ID(), err)
	}

	p.logger.InfoContext(ctx, "transfer published",
		"transfer_id", t.ID().String(),
		"order_id", t.OrderID().String(),
		"amount", t.Amount().String(),
	)
	return nil
}

func (p *NATSTransferer) Close() error {
	return p.conn.Drain()
}
