package postgres

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"escrow/internal/adapters/out/postgres/transferrepo"

	"github.com/lib/pq"
)

const (
	listenerMinReconnect = 100 * time.Millisecond
	listenerMaxReconnect = 10 * time.Second
)

// TransferListener turns NOTIFY messages on the transfer channel into wake-up
// signals for the dispatcher. Signals are coalesced: a burst of new transfers
// produces at most one pending wake-up.
type TransferListener struct {
	listener *pq.Listener
	wakeups  chan struct{}
	logger   *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewTransferListener connects to dsn, a lib/pq connection string, and starts
// listening on transferrepo.Channel.
func NewTransferListener(dsn string, logger *slog.Logger) (*TransferListener, error) {
	l := &TransferListener{
		wakeups: make(chan struct{}, 1),
		logger:  logger.With("component", "transfer_listener"),
		done:    make(chan struct{}),
	}

	l.listener = pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect, l.onEvent)
	if err := l.listener.Listen(transferrepo.Channel); err != nil {
		_ = l.listener.Close()
		return nil, err
	}

	go l.loop()
	return l, nil
}

// Wakeups delivers a signal whenever transfers may be waiting.
func (l *TransferListener) Wakeups() <-chan struct{} {
	return l.wakeups
}

// Close stops listening. It is safe to call more than once.
func (l *TransferListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.listener.Close()
	})
	return err
}

func (l *TransferListener) loop() {
	for {
		select {
		case <-l.done:
			return
		case n, ok := <-l.listener.Notify:
			if !ok {
				return
			}
			// A nil notification follows a reconnect; anything sent meanwhile was lost.
			if n != nil {
				l.logger.Debug("transfer recorded", "transfer_id", n.Extra)
			}
			l.signal()
		case <-time.After(time.Minute):
			go func() {
				if err := l.listener.Ping(); err != nil {
					l.logger.Warn("listener ping failed", "error", err)
				}
			}()
		}
	}
}

func (l *TransferListener) signal() {
	select {
	case l.wakeups <- struct{}{}:
	default:
	}
}

func (l *TransferListener) onEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
		l.logger.Warn("listener connection problem", "event", int(ev), "error", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("listener reconnected")
	}
}

// DSN builds a key/value connection string understood by both lib/pq and pgx.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return strings.Join([]string{
		"host=" + quote(host),
		"port=" + quote(port),
		"user=" + quote(user),
		"password=" + quote(password),
		"dbname=" + quote(dbName),
		"sslmode=" + quote(sslMode),
	}, " ")
}

func quote(v string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(v) + "'"
}
