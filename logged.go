package i2cbus

import (
	"context"
	"log/slog"
)

// LoggedBus is a Bus decorator that logs transactions using a slog.Logger.

// LogOption is a bitmask for selecting which phases to log.
type LogOption uint8

const (
	LogNone  LogOption = 0
	LogWrite LogOption = 1 << iota // addr, command and payload before the exchange
	LogRead                        // bytes returned by the read phase
	LogAll = LogWrite | LogRead
)

// NewLoggedBus wraps the given Bus and logs selected phases at the given
// level. Failed transactions are logged at Error level whenever any logging
// is enabled.
func NewLoggedBus(inner Bus, logger *slog.Logger, level slog.Level, opts LogOption) Bus {
	return &loggedBus{
		inner:  inner,
		logger: logger,
		level:  level,
		opts:   opts,
	}
}

// NewLoggedBusWithFilter wraps the given Bus and logs selected phases but
// only for transactions that satisfy the provided filter. If filter is nil,
// all transactions are considered for logging (same as NewLoggedBus
// behavior).
func NewLoggedBusWithFilter(inner Bus, logger *slog.Logger, level slog.Level, opts LogOption, filter TxFilter) Bus {
	return &loggedBus{
		inner:  inner,
		logger: logger,
		level:  level,
		opts:   opts,
		filter: filter,
	}
}

type loggedBus struct {
	inner  Bus
	logger *slog.Logger
	level  slog.Level
	opts   LogOption
	filter TxFilter
}

// Transact logs the outgoing exchange, forwards it, and logs the result.
func (l *loggedBus) Transact(tx Tx) error {
	match := l.filter == nil || l.filter(tx)
	if l.opts&LogWrite != 0 && match {
		l.logger.Log(context.Background(), l.level, "i2cbus transact",
			"addr", tx.Addr,
			"cmd", tx.Cmd,
			"write", append([]byte{tx.Cmd}, tx.W...),
			"readlen", len(tx.R),
			"string", tx.String(),
		)
	}
	err := l.inner.Transact(tx)
	if l.opts != LogNone && err != nil {
		l.logger.Log(context.Background(), slog.LevelError, "i2cbus transact error",
			"addr", tx.Addr,
			"cmd", tx.Cmd,
			"error", err,
		)
		return err
	}
	if l.opts&LogRead != 0 && match && len(tx.R) > 0 {
		l.logger.Log(context.Background(), l.level, "i2cbus read",
			"addr", tx.Addr,
			"cmd", tx.Cmd,
			"data", tx.R,
		)
	}
	return err
}

// Close forwards to the inner Bus without logging.
func (l *loggedBus) Close() error {
	return l.inner.Close()
}
