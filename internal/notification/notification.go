package notification

import (
	"context"
	"log/slog"
)

const (
	// KindExpenseAdded indicates a new shared expense was recorded.
	KindExpenseAdded = "expense_added"
	// KindSettlementRecorded indicates a settlement was recorded against a group.
	KindSettlementRecorded = "settlement_recorded"
	// KindSettlementCompleted indicates a settlement payment was confirmed.
	KindSettlementCompleted = "settlement_completed"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier hands events to downstream delivery systems. Push delivery itself
// is outside this service; implementations here only emit the event.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}
