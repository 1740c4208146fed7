// Package notifier delivers new-vehicle alerts. Transports are pluggable:
// Slack incoming webhooks, a Telegram chat, or the silent sender used by the
// testing flag. Delivery is best effort; a failed notification is the
// caller's to log and never retried here.
package notifier

import (
	"context"
	"log/slog"

	"github.com/Houeta/lot-watch/internal/models"
)

// Notifier sends one alert per newly discovered vehicle.
type Notifier interface {
	Notify(ctx context.Context, vehicle models.Vehicle) error
}

// Noop swallows notifications. It backs the testing flag that suppresses
// alerts while the diff is still computed and persisted.
type Noop struct {
	log *slog.Logger
}

func NewNoop(log *slog.Logger) *Noop {
	return &Noop{log: log}
}

func (n *Noop) Notify(ctx context.Context, vehicle models.Vehicle) error {
	n.log.InfoContext(ctx, "dry run, notification suppressed", "stock_number", vehicle.StockNumber)
	return nil
}
