package app

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/inventory-tracker/internal/core/events"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
)

// StockAlertHandler logs a warning whenever an item drops to low or out of
// stock, and a notice when it is restocked.
func StockAlertHandler(logger *slog.Logger) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		ev, ok := event.(*events.StockStatusChangedEvent)
		if !ok {
			return nil
		}

		attrs := []any{
			"item_id", ev.ItemID,
			"item_name", ev.ItemName,
			"department", ev.Department,
			"quantity", ev.Quantity,
			"previous_status", ev.PreviousStatus,
			"status", ev.Status,
		}

		switch item.Status(ev.Status) {
		case item.StatusLow, item.StatusOutOfStock:
			logger.WarnContext(ctx, "stock alert", attrs...)
		default:
			logger.InfoContext(ctx, "item restocked", attrs...)
		}
		return nil
	}
}
