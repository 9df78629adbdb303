// Package notify informs the shop owner about completed purchases. It is
// strictly best-effort: the purchase is already committed by the time a
// notifier runs, so failures are logged and swallowed, never returned to
// the purchase path.
package notify

import (
	"context"
	"log/slog"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
)

// Notifier receives a committed purchase. Implementations must be safe
// for concurrent use and must never panic into the caller.
type Notifier interface {
	PurchaseCompleted(ctx context.Context, user *models.User, product *models.Product, purchaseID string)
}

// LogNotifier writes the notification to the application log. It is the
// default when no SMTP host is configured.
type LogNotifier struct {
	Log *slog.Logger
}

func (n *LogNotifier) PurchaseCompleted(_ context.Context, user *models.User, product *models.Product, purchaseID string) {
	n.Log.Info("new purchase",
		"purchase_id", purchaseID,
		"username", user.Username,
		"user_id", user.ID,
		"product", product.Name,
		"product_id", product.ID,
		"price", product.Price,
	)
}
