package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/felipemebarak500-lgtm/mebawear/internal/config"
	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
)

const sendTimeout = 10 * time.Second

// MailNotifier emails the shop owner about each purchase over SMTP. The
// send runs in its own goroutine with a bounded timeout so a slow or dead
// mail server can never hold up a purchase response.
type MailNotifier struct {
	cfg config.SMTPConfig
	log *slog.Logger
}

func NewMailNotifier(cfg config.SMTPConfig, log *slog.Logger) *MailNotifier {
	return &MailNotifier{cfg: cfg, log: log}
}

func (n *MailNotifier) PurchaseCompleted(_ context.Context, user *models.User, product *models.Product, purchaseID string) {
	// Detached from the request context on purpose: the HTTP response
	// returning must not cancel the send.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := n.send(ctx, user, product, purchaseID); err != nil {
			n.log.Error("purchase mail failed",
				"purchase_id", purchaseID,
				"error", err,
			)
			return
		}
		n.log.Info("purchase mail sent", "purchase_id", purchaseID, "to", n.cfg.OwnerTo)
	}()
}

func (n *MailNotifier) send(ctx context.Context, user *models.User, product *models.Product, purchaseID string) error {
	m := mail.NewMsg()
	if err := m.From(n.cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := m.To(n.cfg.OwnerTo); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	m.Subject(fmt.Sprintf("Nueva compra: %s", product.Name))
	m.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"El usuario %s (tel: %s, email: %s) compró %s por %d.\n\nID de compra: %s\n",
		user.Username, user.Phone, user.Email, product.Name, product.Price, purchaseID,
	))

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTimeout(sendTimeout),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	c, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return c.DialAndSendWithContext(ctx, m)
}
