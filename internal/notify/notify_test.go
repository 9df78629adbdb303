package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &LogNotifier{Log: slog.New(slog.NewTextHandler(&buf, nil))}

	n.PurchaseCompleted(context.Background(),
		&models.User{ID: "u1", Username: "alice"},
		&models.Product{ID: "p1", Name: "Hoodie", Price: 390000},
		"pur-1",
	)

	out := buf.String()
	assert.Contains(t, out, "new purchase")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "pur-1")
	assert.Contains(t, out, "Hoodie")
}
