package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
)

func TestLookup(t *testing.T) {
	created := time.Date(2025, 1, 15, 10, 0, 0, 0, time.FixedZone("X", 3600))
	d := NewDirectory([]model.Order{
		{OrderID: "A1003", Email: "mira@example.com", CreatedAt: created},
		{OrderID: "A1002", Email: "alex@example.com", CreatedAt: created},
	})
	require.Equal(t, 2, d.Len())

	tests := []struct {
		name  string
		id    string
		email string
		found bool
	}{
		{name: "exact", id: "A1003", email: "mira@example.com", found: true},
		{name: "case insensitive", id: "a1003", email: "MIRA@Example.com", found: true},
		{name: "wrong email", id: "A1003", email: "alex@example.com", found: false},
		{name: "unknown id", id: "A9999", email: "mira@example.com", found: false},
		{name: "missing email", id: "A1003", email: "", found: false},
		{name: "missing id", id: "", email: "mira@example.com", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, ok := d.Lookup(tt.id, tt.email)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, "A1003", o.OrderID)
				assert.Equal(t, time.UTC, o.CreatedAt.Location())
				assert.True(t, o.CreatedAt.Equal(created))
			} else {
				assert.Equal(t, model.Order{}, o)
			}
		})
	}
}
