// Package orders looks up orders in the fixed order table.
package orders

import (
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
)

// Directory is an immutable order table. It is safe for concurrent use.
type Directory struct {
	orders []model.Order
}

func NewDirectory(orders []model.Order) *Directory {
	d := &Directory{orders: make([]model.Order, 0, len(orders))}
	for _, o := range orders {
		o.CreatedAt = o.CreatedAt.UTC()
		d.orders = append(d.orders, o)
	}
	return d
}

func (d *Directory) Len() int {
	return len(d.orders)
}

// Lookup finds the order identified by the case-insensitive (id, email)
// pair. A mismatch on either half is not found.
func (d *Directory) Lookup(id, email string) (model.Order, bool) {
	for _, o := range d.orders {
		if o.Matches(id, email) {
			return o, true
		}
	}
	return model.Order{}, false
}
