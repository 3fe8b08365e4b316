// Package policy holds the order cancellation rule.
package policy

import (
	"time"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
)

const (
	// CancellationWindow is how long after creation an order may be cancelled.
	CancellationWindow = 60 * time.Minute

	ReasonWindowElapsed = ">60 min"
	ReasonNotFound      = "order not found"
)

// Evaluate applies the cancellation window to order at the given time.
// An order created at or after now counts as inside the window.
func Evaluate(order model.Order, now time.Time) model.Decision {
	elapsed := now.UTC().Sub(order.CreatedAt.UTC())
	if elapsed <= CancellationWindow {
		return model.Decision{CancelAllowed: true}
	}
	return model.Decision{CancelAllowed: false, Reason: ReasonWindowElapsed}
}

// NotFound is the decision used when no order could be located.
func NotFound() model.Decision {
	return model.Decision{CancelAllowed: false, Reason: ReasonNotFound}
}
