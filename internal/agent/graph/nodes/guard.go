package nodes

import (
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/policy"
)

// Guard is the Policy Guard stage. Only order_help produces a decision; the
// located order is the first evidence entry.
func Guard(s model.State) model.Delta {
	if s.Intent != model.IntentOrderHelp {
		return model.Delta{}
	}
	if len(s.Evidence) == 0 || s.Evidence[0].Order == nil {
		dec := policy.NotFound()
		return model.Delta{PolicyDecision: &dec}
	}
	dec := policy.Evaluate(*s.Evidence[0].Order, s.Now)
	return model.Delta{PolicyDecision: &dec}
}
