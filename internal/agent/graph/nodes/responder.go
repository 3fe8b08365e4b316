package nodes

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/policy"
)

// Render is the Responder stage. It depends only on the state it is given.
func Render(s model.State) (model.Delta, error) {
	var msg string
	switch s.Intent {
	case model.IntentProductAssist:
		msg = renderProducts(s.Evidence)
	case model.IntentOrderHelp:
		msg = renderOrderDecision(s.PolicyDecision)
	case model.IntentOther:
		msg = MsgGuardrail
	default:
		return model.Delta{}, fmt.Errorf("%w: %q", model.ErrInvalidIntent, s.Intent)
	}
	return model.Delta{FinalMessage: msg}, nil
}

func renderProducts(evidence []model.Evidence) string {
	var (
		lines []string
		sizes []string
		etas  []string
	)
	for _, e := range evidence {
		if e.Kind != model.EvidenceProduct || e.Product == nil {
			continue
		}
		p := e.Product
		lines = append(lines, productLine(p.Product))
		if p.SizeRecommendation != "" && !slices.Contains(sizes, p.SizeRecommendation) {
			sizes = append(sizes, p.SizeRecommendation)
		}
		if p.ETA != "" && !slices.Contains(etas, p.ETA) {
			etas = append(etas, p.ETA)
		}
	}
	if len(lines) == 0 {
		return MsgNoMatches
	}

	var b strings.Builder
	b.WriteString(MsgOptionsHeader)
	var summary []string
	if len(sizes) > 0 {
		summary = append(summary, "Recommended size: "+strings.Join(sizes, "; "))
	}
	if len(etas) > 0 {
		summary = append(summary, "ETA: "+strings.Join(etas, "; "))
	}
	if len(summary) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(summary, " | "))
	}
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(l)
	}
	return b.String()
}

func productLine(p model.Product) string {
	parts := []string{p.Title}
	if p.Price != 0 {
		parts = append(parts, "$"+strconv.FormatFloat(p.Price, 'f', -1, 64))
	}
	if len(p.Sizes) > 0 {
		parts = append(parts, "Sizes: "+strings.Join(p.Sizes, ","))
	}
	if p.Color != "" {
		parts = append(parts, "Color: "+p.Color)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(p.Tags, ","))
	}
	return strings.Join(parts, " | ")
}

func renderOrderDecision(dec *model.Decision) string {
	if dec != nil && dec.CancelAllowed {
		return MsgCancelled
	}
	reason := policy.ReasonNotFound
	if dec != nil && dec.Reason != "" {
		reason = dec.Reason
	}
	return fmt.Sprintf(MsgCancelDeniedFm, reason)
}
