package nodes

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/advisory"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/extract"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

var orderIDRe = regexp.MustCompile(`^a\d+$`)

// Dispatch is the Tool Dispatcher stage. It runs the tools for the state's
// intent and returns the invoked tool names and gathered evidence.
func Dispatch(ctx context.Context, reg *tools.Registry, s model.State) (model.Delta, error) {
	switch s.Intent {
	case model.IntentProductAssist:
		return dispatchProductAssist(ctx, reg, s.UserInput)
	case model.IntentOrderHelp:
		return dispatchOrderHelp(ctx, reg, s.UserInput)
	case model.IntentOther:
		// guardrail path: nothing to look up
		return model.Delta{}, nil
	default:
		return model.Delta{}, fmt.Errorf("%w: %q", model.ErrInvalidIntent, s.Intent)
	}
}

func dispatchProductAssist(ctx context.Context, reg *tools.Registry, text string) (model.Delta, error) {
	var d model.Delta
	query := strings.ToLower(text)

	in := tools.ProductSearchInput{Query: query, Tags: extract.Tags(query)}
	if c := extract.PriceCeiling(query); c.Bounded {
		in.MaxPrice = &c.Max
	}
	var found tools.ProductSearchOutput
	if err := reg.Invoke(ctx, tools.ToolProductSearch, in, &found); err != nil {
		return model.Delta{}, err
	}
	d.ToolsCalled = append(d.ToolsCalled, tools.ToolProductSearch)

	var size advisory.SizeAdvice
	if err := reg.Invoke(ctx, tools.ToolSizeRecommender, tools.SizeRecommenderInput{Text: query}, &size); err != nil {
		return model.Delta{}, err
	}
	d.ToolsCalled = append(d.ToolsCalled, tools.ToolSizeRecommender)

	var eta tools.ETAOutput
	if err := reg.Invoke(ctx, tools.ToolETA, tools.ETAInput{ZIP: extract.ZIP(query)}, &eta); err != nil {
		return model.Delta{}, err
	}
	d.ToolsCalled = append(d.ToolsCalled, tools.ToolETA)

	// every product carries its own copy of the advisory output
	for _, p := range found.Products {
		d.Evidence = append(d.Evidence, model.ProductFact(model.ProductEvidence{
			Product:            p,
			SizeRecommendation: size.Message,
			ETA:                eta.Estimate,
		}))
	}

	logx.Debug().
		Int("products", len(found.Products)).
		Str("size", size.Size).
		Str("eta", eta.Estimate).
		Msg("Product assist tools finished")
	return d, nil
}

func dispatchOrderHelp(ctx context.Context, reg *tools.Registry, text string) (model.Delta, error) {
	id, email := ParseOrderReference(text)

	var res tools.OrderLookupOutput
	if err := reg.Invoke(ctx, tools.ToolOrderLookup, tools.OrderLookupInput{OrderID: id, Email: email}, &res); err != nil {
		return model.Delta{}, err
	}
	d := model.Delta{ToolsCalled: []string{tools.ToolOrderLookup}}
	if res.Found && res.Order != nil {
		d.Evidence = []model.Evidence{model.OrderFact(*res.Order)}
	}

	logx.Debug().
		Str("order_id", id).
		Bool("email_present", email != "").
		Bool("found", res.Found).
		Msg("Order lookup finished")
	return d, nil
}

// ParseOrderReference scans whitespace-separated tokens for an order id
// ("a" followed by digits) and an email (a token containing "@").
// Later matches overwrite earlier ones. The id is upper-cased.
func ParseOrderReference(text string) (orderID, email string) {
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if bare := stripPunct(tok); orderIDRe.MatchString(bare) {
			orderID = strings.ToUpper(bare)
		}
		if strings.Contains(tok, "@") {
			email = strings.TrimFunc(tok, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
		}
	}
	return orderID, email
}

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
