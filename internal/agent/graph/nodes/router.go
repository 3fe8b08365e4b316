package nodes

import (
	"strings"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
)

var (
	productKeywords = []string{"dress", "wedding", "size"}
	orderKeywords   = []string{"order", "cancel"}
)

// Classify maps an utterance to an intent. Product keywords are checked
// before order keywords, so a message mentioning both is product assistance.
func Classify(text string) model.Intent {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, productKeywords):
		return model.IntentProductAssist
	case containsAny(lower, orderKeywords):
		return model.IntentOrderHelp
	default:
		return model.IntentOther
	}
}

// Route is the Router stage.
func Route(s model.State) model.Delta {
	return model.Delta{Intent: Classify(s.UserInput)}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
