package nodes

import (
	"fmt"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
)

// mergeStage folds a stage's delta into its input state.
func mergeStage(stage string, in model.State, d model.Delta) (model.State, error) {
	out, err := in.Merge(d)
	if err != nil {
		return in, stageError(stage, err)
	}
	return out, nil
}

func stageError(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
