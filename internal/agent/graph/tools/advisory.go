package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/advisory"
)

type SizeRecommenderInput struct {
	Text string `json:"text"`
}

func createSizeRecommenderTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSizeRecommender,
			Desc: "Recommend a dress size from height, build and fit preferences mentioned in free text.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"text": {
					Type:     schema.String,
					Desc:     "The shopper's message.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SizeRecommenderInput) (*advisory.SizeAdvice, error) {
			adv := advisory.RecommendSize(in.Text)
			return &adv, nil
		},
	)
}

type ETAInput struct {
	ZIP string `json:"zip"`
}

type ETAOutput struct {
	advisory.ETA
	Estimate string `json:"estimate"`
}

func createETATool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolETA,
			Desc: "Estimate delivery time in days for a ZIP code. Unknown ZIP codes get a conservative default range.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"zip": {
					Type: schema.String,
					Desc: "Destination ZIP code. May be empty.",
				},
			}),
		},
		func(ctx context.Context, in *ETAInput) (*ETAOutput, error) {
			eta := advisory.EstimateETA(in.ZIP)
			return &ETAOutput{ETA: eta, Estimate: eta.String()}, nil
		},
	)
}
