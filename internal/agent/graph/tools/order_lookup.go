package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/orders"
)

type OrderLookupInput struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
}

type OrderLookupOutput struct {
	Found bool         `json:"found"`
	Order *model.Order `json:"order,omitempty"`
}

func createOrderLookupTool(dir *orders.Directory) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolOrderLookup,
			Desc: "Look up an order by order id and the email it was placed with. Both must match, case-insensitively.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_id": {
					Type:     schema.String,
					Desc:     "Order id such as A1003.",
					Required: true,
				},
				"email": {
					Type:     schema.String,
					Desc:     "Email address on the order.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *OrderLookupInput) (*OrderLookupOutput, error) {
			o, ok := dir.Lookup(in.OrderID, in.Email)
			if !ok {
				return &OrderLookupOutput{Found: false}, nil
			}
			return &OrderLookupOutput{Found: true, Order: &o}, nil
		},
	)
}
