package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/catalog"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/extract"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
)

// ===================================
// Product Search Tool
// ===================================

type ProductSearchInput struct {
	Query    string   `json:"query"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type ProductSearchOutput struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

func createProductSearchTool(cat *catalog.Catalog) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolProductSearch,
			Desc: "Search the dress catalog. Filters by price ceiling, occasion tags and a color mentioned in the query. Returns at most two products, cheapest first.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     schema.String,
					Desc:     "The shopper's message. Price, tags and color are derived from it when not given explicitly.",
					Required: true,
				},
				"max_price": {
					Type: schema.Number,
					Desc: "Optional inclusive price ceiling.",
				},
				"tags": {
					Type:     schema.Array,
					Desc:     "Optional tags every result must carry: wedding, midi, party, daywear.",
					ElemInfo: &schema.ParameterInfo{Type: schema.String},
				},
			}),
		},
		func(ctx context.Context, in *ProductSearchInput) (*ProductSearchOutput, error) {
			if strings.TrimSpace(in.Query) == "" {
				return nil, fmt.Errorf("query is required")
			}

			opts := catalog.SearchOptions{Tags: in.Tags}
			if in.MaxPrice != nil {
				c := extract.Under(*in.MaxPrice)
				opts.Ceiling = &c
			}

			products := cat.Search(in.Query, opts)
			return &ProductSearchOutput{
				Products: products,
				Total:    len(products),
			}, nil
		},
	)
}
