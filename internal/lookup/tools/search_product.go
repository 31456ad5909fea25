package tools

import (
	"context"
	"fmt"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

const (
	SearchProductToolName = "search_product"
	defaultMaxResults     = 10
	maxMaxResults         = 20
)

type SearchProductInput struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type SearchProductOutput struct {
	Products []ProductDetails `json:"products"`
	Total    int              `json:"total"`
}

func createSearchProductTool(cat Catalog, display model.DisplayConfig) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: SearchProductToolName,
			Desc: "Search the product sheet by name or description keywords when no barcode is at hand. Returns matching products with barcode, name and formatted price.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Keywords matched case-insensitively against product name and description (e.g. cafe, leche).",
					Required: true,
				},
				"max_results": {
					Type: "number",
					Desc: "Maximum number of products to return (default: 10, max: 20)",
				},
			}),
		},
		func(ctx context.Context, in *SearchProductInput) (*SearchProductOutput, error) {
			if in.Query == "" {
				return nil, fmt.Errorf("query is required")
			}
			if in.MaxResults <= 0 {
				in.MaxResults = defaultMaxResults
			}
			if in.MaxResults > maxMaxResults {
				in.MaxResults = maxMaxResults
			}

			matched := cat.Search(in.Query, in.MaxResults)
			products := make([]ProductDetails, 0, len(matched))
			for _, rec := range matched {
				products = append(products, toDetails(rec, display))
			}

			return &SearchProductOutput{
				Products: products,
				Total:    len(products),
			}, nil
		},
	)
}
