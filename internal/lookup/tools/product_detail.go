package tools

import (
	"context"
	"fmt"
	"strings"

	errx "github.com/alraulpm-lang/checador/internal/core/error"
	"github.com/alraulpm-lang/checador/internal/lookup/handler"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

const LookupProductToolName = "lookup_product"

type LookupProductInput struct {
	Code string `json:"code"`
}

type ProductDetails struct {
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Price       string            `json:"price"`
	Description string            `json:"description"`
	ImageURL    string            `json:"image_url"`
	Fields      map[string]string `json:"fields"`
}

func createLookupProductTool(cat Catalog, display model.DisplayConfig) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: LookupProductToolName,
			Desc: "Look up a product by its exact barcode. Returns name, formatted price, description, image and every column of the product sheet. Use it when the customer reads or scans a barcode.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"code": {
					Type:     "string",
					Desc:     "Barcode exactly as printed under the symbol (e.g. 7501055363513). Case-sensitive, no spaces.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *LookupProductInput) (*ProductDetails, error) {
			code := strings.TrimSpace(in.Code)
			if code == "" {
				return nil, fmt.Errorf("code is required")
			}

			rec, outcome := cat.Lookup(code)
			switch outcome {
			case model.OutcomeFound:
				details := toDetails(rec, display)
				return &details, nil
			case model.OutcomeLoading:
				return nil, fmt.Errorf("product catalog is still loading")
			default:
				return nil, errx.LookupMiss(code)
			}
		},
	)
}

func toDetails(rec model.Record, display model.DisplayConfig) ProductDetails {
	d := handler.BuildDisplay(rec, display)
	fields := make(map[string]string, len(rec.Values))
	for k, v := range rec.Values {
		fields[k] = v
	}
	return ProductDetails{
		Code:        d.Code,
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Fields:      fields,
	}
}
