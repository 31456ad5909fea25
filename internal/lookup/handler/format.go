package handler

import (
	"strings"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/shopspring/decimal"
)

// FormatPrice renders raw with two decimals behind currency. Missing or
// unparseable prices render as zero.
func FormatPrice(raw, currency string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		d = decimal.Zero
	}
	return currency + d.StringFixed(2)
}

// BuildDisplay projects a record onto the details view.
func BuildDisplay(rec model.Record, cfg model.DisplayConfig) model.DisplayState {
	p := rec.Product
	image := p.ImageURL
	if image == "" {
		image = cfg.PlaceholderImage
	}
	return model.DisplayState{
		Code:        p.Code,
		Name:        p.Name,
		Price:       FormatPrice(p.Price, cfg.Currency),
		Description: p.Description,
		ImageURL:    image,
	}
}
