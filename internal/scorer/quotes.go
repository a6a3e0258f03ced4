package scorer

import (
	"strings"

	"github.com/ozleads/lead-engine/internal/model"
)

// Job size buckets.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// quoteRule maps a normalized subcategory substring to size-bucketed price
// ranges. First matching rule wins; the table data is illustrative business
// defaults and lives apart from the dispatch logic so it can be tested and
// tuned on its own.
type quoteRule struct {
	substring string
	bySize    map[string]model.PriceRange
	fallback  model.PriceRange
}

var quoteRules = []quoteRule{
	{
		substring: "cabinet",
		bySize: map[string]model.PriceRange{
			SizeMedium: {Min: 1500, Max: 2500},
		},
		fallback: model.PriceRange{Min: 1000, Max: 1800},
	},
	{
		substring: "exterior",
		bySize: map[string]model.PriceRange{
			SizeLarge: {Min: 3500, Max: 6000},
		},
		fallback: model.PriceRange{Min: 2000, Max: 3500},
	},
	{
		substring: "fence",
		fallback:  model.PriceRange{Min: 600, Max: 1200},
	},
}

// sizeDefaults applies when no subcategory rule matches.
var sizeDefaults = map[string]model.PriceRange{
	SizeSmall: {Min: 400, Max: 700},
	SizeLarge: {Min: 3000, Max: 5000},
}

// flatDefault is the last-resort range (medium jobs, unknown subcategory).
var flatDefault = model.PriceRange{Min: 1500, Max: 3000}

// suggestedQuoteRange looks up a price range by subcategory substring
// crossed with size, falling back to the size table and then the flat
// default. An empty size is treated as medium.
func suggestedQuoteRange(subcategory, size string) model.PriceRange {
	sub := strings.ToLower(subcategory)
	if size == "" {
		size = SizeMedium
	}

	for _, rule := range quoteRules {
		if !strings.Contains(sub, rule.substring) {
			continue
		}
		if r, ok := rule.bySize[size]; ok {
			return r
		}
		return rule.fallback
	}

	if r, ok := sizeDefaults[size]; ok {
		return r
	}
	return flatDefault
}
