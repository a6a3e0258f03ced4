package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozleads/lead-engine/internal/model"
)

func TestSuggestedQuoteRange(t *testing.T) {
	tests := []struct {
		name        string
		subcategory string
		size        string
		want        model.PriceRange
	}{
		{"cabinet medium", "Cabinet Painting", "medium", model.PriceRange{Min: 1500, Max: 2500}},
		{"cabinet small falls back", "Cabinet Painting", "small", model.PriceRange{Min: 1000, Max: 1800}},
		{"cabinet empty size is medium", "cabinet refinishing", "", model.PriceRange{Min: 1500, Max: 2500}},
		{"exterior large", "Exterior House Painting", "large", model.PriceRange{Min: 3500, Max: 6000}},
		{"exterior medium falls back", "exterior walls", "medium", model.PriceRange{Min: 2000, Max: 3500}},
		{"fence any size", "Fence Painting", "large", model.PriceRange{Min: 600, Max: 1200}},
		{"unknown small", "Wallpaper Removal", "small", model.PriceRange{Min: 400, Max: 700}},
		{"unknown large", "Wallpaper Removal", "large", model.PriceRange{Min: 3000, Max: 5000}},
		{"unknown medium flat default", "Wallpaper Removal", "medium", model.PriceRange{Min: 1500, Max: 3000}},
		{"empty everything flat default", "", "", model.PriceRange{Min: 1500, Max: 3000}},
		{"case insensitive match", "CABINET respray", "medium", model.PriceRange{Min: 1500, Max: 2500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestedQuoteRange(tt.subcategory, tt.size)
			assert.Equal(t, tt.want, got)
		})
	}
}
