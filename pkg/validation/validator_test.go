package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
)

type artworkForm struct {
	Title    string      `json:"title" binding:"required" validate:"required,max=10"`
	Price    json.Number `json:"price" validate:"required,rbprice"`
	Category string      `json:"category" validate:"required,category"`
	Sort     string      `form:"sort" validate:"omitempty,sortkey"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestPriceAndCategoryTags(t *testing.T) {
	v := newValidator()
	tests := []struct {
		name  string
		price string
		cat   string
		ok    bool
	}{
		{name: "valid", price: "40.00", cat: entity.CategoryAbstract, ok: true},
		{name: "integer price", price: "40", cat: entity.Category3DArt, ok: true},
		{name: "zero price", price: "0", cat: entity.CategoryAbstract},
		{name: "negative price", price: "-1", cat: entity.CategoryAbstract},
		{name: "three decimals", price: "1.005", cat: entity.CategoryAbstract},
		{name: "too expensive", price: "1000000.01", cat: entity.CategoryAbstract},
		{name: "not a number", price: "abc", cat: entity.CategoryAbstract},
		{name: "unknown category", price: "1", cat: "Sculpture"},
		{name: "all is not a category", price: "1", cat: entity.CategoryAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(artworkForm{Title: "x", Price: json.Number(tt.price), Category: tt.cat})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestToDetails_UsesJSONNames(t *testing.T) {
	v := newValidator()
	err := v.Struct(artworkForm{Title: "far too long title", Price: "0", Category: "x", Sort: "cheapest"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be at most 10 characters long", details["title"])
	assert.Contains(t, details["price"], "positive RB amount")
	assert.Contains(t, details["category"], entity.CategoryDigitalPainting)
	assert.Equal(t, "must be one of: newest, popular, price-low, price-high", details["sort"])
}

func TestToDetails_Payload(t *testing.T) {
	var target map[string]any
	var se *json.SyntaxError
	err := json.Unmarshal([]byte(`{,}`), &target)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("EOF")))
	assert.Nil(t, ToDetails(nil))
}
