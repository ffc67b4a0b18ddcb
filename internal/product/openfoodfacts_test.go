// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package product

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nutriscan/pkg/types"
)

const productPayload = `{
	"status": 1,
	"code": "737628064502",
	"product": {
		"product_name": "Rice Noodle Soup Bowl",
		"brands": "Thai Kitchen",
		"ingredients_text": "Rice noodles, salt, sugar, monosodium glutamate",
		"allergens_tags": ["en:peanuts", "en:soybeans"],
		"nutriscore_grade": "c"
	}
}`

func withServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := openFoodFactsBase
	openFoodFactsBase = ts.URL
	t.Cleanup(func() { openFoodFactsBase = old })

	client := NewClient(types.ProductConfig{})
	client.HTTPClient = ts.Client()
	return client
}

func TestLookup(t *testing.T) {
	client := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/737628064502.json", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, productPayload)
	})

	p, err := client.Lookup(context.Background(), "737628064502")
	require.NoError(t, err)

	assert.Equal(t, "Rice Noodle Soup Bowl", p.Name)
	assert.Equal(t, "Thai Kitchen", p.Brands)
	assert.Equal(t, "c", p.NutriScore)
	assert.Equal(t, []string{"peanuts", "soybeans"}, p.Allergens)
	assert.Contains(t, p.IngredientText, "monosodium glutamate")
}

func TestLookupUnknownBarcode(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "status zero body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"status": 0, "code": "000"}`)
			},
		},
		{
			name: "http 404",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := withServer(t, tt.handler)
			_, err := client.Lookup(context.Background(), "000")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no product found")
		})
	}
}

func TestLookupEmptyBarcode(t *testing.T) {
	client := NewClient(types.ProductConfig{})
	_, err := client.Lookup(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty barcode")
}

func TestLookupServerError(t *testing.T) {
	client := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})

	_, err := client.Lookup(context.Background(), "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestAnalysisText(t *testing.T) {
	p := &Product{
		Name:           "Rice Noodle Soup Bowl",
		IngredientText: "Rice noodles, monosodium glutamate",
		Allergens:      []string{"peanuts"},
	}

	text := p.AnalysisText()
	assert.Contains(t, text, "Rice Noodle Soup Bowl")
	assert.Contains(t, text, "Ingredients: Rice noodles, monosodium glutamate")
	assert.Contains(t, text, "Contains: peanuts")

	empty := &Product{}
	assert.Equal(t, "", empty.AnalysisText())
}
