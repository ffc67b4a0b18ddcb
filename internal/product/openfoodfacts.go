// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package product looks up packaged foods by barcode in the Open Food
// Facts database, giving the analysis pipeline a second source of
// ingredient text when the label photograph is unusable.
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/nutriscan/pkg/types"
)

// openFoodFactsBase is the product endpoint. Declared as a var so tests
// can substitute an httptest server.
var openFoodFactsBase = "https://world.openfoodfacts.org/api/v2/product"

// Product holds the fields the pipeline consumes from a lookup.
type Product struct {
	Barcode        string   `json:"barcode" yaml:"barcode"`
	Name           string   `json:"name" yaml:"name"`
	Brands         string   `json:"brands,omitempty" yaml:"brands,omitempty"`
	IngredientText string   `json:"ingredient_text,omitempty" yaml:"ingredient_text,omitempty"`
	Allergens      []string `json:"allergens,omitempty" yaml:"allergens,omitempty"`
	NutriScore     string   `json:"nutriscore,omitempty" yaml:"nutriscore,omitempty"`
}

// Client queries the Open Food Facts API.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient builds a lookup client from configuration.
func NewClient(cfg types.ProductConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "nutriscan/0.1"
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  userAgent,
	}
}

// Lookup fetches one product by barcode. A barcode unknown to the
// database returns an error rather than an empty product.
func (c *Client) Lookup(ctx context.Context, barcode string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, fmt.Errorf("empty barcode")
	}

	reqURL := fmt.Sprintf("%s/%s.json", openFoodFactsBase, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Open Food Facts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no product found for barcode %s", barcode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Open Food Facts returned HTTP %d", resp.StatusCode)
	}

	var offr offResponse
	if err := json.NewDecoder(resp.Body).Decode(&offr); err != nil {
		return nil, fmt.Errorf("parsing Open Food Facts response: %w", err)
	}
	if offr.Status != 1 {
		return nil, fmt.Errorf("no product found for barcode %s", barcode)
	}

	p := &Product{
		Barcode:        barcode,
		Name:           offr.Product.ProductName,
		Brands:         offr.Product.Brands,
		IngredientText: offr.Product.IngredientsText,
		NutriScore:     offr.Product.NutriScoreGrade,
	}
	for _, tag := range offr.Product.AllergensTags {
		// Tags arrive language-prefixed, e.g. "en:peanuts".
		if i := strings.IndexByte(tag, ':'); i >= 0 {
			tag = tag[i+1:]
		}
		if tag != "" {
			p.Allergens = append(p.Allergens, tag)
		}
	}
	return p, nil
}

// AnalysisText combines the textual fields into input for the text
// analysis pipeline.
func (p *Product) AnalysisText() string {
	var parts []string
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	if p.IngredientText != "" {
		parts = append(parts, "Ingredients: "+p.IngredientText)
	}
	if len(p.Allergens) > 0 {
		parts = append(parts, "Contains: "+strings.Join(p.Allergens, ", "))
	}
	return strings.Join(parts, ". ")
}

// Open Food Facts API JSON structures.
type offResponse struct {
	Status  int        `json:"status"`
	Code    string     `json:"code"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	ProductName     string   `json:"product_name"`
	Brands          string   `json:"brands"`
	IngredientsText string   `json:"ingredients_text"`
	AllergensTags   []string `json:"allergens_tags"`
	NutriScoreGrade string   `json:"nutriscore_grade"`
}
