// Package fixture provides the product catalog served by the local catalog
// server.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
	"github.com/aman11srivastava/shopping-cart/pkg/validator"
)

//go:embed products.json
var productsJSON []byte

// Products decodes the embedded catalog.
func Products() ([]domain.Product, error) {
	return Parse(productsJSON)
}

// Parse decodes and validates a catalog in the public fake-store shape.
func Parse(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	seen := make(map[int]struct{}, len(products))
	for _, p := range products {
		if err := validator.Validate(p); err != nil {
			return nil, fmt.Errorf("fixture product %d: %w", p.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("fixture product %d: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return products, nil
}
