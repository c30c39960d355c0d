// Package services contains stateless domain services for the item catalog.
// They enforce rules on domain types only and have no external dependencies.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ecoleta/ecoleta/services/item/domain/models"
)

// ValidateImageName checks that an icon filename can be appended verbatim to
// the media base URL.
//
// Rules:
//   - Not empty
//   - No path separators or parent references
//   - No whitespace or control characters
func ValidateImageName(name string) error {
	if name == "" {
		return fmt.Errorf("image name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("image name must be a bare filename")
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("image name must not contain whitespace or control characters")
		}
	}
	return nil
}

// ValidateCatalogItem checks an item loaded from storage before it is served.
func ValidateCatalogItem(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.ID <= 0 {
		return fmt.Errorf("id must be positive")
	}
	if _, err := models.NewItemTitle(item.Title.String()); err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}
	if err := ValidateImageName(item.Image); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}
	return nil
}
