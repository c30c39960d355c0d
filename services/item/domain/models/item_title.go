package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ItemTitle is the display title of a catalog item: 1 to 255 characters,
// not blank.
type ItemTitle string

const maxItemTitleLength = 255

// NewItemTitle returns s as an ItemTitle or an error if it is blank or too long.
func NewItemTitle(s string) (ItemTitle, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("item title must not be blank")
	}
	if utf8.RuneCountInString(s) > maxItemTitleLength {
		return "", fmt.Errorf("item title must not exceed %d characters", maxItemTitleLength)
	}
	return ItemTitle(s), nil
}

// String returns the underlying string value.
func (t ItemTitle) String() string {
	return string(t)
}
