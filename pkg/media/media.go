// Package media derives client-fetchable URLs from stored filenames.
package media

import "strings"

// URLBuilder joins a configured media base URL with stored filenames.
// Filenames are appended verbatim: URL(f) == base + "/" + f.
type URLBuilder struct {
	base string
}

// NewURLBuilder returns a builder for base. Trailing slashes are dropped.
func NewURLBuilder(base string) URLBuilder {
	return URLBuilder{base: strings.TrimRight(base, "/")}
}

// Base returns the normalized base URL.
func (b URLBuilder) Base() string {
	return b.base
}

// URL returns the absolute URL of filename.
func (b URLBuilder) URL(filename string) string {
	return b.base + "/" + filename
}

// OptionalURL is URL for optional media: an empty filename yields nil.
func (b URLBuilder) OptionalURL(filename string) *string {
	if filename == "" {
		return nil
	}
	u := b.URL(filename)
	return &u
}
