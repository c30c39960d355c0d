package models

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNoItemIDs is returned when an item list names no ids at all.
	ErrNoItemIDs = errors.New("select at least one item")
	// ErrMalformedItemIDs is returned when a token is not a positive integer.
	ErrMalformedItemIDs = errors.New("item ids must be positive integers separated by commas")
)

// ParseItemIDs parses a comma-joined id list such as "1, 2,2". Blank tokens
// are skipped, duplicates collapse and the first-seen order is kept.
func ParseItemIDs(raw string) ([]int64, error) {
	var ids []int64
	seen := map[int64]struct{}{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil || id <= 0 {
			return nil, ErrMalformedItemIDs
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrNoItemIDs
	}
	return ids, nil
}

// JoinItemIDs is the inverse of ParseItemIDs.
func JoinItemIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
