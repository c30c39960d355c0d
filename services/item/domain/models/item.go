package models

// Item is a category of material a collection point may accept.
type Item struct {
	ID    int64
	Title ItemTitle
	// Image is the icon filename, resolved to a URL at read time.
	Image string
}

// NewItem constructs an Item from catalog values.
func NewItem(id int64, title, image string) (*Item, error) {
	t, err := NewItemTitle(title)
	if err != nil {
		return nil, err
	}
	return &Item{ID: id, Title: t, Image: image}, nil
}
