package db

type ItemItem struct {
	ID    int64
	Title string
	Image string
}
