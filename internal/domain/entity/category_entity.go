package entity

// Category is a free-text label posts can reference. One category has many
// posts; deleting a category leaves referencing posts in place.
type Category struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
}
