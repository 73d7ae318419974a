package entity

import "time"

// Post is a blog entry. PostDate is stamped server-side at creation and is
// never client-supplied. FeatureImage is "" when no image was uploaded.
// Category references a Category id and may be nil.
type Post struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	PostDate     time.Time `json:"postDate"`
	FeatureImage string    `json:"featureImage"`
	Published    bool      `json:"published"`
	Category     *int      `json:"category"`
}
