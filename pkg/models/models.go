package models

import "time"

// ContentKind identifies which collection a content item belongs to.
type ContentKind string

const (
	KindPosts ContentKind = "posts"
	KindReels ContentKind = "reels"
)

// ProductTypeClips is the timeline discriminator value that marks a reel.
// Every other product_type value is treated as a regular post.
const ProductTypeClips = "clips"

// Profile is the flattened view of an Instagram profile.
type Profile struct {
	Username       string `json:"username" bson:"username"`
	FullName       string `json:"full_name" bson:"full_name"`
	Bio            string `json:"bio" bson:"bio"`
	ProfilePicture string `json:"profile_picture" bson:"profile_picture"`
	Posts          int    `json:"posts" bson:"posts"`
	Followers      int    `json:"followers" bson:"followers"`
	Following      int    `json:"following" bson:"following"`
}

// ContentItem is the shared shape for a post or a reel.
type ContentItem struct {
	ID          string `json:"id" bson:"id"`
	Shortcode   string `json:"shortcode" bson:"shortcode"`
	Caption     string `json:"caption" bson:"caption"`
	Thumbnail   string `json:"thumbnail" bson:"thumbnail"`
	IsVideo     bool   `json:"is_video" bson:"is_video"`
	ProductType string `json:"product_type" bson:"product_type"`
	Likes       int    `json:"likes" bson:"likes"`
	Comments    int    `json:"comments" bson:"comments"`
	PostURL     string `json:"post_url" bson:"post_url"`
}

// Engagement returns likes plus comments for the item.
func (c ContentItem) Engagement() int {
	return c.Likes + c.Comments
}

// IsReel reports whether the item is a short-video clip.
func (c ContentItem) IsReel() bool {
	return c.ProductType == ProductTypeClips
}

// UserData bundles everything known about a username.
type UserData struct {
	Profile Profile       `json:"profile"`
	Posts   []ContentItem `json:"posts"`
	Reels   []ContentItem `json:"reels"`
}

// UserSummary is the listing shape returned by the users index endpoint.
type UserSummary struct {
	Username    string    `json:"username" bson:"username"`
	FullName    string    `json:"full_name" bson:"full_name"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
}
