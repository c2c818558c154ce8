package instagram

// ProfileResponse represents the top-level response from the
// web_profile_info endpoint
type ProfileResponse struct {
	RequiresToLogin bool   `json:"requires_to_login"`
	Data            Data   `json:"data"`
	Status          string `json:"status"`
}

// Data wraps the user information in the response
type Data struct {
	User User `json:"user"`
}

// User represents a raw Instagram user profile
type User struct {
	ID                       string                   `json:"id"`
	Username                 string                   `json:"username"`
	FullName                 string                   `json:"full_name"`
	Biography                string                   `json:"biography"`
	ProfilePicURLHD          string                   `json:"profile_pic_url_hd"`
	EdgeFollowedBy           EdgeCount                `json:"edge_followed_by"`
	EdgeFollow               EdgeCount                `json:"edge_follow"`
	EdgeOwnerToTimelineMedia EdgeOwnerToTimelineMedia `json:"edge_owner_to_timeline_media"`
}

// EdgeCount wraps a bare counter edge
type EdgeCount struct {
	Count int `json:"count"`
}

// EdgeOwnerToTimelineMedia contains the user's media timeline
type EdgeOwnerToTimelineMedia struct {
	Count    int      `json:"count"`
	PageInfo PageInfo `json:"page_info"`
	Edges    []Edge   `json:"edges"`
}

// PageInfo contains pagination information
type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

// Edge wraps a single media node
type Edge struct {
	Node Node `json:"node"`
}

// Node represents a single timeline media item
type Node struct {
	ID                 string       `json:"id"`
	Shortcode          string       `json:"shortcode"`
	DisplayURL         string       `json:"display_url"`
	IsVideo            bool         `json:"is_video"`
	ProductType        string       `json:"product_type"`
	EdgeMediaToCaption CaptionEdges `json:"edge_media_to_caption"`
	EdgeLikedBy        EdgeCount    `json:"edge_liked_by"`
	EdgeMediaToComment EdgeCount    `json:"edge_media_to_comment"`
}

// CaptionEdges wraps the caption edge list; it is empty for captionless media
type CaptionEdges struct {
	Edges []CaptionEdge `json:"edges"`
}

// CaptionEdge wraps a single caption node
type CaptionEdge struct {
	Node CaptionNode `json:"node"`
}

// CaptionNode holds the caption text
type CaptionNode struct {
	Text string `json:"text"`
}

// Caption returns the first caption text, or the empty string when the media
// has no caption.
func (n *Node) Caption() string {
	if len(n.EdgeMediaToCaption.Edges) == 0 {
		return ""
	}
	return n.EdgeMediaToCaption.Edges[0].Node.Text
}
