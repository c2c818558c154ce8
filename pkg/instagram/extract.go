package instagram

import (
	"github.com/sableashish494/ashish-primaspot-main/pkg/models"
)

// ExtractProfile projects the raw user object onto the flat profile shape.
// Missing optional fields become empty strings, never nulls.
func ExtractProfile(user *User) models.Profile {
	return models.Profile{
		Username:       user.Username,
		FullName:       user.FullName,
		Bio:            user.Biography,
		ProfilePicture: user.ProfilePicURLHD,
		Posts:          user.EdgeOwnerToTimelineMedia.Count,
		Followers:      user.EdgeFollowedBy.Count,
		Following:      user.EdgeFollow.Count,
	}
}

// ExtractContent walks the timeline edges in order, keeps the items matching
// kind (product_type "clips" for reels, everything else for posts), and caps
// the result at limit. The cap applies to the filtered subset, not the raw
// timeline.
func ExtractContent(user *User, kind models.ContentKind, limit int) []models.ContentItem {
	items := make([]models.ContentItem, 0, limit)

	for _, edge := range user.EdgeOwnerToTimelineMedia.Edges {
		isClip := edge.Node.ProductType == models.ProductTypeClips
		if (kind == models.KindReels) != isClip {
			continue
		}
		if len(items) >= limit {
			break
		}
		items = append(items, itemFromNode(&edge.Node))
	}

	return items
}

func itemFromNode(node *Node) models.ContentItem {
	return models.ContentItem{
		ID:          node.ID,
		Shortcode:   node.Shortcode,
		Caption:     node.Caption(),
		Thumbnail:   node.DisplayURL,
		IsVideo:     node.IsVideo,
		ProductType: node.ProductType,
		Likes:       node.EdgeLikedBy.Count,
		Comments:    node.EdgeMediaToComment.Count,
		PostURL:     GetPostURL(node.Shortcode),
	}
}
