// Package analytics derives engagement statistics from scraped profile
// content. All functions are pure: identical inputs produce identical
// reports.
package analytics

import (
	"math"

	"github.com/sableashish494/ashish-primaspot-main/pkg/models"
)

// Stats holds per-collection engagement statistics.
//
// EngagementRate here is the rounded average engagement count per item
// (likes+comments), an absolute number. The overall report exposes a
// followers-normalized percentage under the same field name; the mismatch is
// inherited upstream behavior and kept as-is.
type Stats struct {
	Count          int                 `json:"count"`
	AvgLikes       int                 `json:"avgLikes"`
	AvgComments    int                 `json:"avgComments"`
	TotalLikes     int                 `json:"totalLikes"`
	TotalComments  int                 `json:"totalComments"`
	BestPerforming *models.ContentItem `json:"bestPerforming"`
	EngagementRate int                 `json:"engagementRate"`
}

// OverallStats holds statistics over the combined posts and reels set.
type OverallStats struct {
	TotalPosts     int     `json:"totalPosts"`
	TotalReels     int     `json:"totalReels"`
	TotalContent   int     `json:"totalContent"`
	AvgLikes       int     `json:"avgLikes"`
	AvgComments    int     `json:"avgComments"`
	TotalLikes     int     `json:"totalLikes"`
	TotalComments  int     `json:"totalComments"`
	EngagementRate float64 `json:"engagementRate"`
}

// Report is the full analytics payload for one profile.
type Report struct {
	Posts   Stats        `json:"posts"`
	Reels   Stats        `json:"reels"`
	Overall OverallStats `json:"overall"`
}

// ComputeStats computes engagement statistics for one content collection.
// An empty collection yields the zero report with a nil BestPerforming.
func ComputeStats(items []models.ContentItem) Stats {
	if len(items) == 0 {
		return Stats{}
	}

	var totalLikes, totalComments int
	best := 0
	for i, item := range items {
		totalLikes += item.Likes
		totalComments += item.Comments
		// Strictly greater keeps the earliest maximum on ties
		if item.Engagement() > items[best].Engagement() {
			best = i
		}
	}

	bestItem := items[best]
	return Stats{
		Count:          len(items),
		AvgLikes:       roundDiv(totalLikes, len(items)),
		AvgComments:    roundDiv(totalComments, len(items)),
		TotalLikes:     totalLikes,
		TotalComments:  totalComments,
		BestPerforming: &bestItem,
		EngagementRate: roundDiv(totalLikes+totalComments, len(items)),
	}
}

// Aggregate builds the full report. Overall statistics run over the
// concatenation of posts then reels; the overall engagement rate is
// normalized by follower count and rounded to two decimals.
func Aggregate(posts, reels []models.ContentItem, profile models.Profile) Report {
	all := make([]models.ContentItem, 0, len(posts)+len(reels))
	all = append(all, posts...)
	all = append(all, reels...)

	var totalLikes, totalComments int
	for _, item := range all {
		totalLikes += item.Likes
		totalComments += item.Comments
	}

	overall := OverallStats{
		TotalPosts:    len(posts),
		TotalReels:    len(reels),
		TotalContent:  len(all),
		TotalLikes:    totalLikes,
		TotalComments: totalComments,
	}
	if len(all) > 0 {
		overall.AvgLikes = roundDiv(totalLikes, len(all))
		overall.AvgComments = roundDiv(totalComments, len(all))
		if profile.Followers > 0 {
			perItem := float64(totalLikes+totalComments) / float64(len(all))
			rate := perItem / float64(profile.Followers) * 100
			overall.EngagementRate = math.Round(rate*100) / 100
		}
	}

	return Report{
		Posts:   ComputeStats(posts),
		Reels:   ComputeStats(reels),
		Overall: overall,
	}
}

// roundDiv divides and rounds to the nearest integer, matching the rounding
// of the reference implementation for non-negative inputs.
func roundDiv(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}
