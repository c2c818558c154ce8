// Package instagram provides a client for the unofficial Instagram web API
// together with the normalization layer that flattens its nested response.
//
// This package includes:
//   - A configurable HTTP client sending the web client's header set
//   - Type-safe models for the web_profile_info response
//   - Helper functions for constructing API and permalink URLs
//   - Extractors that project the raw user object onto flat profile and
//     content shapes
//
// Example usage:
//
//	client := instagram.NewClient(&cfg.Instagram, log)
//
//	user, err := client.FetchUserProfile("username")
//	if err != nil {
//	    if igErr, ok := err.(*instagram.Error); ok {
//	        switch igErr.Type {
//	        case instagram.ErrorTypeAuth:
//	            // Handle authentication error
//	        case instagram.ErrorTypeRateLimit:
//	            // Handle rate limit
//	        }
//	    }
//	}
//
//	profile := instagram.ExtractProfile(user)
//	posts := instagram.ExtractContent(user, models.KindPosts, 15)
//	reels := instagram.ExtractContent(user, models.KindReels, 7)
package instagram
