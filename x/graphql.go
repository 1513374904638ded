package x

import (
	"encoding/json"
	"fmt"

	"x-scraper-go/x/models/response"
)

const graphQLBase = "https://x.com/i/api/graphql"

// Query IDs are tied to the persisted query hashes shipped with the web
// bundle; they rotate occasionally.
const (
	userByScreenNameQueryID = "G3KGOASz96M-Qu0nwmGXNg/UserByScreenName"
	userTweetsQueryID       = "V7H0Ap3_Hh2FyS75OCDO3Q/UserTweets"
)

var defaultFeatures = map[string]bool{
	"hidden_profile_likes_enabled":                                      false,
	"responsive_web_graphql_exclude_directive_enabled":                  true,
	"verified_phone_label_enabled":                                      false,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled": false,
	"responsive_web_graphql_timeline_navigation_enabled":                true,
	"creator_subscriptions_tweet_preview_api_enabled":                   true,
	"tweetypie_unmention_optimization_enabled":                          true,
	"responsive_web_edit_tweet_api_enabled":                             true,
	"view_counts_everywhere_api_enabled":                                true,
	"longform_notetweets_consumption_enabled":                           true,
	"responsive_web_twitter_article_tweet_consumption_enabled":          false,
	"tweet_awards_web_tipping_enabled":                                  false,
	"freedom_of_speech_not_reach_fetch_enabled":                         true,
	"standardized_nudges_misinfo":                                       true,
	"longform_notetweets_rich_text_read_enabled":                        true,
	"longform_notetweets_inline_media_enabled":                          true,
	"responsive_web_media_download_video_enabled":                       false,
	"responsive_web_enhance_cards_enabled":                              false,
}

// graphQLGet performs a GraphQL query over GET, with variables and features
// JSON-encoded into query parameters as the web app does.
func (c *Client) graphQLGet(queryID string, variables map[string]interface{}, out interface{}) error {
	varsJSON, err := json.Marshal(variables)
	if err != nil {
		return err
	}
	featJSON, err := json.Marshal(defaultFeatures)
	if err != nil {
		return err
	}
	res, err := c.http.R().
		SetQueryParam("variables", string(varsJSON)).
		SetQueryParam("features", string(featJSON)).
		Get(fmt.Sprintf("%s/%s", graphQLBase, queryID))
	if err != nil {
		return err
	}
	return res.Unmarshal(out)
}

// GetUserByScreenName resolves a handle to its numeric rest_id and profile
// stats.
func (c *Client) GetUserByScreenName(screenName string) (error, *response.UserByScreenNameStruct) {
	var r response.GraphQLRoot[response.UserByScreenNameStruct]
	err := c.graphQLGet(userByScreenNameQueryID, map[string]interface{}{
		"screen_name":              screenName,
		"withSafetyModeUserFields": true,
	}, &r)
	if err != nil {
		return err, nil
	}
	if err = r.CheckValid(); err != nil {
		return err, nil
	}
	return nil, &r.Data
}

type Tweet struct {
	ID        string
	Text      string
	CreatedAt string
}

// GetUserTweets fetches one page of a user's timeline. The returned cursor is
// empty when the timeline is exhausted.
func (c *Client) GetUserTweets(userID string, count int, cursor string) (error, []Tweet, string) {
	variables := map[string]interface{}{
		"userId":                                 userID,
		"count":                                  count,
		"includePromotedContent":                 false,
		"withQuickPromoteEligibilityTweetFields": false,
		"withVoice":                              true,
		"withV2Timeline":                         true,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}
	var r response.GraphQLRoot[response.TimelineStruct]
	err := c.graphQLGet(userTweetsQueryID, variables, &r)
	if err != nil {
		return err, nil, ""
	}
	if err = r.CheckValid(); err != nil {
		return err, nil, ""
	}
	var tweets []Tweet
	var nextCursor string
	for _, inst := range r.Data.User.Result.Timeline.Timeline.Instructions {
		if inst.Type != "TimelineAddEntries" {
			continue
		}
		for _, entry := range inst.Entries {
			switch entry.Content.EntryType {
			case "TimelineTimelineItem":
				t := entry.Content.ItemContent.TweetResults.Result
				if t.RestID == "" {
					continue
				}
				tweets = append(tweets, Tweet{
					ID:        t.RestID,
					Text:      t.Legacy.FullText,
					CreatedAt: t.Legacy.CreatedAt,
				})
			case "TimelineTimelineCursor":
				if entry.Content.CursorType == "Bottom" {
					nextCursor = entry.Content.Value
				}
			}
		}
	}
	// A page that yields no tweets means the bottom cursor just loops.
	if len(tweets) == 0 {
		nextCursor = ""
	}
	return nil, tweets, nextCursor
}

// GetAllUserTweets paginates through a user's timeline until exhaustion or
// maxTweets, whichever comes first.
func (c *Client) GetAllUserTweets(userID string, maxTweets int) (error, []Tweet) {
	var all []Tweet
	cursor := ""
	for {
		err, page, next := c.GetUserTweets(userID, 20, cursor)
		if err != nil {
			return err, all
		}
		all = append(all, page...)
		logger.Debugf("Fetched %d tweets (total %d)", len(page), len(all))
		if next == "" || len(page) == 0 || (maxTweets > 0 && len(all) >= maxTweets) {
			break
		}
		cursor = next
	}
	if maxTweets > 0 && len(all) > maxTweets {
		all = all[:maxTweets]
	}
	return nil, all
}
