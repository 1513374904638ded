package response

import (
	"x-scraper-go/models/errors"
)

type ErrorEntry struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type GraphQLRoot[T any] struct {
	Errors []ErrorEntry `json:"errors"`
	Data   T            `json:"data"`
}

func (r *GraphQLRoot[T]) CheckValid() error {
	if len(r.Errors) > 0 {
		return errors.NewTwitterAPIError(r.Errors[0].Code, r.Errors[0].Message)
	}
	return nil
}

type GuestActivateStruct struct {
	GuestToken string       `json:"guest_token"`
	Errors     []ErrorEntry `json:"errors"`
}

func (r *GuestActivateStruct) CheckValid() error {
	if len(r.Errors) > 0 {
		return errors.NewTwitterAPIError(r.Errors[0].Code, r.Errors[0].Message)
	}
	return nil
}

type SubtaskStruct struct {
	SubtaskID string `json:"subtask_id"`
}

type LoginFlowStruct struct {
	FlowToken string          `json:"flow_token"`
	Status    string          `json:"status"`
	Subtasks  []SubtaskStruct `json:"subtasks"`
	Errors    []ErrorEntry    `json:"errors"`
}

func (r *LoginFlowStruct) CheckValid() error {
	if len(r.Errors) > 0 {
		return errors.NewTwitterAPIError(r.Errors[0].Code, r.Errors[0].Message)
	}
	return nil
}

type UserByScreenNameStruct struct {
	User struct {
		Result struct {
			RestID string `json:"rest_id"`
			Legacy struct {
				ScreenName     string `json:"screen_name"`
				Name           string `json:"name"`
				FollowersCount int    `json:"followers_count"`
				StatusesCount  int    `json:"statuses_count"`
			} `json:"legacy"`
		} `json:"result"`
	} `json:"user"`
}

type TimelineStruct struct {
	User struct {
		Result struct {
			Timeline struct {
				Timeline struct {
					Instructions []TimelineInstruction `json:"instructions"`
				} `json:"timeline"`
			} `json:"timeline_v2"`
		} `json:"result"`
	} `json:"user"`
}

type TimelineInstruction struct {
	Type    string          `json:"type"`
	Entries []TimelineEntry `json:"entries"`
}

type TimelineEntry struct {
	EntryID string `json:"entryId"`
	Content struct {
		EntryType   string `json:"entryType"`
		Value       string `json:"value"` // cursor entries
		CursorType  string `json:"cursorType"`
		ItemContent struct {
			TweetResults struct {
				Result struct {
					RestID string `json:"rest_id"`
					Legacy struct {
						FullText  string `json:"full_text"`
						CreatedAt string `json:"created_at"`
					} `json:"legacy"`
				} `json:"result"`
			} `json:"tweet_results"`
		} `json:"itemContent"`
	} `json:"content"`
}
