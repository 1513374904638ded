package x

import (
	"net/http"
	"net/url"
	"time"

	"x-scraper-go/x/castle"
	"x-scraper-go/x/models/response"
)

// StartLoginFlow opens the onboarding login flow. The Castle token is minted
// synchronously right before the request goes out: it embeds wall-clock
// timestamps the verifier checks, so it cannot be prepared ahead of time. The
// token rides in a header, its companion cuid in a cookie, and the user agent
// fed to the codec must be byte-identical to the one the request sends.
func (c *Client) StartLoginFlow() (error, *response.LoginFlowStruct) {
	ct, err := castle.Generate(c.userAgent)
	if err != nil {
		return err, nil
	}
	parsedURL, _ := url.Parse("https://x.com/")
	c.cookie.SetCookies(parsedURL, []*http.Cookie{
		{
			Name:   "castle_cuid",
			Value:  ct.CUID,
			Path:   "/",
			Domain: "x.com",
			MaxAge: 60 * 60 * 24 * 365,
		},
	})
	res, err := c.http.R().
		SetHeader("x-castle-request-token", ct.Token).
		SetContentType("application/json").
		SetBody(map[string]interface{}{
			"input_flow_data": map[string]interface{}{
				"flow_context": map[string]interface{}{
					"debug_overrides": map[string]interface{}{},
					"start_location":  map[string]string{"location": "splash_screen"},
				},
			},
			"subtask_versions": map[string]int{},
		}).
		Post("https://api.x.com/1.1/onboarding/task.json?flow_name=login")
	if err != nil {
		return err, nil
	}
	var r response.LoginFlowStruct
	err = res.Unmarshal(&r)
	if err != nil {
		return err, nil
	}
	if err = r.CheckValid(); err != nil {
		return err, nil
	}
	logger.Debugf("Login flow token: %s", r.FlowToken)
	return nil, &r
}

// SubmitLoginSubtask advances the flow by one subtask. Each hop gets its own
// fresh Castle token; the verifier rejects reuse.
func (c *Client) SubmitLoginSubtask(flowToken string, subtask map[string]interface{}) (error, *response.LoginFlowStruct) {
	ct, err := castle.Generate(c.userAgent)
	if err != nil {
		return err, nil
	}
	res, err := c.http.R().
		SetHeader("x-castle-request-token", ct.Token).
		SetContentType("application/json").
		SetBody(map[string]interface{}{
			"flow_token":     flowToken,
			"subtask_inputs": []map[string]interface{}{subtask},
		}).
		Post("https://api.x.com/1.1/onboarding/task.json")
	if err != nil {
		return err, nil
	}
	var r response.LoginFlowStruct
	err = res.Unmarshal(&r)
	if err != nil {
		return err, nil
	}
	if err = r.CheckValid(); err != nil {
		return err, nil
	}
	return nil, &r
}

// cookieExpirer is the slice of models/cookiejar.Jar this package needs;
// net/http/cookiejar strips Expires from Cookies() results, so remaining
// lifetime has to come from the wrapper's own bookkeeping.
type cookieExpirer interface {
	ExpiryOf(host, name string) time.Time
}

// RefreshGuestSessionIfNeeded re-activates the guest session when the gt
// cookie is missing or close to expiring, mirroring what the web app does on
// focus.
func (c *Client) RefreshGuestSessionIfNeeded() (error, bool) {
	if j, ok := c.cookie.(cookieExpirer); ok && c.guestToken != "" {
		if time.Until(j.ExpiryOf("x.com", "gt")) >= 1*time.Hour {
			return nil, false
		}
	}
	err, _ := c.ActivateGuestSession()
	if err != nil {
		return err, false
	}
	return nil, true
}
