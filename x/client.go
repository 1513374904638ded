package x

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"x-scraper-go/global"
	"x-scraper-go/utils"
	"x-scraper-go/x/models/response"

	"github.com/imroc/req/v3"
)

// Public web-app bearer token, baked into the platform's main.js bundle.
const defaultBearerToken = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

var logger = utils.GetLogger(global.GetLogger(), "x-client", nil)

type Client struct {
	http       *req.Client
	cookie     http.CookieJar
	bearer     string
	guestToken string
	userAgent  string
}

func GetNewClient(jar http.CookieJar, bearer string, guestToken string, userAgent string, proxy string, timeoutSeconds int) *Client {
	if bearer == "" {
		bearer = defaultBearerToken
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	c := req.C().EnableDebugLog()
	if proxy != "" {
		c.SetProxyURL(proxy)
	}
	if timeoutSeconds > 0 {
		c.SetTimeout(time.Duration(timeoutSeconds) * time.Second)
	}
	xClient := &Client{
		http:       c,
		cookie:     jar,
		bearer:     bearer,
		guestToken: guestToken,
		userAgent:  userAgent,
	}
	c.SetLogger(logger)
	if jar != nil {
		c.SetCookieJar(jar)
	}
	c.ImpersonateChrome()
	c.WrapRoundTripFunc(func(rt req.RoundTripper) req.RoundTripFunc {
		return func(req *req.Request) (resp *req.Response, err error) {
			//Before
			req.SetHeader("User-Agent", xClient.userAgent)
			req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", xClient.bearer))
			if xClient.guestToken != "" {
				req.SetHeader("x-guest-token", xClient.guestToken)
			}
			if csrf := xClient.getCSRFFromCookie(); csrf != "" {
				req.SetHeader("x-csrf-token", csrf)
			}
			resp, err = rt.RoundTrip(req)
			//After
			return resp, err
		}
	})
	return xClient
}

func (c *Client) GetUserAgent() string {
	return c.userAgent
}

func (c *Client) GetGuestToken() string {
	return c.guestToken
}

// ActivateGuestSession fetches a fresh guest token; every anonymous scraping
// session starts with one.
func (c *Client) ActivateGuestSession() (error, string) {
	res, err := c.http.R().Post("https://api.x.com/1.1/guest/activate.json")
	if err != nil {
		return err, ""
	}
	var r response.GuestActivateStruct
	err = res.Unmarshal(&r)
	if err != nil {
		return err, ""
	}
	if err = r.CheckValid(); err != nil {
		return err, ""
	}
	logger.Debugf("Guest token: %s", r.GuestToken)
	c.guestToken = r.GuestToken
	if c.cookie != nil {
		// The web app mirrors the token into the gt cookie; guest sessions
		// live about three hours.
		parsedURL, _ := url.Parse("https://x.com/")
		c.cookie.SetCookies(parsedURL, []*http.Cookie{
			{
				Name:    "gt",
				Value:   r.GuestToken,
				Path:    "/",
				Domain:  "x.com",
				Expires: time.Now().Add(3 * time.Hour),
			},
		})
	}
	return nil, r.GuestToken
}

func (c *Client) getCSRFFromCookie() string {
	if c.cookie == nil {
		return ""
	}
	parsedURL, _ := url.Parse("https://x.com/")
	for _, cookie := range c.cookie.Cookies(parsedURL) {
		if cookie.Name == "ct0" {
			return cookie.Value
		}
	}
	return ""
}
