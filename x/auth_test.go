package x

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"x-scraper-go/models/cookiejar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshGuestSessionSkippedWhileValid(t *testing.T) {
	jar := cookiejar.New(&cookiejar.Options{})
	u, err := url.Parse("https://x.com/")
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{
		{Name: "gt", Value: "1889000000", Path: "/", Domain: "x.com", Expires: time.Now().Add(48 * time.Hour)},
	})

	c := GetNewClient(jar, "", "1889000000", "", "", 0)

	// A gt cookie with plenty of lifetime left means no network round trip.
	err, refreshed := c.RefreshGuestSessionIfNeeded()
	require.NoError(t, err)
	assert.False(t, refreshed)
}

func TestGetNewClientAppliesScraperSettings(t *testing.T) {
	c := GetNewClient(nil, "", "", "", "http://127.0.0.1:7890", 15)
	assert.Equal(t, 15*time.Second, c.http.GetClient().Timeout)
}
