package cookiejar

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestJar_PersistentEntriesTracked(t *testing.T) {
	j := New(&Options{})
	u := mustURL(t, "https://x.com/")

	j.SetCookies(u, []*http.Cookie{
		{Name: "session", Value: "abc"}, // session cookie, not persisted
		{Name: "gt", Value: "123", Expires: time.Now().Add(2 * time.Hour)},
		{Name: "castle_cuid", Value: "deadbeef", MaxAge: 3600},
	})

	entries := j.AllPersistentEntries()
	require.Len(t, entries, 2)
	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name] = true
		assert.False(t, e.Expires.IsZero())
	}
	assert.True(t, names["gt"])
	assert.True(t, names["castle_cuid"])
}

func TestJar_DeleteRemovesEntry(t *testing.T) {
	j := New(&Options{})
	u := mustURL(t, "https://x.com/")

	j.SetCookies(u, []*http.Cookie{
		{Name: "gt", Value: "123", Expires: time.Now().Add(time.Hour)},
	})
	require.Len(t, j.AllPersistentEntries(), 1)

	j.SetCookies(u, []*http.Cookie{{Name: "gt", Value: "", MaxAge: -1}})
	assert.Nil(t, j.AllPersistentEntries())
}

func TestJar_DefaultCookiesRestored(t *testing.T) {
	j := New(&Options{
		DefaultCookies: []CookieEntries{
			{Name: "gt", Value: "restored", Domain: ".x.com", Path: "/", Expires: time.Now().Add(time.Hour)},
		},
	})

	got := j.Cookies(mustURL(t, "https://x.com/"))
	require.Len(t, got, 1)
	assert.Equal(t, "gt", got[0].Name)
	assert.Equal(t, "restored", got[0].Value)

	// Restored cookies count as persistent again for the next save.
	assert.Len(t, j.AllPersistentEntries(), 1)
}

func TestJar_ExpiryOfSurvivesInnerJar(t *testing.T) {
	j := New(&Options{})
	u := mustURL(t, "https://x.com/")
	exp := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	j.SetCookies(u, []*http.Cookie{
		{Name: "gt", Value: "123", Path: "/", Domain: "x.com", Expires: exp},
	})

	// The inner net/http/cookiejar strips Expires on the way out.
	got := j.Cookies(u)
	require.Len(t, got, 1)
	assert.True(t, got[0].Expires.IsZero())

	// The wrapper's own bookkeeping keeps it.
	assert.Equal(t, exp, j.ExpiryOf("x.com", "gt"))
	assert.Equal(t, exp, j.ExpiryOf("api.x.com", "gt"))
	assert.True(t, j.ExpiryOf("x.com", "ct0").IsZero())
	assert.True(t, j.ExpiryOf("example.com", "gt").IsZero())
}

func TestJar_CookiesVisibleToSubpaths(t *testing.T) {
	j := New(&Options{})
	j.SetCookies(mustURL(t, "https://api.x.com/"), []*http.Cookie{
		{Name: "ct0", Value: "csrf", Path: "/"},
	})
	got := j.Cookies(mustURL(t, "https://api.x.com/1.1/guest/activate.json"))
	require.Len(t, got, 1)
	assert.Equal(t, "csrf", got[0].Value)
}
