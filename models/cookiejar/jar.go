package cookiejar

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// CookieEntries is the serializable form of one persistent cookie, kept in
// the configuration file between runs.
type CookieEntries struct {
	Name     string    `mapstructure:"name"`
	Value    string    `mapstructure:"value"`
	Domain   string    `mapstructure:"domain"`
	Path     string    `mapstructure:"path"`
	Expires  time.Time `mapstructure:"expires"`
	Secure   bool      `mapstructure:"secure"`
	HttpOnly bool      `mapstructure:"httpOnly"`
}

func (e CookieEntries) toHTTP() *http.Cookie {
	return &http.Cookie{
		Name:     e.Name,
		Value:    e.Value,
		Domain:   e.Domain,
		Path:     e.Path,
		Expires:  e.Expires,
		Secure:   e.Secure,
		HttpOnly: e.HttpOnly,
	}
}

type Options struct {
	PublicSuffixList cookiejar.PublicSuffixList
	DefaultCookies   []CookieEntries
}

// Jar wraps net/http/cookiejar with bookkeeping for persistent cookies,
// since the standard jar cannot be enumerated for serialization.
type Jar struct {
	inner   *cookiejar.Jar
	mutex   sync.Mutex
	entries map[string]CookieEntries
}

func New(o *Options) *Jar {
	psl := o.PublicSuffixList
	if psl == nil {
		psl = publicsuffix.List
	}
	inner, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: psl})
	j := &Jar{inner: inner, entries: make(map[string]CookieEntries)}
	for _, e := range o.DefaultCookies {
		host := strings.TrimPrefix(e.Domain, ".")
		if host == "" {
			continue
		}
		j.SetCookies(&url.URL{Scheme: "https", Host: host}, []*http.Cookie{e.toHTTP()})
	}
	return j
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mutex.Lock()
	for _, c := range cookies {
		domain := c.Domain
		if domain == "" {
			domain = u.Hostname()
		}
		key := domain + "/" + c.Path + "/" + c.Name
		persistent := !c.Expires.IsZero() || c.MaxAge > 0
		switch {
		case c.MaxAge < 0 || (persistent && !c.Expires.IsZero() && c.Expires.Before(time.Now())):
			delete(j.entries, key)
		case persistent:
			expires := c.Expires
			if c.MaxAge > 0 {
				expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
			}
			j.entries[key] = CookieEntries{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   domain,
				Path:     c.Path,
				Expires:  expires,
				Secure:   c.Secure,
				HttpOnly: c.HttpOnly,
			}
		}
	}
	j.mutex.Unlock()
	j.inner.SetCookies(u, cookies)
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// ExpiryOf reports the tracked expiry of a persistent cookie for host, or the
// zero time when no such cookie is tracked. The inner net/http/cookiejar
// strips Expires from Cookies() results, so callers that care about remaining
// lifetime must come through here.
func (j *Jar) ExpiryOf(host, name string) time.Time {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	for _, e := range j.entries {
		if e.Name != name {
			continue
		}
		domain := strings.TrimPrefix(e.Domain, ".")
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return e.Expires
		}
	}
	return time.Time{}
}

// AllPersistentEntries snapshots every non-session cookie seen so far, for
// writing back to the configuration on shutdown.
func (j *Jar) AllPersistentEntries() []CookieEntries {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if len(j.entries) == 0 {
		return nil
	}
	out := make([]CookieEntries, 0, len(j.entries))
	for _, e := range j.entries {
		out = append(out, e)
	}
	return out
}
