// Package apiurl resolves the backend base URL that every network-calling
// client builds its request and asset URLs from.
package apiurl

import (
	"net/url"
	"os"
	"strings"
)

// DefaultBase is used when no environment hint is present.
const DefaultBase = "http://localhost:5000"

// DefaultPort is the backend port assumed when rewriting a local API base
// for a remote device (headset) that reaches the site over the LAN.
const DefaultPort = "5000"

// envKeys are checked in order; the first non-empty value wins.
var envKeys = []string{"VITE_API_BASE_URL", "REACT_APP_API_BASE_URL"}

// Resolve returns the backend base URL from the given lookup function
// (os.LookupEnv shaped). Trailing slashes are stripped.
func Resolve(lookup func(string) (string, bool)) string {
	base := DefaultBase
	for _, k := range envKeys {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			base = strings.TrimSpace(v)
			break
		}
	}
	return strings.TrimRight(base, "/")
}

// FromEnv resolves the base URL from the process environment.
func FromEnv() string {
	return Resolve(os.LookupEnv)
}

// URL joins a path onto base. An empty path yields base itself.
func URL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// Public returns the URL of a static asset stored under /public.
func Public(base, file string) string {
	return URL(base, "public/"+strings.TrimLeft(file, "/"))
}

// ForSite adapts base for a client that loaded the site from siteURL.
//
// A headset browsing the site over the LAN cannot reach "localhost" on the
// developer machine, so a local API base is rewritten to the site's host on
// DefaultPort when the site itself is not local. Otherwise the origin of
// base is returned. An unparsable base is returned unchanged.
func ForSite(base, siteURL string) string {
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return base
	}
	s, err := url.Parse(siteURL)
	if err != nil || s.Host == "" {
		return origin(b)
	}
	if !isLocal(s.Hostname()) && isLocal(b.Hostname()) {
		scheme := s.Scheme
		if scheme == "" {
			scheme = "http"
		}
		return scheme + "://" + s.Hostname() + ":" + DefaultPort
	}
	return origin(b)
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

func isLocal(host string) bool {
	return host == "localhost" || host == "127.0.0.1"
}
