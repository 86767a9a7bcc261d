// Package session threads the upstream session through the API. A token is
// the upstream cookie set rendered in Cookie header syntax; it is opaque to
// everything except this package.
package session

import (
	"net/http"
	"strings"
)

// Header carries a token for clients that do not keep cookies.
const Header = "X-Session-Token"

type Token string

func (t Token) String() string { return string(t) }

// Empty reports whether the token carries no usable credential material.
func (t Token) Empty() bool { return strings.TrimSpace(string(t)) == "" }

// FromRequest returns the explicit session header when present, otherwise
// every request cookie joined as name=value pairs.
func FromRequest(r *http.Request) Token {
	if h := strings.TrimSpace(r.Header.Get(Header)); h != "" {
		return Token(h)
	}
	return Join(r.Cookies())
}

// Join renders cookies as a token, in order.
func Join(cookies []*http.Cookie) Token {
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return Token(strings.Join(pairs, "; "))
}

// Cookies splits a token back into cookies. Fragments without a name are dropped.
func Cookies(t Token) []*http.Cookie {
	var cookies []*http.Cookie
	for _, part := range strings.Split(string(t), ";") {
		name, value, _ := strings.Cut(strings.TrimSpace(part), "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: strings.TrimSpace(value)})
	}
	return cookies
}
