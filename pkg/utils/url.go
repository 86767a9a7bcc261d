package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseOrigin parses rawOrigin and drops any path, query or fragment.
func ParseOrigin(rawOrigin string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawOrigin))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q must include scheme and host", rawOrigin)
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
}

// ToAbsoluteURL resolves a resource path (query string included) against origin.
func ToAbsoluteURL(origin *url.URL, resourcePath string) (string, error) {
	relURL, err := url.Parse(resourcePath)
	if err != nil {
		return "", err
	}
	return origin.ResolveReference(relURL).String(), nil
}
