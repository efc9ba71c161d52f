package api

import (
	"net/url"
	"strings"
)

// BaseURL is the fixed address of the currencyapi.com v3 endpoint.
const BaseURL = "https://api.currencyapi.com/v3/"

// BuildURL resolves path against the fixed base address and attaches
// the API key as the first query parameter. A leading slash on path is
// ignored, the /v3/ prefix is always preserved.
func BuildURL(apiKey, path string) (*url.URL, error) {
	return buildURL(BaseURL, apiKey, path)
}

func buildURL(base, apiKey, path string) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, ErrURLConstruction
	}

	if path != "" {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	}

	AppendQuery(u, "apikey", apiKey)

	return u, nil
}

// AppendQuery adds key=value at the end of the raw query string. The
// query is built by hand because url.Values sorts keys on Encode and
// the remote API is queried with parameters in call order.
func AppendQuery(u *url.URL, key, value string) {
	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)

	if u.RawQuery == "" {
		u.RawQuery = pair
		return
	}

	u.RawQuery += "&" + pair
}
