// Package route defines the values that flow through a routing attempt:
// the URL data extracted from an identifier, the generators that turn it
// into actions, and the actions themselves.
package route

import (
	"net/url"
	"sort"
)

// URLData wraps an identifier, the parameters parsed out of it and an
// optional opaque payload (for example a notification body) into a single
// value. It is immutable once built.
type URLData struct {
	url     *url.URL
	params  map[string]string
	payload any
}

// NewURLData builds URL data from an identifier, its path parameters and an
// opaque payload. Query parameters of u are merged in without overwriting a
// path parameter of the same name; for repeated query keys the first value
// is used.
func NewURLData(u *url.URL, pathParams map[string]string, payload any) *URLData {
	params := make(map[string]string, len(pathParams))
	for k, v := range pathParams {
		params[k] = v
	}
	if u != nil {
		for k, values := range u.Query() {
			if _, taken := params[k]; taken || len(values) == 0 {
				continue
			}
			params[k] = values[0]
		}
	}
	return &URLData{url: u, params: params, payload: payload}
}

// URL returns a copy of the identifier the data was built from.
func (d *URLData) URL() *url.URL {
	if d == nil || d.url == nil {
		return nil
	}
	c := *d.url
	return &c
}

// Param returns the named parameter.
func (d *URLData) Param(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.params[name]
	return v, ok
}

// Params returns a copy of all parameters.
func (d *URLData) Params() map[string]string {
	if d == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(d.params))
	for k, v := range d.params {
		out[k] = v
	}
	return out
}

// ParamNames returns the parameter names in sorted order.
func (d *URLData) ParamNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.params))
	for k := range d.params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Payload returns the opaque payload attached by the caller.
func (d *URLData) Payload() any {
	if d == nil {
		return nil
	}
	return d.payload
}

// String returns the identifier as a string.
func (d *URLData) String() string {
	if d == nil || d.url == nil {
		return ""
	}
	return d.url.String()
}
