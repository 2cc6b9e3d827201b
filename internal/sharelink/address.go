package sharelink

import (
	"net/url"
	"strings"
)

// Location is where a share link arrived from. Clearing the query keeps a
// reload or re-share from applying the same link twice.
type Location interface {
	Query() string
	ClearQuery()
}

// Address is a Location backed by a URL the user passed on the command line.
type Address struct {
	u *url.URL
}

// ParseAddress accepts a full link ("https://host/?token"), a bare query
// ("?token") or just a token.
func ParseAddress(raw string) (*Address, error) {
	raw = strings.TrimSpace(raw)
	if raw != "" && !strings.Contains(raw, "?") && !strings.Contains(raw, "://") {
		raw = "?" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &Address{u: u}, nil
}

// Query returns the raw query without the leading '?'.
func (a *Address) Query() string {
	if a == nil || a.u == nil {
		return ""
	}
	return a.u.RawQuery
}

// ClearQuery strips the query from the address.
func (a *Address) ClearQuery() {
	if a == nil || a.u == nil {
		return
	}
	a.u.RawQuery = ""
	a.u.ForceQuery = false
}

// String returns the address as currently visible.
func (a *Address) String() string {
	if a == nil || a.u == nil {
		return ""
	}
	return a.u.String()
}
