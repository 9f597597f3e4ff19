package catalog

import (
	"github.com/aretw0/introspection"
	"golang.org/x/time/rate"

	"github.com/smartymode/folio/pkg/core"
)

// ClientState exposes internal state for observability.
// The bearer token is never included.
type ClientState struct {
	BaseURL   string  `json:"base_url"`
	SiteID    string  `json:"site_id,omitempty"`
	Timeout   string  `json:"timeout"`
	RateLimit float64 `json:"rate_limit,omitempty"`
	HasToken  bool    `json:"has_token"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	st := ClientState{
		BaseURL:  c.baseURL,
		SiteID:   c.siteID,
		Timeout:  c.timeout.String(),
		HasToken: c.token != "",
	}
	if l := c.limiter.Limit(); l != rate.Inf {
		st.RateLimit = float64(l)
	}
	return st
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "catalog-client"
}

// State implements introspection.Introspectable.
func (s *Source) State() any {
	return map[string]any{
		"kind":        string(core.SourceCatalog),
		"max_records": s.config.MaxRecords,
	}
}

// ComponentType implements introspection.Component.
func (s *Source) ComponentType() string {
	return "catalog-source"
}

var (
	_ introspection.Introspectable = (*Client)(nil)
	_ introspection.Component      = (*Client)(nil)
	_ introspection.Introspectable = (*Source)(nil)
	_ introspection.Component      = (*Source)(nil)
)
