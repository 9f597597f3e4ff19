// Package catalog talks to the external product catalog (a Directus-style
// REST API) and adapts its records into reviewable products and documents.
package catalog

import "encoding/json"

// Status is the processing state of a catalog record.
type Status string

const (
	StatusNew     Status = "new"
	StatusFetched Status = "fetched"
	StatusFailed  Status = "failed"
)

// Images holds the image URL set of a record.
type Images struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// Record is one product as stored by the catalog.
type Record struct {
	ID           int             `json:"id"`
	ExternalID   string          `json:"asin"`
	Title        string          `json:"title"`
	Category     string          `json:"category,omitempty"`
	Features     []string        `json:"features"`
	Images       *Images         `json:"images"`
	Marketplace  string          `json:"marketplace"`
	Site         string          `json:"site,omitempty"`
	SiteID       *int            `json:"site_id,omitempty"`
	ParentASIN   string          `json:"parent_asin,omitempty"`
	BrowseNodes  json.RawMessage `json:"browse_nodes,omitempty"`
	Status       Status          `json:"status"`
	Availability string          `json:"availability,omitempty"`
	DateCreated  string          `json:"date_created"`
	DateUpdated  string          `json:"date_updated"`
	Raw          json.RawMessage `json:"raw_paapi"`
}

// listEnvelope is the response body of every items query.
type listEnvelope struct {
	Data []Record `json:"data"`
}
