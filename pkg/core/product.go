package core

// Product is the site's internal shape of a reviewable item.
type Product struct {
	ExternalID   string   `json:"asin"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	ShortTitle   string   `json:"shortTitle"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	Features     []string `json:"features"`
	AffiliateURL string   `json:"amazonUrl"`
	ImageURL     string   `json:"imageUrl"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Currency     string   `json:"currency"`
	Summary      string   `json:"summary"`
}
