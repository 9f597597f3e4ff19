package site

import "github.com/smartymode/folio/pkg/typed"

// ReviewFrontmatter is the header of a product review.
type ReviewFrontmatter struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	UpdatedDate string   `json:"updatedDate,omitempty"`
	ASIN        string   `json:"asin,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Image       string   `json:"image,omitempty"`
	AmazonURL   string   `json:"amazonUrl,omitempty"`
	Pros        []string `json:"pros,omitempty"`
	Cons        []string `json:"cons,omitempty"`
}

// GuideFrontmatter is the header of a buying guide.
type GuideFrontmatter struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Image       string   `json:"image,omitempty"`
	ReadTime    string   `json:"readTime,omitempty"`
	UpdatedDate string   `json:"updatedDate,omitempty"`
}

// PageFrontmatter is the header of a static page.
type PageFrontmatter struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Layout      string `json:"layout,omitempty"`
}

type (
	Review = typed.Model[ReviewFrontmatter]
	Guide  = typed.Model[GuideFrontmatter]
	Page   = typed.Model[PageFrontmatter]
)
