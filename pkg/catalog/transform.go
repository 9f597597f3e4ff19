package catalog

import (
	"encoding/json"
	"errors"
	"html"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/microcosm-cc/bluemonday"

	"github.com/smartymode/folio/pkg/core"
)

const (
	// DefaultAffiliateTag is appended to every generated store link.
	DefaultAffiliateTag = "smartymode-20"
	// DefaultRating is used when the provider reports no star rating.
	DefaultRating = 4.5
	// DefaultCategory is what InferCategory falls back to.
	DefaultCategory = "Accessories"

	summaryWidth    = 150
	shortTitleWidth = 50
	affiliateBase   = "https://www.amazon.com/dp/"
)

// Extracted is the subset of the raw provider payload the site uses.
type Extracted struct {
	Brand       string
	Price       *float64
	Currency    string
	Rating      *float64
	ReviewCount *int
	Description string
}

// providerItem mirrors the parts of the provider payload we read.
type providerItem struct {
	ItemInfo struct {
		ByLineInfo struct {
			Brand struct {
				DisplayValue string `json:"DisplayValue"`
			} `json:"Brand"`
		} `json:"ByLineInfo"`
		Features struct {
			DisplayValues []string `json:"DisplayValues"`
		} `json:"Features"`
	} `json:"ItemInfo"`
	Offers struct {
		Listings []struct {
			Price struct {
				Amount   float64 `json:"Amount"`
				Currency string  `json:"Currency"`
			} `json:"Price"`
		} `json:"Listings"`
	} `json:"Offers"`
	CustomerReviews struct {
		StarRating struct {
			Value float64 `json:"Value"`
		} `json:"StarRating"`
		Count int `json:"Count"`
	} `json:"CustomerReviews"`
}

var stripTags = bluemonday.StrictPolicy()

// Extract reads brand, price, rating and description from a raw provider payload.
// Missing or malformed payloads yield defaults rather than an error. A field
// of the wrong type only loses that field: the rest of the payload is kept.
func Extract(raw json.RawMessage) Extracted {
	out := Extracted{Currency: "USD"}
	if len(raw) == 0 {
		return out
	}

	var item providerItem
	if err := json.Unmarshal(raw, &item); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return out
		}
	}

	out.Brand = plainText(item.ItemInfo.ByLineInfo.Brand.DisplayValue)
	out.Description = plainText(strings.Join(item.ItemInfo.Features.DisplayValues, " "))

	if len(item.Offers.Listings) > 0 {
		price := item.Offers.Listings[0].Price
		if price.Amount > 0 {
			amount := price.Amount
			out.Price = &amount
		}
		if price.Currency != "" {
			out.Currency = price.Currency
		}
	}
	if v := item.CustomerReviews.StarRating.Value; v > 0 {
		out.Rating = &v
	}
	if n := item.CustomerReviews.Count; n > 0 {
		out.ReviewCount = &n
	}
	return out
}

// InferCategory returns explicit when set, otherwise guesses a category from
// title keywords. Groups are checked in order; the first match wins.
func InferCategory(title, explicit string) string {
	if explicit != "" {
		return explicit
	}

	t := strings.ToLower(title)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(t, kw) {
				return group.category
			}
		}
	}
	return DefaultCategory
}

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"DSLR Cameras", []string{"dslr", "d850", "d750", "canon eos", "nikon d"}},
	{"Mirrorless Cameras", []string{"mirrorless", "sony a7", "fujifilm x", "olympus om-d"}},
	{"Camera Lenses", []string{"lens", "mm f/", "telephoto", "wide angle", "prime"}},
}

// ToProduct converts a catalog record into the internal product shape.
// An empty tag uses DefaultAffiliateTag.
func ToProduct(rec Record, category, tag string) core.Product {
	if tag == "" {
		tag = DefaultAffiliateTag
	}
	ex := Extract(rec.Raw)

	rating := DefaultRating
	if ex.Rating != nil {
		rating = *ex.Rating
	}
	reviews := 0
	if ex.ReviewCount != nil {
		reviews = *ex.ReviewCount
	}

	var image string
	if rec.Images != nil {
		image = rec.Images.Large
		if image == "" {
			image = rec.Images.Medium
		}
	}

	features := rec.Features
	if features == nil {
		features = []string{}
	}

	return core.Product{
		ExternalID:   rec.ExternalID,
		Slug:         strings.ToLower(rec.ExternalID),
		Title:        rec.Title,
		ShortTitle:   runewidth.Truncate(rec.Title, shortTitleWidth, ""),
		Brand:        ex.Brand,
		Category:     category,
		Features:     features,
		AffiliateURL: affiliateBase + rec.ExternalID + "?tag=" + tag,
		ImageURL:     image,
		Rating:       rating,
		ReviewCount:  reviews,
		Price:        ex.Price,
		Currency:     ex.Currency,
		Summary:      runewidth.Truncate(ex.Description, summaryWidth, ""),
	}
}

// ToDocument adapts a catalog record into a review document.
// Catalog reviews have no body; the frontmatter carries everything.
func ToDocument(rec Record, tag string) core.Document {
	category := InferCategory(rec.Title, rec.Category)
	p := ToProduct(rec, category, tag)

	description := p.Summary
	if description == "" {
		description = "Review of " + p.Title
	}

	fm := core.Frontmatter{
		core.KeyTitle:       p.Title,
		core.KeyDate:        rec.DateCreated,
		core.KeyDescription: description,
		core.KeyExternalID:  p.ExternalID,
		core.KeyCategory:    category,
		"brand":             p.Brand,
		"rating":            p.Rating,
		"image":             p.ImageURL,
		"amazonUrl":         p.AffiliateURL,
	}
	if p.Price != nil {
		fm["price"] = *p.Price
		fm["currency"] = p.Currency
	}

	return core.Document{
		Slug:        p.Slug,
		Frontmatter: fm,
		Content:     "",
		Source:      core.SourceCatalog,
	}
}

// plainText strips markup and decodes entities left behind by the sanitizer.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(s)))
}
