// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data shapes of eds-records: normalized
// links and images, and the configuration structs read by the CLI.
package types

// LinkType classifies an access link derived from a discovery record.
type LinkType string

const (
	LinkPDF            LinkType = "pdf"
	LinkEbookPDF       LinkType = "ebook-pdf"
	LinkEbookEPUB      LinkType = "ebook-epub"
	LinkCatalog        LinkType = "cataloglink"
	LinkSmart          LinkType = "smartlinks"
	LinkCustomFulltext LinkType = "customlink-fulltext"
	LinkCustomOther    LinkType = "customlink-other"
)

// DetailURL is the placeholder URL for links that point at the on-site
// detail page rather than an external resource.
const DetailURL = "detail"

// Cover image sizes reported by the discovery service.
const (
	ImageSizeThumb  = "thumb"
	ImageSizeMedium = "medium"
)

// Link is one classified access point of a record.
type Link struct {
	// URL is the target. Entries that carry no URL use DetailURL, which
	// tells the presentation layer to open its own detail page.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Label is the display text.
	Label string `json:"label" yaml:"label" mapstructure:"label"`

	// Icon is an icon name or URL.
	Icon string `json:"icon" yaml:"icon" mapstructure:"icon"`

	// Type is the link classification.
	Type LinkType `json:"type" yaml:"type" mapstructure:"type"`
}

// Valid reports whether the link type is one of the known classifications.
func (t LinkType) Valid() bool {
	switch t {
	case LinkPDF, LinkEbookPDF, LinkEbookEPUB, LinkCatalog, LinkSmart,
		LinkCustomFulltext, LinkCustomOther:
		return true
	}
	return false
}

// Image is a cover image reference.
type Image struct {
	Size string `json:"size" yaml:"size" mapstructure:"size"`
	Src  string `json:"src" yaml:"src" mapstructure:"src"`
}
