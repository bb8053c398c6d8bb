// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"strings"

	"github.com/pdiddy/eds-records/internal/jsonvalue"
	"github.com/pdiddy/eds-records/pkg/types"
)

const (
	linkTermMarker  = "linkTerm=&quot;"
	quoteMarker     = "&quot;"
	linkLabelMarker = "link&gt;"
	catalogIcon     = "Catalog Link Icon"
)

// ebscoLink describes how one FullText.Links type is presented.
type ebscoLink struct {
	source string
	label  string
	icon   string
	kind   types.LinkType
}

var (
	pdfLink   = ebscoLink{"pdflink", "PDF Full Text", "PDF Full Text Icon", types.LinkPDF}
	ebookPDF  = ebscoLink{"ebook-pdf", "PDF eBook Full Text", "PDF eBook Full Text Icon", types.LinkEbookPDF}
	ebookEPUB = ebscoLink{"ebook-epub", "ePub eBook Full Text", "ePub eBook Full Text Icon", types.LinkEbookEPUB}
	smartLink = ebscoLink{"other", "Linked Full Text", "Linked Full Text Icon", types.LinkSmart}
)

func orDetail(url string) string {
	if url == "" {
		return types.DetailURL
	}
	return url
}

func appendEbscoLinks(links []types.Link, list jsonvalue.Value, l ebscoLink) []types.Link {
	for _, e := range list.Elems() {
		if e.Get("Type").Str() != l.source {
			continue
		}
		links = append(links, types.Link{
			URL:   orDetail(e.Get("Url").Str()),
			Label: l.label,
			Icon:  l.icon,
			Type:  l.kind,
		})
	}
	return links
}

func appendCustomLinks(links []types.Link, list jsonvalue.Value, kind types.LinkType) []types.Link {
	for _, e := range list.Elems() {
		links = append(links, types.Link{
			URL:   orDetail(e.Get("Url").Str()),
			Label: e.Get("Text").Str(),
			Icon:  e.Get("Icon").Str(),
			Type:  kind,
		})
	}
	return links
}

// catalogLink extracts a catalog link from an item of Group URL. Data may
// hold an escaped anchor such as
//
//	&lt;link linkTarget=&quot;URL&quot; linkTerm=&quot;https://…&quot;&gt;…&lt;/link&gt;
//
// in which case the URL is the linkTerm attribute and, without an item
// Label, the label is the trimmed text after the first "link&gt;".
// Otherwise Data is the URL.
func catalogLink(it Item) types.Link {
	link := types.Link{Label: it.Label, Icon: catalogIcon, Type: types.LinkCatalog}

	i := strings.Index(it.Data, linkTermMarker)
	if i < 0 {
		link.URL = orDetail(it.Data)
		return link
	}

	url := it.Data[i+len(linkTermMarker):]
	if j := strings.Index(url, quoteMarker); j >= 0 {
		url = url[:j]
	}
	link.URL = orDetail(url)

	if link.Label == "" {
		if k := strings.Index(it.Data, linkLabelMarker); k >= 0 {
			link.Label = strings.TrimSpace(it.Data[k+len(linkLabelMarker):])
		}
	}
	return link
}

// fulltextLinks assembles the full-text links of a record in presentation
// order: PDF, PDF eBook, ePub eBook, catalog links, linked full text, then
// full-text custom links.
func fulltextLinks(rec jsonvalue.Value, items []Item) []types.Link {
	ft := rec.Get("FullText")
	ebsco := ft.Get("Links")

	links := []types.Link{}
	links = appendEbscoLinks(links, ebsco, pdfLink)
	links = appendEbscoLinks(links, ebsco, ebookPDF)
	links = appendEbscoLinks(links, ebsco, ebookEPUB)
	for _, it := range items {
		if it.Group == "URL" {
			links = append(links, catalogLink(it))
		}
	}
	links = appendEbscoLinks(links, ebsco, smartLink)
	return appendCustomLinks(links, ft.Get("CustomLinks"), types.LinkCustomFulltext)
}

// nonFulltextLinks returns the record-level custom links.
func nonFulltextLinks(rec jsonvalue.Value) []types.Link {
	return appendCustomLinks([]types.Link{}, rec.Get("CustomLinks"), types.LinkCustomOther)
}

// FulltextLink returns the first full-text link of the given type, else the
// first full-text link, else the zero Link.
func (r *Record) FulltextLink(kind types.LinkType) types.Link {
	for _, l := range r.FulltextLinks {
		if l.Type == kind {
			return l
		}
	}
	if len(r.FulltextLinks) > 0 {
		return r.FulltextLinks[0]
	}
	return types.Link{}
}
