// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"strconv"
	"strings"

	"github.com/pdiddy/eds-records/internal/jsonvalue"
	"github.com/pdiddy/eds-records/pkg/types"
)

// source bundles the views of one raw record that field resolution reads.
type source struct {
	rec    jsonvalue.Value
	header jsonvalue.Value
	items  []Item
	bib    Bib
}

func newSource(raw jsonvalue.Value) source {
	rec := raw
	if raw.Has("Record") {
		rec = raw.Get("Record")
	}
	return source{
		rec:    rec,
		header: rec.Get("Header"),
		items:  parseItems(rec.Get("Items")),
		bib:    NewBib(rec),
	}
}

func (s source) name(n string) string {
	v, _ := ItemByName(s.items, n)
	return v
}

func (s source) label(l string) string {
	v, _ := ItemByLabel(s.items, l)
	return v
}

func (s source) headerText(key string) string {
	return s.header.Get(key).Str()
}

func single(v string, ok bool) []string {
	if !ok {
		return nil
	}
	return []string{v}
}

// resolveTitle: bib-entity main title, then the Title item, then the
// restricted-access placeholder.
func resolveTitle(s source, placeholder string) string {
	if v, ok := s.bib.Title(); ok {
		return v
	}
	if v, ok := ItemByName(s.items, "Title"); ok {
		return v
	}
	return placeholder
}

// resolveSourceTitle: bib-part main title, then the TitleSource item.
func resolveSourceTitle(s source) string {
	if v, ok := s.bib.SourceTitle(); ok {
		return v
	}
	return s.name("TitleSource")
}

// resolveSubjects: entity SubjectFull values, then the Subject item.
func resolveSubjects(s source) []string {
	if subjects := s.bib.Subjects(); len(subjects) > 0 {
		return subjects
	}
	return single(ItemByName(s.items, "Subject"))
}

// resolveLanguages: the Language item, then entity languages.
func resolveLanguages(s source) []string {
	if v, ok := ItemByName(s.items, "Language"); ok {
		return []string{v}
	}
	if langs := s.bib.Languages(); len(langs) > 0 {
		return langs
	}
	return nil
}

// resolvePublicationType: header PubType, then the TypePub item.
func resolvePublicationType(s source) string {
	if v, ok := s.header.Get("PubType").Text(); ok {
		return v
	}
	return s.name("TypePub")
}

// resolvePublicationDate: bib-part composed Y-M-D, then the DatePub item.
func resolvePublicationDate(s source) string {
	if v, ok := s.bib.PublicationDate(); ok {
		return v
	}
	return s.name("DatePub")
}

// resolvePublicationYear: bib-part published year, then the DatePub item.
func resolvePublicationYear(s source) string {
	if v, ok := s.bib.PublicationYear(); ok {
		return v
	}
	return s.name("DatePub")
}

// resolveDOI: the DOI item, then the entity doi, then the part doi.
func resolveDOI(s source) string {
	if v, ok := ItemByName(s.items, "DOI"); ok {
		return v
	}
	if v, ok := s.bib.DOI(); ok {
		return v
	}
	if v, ok := s.bib.PartDOI(); ok {
		return v
	}
	return ""
}

// resolveISSNPrint: the ISSN item, then the part issn-print identifier.
func resolveISSNPrint(s source) string {
	if v, ok := ItemByName(s.items, "ISSN"); ok {
		return v
	}
	if v, ok := s.bib.ISSNPrint(); ok {
		return v
	}
	return ""
}

// resolveRelatedISBNs splits the "Related ISBNs" item on spaces and drops
// a trailing period from each entry.
func resolveRelatedISBNs(s source) []string {
	v, ok := ItemByLabel(s.items, "Related ISBNs")
	if !ok {
		return nil
	}
	var out []string
	for _, f := range strings.Fields(v) {
		out = append(out, strings.TrimSuffix(f, "."))
	}
	return out
}

// resolveISBNs: part ISBN identifiers, then related ISBNs.
func resolveISBNs(s source) []string {
	if isbns := s.bib.ISBNs(); len(isbns) > 0 {
		return isbns
	}
	return resolveRelatedISBNs(s)
}

// resolveFulltextWordCount reads the leading integer of the
// FullTextWordCount item; anything else counts as 0.
func resolveFulltextWordCount(s source) int {
	v, ok := ItemByName(s.items, "FullTextWordCount")
	if !ok {
		return 0
	}
	return leadingInt(v)
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// resolveHTMLFulltext returns the inline full text when the service marks
// it available.
func resolveHTMLFulltext(s source) string {
	text := s.rec.Path("FullText", "Text")
	if text.Get("Availability").Str() != "1" {
		return ""
	}
	return text.Get("Value").Str()
}

// resolveImages lists ImageInfo entries; size "" selects all sizes.
func resolveImages(s source, size string) []types.Image {
	var out []types.Image
	for _, e := range s.rec.Get("ImageInfo").Elems() {
		img := types.Image{Size: e.Get("Size").Str(), Src: e.Get("Target").Str()}
		if size == "" || img.Size == size {
			out = append(out, img)
		}
	}
	return out
}

func resolveCover(s source, size string) string {
	if imgs := resolveImages(s, size); len(imgs) > 0 {
		return imgs[0].Src
	}
	return ""
}
