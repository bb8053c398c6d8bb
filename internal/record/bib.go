// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"strings"

	"github.com/pdiddy/eds-records/internal/jsonvalue"
)

// Bib resolves fields of the standardized bibliographic description of a
// record. The entity describes the record itself; the part is the BibEntity
// of the first IsPartOfRelationships element (the journal or book that
// contains it). Every accessor reports absence instead of failing when any
// link of its path is missing.
type Bib struct {
	entity        jsonvalue.Value
	relationships jsonvalue.Value
	part          jsonvalue.Value
}

// NewBib locates the bibliographic sub-trees of a record value (the
// unwrapped record, not the retrieve envelope).
func NewBib(rec jsonvalue.Value) Bib {
	bib := rec.Path("RecordInfo", "BibRecord")
	rels := bib.Get("BibRelationships")
	return Bib{
		entity:        bib.Get("BibEntity"),
		relationships: rels,
		part:          rels.Get("IsPartOfRelationships").Index(0).Get("BibEntity"),
	}
}

// firstOfType returns the first element of list whose Type equals typ.
func firstOfType(list jsonvalue.Value, typ string) jsonvalue.Value {
	for _, e := range list.Elems() {
		if e.Get("Type").Str() == typ {
			return e
		}
	}
	return jsonvalue.Value{}
}

func fieldOfType(list jsonvalue.Value, typ, field string) (string, bool) {
	return firstOfType(list, typ).Get(field).Text()
}

// collectIdentifiers returns the Values of identifiers whose Type contains
// kind, excluding institution-local subtypes.
func collectIdentifiers(list jsonvalue.Value, kind string) []string {
	var out []string
	for _, e := range list.Elems() {
		typ := e.Get("Type").Str()
		if !strings.Contains(typ, kind) || strings.Contains(typ, "locals") {
			continue
		}
		if v, ok := e.Get("Value").Text(); ok {
			out = append(out, v)
		}
	}
	return out
}

// Title is the entity's main title.
func (b Bib) Title() (string, bool) {
	return fieldOfType(b.entity.Get("Titles"), "main", "TitleFull")
}

// Authors lists every NameFull found under the relationships tree.
func (b Bib) Authors() []string {
	return jsonvalue.DeepFindText(b.relationships, "NameFull")
}

// Subjects lists every SubjectFull found under the entity.
func (b Bib) Subjects() []string {
	return jsonvalue.DeepFindText(b.entity, "SubjectFull")
}

// Languages lists the Text of each entity language.
func (b Bib) Languages() []string {
	var out []string
	for _, l := range b.entity.Get("Languages").Elems() {
		if t, ok := l.Get("Text").Text(); ok {
			out = append(out, t)
		}
	}
	return out
}

func firstDeep(v jsonvalue.Value, key string) (string, bool) {
	found := jsonvalue.DeepFindText(v, key)
	if len(found) == 0 {
		return "", false
	}
	return found[0], true
}

// PageCount is the first PageCount under the entity.
func (b Bib) PageCount() (string, bool) { return firstDeep(b.entity, "PageCount") }

// PageStart is the first StartPage under the entity.
func (b Bib) PageStart() (string, bool) { return firstDeep(b.entity, "StartPage") }

// DOI is the entity's doi identifier.
func (b Bib) DOI() (string, bool) {
	return fieldOfType(b.entity.Get("Identifiers"), "doi", "Value")
}

// PartDOI is the part's doi identifier.
func (b Bib) PartDOI() (string, bool) {
	return fieldOfType(b.part.Get("Identifiers"), "doi", "Value")
}

// SourceTitle is the part's main title.
func (b Bib) SourceTitle() (string, bool) {
	return fieldOfType(b.part.Get("Titles"), "main", "TitleFull")
}

func (b Bib) ISSNPrint() (string, bool) {
	return fieldOfType(b.part.Get("Identifiers"), "issn-print", "Value")
}

func (b Bib) ISSNElectronic() (string, bool) {
	return fieldOfType(b.part.Get("Identifiers"), "issn-electronic", "Value")
}

// ISSNs lists every non-local ISSN of the part.
func (b Bib) ISSNs() []string { return collectIdentifiers(b.part.Get("Identifiers"), "issn") }

func (b Bib) ISBNPrint() (string, bool) {
	return fieldOfType(b.part.Get("Identifiers"), "isbn-print", "Value")
}

func (b Bib) ISBNElectronic() (string, bool) {
	return fieldOfType(b.part.Get("Identifiers"), "isbn-electronic", "Value")
}

// ISBNs lists every non-local ISBN of the part.
func (b Bib) ISBNs() []string { return collectIdentifiers(b.part.Get("Identifiers"), "isbn") }

func (b Bib) published() jsonvalue.Value {
	return firstOfType(b.part.Get("Dates"), "published")
}

// PublicationDate composes Y-M-D of the part's published date. All three
// components must be present and non-empty; "1999-07-" is never produced.
func (b Bib) PublicationDate() (string, bool) {
	d := b.published()
	y, okY := d.Get("Y").Text()
	m, okM := d.Get("M").Text()
	day, okD := d.Get("D").Text()
	if !okY || !okM || !okD {
		return "", false
	}
	return y + "-" + m + "-" + day, true
}

func (b Bib) PublicationYear() (string, bool) { return b.published().Get("Y").Text() }

func (b Bib) PublicationMonth() (string, bool) { return b.published().Get("M").Text() }

func (b Bib) Volume() (string, bool) {
	return fieldOfType(b.part.Get("Numbering"), "volume", "Value")
}

func (b Bib) Issue() (string, bool) {
	return fieldOfType(b.part.Get("Numbering"), "issue", "Value")
}
