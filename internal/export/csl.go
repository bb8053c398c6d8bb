// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/eds-records/internal/record"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by citation processors and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id" json:"id"`
	Type           string    `yaml:"type" json:"type"`
	Title          string    `yaml:"title" json:"title"`
	Author         []CSLName `yaml:"author,omitempty" json:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty" json:"container-title,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty" json:"issued,omitempty"`
	Volume         string    `yaml:"volume,omitempty" json:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty" json:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty" json:"page,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	DOI            string    `yaml:"DOI,omitempty" json:"DOI,omitempty"`
	ISSN           string    `yaml:"ISSN,omitempty" json:"ISSN,omitempty"`
	ISBN           string    `yaml:"ISBN,omitempty" json:"ISBN,omitempty"`
	URL            string    `yaml:"URL,omitempty" json:"URL,omitempty"`
	Language       string    `yaml:"language,omitempty" json:"language,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty" json:"family,omitempty"`
	Given   string `yaml:"given,omitempty" json:"given,omitempty"`
	Literal string `yaml:"literal,omitempty" json:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts" json:"date-parts"`
}

// WriteCSL writes records as a CSL-YAML list to w.
func WriteCSL(w io.Writer, recs []*record.Record) error {
	items := make([]CSLItem, len(recs))
	for i, r := range recs {
		items[i] = ToCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// cslTypes maps discovery publication types to CSL item types.
var cslTypes = map[string]string{
	"academic journal":     "article-journal",
	"periodical":           "article-magazine",
	"magazine":             "article-magazine",
	"news":                 "article-newspaper",
	"newspaper":            "article-newspaper",
	"book":                 "book",
	"ebook":                "book",
	"audiobook":            "book",
	"dissertation/ thesis": "thesis",
	"dissertation":         "thesis",
	"conference":           "paper-conference",
	"report":               "report",
	"reference":            "entry-encyclopedia",
	"video recording":      "motion_picture",
	"music score":          "musical_score",
	"map":                  "map",
}

func cslType(pubType string) string {
	if t, ok := cslTypes[strings.ToLower(strings.TrimSpace(pubType))]; ok {
		return t
	}
	return "article"
}

// ToCSLItem converts a normalized record to a CSLItem.
func ToCSLItem(r *record.Record) CSLItem {
	item := CSLItem{
		ID:             r.ID,
		Type:           cslType(r.PublicationType),
		Title:          r.Title,
		ContainerTitle: r.SourceTitle,
		Abstract:       r.Abstract,
		Issued:         issued(r.PublicationDate, r.PublicationYear),
		Volume:         r.Volume,
		Issue:          r.Issue,
		Page:           pageRange(r.PageStart, r.PageCount),
		Publisher:      r.Publisher,
		DOI:            r.DocumentDOI,
		ISSN:           r.ISSNPrint,
		ISBN:           r.ISBNPrint,
		URL:            r.PLink,
	}
	if len(r.Languages) > 0 {
		item.Language = r.Languages[0]
	}
	if item.ISSN == "" && len(r.ISSNs) > 0 {
		item.ISSN = r.ISSNs[0]
	}
	if item.ISBN == "" && len(r.ISBNs) > 0 {
		item.ISBN = r.ISBNs[0]
	}

	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	return item
}

var yearPattern = regexp.MustCompile(`\b(1[5-9]\d\d|20\d\d)\b`)

// issued converts a publication date to CSL date-parts. A full date that
// dateparse understands gives year, month and day; otherwise the first
// plausible year in either value is used.
func issued(date, year string) *CSLDate {
	if date != "" {
		if t, err := dateparse.ParseAny(date); err == nil {
			return &CSLDate{DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}}}
		}
	}
	for _, s := range []string{year, date} {
		if m := yearPattern.FindString(s); m != "" {
			y, _ := strconv.Atoi(m)
			return &CSLDate{DateParts: [][]int{{y}}}
		}
	}
	return nil
}

// pageRange renders "start-end" from a start page and page count.
func pageRange(start, count string) string {
	s, err := strconv.Atoi(start)
	if err != nil {
		return start
	}
	n, err := strconv.Atoi(count)
	if err != nil || n <= 1 {
		return start
	}
	return strconv.Itoa(s) + "-" + strconv.Itoa(s+n-1)
}

// parseAuthorName splits a full name string into CSL family/given parts.
// Inverted names ("Family, Given") split on the first comma; other names
// split on the last space. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		family = strings.TrimSpace(family)
		given = strings.TrimSpace(given)
		if given == "" {
			return CSLName{Literal: family}
		}
		return CSLName{Family: family, Given: given}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
