// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package record normalizes raw discovery-service results into flat records.
//
// A raw result is either the retrieve shape (the record wrapped under a
// "Record" key) or a record as it appears in a search result list. New reads
// it once and fills a fixed set of fields, each through its own precedence
// chain over the generic Items list, the standardized bibliographic tree and
// the record header. Items that feed no fixed field become extras.
//
// Construction never fails: missing or malformed structure resolves to
// empty values.
package record

import (
	"strings"

	"github.com/pdiddy/eds-records/internal/jsonvalue"
	"github.com/pdiddy/eds-records/pkg/types"
)

// DefaultRestrictedTitle is the title of records whose title is hidden from
// guest sessions.
const DefaultRestrictedTitle = "This title is unavailable for guests, please login to see more information."

// Fields is the fixed normalized schema. The json tags are the attribute
// names used by every serialized form.
type Fields struct {
	ID                        string        `json:"id"`
	AccessionNumber           string        `json:"eds_accession_number"`
	DatabaseID                string        `json:"eds_database_id"`
	DatabaseName              string        `json:"eds_database_name"`
	AccessLevel               string        `json:"eds_access_level"`
	RelevancyScore            string        `json:"eds_relevancy_score"`
	Title                     string        `json:"eds_title"`
	SourceTitle               string        `json:"eds_source_title"`
	ComposedTitle             string        `json:"eds_composed_title"`
	OtherTitles               string        `json:"eds_other_titles"`
	Abstract                  string        `json:"eds_abstract"`
	Authors                   []string      `json:"eds_authors"`
	AuthorAffiliations        string        `json:"eds_author_affiliations"`
	AuthorsComposed           string        `json:"eds_authors_composed"`
	Subjects                  []string      `json:"eds_subjects"`
	SubjectsGeographic        string        `json:"eds_subjects_geographic"`
	SubjectsPerson            string        `json:"eds_subjects_person"`
	SubjectsCompany           string        `json:"eds_subjects_company"`
	SubjectsMESH              string        `json:"eds_subjects_mesh"`
	SubjectsBISAC             string        `json:"eds_subjects_bisac"`
	SubjectsGenre             string        `json:"eds_subjects_genre"`
	AuthorSuppliedKeywords    string        `json:"eds_author_supplied_keywords"`
	Descriptors               string        `json:"eds_descriptors"`
	Notes                     string        `json:"eds_notes"`
	Subset                    string        `json:"eds_subset"`
	Languages                 []string      `json:"eds_languages"`
	PageCount                 string        `json:"eds_page_count"`
	PageStart                 string        `json:"eds_page_start"`
	PhysicalDescription       string        `json:"eds_physical_description"`
	PublicationType           string        `json:"eds_publication_type"`
	PublicationTypeID         string        `json:"eds_publication_type_id"`
	PublicationDate           string        `json:"eds_publication_date"`
	PublicationYear           string        `json:"eds_publication_year"`
	PublicationInfo           string        `json:"eds_publication_info"`
	Publisher                 string        `json:"eds_publisher"`
	DocumentType              string        `json:"eds_document_type"`
	DocumentDOI               string        `json:"eds_document_doi"`
	DocumentOCLC              string        `json:"eds_document_oclc"`
	ISSNPrint                 string        `json:"eds_issn_print"`
	ISSNs                     []string      `json:"eds_issns"`
	ISBNPrint                 string        `json:"eds_isbn_print"`
	ISBNElectronic            string        `json:"eds_isbn_electronic"`
	ISBNsRelated              []string      `json:"eds_isbns_related"`
	ISBNs                     []string      `json:"eds_isbns"`
	Series                    string        `json:"eds_series"`
	Volume                    string        `json:"eds_volume"`
	Issue                     string        `json:"eds_issue"`
	Covers                    []types.Image `json:"eds_covers"`
	CoverThumbURL             string        `json:"eds_cover_thumb_url"`
	CoverMediumURL            string        `json:"eds_cover_medium_url"`
	FulltextWordCount         int           `json:"eds_fulltext_word_count"`
	ResultID                  string        `json:"eds_result_id"`
	PLink                     string        `json:"eds_plink"`
	HTMLFulltext              string        `json:"eds_html_fulltext"`
	Images                    []types.Image `json:"eds_images"`
	AllLinks                  []types.Link  `json:"eds_all_links"`
	FulltextLinks             []types.Link  `json:"eds_fulltext_links"`
	NonFulltextLinks          []types.Link  `json:"eds_non_fulltext_links"`
	CodeNAICS                 string        `json:"eds_code_naics"`
	AbstractSuppliedCopyright string        `json:"eds_abstract_supplied_copyright"`
	PublicationID             string        `json:"eds_publication_id"`
	PublicationIsSearchable   string        `json:"eds_publication_is_searchable"`
	PublicationScopeNote      string        `json:"eds_publication_scope_note"`
}

// Record is one normalized result. It is built once by New and not
// modified afterwards.
type Record struct {
	Fields

	raw    jsonvalue.Value
	bib    Bib
	extras extras
}

// Option configures record construction.
type Option func(*options)

type options struct {
	restrictedTitle string
}

// WithRestrictedTitle overrides the title used when a record exposes none.
// An empty title keeps the default.
func WithRestrictedTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.restrictedTitle = title
		}
	}
}

// IdentityKey builds the record key "dbid__an" with every "." of the
// accession number replaced by "_".
func IdentityKey(dbid, an string) string {
	return dbid + "__" + strings.ReplaceAll(an, ".", "_")
}

// New normalizes a raw result.
func New(raw jsonvalue.Value, opts ...Option) *Record {
	o := options{restrictedTitle: DefaultRestrictedTitle}
	for _, opt := range opts {
		opt(&o)
	}

	s := newSource(raw)
	r := &Record{raw: s.rec, bib: s.bib}
	f := &r.Fields

	f.ResultID = s.rec.Get("ResultId").Str()
	f.PLink = s.rec.Get("PLink").Str()
	f.AccessionNumber = s.headerText("An")
	f.DatabaseID = s.headerText("DbId")
	f.DatabaseName = s.headerText("DbLabel")
	f.AccessLevel = s.headerText("AccessLevel")
	f.RelevancyScore = s.headerText("RelevancyScore")
	f.ID = IdentityKey(f.DatabaseID, f.AccessionNumber)

	f.Title = resolveTitle(s, o.restrictedTitle)
	f.SourceTitle = resolveSourceTitle(s)
	f.ComposedTitle = s.name("TitleSource")
	f.OtherTitles = s.name("TitleAlt")
	f.Abstract = s.name("Abstract")
	f.Authors = s.bib.Authors()
	f.AuthorsComposed = s.name("Author")
	f.AuthorAffiliations = s.name("AffiliationAuthor")

	f.Subjects = resolveSubjects(s)
	f.SubjectsGeographic = s.name("SubjectGeographic")
	f.SubjectsPerson = s.name("SubjectPerson")
	f.SubjectsCompany = s.name("SubjectCompany")
	f.SubjectsBISAC = s.name("SubjectBISAC")
	f.SubjectsMESH = s.name("SubjectMESH")
	f.SubjectsGenre = s.name("SubjectGenre")
	f.AuthorSuppliedKeywords = s.name("Keyword")
	f.Notes = s.name("Note")
	f.Subset = s.name("Subset")
	f.Languages = resolveLanguages(s)

	f.PageCount, _ = s.bib.PageCount()
	f.PageStart, _ = s.bib.PageStart()
	f.PhysicalDescription = s.name("PhysDesc")

	f.PublicationType = resolvePublicationType(s)
	f.PublicationTypeID = s.headerText("PubTypeId")
	f.PublicationDate = resolvePublicationDate(s)
	f.PublicationYear = resolvePublicationYear(s)
	f.PublicationInfo = s.label("Publication Information")
	f.Publisher = s.name("Publisher")
	f.DocumentType = s.name("TypeDocument")
	f.DocumentDOI = resolveDOI(s)
	f.DocumentOCLC = s.label("OCLC")

	f.ISSNPrint = resolveISSNPrint(s)
	f.ISSNs = s.bib.ISSNs()
	f.ISBNPrint, _ = s.bib.ISBNPrint()
	f.ISBNsRelated = resolveRelatedISBNs(s)
	f.ISBNElectronic, _ = s.bib.ISBNElectronic()
	f.ISBNs = resolveISBNs(s)
	f.Series = s.name("SeriesInfo")
	f.Volume, _ = s.bib.Volume()
	f.Issue, _ = s.bib.Issue()

	f.Covers = resolveImages(s, "")
	f.Images = resolveImages(s, "")
	f.CoverThumbURL = resolveCover(s, types.ImageSizeThumb)
	f.CoverMediumURL = resolveCover(s, types.ImageSizeMedium)
	f.FulltextWordCount = resolveFulltextWordCount(s)
	f.HTMLFulltext = resolveHTMLFulltext(s)

	f.FulltextLinks = fulltextLinks(s.rec, s.items)
	f.NonFulltextLinks = nonFulltextLinks(s.rec)
	f.AllLinks = concatLinks(f.FulltextLinks, f.NonFulltextLinks)

	f.CodeNAICS = s.name("CodeNAICS")
	f.AbstractSuppliedCopyright = s.name("AbstractSuppliedCopyright")
	f.Descriptors = s.label("Descriptors")
	f.PublicationID = s.headerText("PublicationId")
	f.PublicationIsSearchable = s.headerText("IsSearchable")
	f.PublicationScopeNote = s.name("NoteScope")

	r.extras = buildExtras(s.items)
	return r
}

// Parse decodes a raw result and normalizes it.
func Parse(data []byte, opts ...Option) (*Record, error) {
	v, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, err
	}
	return New(v, opts...), nil
}

func concatLinks(a, b []types.Link) []types.Link {
	out := make([]types.Link, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Bib exposes the bibliographic resolver over the record's raw data.
func (r *Record) Bib() Bib { return r.bib }

// Raw returns the unwrapped raw record.
func (r *Record) Raw() jsonvalue.Value { return r.raw }

// RetrieveOptions returns the key mapping accepted by a retrieve call.
func (r *Record) RetrieveOptions() map[string]string {
	return map[string]string{
		"an":   r.AccessionNumber,
		"dbid": r.DatabaseID,
	}
}

// ImagesOfSize returns the cover images of one size.
func (r *Record) ImagesOfSize(size string) []types.Image {
	var out []types.Image
	for _, img := range r.Images {
		if img.Size == size {
			out = append(out, img)
		}
	}
	return out
}
