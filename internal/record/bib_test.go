// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/eds-records/internal/jsonvalue"
)

func bibOf(doc string) Bib {
	return NewBib(jsonvalue.MustParse(doc))
}

// partDoc wraps a bib-part BibEntity body in the full record path.
func partDoc(entity string) string {
	return `{"RecordInfo":{"BibRecord":{"BibRelationships":{"IsPartOfRelationships":[{"BibEntity":` + entity + `}]}}}}`
}

func TestBib_AbsentTreeResolvesEverythingAbsent(t *testing.T) {
	docs := []string{
		`{}`,
		`{"RecordInfo":{}}`,
		`{"RecordInfo":{"BibRecord":{}}}`,
		`{"RecordInfo":{"BibRecord":{"BibEntity":{},"BibRelationships":{}}}}`,
		`{"RecordInfo":{"BibRecord":{"BibRelationships":{"IsPartOfRelationships":[]}}}}`,
		`{"RecordInfo":"unexpected"}`,
	}
	scalars := map[string]func(Bib) (string, bool){
		"Title":            Bib.Title,
		"PageCount":        Bib.PageCount,
		"PageStart":        Bib.PageStart,
		"DOI":              Bib.DOI,
		"PartDOI":          Bib.PartDOI,
		"SourceTitle":      Bib.SourceTitle,
		"ISSNPrint":        Bib.ISSNPrint,
		"ISSNElectronic":   Bib.ISSNElectronic,
		"ISBNPrint":        Bib.ISBNPrint,
		"ISBNElectronic":   Bib.ISBNElectronic,
		"PublicationDate":  Bib.PublicationDate,
		"PublicationYear":  Bib.PublicationYear,
		"PublicationMonth": Bib.PublicationMonth,
		"Volume":           Bib.Volume,
		"Issue":            Bib.Issue,
	}
	lists := map[string]func(Bib) []string{
		"Authors":   Bib.Authors,
		"Subjects":  Bib.Subjects,
		"Languages": Bib.Languages,
		"ISSNs":     Bib.ISSNs,
		"ISBNs":     Bib.ISBNs,
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			b := bibOf(doc)
			for name, fn := range scalars {
				v, ok := fn(b)
				assert.False(t, ok, name)
				assert.Empty(t, v, name)
			}
			for name, fn := range lists {
				assert.Empty(t, fn(b), name)
			}
		})
	}
}

func TestBib_ISSNsExcludeLocals(t *testing.T) {
	b := bibOf(partDoc(`{"Identifiers":[{"Type":"issn-print","Value":"1234-5678"},{"Type":"issn-locals","Value":"X"}]}`))
	assert.Equal(t, []string{"1234-5678"}, b.ISSNs())
}

func TestBib_IdentifierCollections(t *testing.T) {
	b := bibOf(partDoc(`{"Identifiers":[
		{"Type":"isbn-print","Value":"111"},
		{"Type":"issn-print","Value":"A"},
		{"Type":"isbn-locals","Value":"L"},
		{"Type":"isbn-electronic","Value":"222"},
		{"Type":"issn-electronic","Value":"B"},
		{"Type":"issn-linking"},
		{"Type":"doi","Value":"10.1/part"}
	]}`))

	assert.Equal(t, []string{"111", "222"}, b.ISBNs())
	assert.Equal(t, []string{"A", "B"}, b.ISSNs())

	v, ok := b.ISSNElectronic()
	assert.True(t, ok)
	assert.Equal(t, "B", v)
	v, ok = b.PartDOI()
	assert.True(t, ok)
	assert.Equal(t, "10.1/part", v)
}

func TestBib_TypedSelectionIsExactAndFirstWins(t *testing.T) {
	b := bibOf(partDoc(`{
		"Identifiers":[{"Type":"issn-print-old","Value":"nope"},{"Type":"issn-print","Value":"first"},{"Type":"issn-print","Value":"second"}],
		"Numbering":[{"Type":"Volume","Value":"caps"},{"Type":"volume","Value":"7"}]
	}`))

	v, ok := b.ISSNPrint()
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = b.Volume()
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = b.Issue()
	assert.False(t, ok)
}

func TestBib_PublicationDate(t *testing.T) {
	tests := []struct {
		name      string
		dates     string
		wantDate  string
		wantDated bool
		wantYear  string
		wantMonth string
	}{
		{
			name:      "complete",
			dates:     `[{"Type":"published","Y":"1999","M":"07","D":"15"}]`,
			wantDate:  "1999-07-15",
			wantDated: true,
			wantYear:  "1999",
			wantMonth: "07",
		},
		{
			name:      "missing day",
			dates:     `[{"Type":"published","Y":"1999","M":"07"}]`,
			wantYear:  "1999",
			wantMonth: "07",
		},
		{
			name:      "empty day counts as missing",
			dates:     `[{"Type":"published","Y":"1999","M":"07","D":""}]`,
			wantYear:  "1999",
			wantMonth: "07",
		},
		{
			name:  "other date types ignored",
			dates: `[{"Type":"copyright","Y":"2001","M":"01","D":"01"}]`,
		},
		{
			name:      "first published wins",
			dates:     `[{"Type":"published","Y":"2000","M":"02","D":"03"},{"Type":"published","Y":"1990","M":"01","D":"01"}]`,
			wantDate:  "2000-02-03",
			wantDated: true,
			wantYear:  "2000",
			wantMonth: "02",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bibOf(partDoc(`{"Dates":` + tt.dates + `}`))

			date, ok := b.PublicationDate()
			assert.Equal(t, tt.wantDated, ok)
			assert.Equal(t, tt.wantDate, date)

			year, _ := b.PublicationYear()
			assert.Equal(t, tt.wantYear, year)
			month, _ := b.PublicationMonth()
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}

func TestBib_EntityFields(t *testing.T) {
	b := bibOf(`{"RecordInfo":{"BibRecord":{
		"BibEntity":{
			"Titles":[{"Type":"sub","TitleFull":"Subtitle"},{"Type":"main","TitleFull":"Main"}],
			"Identifiers":[{"Type":"doi","Value":"10.1/entity"}],
			"Languages":[{"Text":"English"},{"Code":"fre"},{"Text":"French"}],
			"Subjects":[{"SubjectFull":"A"},{"SubjectFull":""},{"SubjectFull":"B"}],
			"PhysicalDescription":{"Pagination":{"PageCount":"20","StartPage":"5"}}
		},
		"BibRelationships":{
			"HasContributorRelationships":[
				{"PersonEntity":{"Name":{"NameFull":"One"}}},
				{"PersonEntity":{"Name":{"NameFull":"Two"}}}
			],
			"IsPartOfRelationships":[{"BibEntity":{"Contributors":[{"NameFull":"Editor"}]}}]
		}
	}}}`)

	v, _ := b.Title()
	assert.Equal(t, "Main", v)
	v, _ = b.DOI()
	assert.Equal(t, "10.1/entity", v)
	assert.Equal(t, []string{"English", "French"}, b.Languages())
	assert.Equal(t, []string{"A", "B"}, b.Subjects())
	v, _ = b.PageCount()
	assert.Equal(t, "20", v)
	v, _ = b.PageStart()
	assert.Equal(t, "5", v)
	assert.Equal(t, []string{"One", "Two", "Editor"}, b.Authors())
}
