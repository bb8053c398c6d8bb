// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/eds-records/pkg/types"
)

func TestFulltextLinks_FixtureOrder(t *testing.T) {
	r := New(loadFixture(t, "retrieve.json"))

	want := []types.Link{
		{URL: "https://content.example.org/pdf", Label: "PDF Full Text", Icon: "PDF Full Text Icon", Type: types.LinkPDF},
		{URL: "detail", Label: "ePub eBook Full Text", Icon: "ePub eBook Full Text Icon", Type: types.LinkEbookEPUB},
		{URL: "https://catalog.example.edu/record/1", Label: "Access URL", Icon: "Catalog Link Icon", Type: types.LinkCatalog},
		{URL: "https://linked.example.org/ft", Label: "Linked Full Text", Icon: "Linked Full Text Icon", Type: types.LinkSmart},
		{URL: "https://resolver.example.edu/openurl", Label: "Find It", Icon: "https://resolver.example.edu/icon.gif", Type: types.LinkCustomFulltext},
	}
	assert.Equal(t, want, r.FulltextLinks)

	assert.Equal(t, []types.Link{
		{URL: "https://ill.example.edu/request", Label: "Request via ILL", Icon: "https://ill.example.edu/icon.png", Type: types.LinkCustomOther},
	}, r.NonFulltextLinks)
}

func TestAllLinks_IsFulltextThenNonFulltext(t *testing.T) {
	docs := []string{
		`{}`,
		`{"CustomLinks":[{"Url":"u1","Text":"t1"}]}`,
		`{"FullText":{"Links":[{"Type":"pdflink","Url":"p"}]}}`,
	}
	raws := []*Record{New(loadFixture(t, "retrieve.json"))}
	for _, doc := range docs {
		raws = append(raws, mustRecord(t, doc))
	}
	for _, r := range raws {
		want := append(append([]types.Link{}, r.FulltextLinks...), r.NonFulltextLinks...)
		assert.Equal(t, want, r.AllLinks)
		for _, l := range r.AllLinks {
			assert.True(t, l.Type.Valid(), l.Type)
		}
	}
}

func TestFulltextLinks_TypeOrderIndependentOfSourceOrder(t *testing.T) {
	r := mustRecord(t, `{
		"FullText":{"Links":[
			{"Type":"other","Url":"o"},
			{"Type":"ebook-epub","Url":"e"},
			{"Type":"ebook-pdf","Url":"b"},
			{"Type":"pdflink","Url":"p1"},
			{"Type":"unknown","Url":"x"},
			{"Type":"pdflink","Url":"p2"}
		]},
		"Items":[{"Group":"URL","Label":"Cat","Data":"https://cat"}]
	}`)

	var urls []string
	for _, l := range r.FulltextLinks {
		urls = append(urls, l.URL)
	}
	assert.Equal(t, []string{"p1", "p2", "b", "e", "https://cat", "o"}, urls)
}

func TestFulltextLinks_MissingURLDefaultsToDetail(t *testing.T) {
	r := mustRecord(t, `{
		"FullText":{"Links":[{"Type":"pdflink"},{"Type":"other","Url":""}],"CustomLinks":[{"Text":"no url"}]},
		"CustomLinks":[{"Text":"other no url"}]
	}`)
	for _, l := range r.AllLinks {
		assert.Equal(t, types.DetailURL, l.URL, l.Label)
	}
	assert.Len(t, r.AllLinks, 4)
}

func TestCatalogLink(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want types.Link
	}{
		{
			name: "linkTerm with item label",
			item: Item{Label: "Online Access", Group: "URL", Data: `&lt;link linkTarget=&quot;URL&quot; linkTerm=&quot;https://example.org/x&quot; linkWindow=&quot;_blank&quot;&gt;Click here&lt;/link&gt;`},
			want: types.Link{URL: "https://example.org/x", Label: "Online Access"},
		},
		{
			name: "linkTerm label after closing tag",
			item: Item{Group: "URL", Data: `&lt;link linkTerm=&quot;https://example.org/y&quot;&gt;&lt;/link&gt;  View record  `},
			want: types.Link{URL: "https://example.org/y", Label: "View record"},
		},
		{
			name: "plain data is the URL",
			item: Item{Label: "Catalog", Group: "URL", Data: "https://catalog.example.edu/1"},
			want: types.Link{URL: "https://catalog.example.edu/1", Label: "Catalog"},
		},
		{
			name: "unterminated linkTerm takes remainder",
			item: Item{Label: "L", Group: "URL", Data: `linkTerm=&quot;https://example.org/z`},
			want: types.Link{URL: "https://example.org/z", Label: "L"},
		},
		{
			name: "no label marker leaves label empty",
			item: Item{Group: "URL", Data: `linkTerm=&quot;https://example.org/w&quot;`},
			want: types.Link{URL: "https://example.org/w"},
		},
		{
			name: "empty data",
			item: Item{Label: "Nothing", Group: "URL"},
			want: types.Link{URL: types.DetailURL, Label: "Nothing"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Icon = "Catalog Link Icon"
			tt.want.Type = types.LinkCatalog
			assert.Equal(t, tt.want, catalogLink(tt.item))
		})
	}
}

func TestFulltextLink(t *testing.T) {
	r := New(loadFixture(t, "retrieve.json"))

	assert.Equal(t, "https://linked.example.org/ft", r.FulltextLink(types.LinkSmart).URL)
	assert.Equal(t, types.LinkPDF, r.FulltextLink(types.LinkEbookPDF).Type, "falls back to the first link")

	empty := mustRecord(t, `{}`)
	require.Empty(t, empty.FulltextLinks)
	assert.Equal(t, types.Link{}, empty.FulltextLink(types.LinkPDF))
}
