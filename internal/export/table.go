// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/eds-records/internal/record"
)

// WriteTable prints a one-line-per-record summary.
func WriteTable(w io.Writer, recs []*record.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	fmt.Fprintf(w, "%-30s  %-50s  %-20s  %-4s  %-5s\n",
		"ID", "Title", "Authors", "Year", "Links")
	fmt.Fprintln(w, strings.Repeat("-", 117))

	for _, r := range recs {
		fmt.Fprintf(w, "%-30s  %-50s  %-20s  %-4s  %-5d\n",
			truncate(r.ID, 30),
			truncate(PlainText(r.Title), 50),
			formatAuthors(r.Authors),
			yearPattern.FindString(r.PublicationYear),
			len(r.AllLinks))
	}

	fmt.Fprintf(w, "\n%d records\n", len(recs))
}

// PlainText strips markup such as <i> or <highlight> from a field value.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
