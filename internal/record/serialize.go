// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/pdiddy/eds-records/pkg/types"
)

// FulltextLinkKey names the attribute bundling the identity key with all links.
const FulltextLinkKey = "eds_fulltext_link"

// LinkBundle is the value stored under FulltextLinkKey.
type LinkBundle struct {
	ID    string       `json:"id" yaml:"id"`
	Links []types.Link `json:"links" yaml:"links"`
}

// ResponseHeader is the header of a search-engine shaped response.
type ResponseHeader struct {
	Status int `json:"status" yaml:"status"`
}

// Response is the body of a search-engine shaped response.
type Response struct {
	NumFound int              `json:"numFound" yaml:"numFound"`
	Start    int              `json:"start" yaml:"start"`
	Docs     []map[string]any `json:"docs" yaml:"docs"`
}

// Envelope wraps attribute mappings the way a Solr select response does.
type Envelope struct {
	ResponseHeader ResponseHeader `json:"responseHeader" yaml:"responseHeader"`
	Response       Response       `json:"response" yaml:"response"`
}

// AttrMap projects the record into a flat attribute mapping: every fixed
// field under its attribute name, every extra under its key, and the link
// bundle under FulltextLinkKey. Raw input is not included.
func (r *Record) AttrMap() (map[string]any, error) {
	m := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &m,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(r.Fields); err != nil {
		return nil, fmt.Errorf("projecting record %s: %w", r.ID, err)
	}
	for _, e := range r.extras.list {
		m[e.Key] = e.Value
	}
	m[FulltextLinkKey] = LinkBundle{ID: r.ID, Links: r.AllLinks}
	return m, nil
}

// SolrResponse wraps the attribute mapping in a single-document envelope.
func (r *Record) SolrResponse() (Envelope, error) {
	m, err := r.AttrMap()
	if err != nil {
		return Envelope{}, err
	}
	return NewEnvelope(m), nil
}

// NewEnvelope wraps attribute mappings in a response envelope with status 0.
func NewEnvelope(docs ...map[string]any) Envelope {
	if docs == nil {
		docs = []map[string]any{}
	}
	return Envelope{
		ResponseHeader: ResponseHeader{Status: 0},
		Response: Response{
			NumFound: len(docs),
			Start:    0,
			Docs:     docs,
		},
	}
}

// FieldsFromAttrs reads the fixed fields back out of an attribute mapping,
// such as one decoded from JSON by a display layer. Unknown keys (extras,
// the link bundle) are ignored.
func FieldsFromAttrs(m map[string]any) (Fields, error) {
	var f Fields
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &f,
	})
	if err != nil {
		return Fields{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Fields{}, fmt.Errorf("reading attributes: %w", err)
	}
	return f, nil
}

// IdentityKeyFromAttrs re-derives the identity key from a projected mapping.
func IdentityKeyFromAttrs(m map[string]any) string {
	dbid, _ := m["eds_database_id"].(string)
	an, _ := m["eds_accession_number"].(string)
	return IdentityKey(dbid, an)
}
