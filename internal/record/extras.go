// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// ExtrasPrefix starts every extra field key, keeping extras apart from the
// fixed attribute names.
const ExtrasPrefix = "eds_extras_"

// reservedNames are item Names consumed by fixed fields.
var reservedNames = map[string]bool{
	"URL": true, "Title": true, "TitleSource": true, "TitleAlt": true,
	"Abstract": true, "Note": true, "Author": true, "AffiliationAuthor": true,
	"Subject": true, "SubjectGeographic": true, "SubjectPerson": true,
	"SubjectCompany": true, "SubjectMESH": true, "SubjectBISAC": true,
	"SubjectGenre": true, "Keyword": true, "Subset": true, "Language": true,
	"PhysDesc": true, "TypePub": true, "DatePub": true, "TypeDocument": true,
	"DOI": true, "ISSN": true, "SeriesInfo": true, "FullTextWordCount": true,
	"AbstractSuppliedCopyright": true, "CodeNAICS": true, "NoteScope": true,
	"Publisher": true,
}

// reservedLabels are item Labels consumed by fixed fields.
var reservedLabels = map[string]bool{
	"OCLC":                    true,
	"Descriptors":             true,
	"Publication Information": true,
	"Related ISBNs":           true,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func underscored(s string) string {
	return whitespaceRun.ReplaceAllString(s, "_")
}

// Extra is one synthesized field for an item without a fixed slot.
type Extra struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

type extras struct {
	list  []Extra
	index map[string]int
}

func reserved(it Item) bool {
	return reservedNames[it.Name] || reservedLabels[it.Label]
}

// extraKey derives the key of an item: Name (else Label) with whitespace
// runs replaced by "_". NumberOther items recur with different Labels, so
// their key is built from the Label instead.
func extraKey(it Item) (string, bool) {
	base := it.Name
	if base == "" {
		base = it.Label
	}
	if base == "" {
		return "", false
	}
	key := underscored(base)
	if key == "NumberOther" || key == "Number_Other" {
		key = "number_other_" + underscored(it.Label)
	}
	return ExtrasPrefix + key, true
}

func buildExtras(items []Item) extras {
	ex := extras{index: map[string]int{}}
	for _, it := range items {
		if reserved(it) || !it.HasData {
			continue
		}
		key, ok := extraKey(it)
		if !ok {
			continue
		}
		key = ex.unique(key, it.Label)
		ex.index[key] = len(ex.list)
		ex.list = append(ex.list, Extra{Key: key, Value: html.UnescapeString(it.Data)})
	}
	return ex
}

// unique disambiguates a taken key with the item's Label, then with a
// numeric suffix. A key already ending in the Label (NumberOther keys are
// built from it) goes straight to the numeric suffix.
func (ex extras) unique(key, label string) string {
	if _, taken := ex.index[key]; !taken {
		return key
	}
	if label != "" && !strings.HasSuffix(key, "_"+underscored(label)) {
		withLabel := key + "_" + underscored(label)
		if _, taken := ex.index[withLabel]; !taken {
			return withLabel
		}
		key = withLabel
	}
	for n := 2; ; n++ {
		candidate := key + "_" + strconv.Itoa(n)
		if _, taken := ex.index[candidate]; !taken {
			return candidate
		}
	}
}

// Extra returns the value of an extra field. The key may be given with or
// without ExtrasPrefix.
func (r *Record) Extra(key string) (string, bool) {
	if !strings.HasPrefix(key, ExtrasPrefix) {
		key = ExtrasPrefix + key
	}
	i, ok := r.extras.index[key]
	if !ok {
		return "", false
	}
	return r.extras.list[i].Value, true
}

// Extras returns the extra fields in item order.
func (r *Record) Extras() []Extra {
	out := make([]Extra, len(r.extras.list))
	copy(out, r.extras.list)
	return out
}

// ExtraKeys returns the extra field keys in item order.
func (r *Record) ExtraKeys() []string {
	keys := make([]string, len(r.extras.list))
	for i, e := range r.extras.list {
		keys[i] = e.Key
	}
	return keys
}
