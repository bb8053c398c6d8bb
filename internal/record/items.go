// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"html"

	"github.com/pdiddy/eds-records/internal/jsonvalue"
)

// Item is one generic metadata element of a raw record. Data is kept
// HTML-escaped as received.
type Item struct {
	Name    string
	Label   string
	Group   string
	Data    string
	HasData bool
}

// parseItems reads the Items list of a raw record. Elements that are not
// objects are ignored.
func parseItems(v jsonvalue.Value) []Item {
	elems := v.Elems()
	if len(elems) == 0 {
		return nil
	}
	items := make([]Item, 0, len(elems))
	for _, e := range elems {
		if e.Kind() != jsonvalue.Object {
			continue
		}
		data := e.Get("Data")
		text, _ := data.Text()
		items = append(items, Item{
			Name:    e.Get("Name").Str(),
			Label:   e.Get("Label").Str(),
			Group:   e.Get("Group").Str(),
			Data:    text,
			HasData: !data.IsNull(),
		})
	}
	return items
}

// ItemByName returns the unescaped Data of the first item whose Name equals
// name exactly.
func ItemByName(items []Item, name string) (string, bool) {
	for _, it := range items {
		if it.Name == name {
			return itemData(it)
		}
	}
	return "", false
}

// ItemByLabel returns the unescaped Data of the first item whose Label
// equals label exactly.
func ItemByLabel(items []Item, label string) (string, bool) {
	for _, it := range items {
		if it.Label == label {
			return itemData(it)
		}
	}
	return "", false
}

func itemData(it Item) (string, bool) {
	if !it.HasData {
		return "", false
	}
	return html.UnescapeString(it.Data), true
}
