// Package nav derives the grouped, collapsible menu tree from the flat
// access catalog.
package nav

import "github.com/agrovision/portal/access"

// DefaultGroupLabel is used for MENU entries without a section.
const DefaultGroupLabel = "Outros"

type Item struct {
	To    string `json:"to"`
	Label string `json:"label"`
}

type Group struct {
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// Build scans the catalog once and groups MENU entries by their section,
// in order of first occurrence. Items keep catalog order; duplicates are
// not removed. Href falls back to "#", label to the capability name.
func Build(objects []access.Object) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, obj := range objects {
		if obj.Type != access.TypeMenu {
			continue
		}

		label := obj.Metadata.Section()
		if label == "" {
			label = DefaultGroupLabel
		}

		to := obj.Metadata.Href()
		if to == "" {
			to = "#"
		}
		itemLabel := obj.Metadata.Label()
		if itemLabel == "" {
			itemLabel = obj.Name
		}

		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Items = append(groups[i].Items, Item{To: to, Label: itemLabel})
	}

	return groups
}
