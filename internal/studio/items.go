package studio

import (
	"github.com/charmbracelet/bubbles/list"

	"atelier/internal/kvstore"
)

// collectionItem adapts kvstore.Item to list.Item.
type collectionItem struct {
	item kvstore.Item
}

func (i collectionItem) Title() string { return i.item.Title }

func (i collectionItem) Description() string {
	if i.item.Summary != "" {
		return i.item.Summary
	}
	return "no summary"
}

func (i collectionItem) FilterValue() string {
	return i.item.Title + " " + i.item.Summary
}

func listItems(items []kvstore.Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = collectionItem{item: item}
	}
	return out
}
