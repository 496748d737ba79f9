package models

import "strings"

// DefaultInventoryLimit is the number of items a player can carry.
const DefaultInventoryLimit = 5

// Inventory is an ordered, bounded collection of items.
type Inventory struct {
	items []Item
	limit int
}

// NewInventory creates an empty inventory holding at most limit items.
func NewInventory(limit int) *Inventory {
	if limit <= 0 {
		limit = DefaultInventoryLimit
	}
	return &Inventory{limit: limit}
}

// Add appends the item unless the inventory is full.
func (inv *Inventory) Add(item Item) bool {
	if len(inv.items) >= inv.limit {
		return false
	}
	inv.items = append(inv.items, item)
	return true
}

// Remove takes out the first item whose name matches, ignoring case.
func (inv *Inventory) Remove(name string) (Item, bool) {
	i := inv.index(name)
	if i < 0 {
		return Item{}, false
	}
	item := inv.items[i]
	inv.items = append(inv.items[:i:i], inv.items[i+1:]...)
	return item, true
}

// Has reports whether an item with the given name is carried.
func (inv *Inventory) Has(name string) bool {
	return inv.index(name) >= 0
}

// Get returns the first item whose name matches, ignoring case.
func (inv *Inventory) Get(name string) (Item, bool) {
	i := inv.index(name)
	if i < 0 {
		return Item{}, false
	}
	return inv.items[i], true
}

// Items returns a copy of the carried items in pickup order.
func (inv *Inventory) Items() []Item {
	return append([]Item(nil), inv.items...)
}

// Names returns the names of the carried items in pickup order.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.items))
	for i, item := range inv.items {
		names[i] = item.Name
	}
	return names
}

func (inv *Inventory) Len() int   { return len(inv.items) }
func (inv *Inventory) Limit() int { return inv.limit }
func (inv *Inventory) Full() bool { return len(inv.items) >= inv.limit }

func (inv *Inventory) index(name string) int {
	for i, item := range inv.items {
		if strings.EqualFold(item.Name, name) {
			return i
		}
	}
	return -1
}
