package game

import "github.com/vovakirdan/escape/internal/core"

// InventoryEntry is a picked-up object and the slot it is drawn in.
type InventoryEntry struct {
	Object *InteractiveObject
	Slot   core.Rect
}

// Inventory holds picked-up objects in pickup order with at most one selected.
type Inventory struct {
	rules    Rules
	entries  []InventoryEntry
	selected int
}

func newInventory(rules Rules) Inventory {
	return Inventory{rules: rules, selected: NoIndex}
}

// Len returns the number of entries.
func (inv *Inventory) Len() int { return len(inv.entries) }

// Entries returns a copy of the entries in display order.
func (inv *Inventory) Entries() []InventoryEntry {
	out := make([]InventoryEntry, len(inv.entries))
	copy(out, inv.entries)
	return out
}

// Add appends an object and places it in the next slot.
func (inv *Inventory) Add(obj *InteractiveObject) {
	inv.entries = append(inv.entries, InventoryEntry{
		Object: obj,
		Slot:   inv.rules.slot(len(inv.entries), obj.Rect),
	})
}

// Remove drops entry i, keeping the selection on the same object if it survives.
func (inv *Inventory) Remove(i int) {
	if i < 0 || i >= len(inv.entries) {
		return
	}
	inv.entries = append(inv.entries[:i], inv.entries[i+1:]...)
	switch {
	case inv.selected == i:
		inv.selected = NoIndex
	case inv.selected > i:
		inv.selected--
	}
	for j := i; j < len(inv.entries); j++ {
		inv.entries[j].Slot = inv.rules.slot(j, inv.entries[j].Object.Rect)
	}
}

// Clear empties the inventory.
func (inv *Inventory) Clear() {
	inv.entries = nil
	inv.selected = NoIndex
}

// Select marks entry i as the only selected entry.
func (inv *Inventory) Select(i int) {
	if i >= 0 && i < len(inv.entries) {
		inv.selected = i
	}
}

// Deselect clears the selection.
func (inv *Inventory) Deselect() { inv.selected = NoIndex }

// SelectedIndex returns the selected entry index or NoIndex.
func (inv *Inventory) SelectedIndex() int { return inv.selected }

// Selected returns the selected object, if any.
func (inv *Inventory) Selected() (*InteractiveObject, bool) {
	if inv.selected == NoIndex {
		return nil, false
	}
	return inv.entries[inv.selected].Object, true
}

// EntryAt returns the index of the entry whose slot contains the point.
func (inv *Inventory) EntryAt(x, y int) (int, bool) {
	for i, e := range inv.entries {
		if e.Slot.Contains(x, y) {
			return i, true
		}
	}
	return NoIndex, false
}
