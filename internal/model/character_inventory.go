package model

import (
	"context"
	"time"
)

// Currency is one entry of the character currency ledger. Amount stays
// clamped to [0, Max].
type Currency struct {
	Amount int `json:"amount"`
	Max    int `json:"max"`
}

// QuickSlot binds an item template to a hotbar index.
type QuickSlot struct {
	ItemID string

	cooling bool
	readyAt time.Time
}

// QuickSlotSnapshot is the serialized quick slot shape.
type QuickSlotSnapshot struct {
	Index   int    `json:"index"`
	ItemID  string `json:"itemId,omitempty"`
	IsEmpty bool   `json:"isEmpty"`
}

// CharacterSnapshot extends the inventory shape with the character
// extensions: currencies, quick slots and auto-equip flags.
type CharacterSnapshot struct {
	InventorySnapshot
	Currencies           map[string]Currency `json:"currencies"`
	QuickSlots           []QuickSlotSnapshot `json:"quickSlots"`
	AutoEquipBetterItems bool                `json:"autoEquipBetterItems"`
	AutoEquipNewItems    bool                `json:"autoEquipNewItems"`
}

// CharacterInventory is a character-owned inventory: a list-backed
// backpack plus typed equipment slots, a currency ledger and a quick
// slot bar. Equipped items live in their equip slots and do not count
// toward carry weight.
type CharacterInventory struct {
	*Inventory

	equip [EquipTotalSlots]*Slot

	currencies map[string]*Currency

	quick    []*QuickSlot
	selected int

	autoEquipBetter bool
	autoEquipNew    bool
}

// defaultAttachments maps equip slots to skeleton bind points. The
// engine never interprets these; rendering does.
var defaultAttachments = map[EquipSlotType]*Attachment{
	EquipMainHand: {Bone: "hand_r"},
	EquipOffHand:  {Bone: "hand_l"},
	EquipHead:     {Bone: "head"},
	EquipChest:    {Bone: "spine_2"},
	EquipLegs:     {Bone: "pelvis"},
	EquipFeet:     {Bone: "foot_r"},
	EquipHands:    {Bone: "hand_r"},
	EquipNeck:     {Bone: "neck"},
	EquipFinger:   {Bone: "hand_r"},
}

// NewCharacterInventory creates a character inventory with the given
// backpack capacity and quick slot count.
func NewCharacterInventory(id, name string, capacity int, maxWeight float64, quickSlots int) *CharacterInventory {
	c := &CharacterInventory{
		Inventory:  NewListInventory(id, name, capacity, maxWeight),
		currencies: make(map[string]*Currency),
		selected:   -1,
	}
	for t := EquipMainHand; t < EquipTotalSlots; t++ {
		s := NewEquipSlot(t, defaultAttachments[t])
		s.SetHost(c)
		c.equip[t] = s
	}
	if quickSlots < 0 {
		quickSlots = 0
	}
	c.quick = make([]*QuickSlot, quickSlots)
	for i := range c.quick {
		c.quick[i] = &QuickSlot{}
	}
	return c
}

// GetSlotByType returns the typed equipment slot. Implements SlotHost
// so equip slots can run the two-handed exclusivity check.
func (c *CharacterInventory) GetSlotByType(t EquipSlotType) *Slot {
	if t <= EquipNone || t >= EquipTotalSlots {
		return nil
	}
	return c.equip[t]
}

// EquippedItem returns the item worn in the slot, or nil.
func (c *CharacterInventory) EquippedItem(t EquipSlotType) *Item {
	s := c.GetSlotByType(t)
	if s == nil {
		return nil
	}
	return s.Item()
}

// SetAutoEquip configures automatic equipping of incoming items.
func (c *CharacterInventory) SetAutoEquip(better, newItems bool) {
	c.autoEquipBetter = better
	c.autoEquipNew = newItems
}

// AddItem delivers into the backpack and then applies the auto-equip
// policy to equippable items.
func (c *CharacterInventory) AddItem(item *Item, quantity int) int {
	added := c.Inventory.AddItem(item, quantity)
	if added > 0 && item.IsEquippable() {
		c.maybeAutoEquip(item)
	}
	return added
}

func (c *CharacterInventory) maybeAutoEquip(item *Item) {
	slot := c.GetSlotByType(item.EquipSlot)
	if slot == nil {
		return
	}
	switch {
	case slot.IsEmpty():
		if c.autoEquipNew || c.autoEquipBetter {
			c.Equip(item.TemplateID)
		}
	case c.autoEquipBetter && outranks(item, slot.Item()):
		c.Equip(item.TemplateID)
	}
}

// outranks reports whether a beats b for auto-equip: higher rarity,
// then higher value.
func outranks(a, b *Item) bool {
	if a.Rarity != b.Rarity {
		return a.Rarity > b.Rarity
	}
	return a.Value > b.Value
}

// Equip moves one unit of the template from the backpack into its equip
// slot. A previous occupant is returned to the backpack first. Returns
// the replaced item (nil if the slot was free) and whether the equip
// happened.
func (c *CharacterInventory) Equip(templateID string) (*Item, bool) {
	item := c.FindItem(templateID)
	if item == nil || !item.IsEquippable() {
		return nil, false
	}
	slot := c.GetSlotByType(item.EquipSlot)
	if slot == nil {
		return nil, false
	}

	prev := slot.Item()
	if prev == nil && !slot.CanAccept(item) {
		return nil, false
	}
	if prev != nil {
		// Room for the replaced item must exist before anything moves.
		if !c.CanAddItem(prev, 1) {
			return nil, false
		}
		slot.Clear()
		if !slot.CanAccept(item) {
			slot.SetItem(prev, 1)
			return nil, false
		}
	}

	drained := c.drain(templateID, 1)
	if len(drained) == 0 {
		if prev != nil {
			slot.SetItem(prev, 1)
		}
		return nil, false
	}
	slot.SetItem(drained[0].item, 1)
	if prev != nil {
		c.Inventory.AddItem(prev, 1)
	}
	c.emit(Event{
		Kind: EventItemEquipped, InventoryID: c.ID(),
		ItemID: templateID, SlotIndex: int(item.EquipSlot),
	})
	return prev, true
}

// Unequip moves the worn item back into the backpack. Fails when the
// backpack cannot take it.
func (c *CharacterInventory) Unequip(t EquipSlotType) bool {
	slot := c.GetSlotByType(t)
	if slot == nil || slot.IsEmpty() {
		return false
	}
	item := slot.Item()
	if !c.CanAddItem(item, 1) {
		return false
	}
	slot.Clear()
	c.Inventory.AddItem(item, 1)
	c.emit(Event{
		Kind: EventItemUnequipped, InventoryID: c.ID(),
		ItemID: item.TemplateID, SlotIndex: int(t),
	})
	return true
}

// EquippedSetPieces counts how many pieces of the set are worn.
func (c *CharacterInventory) EquippedSetPieces(set EquipmentSet) int {
	worn := 0
	for t := EquipMainHand; t < EquipTotalSlots; t++ {
		item := c.equip[t].Item()
		if item == nil {
			continue
		}
		for _, piece := range set.Pieces {
			if item.TemplateID == piece {
				worn++
				break
			}
		}
	}
	return worn
}

// Currency returns the ledger entry for the name, zero values when the
// currency was never configured.
func (c *CharacterInventory) Currency(name string) Currency {
	if cur, ok := c.currencies[name]; ok {
		return *cur
	}
	return Currency{}
}

// SetCurrencyMax configures the cap for a currency, creating the entry
// on first use. Lowering the cap clamps the current amount.
func (c *CharacterInventory) SetCurrencyMax(name string, max int) {
	cur, ok := c.currencies[name]
	if !ok {
		cur = &Currency{}
		c.currencies[name] = cur
	}
	cur.Max = max
	if cur.Amount > max {
		cur.Amount = max
	}
}

// AddCurrency credits the ledger, clamping at the cap. Returns the
// amount actually added.
func (c *CharacterInventory) AddCurrency(name string, amount int) int {
	if amount <= 0 {
		return 0
	}
	cur, ok := c.currencies[name]
	if !ok {
		return 0
	}
	added := amount
	if cur.Amount+added > cur.Max {
		added = cur.Max - cur.Amount
	}
	if added <= 0 {
		return 0
	}
	cur.Amount += added
	c.emit(Event{Kind: EventCurrencyAdded, InventoryID: c.ID(), Currency: name, Amount: added})
	return added
}

// RemoveCurrency debits the ledger, clamping at zero. Returns the
// amount actually removed.
func (c *CharacterInventory) RemoveCurrency(name string, amount int) int {
	if amount <= 0 {
		return 0
	}
	cur, ok := c.currencies[name]
	if !ok {
		return 0
	}
	removed := min(amount, cur.Amount)
	if removed == 0 {
		return 0
	}
	cur.Amount -= removed
	c.emit(Event{Kind: EventCurrencyRemoved, InventoryID: c.ID(), Currency: name, Amount: removed})
	return removed
}

// QuickSlotCount returns the hotbar size.
func (c *CharacterInventory) QuickSlotCount() int { return len(c.quick) }

// QuickSlotItem returns the template bound to the index, "" when empty.
func (c *CharacterInventory) QuickSlotItem(index int) string {
	if index < 0 || index >= len(c.quick) {
		return ""
	}
	return c.quick[index].ItemID
}

// SetQuickSlot binds an item template to a hotbar index.
func (c *CharacterInventory) SetQuickSlot(index int, templateID string) bool {
	if index < 0 || index >= len(c.quick) || templateID == "" {
		return false
	}
	c.quick[index].ItemID = templateID
	c.emit(Event{Kind: EventQuickSlotSet, InventoryID: c.ID(), ItemID: templateID, SlotIndex: index})
	return true
}

// ClearQuickSlot unbinds a hotbar index.
func (c *CharacterInventory) ClearQuickSlot(index int) {
	if index < 0 || index >= len(c.quick) || c.quick[index].ItemID == "" {
		return
	}
	c.quick[index] = &QuickSlot{}
	c.emit(Event{Kind: EventQuickSlotCleared, InventoryID: c.ID(), SlotIndex: index})
}

// SelectQuickSlot marks a hotbar index as active.
func (c *CharacterInventory) SelectQuickSlot(index int) bool {
	if index < 0 || index >= len(c.quick) {
		return false
	}
	c.selected = index
	c.emit(Event{Kind: EventQuickSlotSelected, InventoryID: c.ID(), SlotIndex: index})
	return true
}

// SelectedQuickSlot returns the active hotbar index, -1 when none.
func (c *CharacterInventory) SelectedQuickSlot() int { return c.selected }

// UseQuickSlot consumes one unit of the bound item and starts the
// cooldown. Fails while cooling, when the slot is empty or when the
// backpack no longer holds the item.
func (c *CharacterInventory) UseQuickSlot(index int, now time.Time, cooldown time.Duration) bool {
	if index < 0 || index >= len(c.quick) {
		return false
	}
	q := c.quick[index]
	if q.ItemID == "" || q.cooling {
		return false
	}
	if c.RemoveItem(q.ItemID, 1) != 1 {
		return false
	}
	if cooldown > 0 {
		q.cooling = true
		q.readyAt = now.Add(cooldown)
	}
	c.emit(Event{Kind: EventQuickSlotUsed, InventoryID: c.ID(), ItemID: q.ItemID, SlotIndex: index})
	return true
}

// TickCooldowns advances quick slot cooldowns to now, emitting a
// completion event for each slot that became ready. The engine has no
// timers; the game loop drives this.
func (c *CharacterInventory) TickCooldowns(now time.Time) {
	for i, q := range c.quick {
		if q.cooling && !now.Before(q.readyAt) {
			q.cooling = false
			c.emit(Event{Kind: EventQuickSlotCooldownDone, InventoryID: c.ID(), ItemID: q.ItemID, SlotIndex: i})
		}
	}
}

// QuickSlotReady reports whether the index is off cooldown.
func (c *CharacterInventory) QuickSlotReady(index int, now time.Time) bool {
	if index < 0 || index >= len(c.quick) {
		return false
	}
	q := c.quick[index]
	return !q.cooling || !now.Before(q.readyAt)
}

// CharacterSnapshot dumps the backpack plus the character extensions.
func (c *CharacterInventory) CharacterSnapshot() CharacterSnapshot {
	snap := CharacterSnapshot{
		InventorySnapshot:    c.Snapshot(),
		Currencies:           make(map[string]Currency, len(c.currencies)),
		AutoEquipBetterItems: c.autoEquipBetter,
		AutoEquipNewItems:    c.autoEquipNew,
	}
	for name, cur := range c.currencies {
		snap.Currencies[name] = *cur
	}
	for i, q := range c.quick {
		snap.QuickSlots = append(snap.QuickSlots, QuickSlotSnapshot{
			Index:   i,
			ItemID:  q.ItemID,
			IsEmpty: q.ItemID == "",
		})
	}
	return snap
}

// RestoreCharacter loads the backpack and the character extensions.
// Same best-effort contract as Inventory.Restore.
func (c *CharacterInventory) RestoreCharacter(ctx context.Context, snap CharacterSnapshot, resolve ItemResolver) bool {
	ok := c.Restore(ctx, snap.InventorySnapshot, resolve)
	for name, cur := range snap.Currencies {
		c.currencies[name] = &Currency{Amount: cur.Amount, Max: cur.Max}
	}
	for _, qs := range snap.QuickSlots {
		if qs.Index < 0 || qs.Index >= len(c.quick) || qs.IsEmpty {
			continue
		}
		c.quick[qs.Index].ItemID = qs.ItemID
	}
	c.autoEquipBetter = snap.AutoEquipBetterItems
	c.autoEquipNew = snap.AutoEquipNewItems
	return ok
}
