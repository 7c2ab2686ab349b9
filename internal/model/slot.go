package model

import "slices"

// SlotHost exposes sibling lookup to a slot. Equip slots need it for the
// two-handed weapon exclusivity rule; plain storage slots leave it nil.
type SlotHost interface {
	GetSlotByType(EquipSlotType) *Slot
}

// Attachment describes where an equipped item binds on the character
// skeleton. Purely descriptive, consumed by the rendering layer.
type Attachment struct {
	Bone     string
	Offset   [3]float64
	Rotation [3]float64
}

// Slot is the atomic unit of storage: at most one item identity and a
// bounded quantity. Invariant: quantity == 0 iff the item reference is
// absent, and quantity never exceeds the bound item's max stack size.
type Slot struct {
	notifier

	Index int
	X, Y  int

	item     *Item
	quantity int

	locked    bool
	allowed   []Category // empty = any category
	denied    []Category
	equipType EquipSlotType // EquipNone for plain storage slots
	attach    *Attachment

	host SlotHost
}

// NewSlot creates a plain storage slot at the given linear index.
func NewSlot(index int) *Slot {
	return &Slot{Index: index, X: index}
}

// NewGridSlot creates a storage slot at grid coordinates.
func NewGridSlot(index, x, y int) *Slot {
	return &Slot{Index: index, X: x, Y: y}
}

// NewEquipSlot creates an equipment slot of the given type.
func NewEquipSlot(equipType EquipSlotType, attach *Attachment) *Slot {
	return &Slot{Index: int(equipType), equipType: equipType, attach: attach}
}

// Item returns the bound item, or nil.
func (s *Slot) Item() *Item { return s.item }

// Quantity returns the held quantity.
func (s *Slot) Quantity() int { return s.quantity }

// IsEmpty reports whether the slot holds nothing.
func (s *Slot) IsEmpty() bool { return s.item == nil }

// EquipType returns the slot's equipment type, EquipNone for storage.
func (s *Slot) EquipType() EquipSlotType { return s.equipType }

// Attachment returns the skeleton binding metadata, or nil.
func (s *Slot) Attachment() *Attachment { return s.attach }

// Locked reports the lock flag.
func (s *Slot) Locked() bool { return s.locked }

// SetLocked toggles the lock flag. A locked slot accepts nothing.
func (s *Slot) SetLocked(locked bool) { s.locked = locked }

// SetHost wires the owning inventory for sibling lookups.
func (s *Slot) SetHost(h SlotHost) { s.host = h }

// SetAllowedCategories restricts the slot to the given categories.
func (s *Slot) SetAllowedCategories(cats ...Category) { s.allowed = cats }

// SetDeniedCategories rejects the given categories.
func (s *Slot) SetDeniedCategories(cats ...Category) { s.denied = cats }

// CapacityFor returns how many units of the item one slot may hold.
func (s *Slot) CapacityFor(item *Item) int {
	if item == nil {
		return 1
	}
	return item.MaxStackSize()
}

// Capacity returns the capacity for the currently bound item, 1 if empty.
func (s *Slot) Capacity() int { return s.CapacityFor(s.item) }

// FreeCapacity returns how many more units of the bound item fit.
func (s *Slot) FreeCapacity() int {
	if s.item == nil {
		return 0
	}
	return s.Capacity() - s.quantity
}

// CanAccept reports whether the slot would accept the item: lock state,
// category allow/deny lists, equip affinity and the two-handed weapon
// exclusivity rule. A main-hand slot rejects a two-handed weapon while
// the off-hand is occupied; an off-hand slot rejects anything while a
// two-handed weapon is equipped in the main hand.
func (s *Slot) CanAccept(item *Item) bool {
	if item == nil || s.locked {
		return false
	}
	if len(s.denied) > 0 && slices.Contains(s.denied, item.Category) {
		return false
	}
	if len(s.allowed) > 0 && !slices.Contains(s.allowed, item.Category) {
		return false
	}
	if s.equipType != EquipNone {
		if item.EquipSlot != s.equipType {
			return false
		}
		if s.equipType == EquipMainHand && item.TwoHanded && s.host != nil {
			if off := s.host.GetSlotByType(EquipOffHand); off != nil && !off.IsEmpty() {
				return false
			}
		}
		if s.equipType == EquipOffHand && s.host != nil {
			if main := s.host.GetSlotByType(EquipMainHand); main != nil &&
				!main.IsEmpty() && main.Item().TwoHanded {
				return false
			}
		}
	}
	return true
}

// SetItem binds the item with the given quantity. Fails when the slot is
// occupied by a different stack or rejects the item. Quantity is clamped
// to the item's max stack size.
func (s *Slot) SetItem(item *Item, quantity int) bool {
	if item == nil || quantity <= 0 {
		return false
	}
	if s.item != nil && !s.item.CanStackWith(item) {
		return false
	}
	if !s.CanAccept(item) {
		return false
	}
	if max := item.MaxStackSize(); quantity > max {
		quantity = max
	}
	s.item = item
	s.quantity = quantity
	s.emitChanged()
	return true
}

// AddQuantity grows the stack and returns the remainder that did not
// fit. An empty slot cannot grow: the full amount comes back.
func (s *Slot) AddQuantity(amount int) int {
	if amount <= 0 {
		return 0
	}
	if s.item == nil {
		return amount
	}
	space := s.FreeCapacity()
	if space <= 0 {
		return amount
	}
	added := min(amount, space)
	s.quantity += added
	s.emitChanged()
	return amount - added
}

// RemoveQuantity shrinks the stack and returns the amount actually
// removed. Draining to zero clears the item reference.
func (s *Slot) RemoveQuantity(amount int) int {
	if amount <= 0 || s.item == nil {
		return 0
	}
	removed := min(amount, s.quantity)
	s.quantity -= removed
	if s.quantity == 0 {
		s.item = nil
	}
	s.emitChanged()
	return removed
}

// Clear empties the slot unconditionally.
func (s *Slot) Clear() {
	if s.item == nil {
		return
	}
	s.item = nil
	s.quantity = 0
	s.emitChanged()
}

// TransferTo moves up to amount units into the other slot. Both sides
// are validated before either mutates; on any validation failure the
// call returns false with both slots untouched.
func (s *Slot) TransferTo(other *Slot, amount int) bool {
	if other == nil || other == s || s.item == nil || amount <= 0 {
		return false
	}
	amount = min(amount, s.quantity)

	var space int
	switch {
	case other.item == nil:
		if !other.CanAccept(s.item) {
			return false
		}
		space = other.CapacityFor(s.item)
	case other.item.CanStackWith(s.item):
		space = other.FreeCapacity()
	default:
		return false
	}
	if space <= 0 {
		return false
	}

	moved := min(amount, space)
	item := s.item
	if other.item == nil {
		// Splitting a stack gives the new slot its own instance.
		if moved < s.quantity {
			item = item.Clone()
		}
		if !other.SetItem(item, moved) {
			return false
		}
	} else {
		other.quantity += moved
		other.emitChanged()
	}
	s.quantity -= moved
	if s.quantity == 0 {
		s.item = nil
	}
	s.emitChanged()
	return true
}

// SwapWith exchanges the contents of two slots. Each side must accept
// the other's item; on rejection neither slot changes.
func (s *Slot) SwapWith(other *Slot) bool {
	if other == nil || other == s {
		return false
	}
	if other.item != nil && !s.CanAccept(other.item) {
		return false
	}
	if s.item != nil && !other.CanAccept(s.item) {
		return false
	}
	s.item, other.item = other.item, s.item
	s.quantity, other.quantity = other.quantity, s.quantity
	s.emitChanged()
	other.emitChanged()
	return true
}

func (s *Slot) emitChanged() {
	e := Event{Kind: EventSlotChanged, SlotIndex: s.Index, Quantity: s.quantity}
	if s.item != nil {
		e.ItemID = s.item.TemplateID
	}
	s.emit(e)
}
