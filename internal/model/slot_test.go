package model

import "testing"

func TestSlot_SetItem(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(*Slot)
		item     *Item
		quantity int
		want     bool
		wantQty  int
	}{
		{
			name:     "empty slot accepts item",
			item:     testPotion(),
			quantity: 3,
			want:     true,
			wantQty:  3,
		},
		{
			name:     "quantity clamped to max stack",
			item:     testPotion(),
			quantity: 99,
			want:     true,
			wantQty:  5,
		},
		{
			name:     "non-stackable clamped to one",
			item:     testSword(),
			quantity: 4,
			want:     true,
			wantQty:  1,
		},
		{
			name:     "zero quantity rejected",
			item:     testPotion(),
			quantity: 0,
			want:     false,
		},
		{
			name:     "nil item rejected",
			item:     nil,
			quantity: 1,
			want:     false,
		},
		{
			name:     "locked slot rejects",
			prepare:  func(s *Slot) { s.SetLocked(true) },
			item:     testPotion(),
			quantity: 1,
			want:     false,
		},
		{
			name:     "occupied by different item rejects",
			prepare:  func(s *Slot) { s.SetItem(testSword(), 1) },
			item:     testPotion(),
			quantity: 1,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlot(0)
			if tt.prepare != nil {
				tt.prepare(s)
			}
			got := s.SetItem(tt.item, tt.quantity)
			if got != tt.want {
				t.Fatalf("SetItem() = %v, want %v", got, tt.want)
			}
			if tt.want && s.Quantity() != tt.wantQty {
				t.Errorf("Quantity() = %d, want %d", s.Quantity(), tt.wantQty)
			}
		})
	}
}

func TestSlot_CategoryFilters(t *testing.T) {
	s := NewSlot(0)
	s.SetAllowedCategories(CategoryConsumable)
	if s.CanAccept(testSword()) {
		t.Error("allow list should reject weapon")
	}
	if !s.CanAccept(testPotion()) {
		t.Error("allow list should accept consumable")
	}

	s = NewSlot(0)
	s.SetDeniedCategories(CategoryWeapon)
	if s.CanAccept(testSword()) {
		t.Error("deny list should reject weapon")
	}
	if !s.CanAccept(testPotion()) {
		t.Error("deny list should accept consumable")
	}
}

func TestSlot_AddRemoveQuantity(t *testing.T) {
	s := NewSlot(0)

	// empty slot cannot grow
	if rem := s.AddQuantity(3); rem != 3 {
		t.Errorf("AddQuantity on empty = %d, want 3", rem)
	}

	s.SetItem(testPotion(), 3)
	if rem := s.AddQuantity(4); rem != 2 {
		t.Errorf("AddQuantity remainder = %d, want 2", rem)
	}
	if s.Quantity() != 5 {
		t.Errorf("Quantity = %d, want 5", s.Quantity())
	}

	if got := s.RemoveQuantity(2); got != 2 {
		t.Errorf("RemoveQuantity = %d, want 2", got)
	}
	// removing more than held drains the stack and clears the item
	if got := s.RemoveQuantity(10); got != 3 {
		t.Errorf("RemoveQuantity = %d, want 3", got)
	}
	if !s.IsEmpty() {
		t.Error("slot should be empty after draining")
	}
}

func TestSlot_TransferTo(t *testing.T) {
	t.Run("split into empty slot", func(t *testing.T) {
		src, dst := NewSlot(0), NewSlot(1)
		src.SetItem(testPotion(), 5)

		if !src.TransferTo(dst, 2) {
			t.Fatal("TransferTo failed")
		}
		if src.Quantity() != 3 || dst.Quantity() != 2 {
			t.Errorf("quantities = %d/%d, want 3/2", src.Quantity(), dst.Quantity())
		}
		// a split must not share the item instance
		if src.Item() == dst.Item() {
			t.Error("split stacks share one item instance")
		}
	})

	t.Run("merge into matching stack", func(t *testing.T) {
		src, dst := NewSlot(0), NewSlot(1)
		src.SetItem(testPotion(), 4)
		dst.SetItem(testPotion(), 3)

		if !src.TransferTo(dst, 4) {
			t.Fatal("TransferTo failed")
		}
		// dst had room for 2
		if src.Quantity() != 2 || dst.Quantity() != 5 {
			t.Errorf("quantities = %d/%d, want 2/5", src.Quantity(), dst.Quantity())
		}
	})

	t.Run("mismatched stacks rejected untouched", func(t *testing.T) {
		src, dst := NewSlot(0), NewSlot(1)
		src.SetItem(testPotion(), 4)
		dst.SetItem(testSword(), 1)

		if src.TransferTo(dst, 1) {
			t.Fatal("TransferTo should fail")
		}
		if src.Quantity() != 4 || dst.Quantity() != 1 {
			t.Error("failed transfer must leave both slots untouched")
		}
	})

	t.Run("full move clears source", func(t *testing.T) {
		src, dst := NewSlot(0), NewSlot(1)
		src.SetItem(testPotion(), 3)

		if !src.TransferTo(dst, 3) {
			t.Fatal("TransferTo failed")
		}
		if !src.IsEmpty() {
			t.Error("source should be empty after full move")
		}
	})
}

func TestSlot_SwapWith(t *testing.T) {
	a, b := NewSlot(0), NewSlot(1)
	a.SetItem(testPotion(), 5)
	b.SetItem(testSword(), 1)

	if !a.SwapWith(b) {
		t.Fatal("SwapWith failed")
	}
	if a.Item().TemplateID != "short_sword" || b.Item().TemplateID != "healing_potion" {
		t.Error("contents not swapped")
	}
	if a.Quantity() != 1 || b.Quantity() != 5 {
		t.Errorf("quantities = %d/%d, want 1/5", a.Quantity(), b.Quantity())
	}

	// swapping into a slot that rejects the item fails untouched
	c := NewSlot(2)
	c.SetAllowedCategories(CategoryConsumable)
	if a.SwapWith(c) {
		t.Fatal("SwapWith should fail against allow list")
	}
	if a.IsEmpty() {
		t.Error("failed swap must not mutate")
	}
}

func TestSlot_Events(t *testing.T) {
	s := NewSlot(7)
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	s.SetItem(testPotion(), 2)
	s.AddQuantity(1)
	s.Clear()

	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for _, e := range events {
		if e.Kind != EventSlotChanged {
			t.Errorf("event kind = %q, want %q", e.Kind, EventSlotChanged)
		}
		if e.SlotIndex != 7 {
			t.Errorf("event slot index = %d, want 7", e.SlotIndex)
		}
	}
	if events[2].Quantity != 0 {
		t.Error("clear event should report zero quantity")
	}
}
