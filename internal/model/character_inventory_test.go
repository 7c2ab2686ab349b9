package model

import (
	"context"
	"testing"
	"time"
)

func TestCharacterInventory_EquipUnequip(t *testing.T) {
	c := NewCharacterInventory("hero", "Hero", 10, 0, 0)
	c.AddItem(testSword(), 1)

	prev, ok := c.Equip("short_sword")
	if !ok || prev != nil {
		t.Fatalf("Equip = %v/%v, want nil/true", prev, ok)
	}
	if c.EquippedItem(EquipMainHand) == nil {
		t.Fatal("main hand should be occupied")
	}
	// the unit left the backpack
	if c.ItemCount("short_sword") != 0 {
		t.Errorf("backpack count = %d, want 0", c.ItemCount("short_sword"))
	}

	if !c.Unequip(EquipMainHand) {
		t.Fatal("Unequip failed")
	}
	if c.EquippedItem(EquipMainHand) != nil {
		t.Error("main hand should be empty")
	}
	if c.ItemCount("short_sword") != 1 {
		t.Errorf("backpack count = %d, want 1", c.ItemCount("short_sword"))
	}
}

func TestCharacterInventory_EquipReplacesPrevious(t *testing.T) {
	c := NewCharacterInventory("hero", "Hero", 10, 0, 0)
	c.AddItem(testSword(), 1)
	c.AddItem(testGreatsword(), 1)
	c.Equip("short_sword")

	prev, ok := c.Equip("greatsword")
	if !ok || prev == nil || prev.TemplateID != "short_sword" {
		t.Fatalf("Equip = %v/%v, want short_sword/true", prev, ok)
	}
	// the replaced sword went back to the backpack
	if c.ItemCount("short_sword") != 1 {
		t.Errorf("backpack count = %d, want 1", c.ItemCount("short_sword"))
	}
}

func TestCharacterInventory_TwoHandedExclusivity(t *testing.T) {
	t.Run("two-handed blocked by off-hand", func(t *testing.T) {
		c := NewCharacterInventory("hero", "Hero", 10, 0, 0)
		c.AddItem(testShield(), 1)
		c.AddItem(testGreatsword(), 1)
		c.Equip("iron_buckler")

		if _, ok := c.Equip("greatsword"); ok {
			t.Error("two-handed weapon must not equip while off-hand is occupied")
		}
	})

	t.Run("off-hand blocked by two-handed", func(t *testing.T) {
		c := NewCharacterInventory("hero", "Hero", 10, 0, 0)
		c.AddItem(testGreatsword(), 1)
		c.AddItem(testShield(), 1)
		c.Equip("greatsword")

		if _, ok := c.Equip("iron_buckler"); ok {
			t.Error("off-hand must not equip while a two-handed weapon is worn")
		}
		// unequipping the weapon unblocks the shield
		c.Unequip(EquipMainHand)
		if _, ok := c.Equip("iron_buckler"); !ok {
			t.Error("shield should equip after the two-handed weapon is removed")
		}
	})
}

func TestCharacterInventory_EquipRejectsFullBackpack(t *testing.T) {
	c := NewCharacterInventory("hero", "Hero", 2, 0, 0)
	c.AddItem(testSword(), 1)
	c.Equip("short_sword")
	c.AddItem(testGreatsword(), 1)
	c.AddItem(testShield(), 1)

	// the backpack is full, so there is no room for the replaced sword
	if _, ok := c.Equip("greatsword"); ok {
		t.Fatal("equip must fail when the replaced item has nowhere to go")
	}
	if c.EquippedItem(EquipMainHand).TemplateID != "short_sword" {
		t.Error("failed equip must keep the previous item worn")
	}
	if c.ItemCount("greatsword") != 1 {
		t.Error("failed equip must keep the candidate in the backpack")
	}

	// unequip also needs backpack room
	if c.Unequip(EquipMainHand) {
		t.Error("unequip must fail into a full backpack")
	}
}

func TestCharacterInventory_AutoEquip(t *testing.T) {
	c := NewCharacterInventory("hero", "Hero", 10, 0, 0)
	c.SetAutoEquip(true, true)

	c.AddItem(testSword(), 1) // common, value 50
	if got := c.EquippedItem(EquipMainHand); got == nil || got.TemplateID != "short_sword" {
		t.Fatal("new weapon should auto-equip into the free slot")
	}

	c.AddItem(testGreatsword(), 1) // uncommon outranks common
	if got := c.EquippedItem(EquipMainHand); got == nil || got.TemplateID != "greatsword" {
		t.Error("better weapon should replace the worn one")
	}

	worse := testSword()
	worse.Value = 1
	c.AddItem(worse, 1)
	if got := c.EquippedItem(EquipMainHand); got.TemplateID != "greatsword" {
		t.Error("worse weapon must not replace the worn one")
	}
}

func TestCharacterInventory_EquippedSetPieces(t *testing.T) {
	c := NewCharacterInventory("hero", "Hero", 10, 0, 0)
	set := EquipmentSet{ID: "wolfhide", Pieces: []string{"wolf_cuirass", "wolf_greaves", "wolf_boots"}}

	if got := c.EquippedSetPieces(set); got != 0 {
		t.Fatalf("EquippedSetPieces = %d, want 0", got)
	}

	c.AddItem(testCuirass(), 1)
	c.Equip("wolf_cuirass")
	if got := c.EquippedSetPieces(set); got != 1 {
		t.Errorf("EquippedSetPieces = %d, want 1", got)
	}
}

func TestCharacterInventory_CurrencyClamps(t *testing.T) {
	c := NewCharacterInventory("hero", "Hero", 10, 0, 0)
	c.SetCurrencyMax("gold", 100)

	if added := c.AddCurrency("gold", 150); added != 100 {
		t.Errorf("AddCurrency = %d, want 100", added)
	}
	if c.Currency("gold").Amount != 100 {
		t.Errorf("Amount = %d, want 100", c.Currency("gold").Amount)
	}

	if removed := c.RemoveCurrency("gold", 999); removed != 100 {
		t.Errorf("RemoveCurrency = %d, want 100", removed)
	}
	if c.Currency("gold").Amount != 0 {
		t.Errorf("Amount = %d, want 0", c.Currency("gold").Amount)
	}

	// unknown currency is inert
	if added := c.AddCurrency("gems", 5); added != 0 {
		t.Errorf("AddCurrency on unknown = %d, want 0", added)
	}

	// lowering the cap clamps the balance
	c.AddCurrency("gold", 80)
	c.SetCurrencyMax("gold", 50)
	if c.Currency("gold").Amount != 50 {
		t.Errorf("Amount after cap lowering = %d, want 50", c.Currency("gold").Amount)
	}
}

func TestCharacterInventory_QuickSlots(t *testing.T) {
	c := NewCharacterInventory("hero", "Hero", 10, 0, 4)
	c.AddItem(testPotion(), 3)

	if !c.SetQuickSlot(0, "healing_potion") {
		t.Fatal("SetQuickSlot failed")
	}
	if c.SetQuickSlot(9, "healing_potion") {
		t.Error("out-of-range index should fail")
	}

	now := time.Now()
	cooldown := 5 * time.Second

	if !c.UseQuickSlot(0, now, cooldown) {
		t.Fatal("UseQuickSlot failed")
	}
	if c.ItemCount("healing_potion") != 2 {
		t.Errorf("backpack count = %d, want 2", c.ItemCount("healing_potion"))
	}

	// cooling down: a second use is rejected
	if c.UseQuickSlot(0, now.Add(time.Second), cooldown) {
		t.Error("use during cooldown should fail")
	}
	if c.QuickSlotReady(0, now.Add(time.Second)) {
		t.Error("slot should not be ready during cooldown")
	}

	var done bool
	c.Subscribe(func(e Event) {
		if e.Kind == EventQuickSlotCooldownDone {
			done = true
		}
	})
	c.TickCooldowns(now.Add(cooldown))
	if !done {
		t.Error("missing cooldown completion event")
	}
	if !c.UseQuickSlot(0, now.Add(cooldown), cooldown) {
		t.Error("use after cooldown should succeed")
	}

	// draining the backpack makes the slot unusable but keeps the binding
	c.RemoveItem("healing_potion", 10)
	c.TickCooldowns(now.Add(2 * cooldown))
	if c.UseQuickSlot(0, now.Add(2*cooldown), 0) {
		t.Error("use without stock should fail")
	}
	if c.QuickSlotItem(0) != "healing_potion" {
		t.Error("binding should survive an empty backpack")
	}
}

func TestCharacterInventory_SnapshotRestore(t *testing.T) {
	c := NewCharacterInventory("hero", "Hero", 10, 0, 2)
	c.AddItem(testPotion(), 4)
	c.SetCurrencyMax("gold", 500)
	c.AddCurrency("gold", 120)
	c.SetQuickSlot(1, "healing_potion")
	c.SetAutoEquip(true, false)

	snap := c.CharacterSnapshot()

	restored := NewCharacterInventory("hero", "Hero", 10, 0, 2)
	ok := restored.RestoreCharacter(t.Context(), snap, func(_ context.Context, id string) (*Item, error) {
		if id == "healing_potion" {
			return testPotion(), nil
		}
		return nil, errUnknownItem
	})
	if !ok {
		t.Fatal("RestoreCharacter reported failure")
	}
	if restored.ItemCount("healing_potion") != 4 {
		t.Errorf("restored potions = %d, want 4", restored.ItemCount("healing_potion"))
	}
	if restored.Currency("gold").Amount != 120 || restored.Currency("gold").Max != 500 {
		t.Errorf("restored gold = %+v, want 120/500", restored.Currency("gold"))
	}
	if restored.QuickSlotItem(1) != "healing_potion" {
		t.Error("quick slot binding not restored")
	}
}
