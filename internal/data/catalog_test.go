package data

import (
	"testing"

	"github.com/dverbin/lootcore/internal/model"
)

func TestLoad_ItemLookups(t *testing.T) {
	c := Load()

	item := c.ItemByID("short_sword")
	if item == nil {
		t.Fatal("short_sword should exist")
	}
	if item.Category != model.CategoryWeapon {
		t.Errorf("category = %q, want weapon", item.Category)
	}
	if c.ItemByID("no_such_item") != nil {
		t.Error("unknown id should return nil")
	}
}

func TestLoad_CategoriesCovered(t *testing.T) {
	c := Load()

	// the loot generator draws from every non-quest category
	for _, cat := range []model.Category{
		model.CategoryWeapon,
		model.CategoryArmor,
		model.CategoryAccessory,
		model.CategoryConsumable,
		model.CategoryMaterial,
	} {
		if len(c.ItemsByCategory(cat)) == 0 {
			t.Errorf("category %q has no templates", cat)
		}
	}
}

func TestLoad_TemplatesAreValid(t *testing.T) {
	c := Load()

	for _, cat := range []model.Category{
		model.CategoryWeapon, model.CategoryArmor, model.CategoryAccessory,
		model.CategoryConsumable, model.CategoryMaterial, model.CategoryQuest,
	} {
		for _, item := range c.ItemsByCategory(cat) {
			if item.TemplateID == "" || item.Name == "" {
				t.Errorf("template %+v missing id or name", item)
			}
			if item.Weight < 0 {
				t.Errorf("%s: negative weight", item.TemplateID)
			}
			if item.Stackable && item.MaxStack < 2 {
				t.Errorf("%s: stackable with max stack %d", item.TemplateID, item.MaxStack)
			}
			if item.IsEquippable() && item.Stackable {
				t.Errorf("%s: equippable items must not stack", item.TemplateID)
			}
		}
	}
}

func TestLoad_LootTablesResolve(t *testing.T) {
	c := Load()

	tables := c.LootTables()
	if len(tables) == 0 {
		t.Fatal("no loot tables loaded")
	}
	for _, table := range tables {
		if table.MinRolls < 1 || table.MaxRolls < table.MinRolls {
			t.Errorf("%s: bad roll bounds %d..%d", table.ID, table.MinRolls, table.MaxRolls)
		}
		if table.TotalWeight() <= 0 {
			t.Errorf("%s: non-positive total weight", table.ID)
		}
		for _, e := range table.Entries {
			if c.ItemByID(e.ItemID) == nil {
				t.Errorf("%s: entry references unknown item %q", table.ID, e.ItemID)
			}
			if e.MinCount < 1 || e.MaxCount < e.MinCount {
				t.Errorf("%s/%s: bad count bounds %d..%d", table.ID, e.ItemID, e.MinCount, e.MaxCount)
			}
		}
	}
}

func TestLoad_EquipmentSets(t *testing.T) {
	c := Load()

	set := c.EquipmentSet("wolfhide")
	if set == nil {
		t.Fatal("wolfhide set should exist")
	}
	for _, piece := range set.Pieces {
		item := c.ItemByID(piece)
		if item == nil {
			t.Errorf("set references unknown item %q", piece)
			continue
		}
		if !item.IsEquippable() {
			t.Errorf("set piece %q is not equippable", piece)
		}
	}
	if c.EquipmentSet("no_such_set") != nil {
		t.Error("unknown set should return nil")
	}
}
