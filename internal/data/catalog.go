package data

import (
	"log/slog"

	"github.com/dverbin/lootcore/internal/model"
)

// Catalog is the read-only item database the engine queries by
// identifier. Content authoring and loading live outside the core;
// this package ships a static catalog built from Go literals.
type Catalog interface {
	ItemByID(id string) *model.Item
	ItemsByCategory(c model.Category) []*model.Item
	LootTables() []*model.LootTable
	EquipmentSet(id string) *model.EquipmentSet
}

// Static is the literal-backed Catalog implementation.
type Static struct {
	items      map[string]*model.Item
	byCategory map[model.Category][]*model.Item
	tables     map[string]*model.LootTable
	tableOrder []string
	sets       map[string]*model.EquipmentSet
}

// Load builds the static catalog from the bundled definitions.
func Load() *Static {
	c := &Static{
		items:      make(map[string]*model.Item, len(itemDefs)),
		byCategory: make(map[model.Category][]*model.Item),
		tables:     make(map[string]*model.LootTable, len(lootTableDefs)),
		sets:       make(map[string]*model.EquipmentSet, len(equipmentSetDefs)),
	}
	for i := range itemDefs {
		it := &itemDefs[i]
		c.items[it.TemplateID] = it
		c.byCategory[it.Category] = append(c.byCategory[it.Category], it)
	}
	for i := range lootTableDefs {
		t := &lootTableDefs[i]
		c.tables[t.ID] = t
		c.tableOrder = append(c.tableOrder, t.ID)
	}
	for i := range equipmentSetDefs {
		s := &equipmentSetDefs[i]
		c.sets[s.ID] = s
	}
	slog.Info("loaded item catalog",
		"items", len(c.items), "loot_tables", len(c.tables), "equipment_sets", len(c.sets))
	return c
}

// ItemByID returns the template for the identifier, nil when unknown.
// Callers must clone before mutating; templates are shared.
func (c *Static) ItemByID(id string) *model.Item {
	return c.items[id]
}

// ItemsByCategory returns every template of the category.
func (c *Static) ItemsByCategory(cat model.Category) []*model.Item {
	return c.byCategory[cat]
}

// LootTables returns all bundled loot tables in definition order.
func (c *Static) LootTables() []*model.LootTable {
	out := make([]*model.LootTable, 0, len(c.tableOrder))
	for _, id := range c.tableOrder {
		out = append(out, c.tables[id])
	}
	return out
}

// LootTableByID returns the named table, nil when unknown.
func (c *Static) LootTableByID(id string) *model.LootTable {
	return c.tables[id]
}

// EquipmentSet returns the named set, nil when unknown.
func (c *Static) EquipmentSet(id string) *model.EquipmentSet {
	return c.sets[id]
}
