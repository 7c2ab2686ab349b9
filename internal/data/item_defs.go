package data

import "github.com/dverbin/lootcore/internal/model"

// itemDefs — bundled item templates. InstanceID stays empty on
// templates; the factory assigns one per created instance.
var itemDefs = []model.Item{
	{
		TemplateID: "short_sword",
		Name:       "Short Sword",
		Category:   model.CategoryWeapon,
		EquipSlot:  model.EquipMainHand,
		Weight:     3.5,
		Value:      120,
		Rarity:     model.RarityCommon,
		Stats:      map[string]float64{"damage": 12, "attack_speed": 1.2},
		Visual:     &model.Visual{Mesh: "sword_short", Texture: "steel", Color: [3]float64{0.75, 0.75, 0.78}},
	},
	{
		TemplateID: "greatsword",
		Name:       "Greatsword",
		Category:   model.CategoryWeapon,
		EquipSlot:  model.EquipMainHand,
		TwoHanded:  true,
		Weight:     9.0,
		Value:      420,
		Rarity:     model.RarityUncommon,
		GridW:      1,
		GridH:      3,
		Stats:      map[string]float64{"damage": 34, "attack_speed": 0.7},
		Visual:     &model.Visual{Mesh: "sword_great", Texture: "steel", Color: [3]float64{0.7, 0.7, 0.72}},
	},
	{
		TemplateID: "hunting_bow",
		Name:       "Hunting Bow",
		Category:   model.CategoryWeapon,
		EquipSlot:  model.EquipMainHand,
		TwoHanded:  true,
		Weight:     2.0,
		Value:      260,
		Rarity:     model.RarityCommon,
		GridW:      1,
		GridH:      2,
		Stats:      map[string]float64{"damage": 18, "attack_speed": 1.0, "range": 24},
		Visual:     &model.Visual{Mesh: "bow_hunting", Texture: "yew", Color: [3]float64{0.45, 0.3, 0.15}},
	},
	{
		TemplateID: "iron_buckler",
		Name:       "Iron Buckler",
		Category:   model.CategoryArmor,
		EquipSlot:  model.EquipOffHand,
		Weight:     4.0,
		Value:      95,
		Rarity:     model.RarityCommon,
		Stats:      map[string]float64{"armor": 8, "block": 12},
		Visual:     &model.Visual{Mesh: "shield_buckler", Texture: "iron", Color: [3]float64{0.6, 0.6, 0.62}},
	},
	{
		TemplateID: "leather_cap",
		Name:       "Leather Cap",
		Category:   model.CategoryArmor,
		EquipSlot:  model.EquipHead,
		Weight:     1.0,
		Value:      40,
		Rarity:     model.RarityCommon,
		Stats:      map[string]float64{"armor": 3},
		Visual:     &model.Visual{Mesh: "cap_leather", Texture: "leather", Color: [3]float64{0.5, 0.35, 0.2}},
	},
	{
		TemplateID: "wolf_cuirass",
		Name:       "Wolfhide Cuirass",
		Category:   model.CategoryArmor,
		EquipSlot:  model.EquipChest,
		Weight:     7.5,
		Value:      210,
		Rarity:     model.RarityUncommon,
		GridW:      2,
		GridH:      2,
		Stats:      map[string]float64{"armor": 14, "health": 20},
		Visual:     &model.Visual{Mesh: "cuirass_wolf", Texture: "hide", Color: [3]float64{0.4, 0.35, 0.3}},
	},
	{
		TemplateID: "wolf_greaves",
		Name:       "Wolfhide Greaves",
		Category:   model.CategoryArmor,
		EquipSlot:  model.EquipLegs,
		Weight:     4.5,
		Value:      140,
		Rarity:     model.RarityUncommon,
		Stats:      map[string]float64{"armor": 9, "health": 10},
		Visual:     &model.Visual{Mesh: "greaves_wolf", Texture: "hide", Color: [3]float64{0.4, 0.35, 0.3}},
	},
	{
		TemplateID: "wolf_boots",
		Name:       "Wolfhide Boots",
		Category:   model.CategoryArmor,
		EquipSlot:  model.EquipFeet,
		Weight:     2.0,
		Value:      85,
		Rarity:     model.RarityUncommon,
		Stats:      map[string]float64{"armor": 5, "move_speed": 2},
		Visual:     &model.Visual{Mesh: "boots_wolf", Texture: "hide", Color: [3]float64{0.38, 0.33, 0.28}},
	},
	{
		TemplateID: "silver_ring",
		Name:       "Silver Ring",
		Category:   model.CategoryAccessory,
		EquipSlot:  model.EquipFinger,
		Weight:     0.1,
		Value:      150,
		Rarity:     model.RarityUncommon,
		Stats:      map[string]float64{"luck": 2},
		Visual:     &model.Visual{Mesh: "ring_plain", Texture: "silver", Color: [3]float64{0.85, 0.85, 0.9}},
	},
	{
		TemplateID: "amber_amulet",
		Name:       "Amber Amulet",
		Category:   model.CategoryAccessory,
		EquipSlot:  model.EquipNeck,
		Weight:     0.2,
		Value:      300,
		Rarity:     model.RarityRare,
		Stats:      map[string]float64{"mana": 15, "health_regen": 1},
		Visual:     &model.Visual{Mesh: "amulet_round", Texture: "amber", Color: [3]float64{0.95, 0.65, 0.2}},
	},
	{
		TemplateID: "healing_potion",
		Name:       "Healing Potion",
		Category:   model.CategoryConsumable,
		Stackable:  true,
		MaxStack:   10,
		Weight:     0.5,
		Value:      25,
		Rarity:     model.RarityCommon,
		Stats:      map[string]float64{"heal": 50},
		Visual:     &model.Visual{Mesh: "bottle_round", Texture: "glass", Color: [3]float64{0.8, 0.1, 0.15}},
	},
	{
		TemplateID: "mana_potion",
		Name:       "Mana Potion",
		Category:   model.CategoryConsumable,
		Stackable:  true,
		MaxStack:   10,
		Weight:     0.5,
		Value:      30,
		Rarity:     model.RarityCommon,
		Stats:      map[string]float64{"mana_restore": 40},
		Visual:     &model.Visual{Mesh: "bottle_round", Texture: "glass", Color: [3]float64{0.15, 0.2, 0.85}},
	},
	{
		TemplateID: "dried_meat",
		Name:       "Dried Meat",
		Category:   model.CategoryConsumable,
		Stackable:  true,
		MaxStack:   20,
		Weight:     0.3,
		Value:      8,
		Rarity:     model.RarityJunk,
		Stats:      map[string]float64{"heal": 10},
		Visual:     &model.Visual{Mesh: "food_strip", Texture: "meat", Color: [3]float64{0.55, 0.25, 0.15}},
	},
	{
		TemplateID: "iron_ore",
		Name:       "Iron Ore",
		Category:   model.CategoryMaterial,
		Stackable:  true,
		MaxStack:   50,
		Weight:     2.0,
		Value:      12,
		Rarity:     model.RarityCommon,
		Visual:     &model.Visual{Mesh: "ore_chunk", Texture: "iron", Color: [3]float64{0.45, 0.42, 0.4}},
	},
	{
		TemplateID: "wolf_pelt",
		Name:       "Wolf Pelt",
		Category:   model.CategoryMaterial,
		Stackable:  true,
		MaxStack:   25,
		Weight:     1.0,
		Value:      18,
		Rarity:     model.RarityCommon,
		Visual:     &model.Visual{Mesh: "pelt_folded", Texture: "fur", Color: [3]float64{0.5, 0.45, 0.4}},
	},
	{
		TemplateID: "arcane_dust",
		Name:       "Arcane Dust",
		Category:   model.CategoryMaterial,
		Stackable:  true,
		MaxStack:   99,
		Weight:     0.1,
		Value:      35,
		Rarity:     model.RarityUncommon,
		Visual:     &model.Visual{Mesh: "pouch_small", Texture: "cloth", Color: [3]float64{0.55, 0.3, 0.8}},
	},
	{
		TemplateID: "sealed_letter",
		Name:       "Sealed Letter",
		Category:   model.CategoryQuest,
		Weight:     0.1,
		Value:      0,
		Rarity:     model.RarityCommon,
		Visual:     &model.Visual{Mesh: "letter", Texture: "paper", Color: [3]float64{0.9, 0.88, 0.8}},
	},
}

// lootTableDefs — bundled loot tables referenced by id from the manager
// registry and the demo binary.
var lootTableDefs = []model.LootTable{
	{
		ID:       "forest_common",
		MinRolls: 1,
		MaxRolls: 3,
		Entries: []model.LootEntry{
			{ItemID: "dried_meat", Weight: 40, MinCount: 1, MaxCount: 3},
			{ItemID: "wolf_pelt", Weight: 30, MinCount: 1, MaxCount: 2},
			{ItemID: "healing_potion", Weight: 20, MinCount: 1, MaxCount: 2},
			{ItemID: "short_sword", Weight: 8, MinCount: 1, MaxCount: 1},
			{ItemID: "silver_ring", Weight: 2, MinCount: 1, MaxCount: 1},
		},
	},
	{
		ID:       "mine_depths",
		MinRolls: 2,
		MaxRolls: 4,
		Entries: []model.LootEntry{
			{ItemID: "iron_ore", Weight: 50, MinCount: 2, MaxCount: 6},
			{ItemID: "arcane_dust", Weight: 25, MinCount: 1, MaxCount: 4},
			{ItemID: "mana_potion", Weight: 15, MinCount: 1, MaxCount: 2},
			{ItemID: "iron_buckler", Weight: 7, MinCount: 1, MaxCount: 1},
			{ItemID: "greatsword", Weight: 3, MinCount: 1, MaxCount: 1},
		},
	},
	{
		ID:       "wolfhide_cache",
		MinRolls: 1,
		MaxRolls: 2,
		Entries: []model.LootEntry{
			{ItemID: "wolf_cuirass", Weight: 30, MinCount: 1, MaxCount: 1},
			{ItemID: "wolf_greaves", Weight: 35, MinCount: 1, MaxCount: 1},
			{ItemID: "wolf_boots", Weight: 35, MinCount: 1, MaxCount: 1},
		},
	},
}

// equipmentSetDefs — bundled equipment sets.
var equipmentSetDefs = []model.EquipmentSet{
	{
		ID:     "wolfhide",
		Rarity: model.RarityUncommon,
		Pieces: []string{"wolf_cuirass", "wolf_greaves", "wolf_boots"},
	},
}
