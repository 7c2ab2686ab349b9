package model

// Test item constructors shared across the package tests.

func testPotion() *Item {
	return &Item{
		TemplateID: "healing_potion",
		Name:       "Healing Potion",
		Category:   CategoryConsumable,
		Stackable:  true,
		MaxStack:   5,
		Weight:     0.5,
		Value:      10,
		Rarity:     RarityCommon,
	}
}

func testOre() *Item {
	return &Item{
		TemplateID: "iron_ore",
		Name:       "Iron Ore",
		Category:   CategoryMaterial,
		Stackable:  true,
		MaxStack:   50,
		Weight:     2,
		Value:      3,
		Rarity:     RarityCommon,
	}
}

func testSword() *Item {
	return &Item{
		TemplateID: "short_sword",
		Name:       "Short Sword",
		Category:   CategoryWeapon,
		EquipSlot:  EquipMainHand,
		Weight:     3,
		Value:      50,
		Rarity:     RarityCommon,
	}
}

func testGreatsword() *Item {
	return &Item{
		TemplateID: "greatsword",
		Name:       "Greatsword",
		Category:   CategoryWeapon,
		EquipSlot:  EquipMainHand,
		TwoHanded:  true,
		Weight:     7,
		Value:      120,
		Rarity:     RarityUncommon,
		GridW:      1,
		GridH:      3,
	}
}

func testShield() *Item {
	return &Item{
		TemplateID: "iron_buckler",
		Name:       "Iron Buckler",
		Category:   CategoryArmor,
		EquipSlot:  EquipOffHand,
		Weight:     4,
		Value:      35,
		Rarity:     RarityCommon,
	}
}

func testCuirass() *Item {
	return &Item{
		TemplateID: "wolf_cuirass",
		Name:       "Wolfhide Cuirass",
		Category:   CategoryArmor,
		EquipSlot:  EquipChest,
		Weight:     6,
		Value:      80,
		Rarity:     RarityRare,
		GridW:      2,
		GridH:      2,
	}
}
