package model

// LootEntry is one weighted line of a loot table.
type LootEntry struct {
	ItemID   string
	Weight   float64
	MinCount int
	MaxCount int
}

// LootTable is a named set of weighted entries. Each roll draws one
// entry proportionally to its weight and realizes a count between the
// entry's bounds.
type LootTable struct {
	ID       string
	Entries  []LootEntry
	MinRolls int
	MaxRolls int
}

// TotalWeight sums the entry weights. Non-positive weights contribute
// nothing.
func (t *LootTable) TotalWeight() float64 {
	total := 0.0
	for _, e := range t.Entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}
