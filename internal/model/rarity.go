package model

// Rarity — ordered quality tier of an item. Higher tiers scale stats and
// value and drive loot distribution.
type Rarity int32

const (
	RarityJunk Rarity = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// String returns human-readable rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityJunk:
		return "Junk"
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// Rarities lists all tiers in ascending order. Used by loot quality
// distribution and config defaults.
func Rarities() []Rarity {
	return []Rarity{
		RarityJunk,
		RarityCommon,
		RarityUncommon,
		RarityRare,
		RarityEpic,
		RarityLegendary,
	}
}
