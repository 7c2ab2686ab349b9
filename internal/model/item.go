package model

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Category defines the broad item classification used by slot filters,
// sorting and loot category weights.
type Category string

const (
	CategoryWeapon     Category = "weapon"
	CategoryArmor      Category = "armor"
	CategoryAccessory  Category = "accessory"
	CategoryConsumable Category = "consumable"
	CategoryMaterial   Category = "material"
	CategoryQuest      Category = "quest"
)

// EquipSlotType identifies a typed equipment slot on a character.
type EquipSlotType int32

const (
	EquipNone EquipSlotType = iota
	EquipMainHand
	EquipOffHand
	EquipHead
	EquipChest
	EquipLegs
	EquipFeet
	EquipHands
	EquipNeck
	EquipFinger
	EquipTotalSlots
)

// String returns human-readable equip slot name.
func (e EquipSlotType) String() string {
	switch e {
	case EquipNone:
		return "None"
	case EquipMainHand:
		return "MainHand"
	case EquipOffHand:
		return "OffHand"
	case EquipHead:
		return "Head"
	case EquipChest:
		return "Chest"
	case EquipLegs:
		return "Legs"
	case EquipFeet:
		return "Feet"
	case EquipHands:
		return "Hands"
	case EquipNeck:
		return "Neck"
	case EquipFinger:
		return "Finger"
	default:
		return "Unknown"
	}
}

// EffectType names a secondary effect archetype an item can carry.
type EffectType string

const (
	EffectDamagePercent   EffectType = "damage_percent"
	EffectCritChance      EffectType = "crit_chance"
	EffectHealthRegen     EffectType = "health_regen"
	EffectMoveSpeed       EffectType = "move_speed"
	EffectElementalDamage EffectType = "elemental_damage"
	EffectThorns          EffectType = "thorns"
	EffectLifeSteal       EffectType = "life_steal"
)

// Effect is a passive modifier attached to an item.
type Effect struct {
	Type      EffectType
	Magnitude float64
}

// Visual is the descriptor consumed by the rendering layer. The engine
// treats it as opaque data apart from color randomization.
type Visual struct {
	Mesh    string
	Texture string
	Color   [3]float64 // RGB in [0,1]
}

// EquipmentSet describes a named set of items granting bonuses when worn
// together. Supplied by the catalog.
type EquipmentSet struct {
	ID     string
	Rarity Rarity
	Pieces []string // template IDs
}

// Item is a concrete item instance. Templates live in the catalog; the
// factory clones them per instance, so mutating an Item never touches
// catalog data.
type Item struct {
	TemplateID string
	InstanceID string // unique per instance, assigned by the factory
	Name       string
	Category   Category
	EquipSlot  EquipSlotType // EquipNone for non-equippable items
	TwoHanded  bool

	Stackable bool
	MaxStack  int

	Weight float64 // per unit
	Value  int     // monetary value per unit
	Rarity Rarity

	// Grid footprint in cells. Zero values mean 1x1.
	GridW, GridH int

	Stats   map[string]float64
	Effects []Effect
	Tags    []string // modifiers that participate in the stacking key
	Visual  *Visual
}

// MaxStackSize returns the effective stack bound: 1 for non-stackable
// items and for templates that never set MaxStack.
func (it *Item) MaxStackSize() int {
	if !it.Stackable || it.MaxStack < 1 {
		return 1
	}
	return it.MaxStack
}

// FootprintW returns the grid width of the item, at least 1.
func (it *Item) FootprintW() int {
	if it.GridW < 1 {
		return 1
	}
	return it.GridW
}

// FootprintH returns the grid height of the item, at least 1.
func (it *Item) FootprintH() int {
	if it.GridH < 1 {
		return 1
	}
	return it.GridH
}

// StackKey returns the stacking identity: template ID plus any modifier
// tags. Two instances merge into one stack iff their keys match.
func (it *Item) StackKey() string {
	if len(it.Tags) == 0 {
		return it.TemplateID
	}
	tags := slices.Clone(it.Tags)
	slices.Sort(tags)
	return it.TemplateID + "|" + strings.Join(tags, ",")
}

// CanStackWith reports whether two instances may share a slot.
func (it *Item) CanStackWith(other *Item) bool {
	if other == nil || !it.Stackable || !other.Stackable {
		return false
	}
	return it.StackKey() == other.StackKey()
}

// IsEquippable reports whether the item binds to an equip slot.
func (it *Item) IsEquippable() bool {
	return it.EquipSlot != EquipNone
}

// Clone returns a deep copy with a fresh instance ID.
func (it *Item) Clone() *Item {
	cp := *it
	cp.InstanceID = uuid.NewString()
	if it.Stats != nil {
		cp.Stats = make(map[string]float64, len(it.Stats))
		for k, v := range it.Stats {
			cp.Stats[k] = v
		}
	}
	cp.Effects = slices.Clone(it.Effects)
	cp.Tags = slices.Clone(it.Tags)
	if it.Visual != nil {
		v := *it.Visual
		cp.Visual = &v
	}
	return &cp
}
