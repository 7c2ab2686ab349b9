// Package factory instantiates item instances from catalog templates
// and applies randomization and quality transforms.
package factory

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dverbin/lootcore/internal/data"
	"github.com/dverbin/lootcore/internal/model"
)

// Factory creates item instances. The catalog is injected, never
// resolved from ambient state; the random source is injected so tests
// pin a seed.
type Factory struct {
	catalog data.Catalog
	rng     *rand.Rand
}

// New creates a factory. A nil rng gets a time-seeded source.
func New(catalog data.Catalog, rng *rand.Rand) *Factory {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Factory{catalog: catalog, rng: rng}
}

// Options customize item creation. Transforms apply in a fixed order:
// direct overrides, stat changes, effect/tag merges, randomization,
// quantity, quality.
type Options struct {
	Name   string        // override display name
	Value  int           // override monetary value when > 0
	Rarity *model.Rarity // override rarity tier

	StatOverrides map[string]float64
	StatDeltas    map[string]float64

	Effects []model.Effect
	Tags    []string

	// RandomizeLevel enables level-scaled randomization, roughly 1..10.
	RandomizeLevel int

	// Quantity of the created stack, clamped to the max stack size.
	// Zero means one.
	Quantity int

	// Quality applies the per-tier stat/value multiplier and raises
	// (never lowers) the rarity.
	Quality *model.Rarity
}

// CreateItem clones the catalog template and applies the options.
// Returns the instance and its stack quantity.
func (f *Factory) CreateItem(templateID string, opts Options) (*model.Item, int, error) {
	tmpl := f.catalog.ItemByID(templateID)
	if tmpl == nil {
		return nil, 0, fmt.Errorf("unknown item template %q", templateID)
	}
	item := tmpl.Clone()

	if opts.Name != "" {
		item.Name = opts.Name
	}
	if opts.Value > 0 {
		item.Value = opts.Value
	}
	if opts.Rarity != nil {
		item.Rarity = *opts.Rarity
	}

	if len(opts.StatDeltas) > 0 || len(opts.StatOverrides) > 0 {
		if item.Stats == nil {
			item.Stats = make(map[string]float64)
		}
		for k, v := range opts.StatDeltas {
			item.Stats[k] += v
		}
		for k, v := range opts.StatOverrides {
			item.Stats[k] = v
		}
	}

	item.Effects = append(item.Effects, opts.Effects...)
	item.Tags = append(item.Tags, opts.Tags...)

	if opts.RandomizeLevel > 0 {
		f.randomize(item, opts.RandomizeLevel)
	}

	quantity := opts.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if max := item.MaxStackSize(); quantity > max {
		quantity = max
	}

	if opts.Quality != nil {
		ApplyQuality(item, *opts.Quality)
	}

	return item, quantity, nil
}

// RarityForLevel maps a randomization level to a rarity tier.
func RarityForLevel(level int) model.Rarity {
	switch {
	case level >= 9:
		return model.RarityLegendary
	case level >= 7:
		return model.RarityEpic
	case level >= 5:
		return model.RarityRare
	case level >= 3:
		return model.RarityUncommon
	default:
		return model.RarityCommon
	}
}

// randomize applies the level-scaled transform: rarity from fixed
// thresholds, jittered stat scaling, naming for high tiers, a color
// random walk, value scaling and one secondary effect for high-level
// equippables.
func (f *Factory) randomize(item *model.Item, level int) {
	if level < 1 {
		level = 1
	}
	if level > 10 {
		level = 10
	}

	item.Rarity = RarityForLevel(level)

	mult := 1 + 0.08*float64(level) + (f.rng.Float64()*0.2 - 0.1)
	if mult < 0.1 {
		mult = 0.1
	}
	for k, v := range item.Stats {
		item.Stats[k] = v * mult
	}

	if item.Rarity >= model.RarityEpic {
		item.Name = f.composeName(item.Name)
	}

	if item.Visual != nil {
		step := 0.03 * float64(level)
		for i := range item.Visual.Color {
			c := item.Visual.Color[i] + (f.rng.Float64()*2-1)*step
			item.Visual.Color[i] = clamp01(c)
		}
	}

	item.Value = int(float64(item.Value) * (1 + 0.25*float64(level) + f.rng.Float64()*0.25))

	if level >= 6 && item.IsEquippable() {
		item.Effects = append(item.Effects, f.rollSecondaryEffect(level))
	}
}

var namePrefixes = []string{
	"Ancient", "Gleaming", "Cursed", "Blessed", "Runed", "Savage", "Stormforged",
}

var nameSuffixes = []string{
	"of the Bear", "of Embers", "of the Deep", "of Ruin", "of Dawn", "of the Fox",
}

func (f *Factory) composeName(base string) string {
	name := namePrefixes[f.rng.IntN(len(namePrefixes))] + " " + base
	if f.rng.Float64() < 0.5 {
		name += " " + nameSuffixes[f.rng.IntN(len(nameSuffixes))]
	}
	return name
}

// secondaryEffects is the fixed archetype catalog. Base magnitudes
// scale with level.
var secondaryEffects = []model.Effect{
	{Type: model.EffectDamagePercent, Magnitude: 2},
	{Type: model.EffectCritChance, Magnitude: 1.5},
	{Type: model.EffectHealthRegen, Magnitude: 1},
	{Type: model.EffectMoveSpeed, Magnitude: 1},
	{Type: model.EffectElementalDamage, Magnitude: 3},
	{Type: model.EffectThorns, Magnitude: 2},
	{Type: model.EffectLifeSteal, Magnitude: 0.5},
}

func (f *Factory) rollSecondaryEffect(level int) model.Effect {
	e := secondaryEffects[f.rng.IntN(len(secondaryEffects))]
	e.Magnitude *= 0.5 + 0.15*float64(level)
	return e
}

// qualityMultipliers is the fixed per-tier stat/value scaling table.
var qualityMultipliers = map[model.Rarity]float64{
	model.RarityJunk:      0.5,
	model.RarityCommon:    1.0,
	model.RarityUncommon:  1.15,
	model.RarityRare:      1.35,
	model.RarityEpic:      1.6,
	model.RarityLegendary: 2.0,
}

// ApplyQuality rescales stats and value by the tier multiplier and
// raises the item's rarity when the requested quality outranks it.
func ApplyQuality(item *model.Item, quality model.Rarity) {
	mult, ok := qualityMultipliers[quality]
	if !ok {
		return
	}
	for k, v := range item.Stats {
		item.Stats[k] = v * mult
	}
	item.Value = int(float64(item.Value) * mult)
	if quality > item.Rarity {
		item.Rarity = quality
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
