package loot

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/dverbin/lootcore/internal/config"
	"github.com/dverbin/lootcore/internal/data"
	"github.com/dverbin/lootcore/internal/factory"
	"github.com/dverbin/lootcore/internal/model"
)

// EnemyType classifies a loot source for drop rate and count purposes.
type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemyElite
	EnemyBoss
)

func (t EnemyType) String() string {
	switch t {
	case EnemyElite:
		return "elite"
	case EnemyBoss:
		return "boss"
	default:
		return "normal"
	}
}

// GuaranteedDrop always yields loot regardless of the drop chance gate.
// Exactly one of ItemID or TableID should be set.
type GuaranteedDrop struct {
	ItemID  string
	TableID string
	Count   int
}

// Enemy describes a defeated loot source.
type Enemy struct {
	ID    string
	Name  string
	Level int
	Type  EnemyType

	// CategoryWeights overrides the per-type default category table
	// when non-empty.
	CategoryWeights []Weighted[model.Category]
	Guaranteed      []GuaranteedDrop
}

// Player describes the receiving side of a loot roll.
type Player struct {
	Level int
	Luck  float64
}

// Container is a lootable chest or cache.
type Container struct {
	ID    string
	Level int
	// BaseCount is the guaranteed number of items; zero means 2.
	BaseCount       int
	CategoryWeights []Weighted[model.Category]
}

// Quest describes a completed quest for reward generation.
type Quest struct {
	ID    string
	Level int
	// Difficulty scales both item count and quality, 0..1.
	Difficulty float64
}

// Options tunes a single generation call. Zero multipliers mean 1.0.
type Options struct {
	DropChanceMultiplier float64
	AmountMultiplier     float64
}

func (o Options) chanceMult() float64 {
	if o.DropChanceMultiplier <= 0 {
		return 1
	}
	return o.DropChanceMultiplier
}

func (o Options) amountMult() float64 {
	if o.AmountMultiplier <= 0 {
		return 1
	}
	return o.AmountMultiplier
}

// Drop is one generated item with its quantity. Quantity may exceed
// the item's max stack size; delivery splits it across slots.
type Drop struct {
	Item     *model.Item
	Quantity int
}

// Manager generates loot from enemies, containers, quests and loot
// tables. All randomness flows through the injected rng so tests can
// seed it.
type Manager struct {
	catalog data.Catalog
	factory *factory.Factory
	tuning  config.LootTuning
	rates   config.Rates
	rng     *rand.Rand

	listeners []model.Listener
}

// NewManager builds a loot manager. A nil rng gets a time-seeded one.
func NewManager(catalog data.Catalog, fct *factory.Factory, cfg config.Config, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Manager{
		catalog: catalog,
		factory: fct,
		tuning:  cfg.Loot,
		rates:   cfg.Rates,
		rng:     rng,
	}
}

// Subscribe registers a listener for loot_generated events.
func (m *Manager) Subscribe(l model.Listener) {
	m.listeners = append(m.listeners, l)
}

func (m *Manager) emit(e model.Event) {
	for _, l := range m.listeners {
		l(e)
	}
}

// Default category weight tables per enemy type. Tougher enemies bias
// toward equipment.
var (
	normalCategoryWeights = []Weighted[model.Category]{
		{Option: model.CategoryMaterial, Weight: 40},
		{Option: model.CategoryConsumable, Weight: 30},
		{Option: model.CategoryWeapon, Weight: 15},
		{Option: model.CategoryArmor, Weight: 12},
		{Option: model.CategoryAccessory, Weight: 3},
	}
	eliteCategoryWeights = []Weighted[model.Category]{
		{Option: model.CategoryWeapon, Weight: 25},
		{Option: model.CategoryArmor, Weight: 25},
		{Option: model.CategoryConsumable, Weight: 20},
		{Option: model.CategoryMaterial, Weight: 20},
		{Option: model.CategoryAccessory, Weight: 10},
	}
	bossCategoryWeights = []Weighted[model.Category]{
		{Option: model.CategoryWeapon, Weight: 30},
		{Option: model.CategoryArmor, Weight: 30},
		{Option: model.CategoryAccessory, Weight: 20},
		{Option: model.CategoryConsumable, Weight: 10},
		{Option: model.CategoryMaterial, Weight: 10},
	}
	containerCategoryWeights = []Weighted[model.Category]{
		{Option: model.CategoryConsumable, Weight: 35},
		{Option: model.CategoryMaterial, Weight: 35},
		{Option: model.CategoryWeapon, Weight: 12},
		{Option: model.CategoryArmor, Weight: 12},
		{Option: model.CategoryAccessory, Weight: 6},
	}
)

func categoryWeightsFor(t EnemyType) []Weighted[model.Category] {
	switch t {
	case EnemyElite:
		return eliteCategoryWeights
	case EnemyBoss:
		return bossCategoryWeights
	default:
		return normalCategoryWeights
	}
}

// GenerateEnemyLoot rolls loot for a defeated enemy. The drop chance
// gate combines the base rate, the level difference between enemy and
// player, the enemy type multiplier, player luck and the configured
// rate multipliers. Guaranteed drops bypass the gate entirely.
func (m *Manager) GenerateEnemyLoot(enemy Enemy, player Player, opts Options) []Drop {
	var drops []Drop

	chance := m.tuning.BaseDropChance
	chance *= 1 + m.tuning.LevelDiffFactor*float64(enemy.Level-player.Level)
	switch enemy.Type {
	case EnemyElite:
		chance *= m.tuning.EliteDropMultiplier
	case EnemyBoss:
		chance *= m.tuning.BossDropMultiplier
	}
	chance *= 1 + m.tuning.LuckDropFactor*player.Luck
	chance *= opts.chanceMult() * m.rates.DropChanceMultiplier
	if chance < 0 {
		chance = 0
	}

	if m.rng.Float64() < chance {
		count := m.rollCount(enemy.Type)
		weights := enemy.CategoryWeights
		if len(weights) == 0 {
			weights = categoryWeightsFor(enemy.Type)
		}
		for range count {
			if d, ok := m.rollCategoryDrop(weights, enemy.Level, player.Luck, 0, opts); ok {
				drops = append(drops, d)
			}
		}
	}

	for _, g := range enemy.Guaranteed {
		drops = append(drops, m.rollGuaranteed(g, opts)...)
	}

	m.emit(model.Event{Kind: model.EventLootGenerated, TargetID: enemy.ID, Quantity: len(drops)})
	slog.Debug("enemy loot generated",
		"enemy", enemy.ID, "type", enemy.Type.String(), "drops", len(drops))
	return drops
}

// GenerateContainerLoot rolls loot for an opened container. Containers
// always yield their base count and get a flat quality bonus.
func (m *Manager) GenerateContainerLoot(c Container, player Player, opts Options) []Drop {
	count := c.BaseCount
	if count <= 0 {
		count = 2
	}
	if m.rng.Float64() < m.tuning.ExtraChanceNormal {
		count++
	}

	weights := c.CategoryWeights
	if len(weights) == 0 {
		weights = containerCategoryWeights
	}

	var drops []Drop
	for range count {
		if d, ok := m.rollCategoryDrop(weights, c.Level, player.Luck, m.tuning.ChestQualityBonus, opts); ok {
			drops = append(drops, d)
		}
	}

	m.emit(model.Event{Kind: model.EventLootGenerated, TargetID: c.ID, Quantity: len(drops)})
	return drops
}

// GenerateQuestReward rolls a reward for a completed quest. Harder
// quests yield more items of higher quality.
func (m *Manager) GenerateQuestReward(q Quest, player Player, opts Options) []Drop {
	difficulty := math.Min(math.Max(q.Difficulty, 0), 1)
	count := 1 + int(math.Round(difficulty*2))
	bonus := m.tuning.QuestQualityBonus * (1 + difficulty)

	var drops []Drop
	for range count {
		if d, ok := m.rollCategoryDrop(bossCategoryWeights, q.Level, player.Luck, bonus, opts); ok {
			drops = append(drops, d)
		}
	}

	m.emit(model.Event{Kind: model.EventLootGenerated, TargetID: q.ID, Quantity: len(drops)})
	return drops
}

// RollTable realizes a loot table: a uniform number of rolls between
// MinRolls and MaxRolls, each drawing one entry proportionally to its
// weight with a uniform count between the entry's bounds. Entries that
// resolve to unknown items are skipped.
func (m *Manager) RollTable(t *model.LootTable, opts Options) []Drop {
	if t == nil || len(t.Entries) == 0 {
		return nil
	}

	rolls := m.uniformBetween(t.MinRolls, t.MaxRolls)
	entryWeights := make([]Weighted[model.LootEntry], 0, len(t.Entries))
	for _, e := range t.Entries {
		entryWeights = append(entryWeights, Weighted[model.LootEntry]{Option: e, Weight: e.Weight})
	}

	var drops []Drop
	for range rolls {
		entry, ok := Pick(m.rng, entryWeights)
		if !ok {
			break
		}
		count := m.uniformBetween(entry.MinCount, entry.MaxCount)
		count = m.scaleAmount(count, opts)
		if count <= 0 {
			continue
		}
		item, _, err := m.factory.CreateItem(entry.ItemID, factory.Options{})
		if err != nil {
			slog.Warn("loot table entry skipped", "table", t.ID, "item", entry.ItemID, "error", err)
			continue
		}
		drops = append(drops, Drop{Item: item, Quantity: count})
	}
	return drops
}

// RollTableByID resolves a table from the catalog and realizes it.
func (m *Manager) RollTableByID(tableID string, opts Options) ([]Drop, error) {
	for _, t := range m.catalog.LootTables() {
		if t.ID == tableID {
			return m.RollTable(t, opts), nil
		}
	}
	return nil, fmt.Errorf("unknown loot table %q", tableID)
}

func (m *Manager) rollGuaranteed(g GuaranteedDrop, opts Options) []Drop {
	if g.TableID != "" {
		drops, err := m.RollTableByID(g.TableID, opts)
		if err != nil {
			slog.Warn("guaranteed drop skipped", "table", g.TableID, "error", err)
			return nil
		}
		return drops
	}

	count := g.Count
	if count <= 0 {
		count = 1
	}
	item, _, err := m.factory.CreateItem(g.ItemID, factory.Options{})
	if err != nil {
		slog.Warn("guaranteed drop skipped", "item", g.ItemID, "error", err)
		return nil
	}
	return []Drop{{Item: item, Quantity: m.scaleAmount(count, opts)}}
}

// rollCount is the per-kill item count: a type-dependent base plus up
// to three extra Bernoulli trials, stopping at the first failure.
func (m *Manager) rollCount(t EnemyType) int {
	var base int
	var extra float64
	switch t {
	case EnemyBoss:
		base, extra = 3, m.tuning.ExtraChanceBoss
	case EnemyElite:
		base, extra = 2, m.tuning.ExtraChanceElite
	default:
		base, extra = 1, m.tuning.ExtraChanceNormal
	}

	count := base
	for range 3 {
		if m.rng.Float64() >= extra {
			break
		}
		count++
	}
	return count
}

// rollCategoryDrop draws a category, picks a random template of that
// category and instantiates it with a level- and luck-shifted quality.
func (m *Manager) rollCategoryDrop(weights []Weighted[model.Category], level int, luck, qualityBonus float64, opts Options) (Drop, bool) {
	category, ok := Pick(m.rng, weights)
	if !ok {
		return Drop{}, false
	}
	candidates := m.catalog.ItemsByCategory(category)
	if len(candidates) == 0 {
		return Drop{}, false
	}
	template := candidates[m.rng.IntN(len(candidates))]

	quality := m.determineQuality(level, luck, qualityBonus)
	item, _, err := m.factory.CreateItem(template.TemplateID, factory.Options{
		RandomizeLevel: level,
		Quality:        &quality,
	})
	if err != nil {
		return Drop{}, false
	}

	qty := 1
	if item.Stackable {
		qty = m.scaleAmount(1+m.rng.IntN(3), opts)
	}
	return Drop{Item: item, Quantity: qty}, true
}

// Per-tier shift directions and caps for determineQuality. Negative
// factors drain the low tiers, positive ones feed the high tiers.
var (
	qualityShiftFactors = [...]float64{-2.0, -1.0, 0.5, 1.0, 1.5, 2.0}
	qualityShiftCaps    = [...]float64{5, 30, 12, 9, 5, 3}
)

// determineQuality draws a rarity tier from the configured weights,
// shifted toward higher tiers by source level, player luck and any
// flat bonus, then renormalized.
func (m *Manager) determineQuality(level int, luck, bonus float64) model.Rarity {
	base := m.tuning.TierWeights
	if len(base) != len(qualityShiftFactors) {
		base = config.Default().Loot.TierWeights
	}

	shift := m.tuning.QualityLevelShift*float64(level) + m.tuning.QualityLuckShift*luck + bonus

	tiers := model.Rarities()
	weights := make([]Weighted[model.Rarity], len(base))
	for i, w := range base {
		delta := shift * 20 * qualityShiftFactors[i]
		delta = math.Min(math.Max(delta, -qualityShiftCaps[i]), qualityShiftCaps[i])
		weights[i] = Weighted[model.Rarity]{Option: tiers[i], Weight: math.Max(w+delta, 0)}
	}

	if tier, ok := Pick(m.rng, weights); ok {
		return tier
	}
	return model.RarityCommon
}

func (m *Manager) uniformBetween(lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}
	if hi == lo {
		return lo
	}
	return lo + m.rng.IntN(hi-lo+1)
}

func (m *Manager) scaleAmount(n int, opts Options) int {
	mult := opts.amountMult() * m.rates.DropAmountMultiplier
	if mult == 1 {
		return n
	}
	scaled := int(math.Round(float64(n) * mult))
	if scaled < 1 && n > 0 {
		scaled = 1
	}
	return scaled
}
