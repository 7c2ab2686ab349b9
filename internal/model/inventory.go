package model

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SortPolicy orders two items during inventory sorting.
type SortPolicy func(a, b *Item) bool

// DefaultSortPolicy sorts by category, then descending rarity, then name.
func DefaultSortPolicy(a, b *Item) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	if a.Rarity != b.Rarity {
		return a.Rarity > b.Rarity
	}
	return a.Name < b.Name
}

// Inventory aggregates slots, either grid-backed or flat-list-backed,
// and enforces weight and capacity limits. All mutations are
// single-threaded by contract; the aggregate weight is maintained
// incrementally and never recomputed from slot contents.
type Inventory struct {
	notifier

	id   string
	name string

	grid  *Grid   // nil for list-backed inventories
	slots []*Slot // grid-backed: aliases grid.Slots()

	maxWeight float64 // <= 0 means unlimited
	curWeight float64

	owner Owner
}

// NewGridInventory creates a grid-backed inventory. An empty id gets a
// generated one.
func NewGridInventory(id, name string, width, height int, maxWeight float64) *Inventory {
	if id == "" {
		id = uuid.NewString()
	}
	g := NewGrid(width, height)
	inv := &Inventory{id: id, name: name, grid: g, slots: g.Slots(), maxWeight: maxWeight}
	return inv
}

// NewListInventory creates a flat-list inventory with a fixed slot count.
func NewListInventory(id, name string, capacity int, maxWeight float64) *Inventory {
	if id == "" {
		id = uuid.NewString()
	}
	if capacity < 1 {
		capacity = 1
	}
	inv := &Inventory{id: id, name: name, maxWeight: maxWeight}
	inv.slots = make([]*Slot, capacity)
	for i := range inv.slots {
		inv.slots[i] = NewSlot(i)
	}
	return inv
}

// ID returns the unique inventory id.
func (inv *Inventory) ID() string { return inv.id }

// Name returns the display name.
func (inv *Inventory) Name() string { return inv.name }

// IsGridBased reports whether slots are arranged spatially.
func (inv *Inventory) IsGridBased() bool { return inv.grid != nil }

// Grid returns the backing grid, nil for list inventories.
func (inv *Inventory) Grid() *Grid { return inv.grid }

// Slots returns the slot collection in discovery order.
func (inv *Inventory) Slots() []*Slot { return inv.slots }

// CurrentWeight returns the running aggregate weight.
func (inv *Inventory) CurrentWeight() float64 { return inv.curWeight }

// MaxWeight returns the weight ceiling, <= 0 when unlimited.
func (inv *Inventory) MaxWeight() float64 { return inv.maxWeight }

// SetMaxWeight changes the weight ceiling. Existing contents are kept
// even if they exceed the new ceiling; only future adds are constrained.
func (inv *Inventory) SetMaxWeight(w float64) { inv.maxWeight = w }

// Owner returns the owning entity back-reference, may be nil.
func (inv *Inventory) Owner() Owner { return inv.owner }

// SetOwner installs the owner back-reference.
func (inv *Inventory) SetOwner(o Owner) { inv.owner = o }

// affordableQuantity returns how many units fit under the weight
// ceiling. Unlimited ceilings and weightless items afford everything.
func (inv *Inventory) affordableQuantity(item *Item) int {
	if inv.maxWeight <= 0 || item.Weight <= 0 {
		return math.MaxInt
	}
	return int(math.Floor((inv.maxWeight - inv.curWeight) / item.Weight))
}

// AddItem delivers up to quantity units into the inventory: compatible
// non-full stacks first, then empty slots. Returns the quantity actually
// added, which may be less than requested; any undelivered remainder is
// reported through an inventory_weight_exceeded event.
func (inv *Inventory) AddItem(item *Item, quantity int) int {
	if item == nil || quantity <= 0 {
		return 0
	}
	requested := quantity

	affordable := inv.affordableQuantity(item)
	if affordable <= 0 {
		inv.emit(Event{
			Kind: EventWeightExceeded, InventoryID: inv.id,
			ItemID: item.TemplateID, Quantity: requested,
		})
		return 0
	}
	if quantity > affordable {
		quantity = affordable
	}

	var added int
	if inv.grid != nil {
		added = inv.grid.AutoPlaceItem(item, quantity)
	} else {
		added = inv.addToList(item, quantity)
	}

	inv.curWeight += float64(added) * item.Weight
	if added > 0 {
		inv.emit(Event{
			Kind: EventItemAdded, InventoryID: inv.id,
			ItemID: item.TemplateID, Quantity: added,
		})
	}
	if added < requested {
		inv.emit(Event{
			Kind: EventWeightExceeded, InventoryID: inv.id,
			ItemID: item.TemplateID, Quantity: requested - added,
		})
	}
	return added
}

// addToList saturates compatible stacks then fills empty slots up to the
// item's max stack size per slot.
func (inv *Inventory) addToList(item *Item, quantity int) int {
	remaining := quantity

	if item.Stackable {
		for _, s := range inv.slots {
			if remaining == 0 {
				break
			}
			if !s.IsEmpty() && s.Item().CanStackWith(item) {
				remaining = s.AddQuantity(remaining)
			}
		}
	}

	cur := item
	for _, s := range inv.slots {
		if remaining == 0 {
			break
		}
		if !s.IsEmpty() || !s.CanAccept(cur) {
			continue
		}
		put := min(remaining, cur.MaxStackSize())
		if !s.SetItem(cur, put) {
			continue
		}
		remaining -= put
		cur = item.Clone()
	}
	return quantity - remaining
}

// stackEntry pairs a drained item instance with its quantity.
type stackEntry struct {
	item *Item
	qty  int
}

// drain removes up to quantity units of the template, visiting slots in
// ascending held-quantity order so large stacks fragment last. Returns
// the removed (item, quantity) pairs.
func (inv *Inventory) drain(templateID string, quantity int) []stackEntry {
	if quantity <= 0 {
		return nil
	}
	var matches []*Slot
	for _, s := range inv.slots {
		if !s.IsEmpty() && s.Item().TemplateID == templateID {
			matches = append(matches, s)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Quantity() < matches[j].Quantity()
	})

	var drained []stackEntry
	remaining := quantity
	for _, s := range matches {
		if remaining == 0 {
			break
		}
		item := s.Item()
		removed := s.RemoveQuantity(remaining)
		if removed == 0 {
			continue
		}
		if s.IsEmpty() && inv.grid != nil {
			inv.grid.releaseFootprint(s.Index, item)
		}
		inv.curWeight -= float64(removed) * item.Weight
		drained = append(drained, stackEntry{item: item, qty: removed})
		remaining -= removed
	}
	return drained
}

// RemoveItem removes up to quantity units matching the template id,
// draining smaller stacks first. Returns the quantity actually removed;
// partial satisfaction is allowed.
func (inv *Inventory) RemoveItem(templateID string, quantity int) int {
	drained := inv.drain(templateID, quantity)
	removed := 0
	for _, e := range drained {
		removed += e.qty
	}
	if removed > 0 {
		inv.emit(Event{
			Kind: EventItemRemoved, InventoryID: inv.id,
			ItemID: templateID, Quantity: removed,
		})
	}
	return removed
}

// RemoveAt empties one slot by index, returning its former item and
// quantity. Returns (nil, 0) when the index is out of range or the
// slot is empty.
func (inv *Inventory) RemoveAt(index int) (*Item, int) {
	if index < 0 || index >= len(inv.slots) {
		return nil, 0
	}
	s := inv.slots[index]
	if s.IsEmpty() {
		return nil, 0
	}
	item := s.Item()
	qty := s.Quantity()
	s.Clear()
	if inv.grid != nil {
		inv.grid.releaseFootprint(index, item)
	}
	inv.curWeight -= float64(qty) * item.Weight
	inv.emit(Event{
		Kind: EventItemRemoved, InventoryID: inv.id,
		ItemID: item.TemplateID, Quantity: qty, SlotIndex: index,
	})
	return item, qty
}

// ItemCount sums the held quantity of the template across all slots.
func (inv *Inventory) ItemCount(templateID string) int {
	total := 0
	for _, s := range inv.slots {
		if !s.IsEmpty() && s.Item().TemplateID == templateID {
			total += s.Quantity()
		}
	}
	return total
}

// FindItem returns the first held instance of the template, or nil.
func (inv *Inventory) FindItem(templateID string) *Item {
	for _, s := range inv.slots {
		if !s.IsEmpty() && s.Item().TemplateID == templateID {
			return s.Item()
		}
	}
	return nil
}

// CanAddItem is a pure predicate reporting whether AddItem would deliver
// the full quantity. It shares the weight and slot-capacity arithmetic
// with AddItem and never mutates state.
func (inv *Inventory) CanAddItem(item *Item, quantity int) bool {
	if item == nil || quantity <= 0 {
		return false
	}
	if inv.affordableQuantity(item) < quantity {
		return false
	}

	remaining := quantity
	if item.Stackable {
		for _, s := range inv.slots {
			if !s.IsEmpty() && s.Item().CanStackWith(item) {
				remaining -= s.FreeCapacity()
				if remaining <= 0 {
					return true
				}
			}
		}
	}

	perSlot := item.MaxStackSize()
	if inv.grid != nil {
		return inv.gridPlacementCapacity(item, remaining) >= remaining
	}
	for _, s := range inv.slots {
		if s.IsEmpty() && s.CanAccept(item) {
			remaining -= perSlot
			if remaining <= 0 {
				return true
			}
		}
	}
	return false
}

// gridPlacementCapacity simulates auto-placement on a scratch copy of
// the occupancy map and returns how many units the free regions hold,
// stopping once the need is covered.
func (inv *Inventory) gridPlacementCapacity(item *Item, need int) int {
	g := inv.grid
	cover := make([]int, len(g.cover))
	copy(cover, g.cover)

	w, h := item.FootprintW(), item.FootprintH()
	perSlot := item.MaxStackSize()
	capacity := 0

	for capacity < need {
		found := false
	scan:
		for oy := 0; oy <= g.height-h; oy++ {
			for ox := 0; ox <= g.width-w; ox++ {
				free := true
				for dy := 0; dy < h && free; dy++ {
					for dx := 0; dx < w; dx++ {
						if cover[(oy+dy)*g.width+(ox+dx)] != -1 {
							free = false
							break
						}
					}
				}
				if !free {
					continue
				}
				for dy := 0; dy < h; dy++ {
					for dx := 0; dx < w; dx++ {
						cover[(oy+dy)*g.width+(ox+dx)] = (oy)*g.width + ox
					}
				}
				capacity += perSlot
				found = true
				break scan
			}
		}
		if !found {
			break
		}
	}
	return capacity
}

// TransferItem moves up to quantity units to the target inventory in two
// phases: remove from source, then add to target. Units the target
// rejects are returned to the source, so no item is ever lost. Returns
// the quantity delivered and whether anything moved.
func (inv *Inventory) TransferItem(target *Inventory, templateID string, quantity int) (int, bool) {
	if target == nil || target == inv || quantity <= 0 {
		return 0, false
	}
	sample := inv.FindItem(templateID)
	if sample == nil {
		return 0, false
	}
	if !target.CanAddItem(sample, 1) {
		return 0, false
	}

	drained := inv.drain(templateID, quantity)
	delivered := 0
	for _, e := range drained {
		got := target.AddItem(e.item, e.qty)
		delivered += got
		if got < e.qty {
			// Compensating re-add: the source just held these units,
			// so they always fit back. Clone so the returned units do
			// not alias an instance the target now owns.
			inv.AddItem(e.item.Clone(), e.qty-got)
		}
	}
	if delivered == 0 {
		return 0, false
	}
	inv.emit(Event{
		Kind: EventItemTransferred, InventoryID: inv.id, TargetID: target.id,
		ItemID: templateID, Quantity: delivered,
	})
	return delivered, true
}

// Sort clears every occupied slot, orders the extracted stacks by the
// policy and re-inserts them through AddItem. Sorting unchanged contents
// twice under the same policy yields the same slot assignment.
func (inv *Inventory) Sort(policy SortPolicy) {
	if policy == nil {
		policy = DefaultSortPolicy
	}

	// Merge by stacking key first so fragmentation does not affect the
	// resulting layout.
	merged := make(map[string]*stackEntry)
	var order []string
	for _, s := range inv.slots {
		if s.IsEmpty() {
			continue
		}
		key := s.Item().StackKey() + "\x00" + s.Item().InstanceID
		if s.Item().Stackable {
			key = s.Item().StackKey()
		}
		if e, ok := merged[key]; ok {
			e.qty += s.Quantity()
		} else {
			merged[key] = &stackEntry{item: s.Item(), qty: s.Quantity()}
			order = append(order, key)
		}
	}

	entries := make([]*stackEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, merged[k])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].item, entries[j].item
		if policy(a, b) {
			return true
		}
		if policy(b, a) {
			return false
		}
		return a.StackKey() < b.StackKey()
	})

	inv.clearSlots()
	for _, e := range entries {
		inv.AddItem(e.item, e.qty)
	}
	inv.emit(Event{Kind: EventInventorySorted, InventoryID: inv.id})
	if inv.grid != nil {
		inv.grid.emit(Event{Kind: EventGridSorted})
	}
}

// Clear empties the inventory.
func (inv *Inventory) Clear() {
	inv.clearSlots()
	inv.emit(Event{Kind: EventInventoryCleared, InventoryID: inv.id})
}

func (inv *Inventory) clearSlots() {
	if inv.grid != nil {
		inv.grid.Clear()
	} else {
		for _, s := range inv.slots {
			s.Clear()
		}
	}
	inv.curWeight = 0
}

// SlotSnapshot is the serialized form of one occupied slot.
type SlotSnapshot struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	SlotIndex int    `json:"slotIndex"`
}

// InventorySnapshot is the serialized inventory shape. Persistence
// transport is the caller's concern; this only fixes the structure.
type InventorySnapshot struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	IsGridBased   bool           `json:"isGridBased"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	MaxWeight     float64        `json:"maxWeight"`
	CurrentWeight float64        `json:"currentWeight"`
	Items         []SlotSnapshot `json:"items"`
}

// Snapshot dumps the inventory structure and slot contents.
func (inv *Inventory) Snapshot() InventorySnapshot {
	snap := InventorySnapshot{
		ID:            inv.id,
		Name:          inv.name,
		IsGridBased:   inv.grid != nil,
		MaxWeight:     inv.maxWeight,
		CurrentWeight: inv.curWeight,
	}
	if inv.grid != nil {
		snap.Width = inv.grid.Width()
		snap.Height = inv.grid.Height()
	}
	for _, s := range inv.slots {
		if s.IsEmpty() {
			continue
		}
		snap.Items = append(snap.Items, SlotSnapshot{
			ItemID:    s.Item().TemplateID,
			Quantity:  s.Quantity(),
			SlotIndex: s.Index,
		})
	}
	return snap
}

// ItemResolver resolves a template id to an item instance during
// restore. Supplied by the caller, typically backed by the catalog.
type ItemResolver func(ctx context.Context, itemID string) (*Item, error)

// Restore loads slot contents from a snapshot. Items resolve
// concurrently; placement is sequential at the recorded slot indexes.
// The load is best-effort: individual failures are logged and already
// placed items stay, so the aggregate result is true only when every
// referenced item resolved and was placed as requested.
func (inv *Inventory) Restore(ctx context.Context, snap InventorySnapshot, resolve ItemResolver) bool {
	if resolve == nil {
		slog.Error("inventory restore without item resolver", "inventory", inv.id)
		return false
	}

	resolved := make([]*Item, len(snap.Items))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range snap.Items {
		g.Go(func() error {
			item, err := resolve(gctx, entry.ItemID)
			if err != nil {
				slog.Warn("item resolution failed",
					"inventory", inv.id, "item", entry.ItemID, "err", err)
				return nil // best-effort: keep resolving the rest
			}
			resolved[i] = item
			return nil
		})
	}
	_ = g.Wait()

	ok := true
	for i, entry := range snap.Items {
		item := resolved[i]
		if item == nil {
			ok = false
			continue
		}
		if !inv.placeAt(item, entry.Quantity, entry.SlotIndex) {
			slog.Warn("restored item did not fit",
				"inventory", inv.id, "item", entry.ItemID, "slot", entry.SlotIndex)
			ok = false
		}
	}
	return ok
}

// placeAt puts the stack into a specific slot index, updating weight.
func (inv *Inventory) placeAt(item *Item, quantity, index int) bool {
	if index < 0 || index >= len(inv.slots) || quantity <= 0 {
		return false
	}
	if quantity > item.MaxStackSize() {
		return false
	}
	if inv.grid != nil {
		x, y := index%inv.grid.Width(), index/inv.grid.Width()
		if inv.grid.PlaceItem(item, quantity, x, y) != quantity {
			return false
		}
	} else {
		s := inv.slots[index]
		if !s.IsEmpty() || !s.SetItem(item, quantity) {
			return false
		}
	}
	inv.curWeight += float64(quantity) * item.Weight
	return true
}
