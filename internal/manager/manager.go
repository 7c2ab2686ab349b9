package manager

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dverbin/lootcore/internal/config"
	"github.com/dverbin/lootcore/internal/loot"
	"github.com/dverbin/lootcore/internal/model"
)

// Transaction is one recorded cross-inventory operation.
type Transaction struct {
	Kind     model.EventKind
	SourceID string
	TargetID string
	ItemID   string
	Quantity int
	At       time.Time
}

const defaultHistoryCap = 256

// Manager owns a registry of live inventories and mediates the
// operations that span more than one of them: transfers, loot
// delivery and teardown. It is single-threaded like the inventories
// it holds.
type Manager struct {
	inventories map[string]*model.Inventory
	tables      map[string]*model.LootTable
	loot        *loot.Manager

	// maxDistance <= 0 disables the transfer range check.
	maxDistance float64

	history    []Transaction
	historyCap int
	now        func() time.Time

	listeners []model.Listener
}

// New builds a manager. lootMgr may be nil when loot generation is
// not needed.
func New(cfg config.Config, lootMgr *loot.Manager) *Manager {
	return &Manager{
		inventories: make(map[string]*model.Inventory),
		tables:      make(map[string]*model.LootTable),
		loot:        lootMgr,
		maxDistance: cfg.Transfer.MaxDistance,
		historyCap:  defaultHistoryCap,
		now:         time.Now,
	}
}

// Subscribe registers a listener for manager-level events.
func (m *Manager) Subscribe(l model.Listener) {
	m.listeners = append(m.listeners, l)
}

func (m *Manager) emit(e model.Event) {
	for _, l := range m.listeners {
		l(e)
	}
}

// CreateGridInventory registers a new grid inventory. When the id is
// already taken the existing inventory is returned unchanged.
func (m *Manager) CreateGridInventory(id, name string, width, height int, maxWeight float64) *model.Inventory {
	if inv, ok := m.inventories[id]; ok {
		return inv
	}
	inv := model.NewGridInventory(id, name, width, height, maxWeight)
	m.inventories[inv.ID()] = inv
	return inv
}

// CreateListInventory registers a new list inventory. When the id is
// already taken the existing inventory is returned unchanged.
func (m *Manager) CreateListInventory(id, name string, capacity int, maxWeight float64) *model.Inventory {
	if inv, ok := m.inventories[id]; ok {
		return inv
	}
	inv := model.NewListInventory(id, name, capacity, maxWeight)
	m.inventories[inv.ID()] = inv
	return inv
}

// Adopt registers an externally built inventory, such as a character
// inventory's backpack. Returns false when the id is already taken by
// a different inventory.
func (m *Manager) Adopt(inv *model.Inventory) bool {
	if existing, ok := m.inventories[inv.ID()]; ok {
		return existing == inv
	}
	m.inventories[inv.ID()] = inv
	return true
}

// Get returns a registered inventory.
func (m *Manager) Get(id string) (*model.Inventory, bool) {
	inv, ok := m.inventories[id]
	return inv, ok
}

// Destroy clears and unregisters an inventory. Returns false when the
// id is unknown.
func (m *Manager) Destroy(id string) bool {
	inv, ok := m.inventories[id]
	if !ok {
		return false
	}
	inv.Clear()
	delete(m.inventories, id)
	m.record(Transaction{Kind: model.EventInventoryDestroyed, SourceID: id})
	m.emit(model.Event{Kind: model.EventInventoryDestroyed, InventoryID: id})
	return true
}

// MoveItem transfers up to quantity units of a template between two
// registered inventories, subject to the range check. Returns the
// quantity delivered and whether anything moved.
func (m *Manager) MoveItem(sourceID, targetID, templateID string, quantity int) (int, error) {
	source, ok := m.inventories[sourceID]
	if !ok {
		return 0, fmt.Errorf("unknown source inventory %q", sourceID)
	}
	target, ok := m.inventories[targetID]
	if !ok {
		return 0, fmt.Errorf("unknown target inventory %q", targetID)
	}
	if sourceID == targetID {
		return 0, fmt.Errorf("source and target are the same inventory %q", sourceID)
	}
	if !m.inRange(source, target) {
		return 0, fmt.Errorf("inventories %q and %q are out of transfer range", sourceID, targetID)
	}

	moved, ok := source.TransferItem(target, templateID, quantity)
	if !ok {
		return 0, fmt.Errorf("transfer of %q from %q to %q rejected", templateID, sourceID, targetID)
	}
	m.record(Transaction{
		Kind: model.EventItemTransferred, SourceID: sourceID, TargetID: targetID,
		ItemID: templateID, Quantity: moved,
	})
	return moved, nil
}

// MoveSlot moves the full contents of one source slot into the target
// inventory. The target is validated before the source is touched;
// should delivery still fall short, the shortfall is returned to the
// source.
func (m *Manager) MoveSlot(sourceID string, slotIndex int, targetID string) (int, error) {
	source, ok := m.inventories[sourceID]
	if !ok {
		return 0, fmt.Errorf("unknown source inventory %q", sourceID)
	}
	target, ok := m.inventories[targetID]
	if !ok {
		return 0, fmt.Errorf("unknown target inventory %q", targetID)
	}
	if !m.inRange(source, target) {
		return 0, fmt.Errorf("inventories %q and %q are out of transfer range", sourceID, targetID)
	}

	slots := source.Slots()
	if slotIndex < 0 || slotIndex >= len(slots) || slots[slotIndex].IsEmpty() {
		return 0, fmt.Errorf("slot %d of %q is empty", slotIndex, sourceID)
	}
	item := slots[slotIndex].Item()
	qty := slots[slotIndex].Quantity()
	if !target.CanAddItem(item, qty) {
		return 0, fmt.Errorf("target %q cannot hold %d x %q", targetID, qty, item.TemplateID)
	}

	moved, _ := source.RemoveAt(slotIndex)
	delivered := target.AddItem(moved, qty)
	if delivered < qty {
		returned := source.AddItem(moved.Clone(), qty-delivered)
		if returned < qty-delivered {
			slog.Warn("slot move shortfall lost",
				"source", sourceID, "target", targetID,
				"item", moved.TemplateID, "lost", qty-delivered-returned)
		}
	}
	if delivered > 0 {
		m.record(Transaction{
			Kind: model.EventItemTransferred, SourceID: sourceID, TargetID: targetID,
			ItemID: moved.TemplateID, Quantity: delivered,
		})
	}
	return delivered, nil
}

// RegisterTable adds a loot table to the manager's registry,
// replacing any previous table with the same id.
func (m *Manager) RegisterTable(t *model.LootTable) {
	m.tables[t.ID] = t
}

// GenerateLoot rolls a registered loot table and delivers the result
// into an inventory. Drops that do not fit are discarded. Returns the
// total quantity delivered.
func (m *Manager) GenerateLoot(inventoryID, tableID string) (int, error) {
	if _, ok := m.inventories[inventoryID]; !ok {
		return 0, fmt.Errorf("unknown inventory %q", inventoryID)
	}
	if m.loot == nil {
		return 0, fmt.Errorf("no loot generator configured")
	}

	var drops []loot.Drop
	if t, ok := m.tables[tableID]; ok {
		drops = m.loot.RollTable(t, loot.Options{})
	} else {
		var err error
		drops, err = m.loot.RollTableByID(tableID, loot.Options{})
		if err != nil {
			return 0, err
		}
	}

	delivered := m.DeliverDrops(inventoryID, drops)
	m.record(Transaction{
		Kind: model.EventLootSpawned, SourceID: tableID, TargetID: inventoryID,
		Quantity: delivered,
	})
	return delivered, nil
}

// DeliverDrops adds generated drops to an inventory, discarding
// whatever does not fit. Returns the total quantity delivered.
func (m *Manager) DeliverDrops(inventoryID string, drops []loot.Drop) int {
	inv, ok := m.inventories[inventoryID]
	if !ok {
		return 0
	}
	delivered := 0
	for _, d := range drops {
		delivered += inv.AddItem(d.Item, d.Quantity)
	}
	if delivered > 0 {
		m.emit(model.Event{
			Kind: model.EventLootSpawned, InventoryID: inventoryID, Quantity: delivered,
		})
	}
	return delivered
}

// AreInventoriesInRange reports whether two inventories are close
// enough to transfer between. Inventories without a positioned owner
// are always in range, as is everything when the range check is
// disabled.
func (m *Manager) AreInventoriesInRange(aID, bID string) bool {
	a, okA := m.inventories[aID]
	b, okB := m.inventories[bID]
	if !okA || !okB {
		return false
	}
	return m.inRange(a, b)
}

func (m *Manager) inRange(a, b *model.Inventory) bool {
	if m.maxDistance <= 0 {
		return true
	}
	ownerA, ownerB := a.Owner(), b.Owner()
	if ownerA == nil || ownerB == nil {
		return true
	}
	posA, okA := ownerA.Position()
	posB, okB := ownerB.Position()
	if !okA || !okB {
		return true
	}
	return posA.DistanceSq(posB) <= m.maxDistance*m.maxDistance
}

// History returns a copy of the recorded transactions, oldest first.
func (m *Manager) History() []Transaction {
	out := make([]Transaction, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Manager) record(tx Transaction) {
	tx.At = m.now()
	m.history = append(m.history, tx)
	if len(m.history) > m.historyCap {
		m.history = m.history[len(m.history)-m.historyCap:]
	}
}
