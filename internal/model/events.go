package model

// EventKind names a lifecycle notification emitted by a stateful entity.
// Each entity type emits a closed subset of these kinds; subscribers are
// invoked synchronously, in registration order, from the mutating call.
type EventKind string

// Slot events.
const (
	EventSlotChanged EventKind = "slot_item_changed"
)

// Grid events.
const (
	EventGridInitialized EventKind = "grid_initialized"
	EventGridResized     EventKind = "grid_resized"
	EventGridSorted      EventKind = "grid_sorted"
	EventGridCleared     EventKind = "grid_cleared"
)

// Inventory events.
const (
	EventItemAdded        EventKind = "item_added"
	EventItemRemoved      EventKind = "item_removed"
	EventItemTransferred  EventKind = "item_transferred"
	EventWeightExceeded   EventKind = "inventory_weight_exceeded"
	EventInventorySorted  EventKind = "inventory_sorted"
	EventInventoryCleared EventKind = "inventory_cleared"
)

// Character inventory events.
const (
	EventItemEquipped          EventKind = "item_equipped"
	EventItemUnequipped        EventKind = "item_unequipped"
	EventCurrencyAdded         EventKind = "currency_added"
	EventCurrencyRemoved       EventKind = "currency_removed"
	EventQuickSlotSet          EventKind = "quick_slot_set"
	EventQuickSlotCleared      EventKind = "quick_slot_cleared"
	EventQuickSlotUsed         EventKind = "quick_slot_used"
	EventQuickSlotSelected     EventKind = "quick_slot_selected"
	EventQuickSlotCooldownDone EventKind = "quick_slot_cooldown_complete"
)

// Manager events.
const (
	EventInventoryDestroyed EventKind = "inventory_destroyed"
	EventLootGenerated      EventKind = "loot_generated"
	EventLootSpawned        EventKind = "loot_spawned"
)

// Event carries a notification payload. Fields beyond Kind are filled
// when they apply to the emitting operation.
type Event struct {
	Kind        EventKind
	InventoryID string
	TargetID    string // transfer target, when applicable
	ItemID      string // template ID
	Quantity    int
	SlotIndex   int
	Currency    string
	Amount      int
}

// Listener receives entity events.
type Listener func(Event)

// notifier is the shared observer implementation embedded by stateful
// entities. Not safe for concurrent subscription during emission; the
// engine is single-threaded by contract.
type notifier struct {
	listeners []Listener
}

// Subscribe registers a listener for all events of this entity.
func (n *notifier) Subscribe(l Listener) {
	if l != nil {
		n.listeners = append(n.listeners, l)
	}
}

func (n *notifier) emit(e Event) {
	for _, l := range n.listeners {
		l(e)
	}
}
