package model

// Grid is a width x height arrangement of slots with coordinate-based
// placement and region search. Every coordinate owns exactly one slot.
// Items wider or taller than one cell occupy their full footprint: the
// anchor (top-left) slot holds the stack and every covered cell is
// reserved until the item is removed.
type Grid struct {
	notifier

	width, height int
	slots         []*Slot // row-major
	cover         []int   // per-cell anchor index, -1 when free
}

// NewGrid creates an empty grid. Dimensions must be positive.
func NewGrid(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &Grid{width: width, height: height}
	g.slots = make([]*Slot, width*height)
	g.cover = make([]int, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			g.slots[idx] = NewGridSlot(idx, x, y)
			g.cover[idx] = -1
		}
	}
	g.emit(Event{Kind: EventGridInitialized})
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Slots returns the backing row-major slot slice. Callers must not
// mutate slot contents directly; use grid operations.
func (g *Grid) Slots() []*Slot { return g.slots }

// InBounds reports whether the coordinate lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int { return y*g.width + x }

// SlotAt returns the slot at (x,y), nil when out of bounds.
func (g *Grid) SlotAt(x, y int) *Slot {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.slots[g.index(x, y)]
}

// IsRegionEmpty reports whether every cell of the w x h rectangle with
// top-left origin (x,y) is inside the grid and unoccupied.
func (g *Grid) IsRegionEmpty(x, y, w, h int) bool {
	if w < 1 || h < 1 || !g.InBounds(x, y) || !g.InBounds(x+w-1, y+h-1) {
		return false
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if g.cover[g.index(x+dx, y+dy)] != -1 {
				return false
			}
		}
	}
	return true
}

// FindEmptyRegion scans row-major for the first origin whose w x h
// rectangle is empty. The 1x1 case reduces to the first free cell.
func (g *Grid) FindEmptyRegion(w, h int) (x, y int, ok bool) {
	if w == 1 && h == 1 {
		for idx, anchor := range g.cover {
			if anchor == -1 {
				return idx % g.width, idx / g.width, true
			}
		}
		return 0, 0, false
	}
	for oy := 0; oy <= g.height-h; oy++ {
		for ox := 0; ox <= g.width-w; ox++ {
			if g.IsRegionEmpty(ox, oy, w, h) {
				return ox, oy, true
			}
		}
	}
	return 0, 0, false
}

// PlaceItem binds the item to the anchor (x,y) and reserves its full
// footprint. Returns the quantity actually placed, zero on rejection.
func (g *Grid) PlaceItem(item *Item, quantity, x, y int) int {
	if item == nil || quantity <= 0 {
		return 0
	}
	w, h := item.FootprintW(), item.FootprintH()
	if !g.IsRegionEmpty(x, y, w, h) {
		return 0
	}
	anchor := g.slots[g.index(x, y)]
	placed := min(quantity, item.MaxStackSize())
	if !anchor.SetItem(item, placed) {
		return 0
	}
	g.markFootprint(x, y, w, h, anchor.Index)
	return placed
}

// RemoveItem clears the item whose footprint covers (x,y), releasing
// every reserved cell. Works from any covered cell, not just the anchor.
func (g *Grid) RemoveItem(x, y int) (*Item, int) {
	if !g.InBounds(x, y) {
		return nil, 0
	}
	anchorIdx := g.cover[g.index(x, y)]
	if anchorIdx == -1 {
		return nil, 0
	}
	anchor := g.slots[anchorIdx]
	item, qty := anchor.Item(), anchor.Quantity()
	g.releaseFootprint(anchorIdx, item)
	anchor.Clear()
	return item, qty
}

// MoveItem relocates the stack anchored at the source coordinate to a
// new anchor. The target region must be free apart from cells the item
// already covers; on any rejection nothing moves.
func (g *Grid) MoveItem(fromX, fromY, toX, toY int) bool {
	if !g.InBounds(fromX, fromY) || !g.InBounds(toX, toY) {
		return false
	}
	anchorIdx := g.cover[g.index(fromX, fromY)]
	if anchorIdx == -1 {
		return false
	}
	anchor := g.slots[anchorIdx]
	item := anchor.Item()
	w, h := item.FootprintW(), item.FootprintH()

	if !g.InBounds(toX+w-1, toY+h-1) {
		return false
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c := g.cover[g.index(toX+dx, toY+dy)]
			if c != -1 && c != anchorIdx {
				return false
			}
		}
	}
	target := g.slots[g.index(toX, toY)]
	if target != anchor && !target.CanAccept(item) {
		return false
	}

	qty := anchor.Quantity()
	g.releaseFootprint(anchorIdx, item)
	anchor.Clear()
	if !target.SetItem(item, qty) {
		// Restore; target acceptance was pre-checked so this only
		// happens if the anchor itself was the target.
		anchor.SetItem(item, qty)
		g.markFootprint(fromX, fromY, w, h, anchorIdx)
		return false
	}
	g.markFootprint(toX, toY, w, h, target.Index)
	return true
}

// AutoPlaceItem distributes the quantity across the grid: existing
// compatible stacks are topped up first in row-major discovery order,
// then the remainder fills successive empty regions. Returns the
// quantity actually placed; the rest did not fit.
func (g *Grid) AutoPlaceItem(item *Item, quantity int) int {
	if item == nil || quantity <= 0 {
		return 0
	}
	remaining := quantity

	if item.Stackable {
		for _, s := range g.slots {
			if remaining == 0 {
				break
			}
			if s.IsEmpty() || !s.Item().CanStackWith(item) {
				continue
			}
			remaining = s.AddQuantity(remaining)
		}
	}

	cur := item
	for remaining > 0 {
		x, y, ok := g.FindEmptyRegion(item.FootprintW(), item.FootprintH())
		if !ok {
			break
		}
		placed := g.PlaceItem(cur, remaining, x, y)
		if placed == 0 {
			break
		}
		remaining -= placed
		// Each additional slot holds its own instance.
		cur = item.Clone()
	}
	return quantity - remaining
}

// Resize changes the grid dimensions. Shrinking past any occupied cell
// fails atomically: the grid is untouched and false is returned. Slots
// still in bounds keep their contents.
func (g *Grid) Resize(width, height int) bool {
	if width < 1 || height < 1 {
		return false
	}
	for idx, anchor := range g.cover {
		if anchor == -1 {
			continue
		}
		if idx%g.width >= width || idx/g.width >= height {
			return false
		}
	}

	slots := make([]*Slot, width*height)
	cover := make([]int, width*height)
	for i := range cover {
		cover[i] = -1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if g.InBounds(x, y) {
				s := g.slots[g.index(x, y)]
				old := g.cover[g.index(x, y)]
				s.Index = idx
				slots[idx] = s
				if old != -1 {
					ox, oy := old%g.width, old/g.width
					cover[idx] = oy*width + ox
				}
			} else {
				slots[idx] = NewGridSlot(idx, x, y)
			}
		}
	}
	g.width, g.height = width, height
	g.slots, g.cover = slots, cover
	g.emit(Event{Kind: EventGridResized})
	return true
}

// Clear empties every slot and releases all footprints.
func (g *Grid) Clear() {
	for i := range g.cover {
		g.cover[i] = -1
	}
	for _, s := range g.slots {
		s.Clear()
	}
	g.emit(Event{Kind: EventGridCleared})
}

// CountItem sums the held quantity of the given template across anchors.
func (g *Grid) CountItem(templateID string) int {
	total := 0
	for _, s := range g.slots {
		if !s.IsEmpty() && s.Item().TemplateID == templateID {
			total += s.Quantity()
		}
	}
	return total
}

func (g *Grid) markFootprint(x, y, w, h, anchorIdx int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			g.cover[g.index(x+dx, y+dy)] = anchorIdx
		}
	}
}

func (g *Grid) releaseFootprint(anchorIdx int, item *Item) {
	x, y := anchorIdx%g.width, anchorIdx/g.width
	w, h := 1, 1
	if item != nil {
		w, h = item.FootprintW(), item.FootprintH()
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if g.InBounds(x+dx, y+dy) {
				g.cover[g.index(x+dx, y+dy)] = -1
			}
		}
	}
}
