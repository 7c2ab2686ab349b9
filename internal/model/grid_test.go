package model

import "testing"

func TestGrid_PlaceAndRemove(t *testing.T) {
	g := NewGrid(4, 3)

	if got := g.PlaceItem(testSword(), 1, 1, 1); got != 1 {
		t.Fatalf("PlaceItem = %d, want 1", got)
	}
	// the cell is taken now
	if got := g.PlaceItem(testSword(), 1, 1, 1); got != 0 {
		t.Errorf("PlaceItem into occupied cell = %d, want 0", got)
	}

	item, qty := g.RemoveItem(1, 1)
	if item == nil || item.TemplateID != "short_sword" || qty != 1 {
		t.Fatalf("RemoveItem = %v/%d, want short_sword/1", item, qty)
	}
	if _, qty := g.RemoveItem(1, 1); qty != 0 {
		t.Error("second remove should find nothing")
	}
}

func TestGrid_MultiCellFootprint(t *testing.T) {
	g := NewGrid(4, 4)
	cuirass := testCuirass() // 2x2

	if got := g.PlaceItem(cuirass, 1, 1, 1); got != 1 {
		t.Fatalf("PlaceItem = %d, want 1", got)
	}

	// every covered cell blocks placement
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if g.IsRegionEmpty(p[0], p[1], 1, 1) {
			t.Errorf("cell (%d,%d) should be covered", p[0], p[1])
		}
	}
	if !g.IsRegionEmpty(3, 1, 1, 1) {
		t.Error("cell (3,1) should be free")
	}

	// removal through any covered cell resolves the anchor
	item, qty := g.RemoveItem(2, 2)
	if item == nil || item.TemplateID != "wolf_cuirass" || qty != 1 {
		t.Fatalf("RemoveItem = %v/%d, want wolf_cuirass/1", item, qty)
	}
	if !g.IsRegionEmpty(1, 1, 2, 2) {
		t.Error("footprint should be released after removal")
	}
}

func TestGrid_PlaceRejectsOverlapAndBounds(t *testing.T) {
	g := NewGrid(3, 3)
	sword := testGreatsword() // 1x3

	if got := g.PlaceItem(sword, 1, 0, 0); got != 1 {
		t.Fatalf("PlaceItem = %d, want 1", got)
	}
	// overlapping footprint
	if got := g.PlaceItem(testCuirass(), 1, 0, 1); got != 0 {
		t.Error("overlapping placement should fail")
	}
	// footprint out of bounds
	if got := g.PlaceItem(testGreatsword(), 1, 1, 1); got != 0 {
		t.Error("out-of-bounds footprint should fail")
	}
}

func TestGrid_MoveItem(t *testing.T) {
	g := NewGrid(4, 4)
	g.PlaceItem(testCuirass(), 1, 0, 0)

	// overlapping self is allowed
	if !g.MoveItem(0, 0, 1, 0) {
		t.Fatal("move overlapping own footprint should succeed")
	}
	if g.IsRegionEmpty(1, 0, 2, 2) {
		t.Error("item should occupy the new region")
	}
	if !g.IsRegionEmpty(0, 0, 1, 2) {
		t.Error("vacated column should be free")
	}

	g.PlaceItem(testSword(), 1, 3, 3)
	if g.MoveItem(1, 0, 2, 2) {
		t.Error("move onto another item should fail")
	}
}

func TestGrid_AutoPlaceItem(t *testing.T) {
	t.Run("tops up existing stacks first", func(t *testing.T) {
		g := NewGrid(2, 2)
		g.PlaceItem(testPotion(), 3, 1, 1)

		placed := g.AutoPlaceItem(testPotion(), 4)
		if placed != 4 {
			t.Fatalf("AutoPlaceItem = %d, want 4", placed)
		}
		if g.SlotAt(1, 1).Quantity() != 5 {
			t.Errorf("existing stack = %d, want 5", g.SlotAt(1, 1).Quantity())
		}
	})

	t.Run("overflows into multiple slots", func(t *testing.T) {
		g := NewGrid(2, 2)
		placed := g.AutoPlaceItem(testPotion(), 12)
		if placed != 12 {
			t.Fatalf("AutoPlaceItem = %d, want 12", placed)
		}
		if got := g.CountItem("healing_potion"); got != 12 {
			t.Errorf("CountItem = %d, want 12", got)
		}
		// each slot holds its own instance
		seen := map[*Item]bool{}
		for _, s := range g.Slots() {
			if !s.IsEmpty() {
				if seen[s.Item()] {
					t.Fatal("two slots share one item instance")
				}
				seen[s.Item()] = true
			}
		}
	})

	t.Run("returns partial on full grid", func(t *testing.T) {
		g := NewGrid(1, 2)
		placed := g.AutoPlaceItem(testPotion(), 20)
		if placed != 10 {
			t.Fatalf("AutoPlaceItem = %d, want 10", placed)
		}
	})
}

func TestGrid_Resize(t *testing.T) {
	g := NewGrid(4, 4)
	g.PlaceItem(testSword(), 1, 3, 3)

	// occupied cell falls outside the new bounds
	if g.Resize(3, 3) {
		t.Fatal("resize cutting off an item should fail")
	}
	if g.Width() != 4 || g.Height() != 4 {
		t.Error("failed resize must not change dimensions")
	}

	if !g.Resize(5, 5) {
		t.Fatal("growing resize should succeed")
	}
	if g.SlotAt(3, 3).IsEmpty() {
		t.Error("item should survive the resize at its coordinates")
	}
	if g.CountItem("short_sword") != 1 {
		t.Errorf("CountItem = %d, want 1", g.CountItem("short_sword"))
	}
}

func TestGrid_ResizeRemapsFootprint(t *testing.T) {
	g := NewGrid(3, 3)
	g.PlaceItem(testCuirass(), 1, 1, 1)

	if !g.Resize(4, 4) {
		t.Fatal("resize failed")
	}
	// removal through a non-anchor cell still works after remap
	item, _ := g.RemoveItem(2, 2)
	if item == nil || item.TemplateID != "wolf_cuirass" {
		t.Error("footprint lost after resize")
	}
}

func TestGrid_FindEmptyRegion(t *testing.T) {
	g := NewGrid(3, 2)
	g.PlaceItem(testSword(), 1, 0, 0)
	g.PlaceItem(testSword(), 1, 1, 0)

	x, y, ok := g.FindEmptyRegion(1, 1)
	if !ok || x != 2 || y != 0 {
		t.Errorf("FindEmptyRegion = (%d,%d,%v), want (2,0,true)", x, y, ok)
	}

	if _, _, ok := g.FindEmptyRegion(3, 2); ok {
		t.Error("no 3x2 region should remain")
	}
}
