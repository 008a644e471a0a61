package cart

import (
	"testing"

	"ordering-system/internal/catalog"
)

func TestEmptyCartTotalIsZero(t *testing.T) {
	c := New()
	if total := c.TotalPrice(); total != 0 {
		t.Fatalf("expected empty cart total 0, got %d", total)
	}
}

func TestTotalPriceSumsAllCategories(t *testing.T) {
	c := New()
	// 原味蛋餅 30 x 2, 鍋燒意麵 50 x 1, 里肌總匯 80 x 3
	if err := c.SetQuantity(0, 0, 2); err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}
	if err := c.SetQuantity(1, 1, 1); err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}
	if err := c.SetQuantity(2, 2, 3); err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}

	expected := 2*30 + 1*50 + 3*80
	if total := c.TotalPrice(); total != expected {
		t.Fatalf("expected total %d, got %d", expected, total)
	}
}

func TestSetQuantityRejectsInvalidIndex(t *testing.T) {
	c := New()
	cases := [][2]int{{-1, 0}, {0, -1}, {catalog.NumCategories, 0}, {0, catalog.ItemsPerCategory}}
	for _, tc := range cases {
		if err := c.SetQuantity(tc[0], tc[1], 1); err != catalog.ErrInvalidIndex {
			t.Fatalf("SetQuantity(%d, %d) = %v, expected ErrInvalidIndex", tc[0], tc[1], err)
		}
	}
}

func TestSetQuantityClampsNegative(t *testing.T) {
	c := New()
	if err := c.SetQuantity(0, 0, -5); err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}
	qty, err := c.Quantity(0, 0)
	if err != nil {
		t.Fatalf("Quantity returned error: %v", err)
	}
	if qty != 0 {
		t.Fatalf("expected clamped quantity 0, got %d", qty)
	}
}

func TestDecrementStopsAtZero(t *testing.T) {
	c := New()
	if err := c.Decrement(0, 0); err != nil {
		t.Fatalf("Decrement returned error: %v", err)
	}
	qty, _ := c.Quantity(0, 0)
	if qty != 0 {
		t.Fatalf("expected quantity 0 after decrementing empty slot, got %d", qty)
	}

	c.SetQuantity(0, 0, 1)
	c.Decrement(0, 0)
	c.Decrement(0, 0)
	qty, _ = c.Quantity(0, 0)
	if qty != 0 {
		t.Fatalf("expected quantity 0, got %d", qty)
	}
}

func TestIncrementIsUnbounded(t *testing.T) {
	c := New()
	for i := 0; i < 250; i++ {
		if err := c.Increment(1, 2); err != nil {
			t.Fatalf("Increment returned error: %v", err)
		}
	}
	qty, _ := c.Quantity(1, 2)
	if qty != 250 {
		t.Fatalf("expected quantity 250, got %d", qty)
	}
}

func TestToggle(t *testing.T) {
	c := New()
	c.Toggle(2, 0)
	if qty, _ := c.Quantity(2, 0); qty != 1 {
		t.Fatalf("expected quantity 1 after first toggle, got %d", qty)
	}
	c.Toggle(2, 0)
	if qty, _ := c.Quantity(2, 0); qty != 0 {
		t.Fatalf("expected quantity 0 after second toggle, got %d", qty)
	}

	c.SetQuantity(2, 0, 7)
	c.Toggle(2, 0)
	if qty, _ := c.Quantity(2, 0); qty != 0 {
		t.Fatalf("expected toggle to clear quantity 7, got %d", qty)
	}
}

func TestResetClearsEverything(t *testing.T) {
	c := New()
	for category := 0; category < catalog.NumCategories; category++ {
		for item := 0; item < catalog.ItemsPerCategory; item++ {
			c.SetQuantity(category, item, category+item+1)
		}
	}
	if c.TotalPrice() == 0 {
		t.Fatalf("expected non-zero total before reset")
	}

	c.Reset()
	if total := c.TotalPrice(); total != 0 {
		t.Fatalf("expected total 0 after reset, got %d", total)
	}
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	c := New()
	notified := 0
	c.Subscribe(func() { notified++ })

	c.SetQuantity(0, 0, 2)
	c.Increment(0, 0)
	c.Decrement(0, 0)
	c.Toggle(0, 1)
	c.Reset()

	if notified != 5 {
		t.Fatalf("expected 5 notifications, got %d", notified)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	c := New()
	c.SetQuantity(0, 0, 3)

	snap := c.Snapshot()
	c.SetQuantity(0, 0, 9)

	if snap[0][0] != 3 {
		t.Fatalf("expected snapshot to keep quantity 3, got %d", snap[0][0])
	}
}
