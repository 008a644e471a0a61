package receipt

import (
	"strings"
	"testing"

	"ordering-system/internal/cart"
)

func TestFormatEmptyCart(t *testing.T) {
	c := cart.New()
	got := Format(c)

	expected := "|----------------------------------|\n|-----------------------------------|"
	if got != expected {
		t.Fatalf("empty cart receipt mismatch:\ngot:      %q\nexpected: %q", got, expected)
	}
}

func TestFormatSingleItem(t *testing.T) {
	c := cart.New()
	if err := c.SetQuantity(0, 0, 2); err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}

	expected := "|----------------------------------|\n" +
		"| 原味蛋餅" + strings.Repeat(" ", 16) + "  x  2  =   60 元   |\n" +
		"|-----------------------------------|"
	if got := Format(c); got != expected {
		t.Fatalf("receipt mismatch:\ngot:      %q\nexpected: %q", got, expected)
	}
}

func TestFormatRowsFollowCatalogOrder(t *testing.T) {
	c := cart.New()
	// Set in reverse order; rows must still come out category-then-item ascending.
	c.SetQuantity(2, 2, 1)
	c.SetQuantity(1, 1, 2)
	c.SetQuantity(0, 2, 3)

	got := Format(c)
	rows := strings.Split(got, "\n")
	if len(rows) != 5 {
		t.Fatalf("expected 2 borders and 3 rows, got %d lines", len(rows))
	}

	wantOrder := []string{"玉米蛋餅", "鍋燒意麵", "里肌總匯"}
	for i, name := range wantOrder {
		if !strings.Contains(rows[i+1], name) {
			t.Fatalf("row %d = %q, expected item %s", i, rows[i+1], name)
		}
	}
}

func TestFormatSkipsZeroQuantities(t *testing.T) {
	c := cart.New()
	c.SetQuantity(0, 1, 4)

	got := Format(c)
	if strings.Contains(got, "原味蛋餅") || strings.Contains(got, "玉米蛋餅") {
		t.Fatalf("zero-quantity items must not appear in receipt:\n%s", got)
	}
	if !strings.Contains(got, "蔬菜蛋餅") {
		t.Fatalf("expected 蔬菜蛋餅 row in receipt:\n%s", got)
	}
}

func TestLines(t *testing.T) {
	c := cart.New()
	c.SetQuantity(0, 0, 2)
	c.SetQuantity(2, 1, 1)

	lines := Lines(c)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	first := Line{Name: "原味蛋餅", Quantity: 2, UnitPrice: 30, LineTotal: 60}
	if lines[0] != first {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	second := Line{Name: "雞肉總匯", Quantity: 1, UnitPrice: 70, LineTotal: 70}
	if lines[1] != second {
		t.Fatalf("unexpected second line: %+v", lines[1])
	}
}

func TestLinesEmptyCart(t *testing.T) {
	if lines := Lines(cart.New()); len(lines) != 0 {
		t.Fatalf("expected no lines for empty cart, got %d", len(lines))
	}
}
