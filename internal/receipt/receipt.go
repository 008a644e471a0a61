package receipt

import (
	"fmt"
	"strings"

	"ordering-system/internal/cart"
	"ordering-system/internal/catalog"
)

// Line is one row of a receipt: an item with a non-zero quantity.
type Line struct {
	Name      string
	Quantity  int
	UnitPrice int
	LineTotal int
}

// The receipt layout is a cosmetic contract with the customer, and its
// delimiters (x, =, newlines) are a parsing contract with the order codec.
// Widths count runes, not display columns, so CJK names shift the right edge;
// the shop's printed slips have always looked like that.
const (
	nameWidth  = 20
	priceWidth = 5

	topBorder    = "|----------------------------------|\n"
	bottomBorder = "|-----------------------------------|"
)

// Lines derives the receipt rows from a cart: one row per item with quantity
// above zero, in catalog order.
func Lines(c *cart.Cart) []Line {
	snap := c.Snapshot()

	var lines []Line
	for category := range snap {
		for item, qty := range snap[category] {
			if qty == 0 {
				continue
			}
			entry, _ := catalog.Lookup(category, item)
			lines = append(lines, Line{
				Name:      entry.Name,
				Quantity:  qty,
				UnitPrice: entry.UnitPrice,
				LineTotal: qty * entry.UnitPrice,
			})
		}
	}
	return lines
}

// Format renders the cart as a bordered text table. An empty cart yields the
// two border lines with no rows in between.
func Format(c *cart.Cart) string {
	var b strings.Builder
	b.WriteString(topBorder)
	for _, line := range Lines(c) {
		b.WriteString(formatLine(line))
	}
	b.WriteString(bottomBorder)
	return b.String()
}

func formatLine(line Line) string {
	name := padRight(line.Name, nameWidth)
	price := padRight(fmt.Sprintf("%4d", line.LineTotal), priceWidth)
	return fmt.Sprintf("| %s  x %2d  = %s元   |\n", name, line.Quantity, price)
}

// padRight pads with spaces to width runes, truncating longer strings.
func padRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return string(runes) + strings.Repeat(" ", width-len(runes))
}
