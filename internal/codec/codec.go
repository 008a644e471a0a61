// Package codec derives the two machine-readable blobs the external order
// form expects: one of item names, one of item quantities, in one-to-one line
// correspondence.
//
// ItemNames and ItemQuantities recover the blobs from a rendered receipt by
// character-class filtering, relying on the receipt's delimiter conventions
// (item names are the only CJK text, x precedes the quantity field, = precedes
// the price field). BlobsFromLines produces the same blobs straight from the
// structured receipt rows and is what the submission path uses; the text
// transforms remain for reprocessing receipts that exist only as text.
package codec

import (
	"regexp"
	"strconv"
	"strings"

	"ordering-system/internal/receipt"
)

var (
	nonCJK   = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}]`)
	cjk      = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)
	priceRun = regexp.MustCompile(`=\s?\d+\s*\n`)
)

// ItemNames extracts one name per receipt row. Everything outside the CJK
// ideograph range is dropped first, then the 元 price suffix of each row
// becomes the line break.
func ItemNames(receiptText string) string {
	s := nonCJK.ReplaceAllString(receiptText, "")
	return strings.ReplaceAll(s, "元", "\n")
}

// ItemQuantities extracts one quantity per receipt row. Border characters go
// first, then CJK text and spaces; the =price run of each row must be removed
// before the x separators become line breaks, or rows would merge.
func ItemQuantities(receiptText string) string {
	s := strings.NewReplacer("-", "", "|", "").Replace(receiptText)
	s = cjk.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "")
	s = priceRun.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "x", "\n")
	return strings.Trim(s, "\n")
}

// BlobsFromLines derives both blobs from structured receipt rows, skipping
// the text round-trip entirely.
func BlobsFromLines(lines []receipt.Line) (names, quantities string) {
	nameLines := make([]string, len(lines))
	qtyLines := make([]string, len(lines))
	for i, line := range lines {
		nameLines[i] = line.Name
		qtyLines[i] = strconv.Itoa(line.Quantity)
	}
	return strings.Join(nameLines, "\n"), strings.Join(qtyLines, "\n")
}
