package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	md "github.com/nao1215/markdown"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// section renders a markdown fragment into w, and reports whether it wrote anything.
func section(w io.Writer, build func(doc *md.Markdown) bool) bool {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	if !build(doc) {
		return false
	}
	fmt.Fprintf(w, "\n%s\n", doc.String())
	return true
}

// dateOrDash formats an optional date.
func dateOrDash(d date.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

// signed formats an amount with its currency and a leading sign when positive.
func signed(m rentbook.Money, currency string) string {
	if m.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

// bar draws a horizontal bar of width proportional to v/max.
func bar(v, max rentbook.Money, width int) string {
	if !max.IsPositive() || !v.IsPositive() {
		return ""
	}
	n := int(v.InexactFloat64() / max.InexactFloat64() * float64(width))
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}
