package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/masonium/fadedspade-hand-history-reader/internal/handhistory"
)

// AdditionTotal sums the out-of-pot chip additions made by one player.
type AdditionTotal struct {
	Player string
	Total  float64
	Count  int
}

// SummarizeAdditions groups additions by player in first-seen order.
func SummarizeAdditions(adds []handhistory.Addition) []AdditionTotal {
	index := make(map[string]int)
	var totals []AdditionTotal
	for _, add := range adds {
		i, ok := index[add.Player]
		if !ok {
			i = len(totals)
			index[add.Player] = i
			totals = append(totals, AdditionTotal{Player: add.Player})
		}
		totals[i].Total += add.Amount
		totals[i].Count++
	}
	return totals
}

// RenderAdditions writes the chip additions section.
func RenderAdditions(w io.Writer, totals []AdditionTotal) error {
	var b strings.Builder
	b.WriteString("Chip Additions:\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "  %s: $%.2f in %d adds\n", t.Player, t.Total, t.Count)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
