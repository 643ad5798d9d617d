package stats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/masonium/fadedspade-hand-history-reader/internal/handhistory"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds how many players are computed concurrently.
const DefaultWorkers = 4

// Render writes one report block for s, followed by a blank line.
func Render(w io.Writer, s PlayerStats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: \n", s.Player)
	fmt.Fprintf(&b, "  Net Winnings: $%.2f\n", s.Net)
	fmt.Fprintf(&b, "  # of Hands At Table: %d\n", s.TotalHands)
	fmt.Fprintf(&b, "  # of Hands in: %d (%.2f%%)\n", s.HandsIn, s.PctIn())
	fmt.Fprintf(&b, "  # of Hands VPiP: %d (%.2f%%)\n", s.HandsVPIP, s.PctVPIP())
	fmt.Fprintf(&b, "  # of Hands @ Showdown: %d (%.2f%% of hands VPiP)\n", s.HandsShowdown, s.PctShowdown())
	fmt.Fprintf(&b, "  # of Hands won: %d (%.2f%% of hands in, %.2f%% of hands VPiP)\n",
		s.HandsWon, s.PctWonOfIn(), s.PctWonOfVPIP())
	fmt.Fprintf(&b, "  # of Hands won at showdown: %d (%.2f%% of hands in, %.2f%% of hands in at showdown)\n",
		s.HandsWonShowdown, s.PctWonShowdownOfIn(), s.PctWonShowdownOfShowdown())
	fmt.Fprintf(&b, "  Average Pot Won: (Gross: $%.2f, Net: $%.2f) on %d hands\n",
		s.AvgGrossWon(), s.AvgNetWon(), s.HandsWon)
	fmt.Fprintf(&b, "  Max Pot Won (Net): $%.2f\n", s.MaxNet)
	fmt.Fprintf(&b, "  Average Pot Lost: $%.2f on %d hands\n", s.AvgLost(), s.HandsLost)
	fmt.Fprintf(&b, "  Average Pot Lost (VPiP only): $%.2f on %d hands\n", s.AvgLostVPIP(), s.HandsLostVPIP)
	fmt.Fprintf(&b, "  Max Pot Lost (Net): $%.2f\n", s.MinNet)
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Players returns the report universe: every blind poster, sorted by name.
// When only is non-empty it replaces the universe, deduplicated and sorted.
func Players(history *handhistory.HandHistory, only []string) []string {
	set := history.BlindPosters()
	if len(only) > 0 {
		set = make(map[string]bool, len(only))
		for _, name := range only {
			if name = strings.TrimSpace(name); name != "" {
				set[name] = true
			}
		}
	}

	players := make([]string, 0, len(set))
	for name := range set {
		players = append(players, name)
	}
	sort.Strings(players)
	return players
}

// Report computes and renders every player's block. Players are computed
// concurrently, at most workers at a time, and written to w in the order
// given.
func Report(ctx context.Context, w io.Writer, hands []handhistory.HandLog, players []string, workers int) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	blocks := make([]bytes.Buffer, len(players))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, player := range players {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return Render(&blocks[i], Compute(hands, player))
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("computing player statistics: %w", err)
	}

	for i := range blocks {
		if _, err := blocks[i].WriteTo(w); err != nil {
			return fmt.Errorf("writing report for %s: %w", players[i], err)
		}
	}
	return nil
}
