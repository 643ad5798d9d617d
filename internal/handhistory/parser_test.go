package handhistory

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two hands: a showdown won by Bob, then an uncontested pot taken by Alice.
// The log deliberately has no trailing blank line.
const sampleLog = `Hand #1001 - Holdem (No Limit) - 2026/10/01 20:00:00
Seat 1: Alice (1000)
Seat 2: Bob (1000)
Seat 3: Carol (1000)
Alice posts small blind 5
Bob posts big blind 10
Carol folds
Alice calls 5
Bob checks
** Flop ** [As 7h 2d]
Alice bets 20
Bob calls 20
** Turn ** [5c]
Alice checks
Bob checks
** River ** [9s]
Alice checks
Bob checks
** Show Down **
Alice shows [Ac Kh] (a pair of Aces)
Bob shows [7d 7c] (three of a kind, Sevens)
Bob wins Pot (60) with three of a kind
Rake (0) Pot (60) Players (Alice: 30, Bob: 30, Carol: 0)

Hand #1002 - Holdem (No Limit) - 2026/10/01 20:01:00
Seat 1: Alice (970)
Seat 2: Bob (1030)
Seat 3: Carol (1000)
Bob posts small blind 5
Carol posts big blind 10
Alice raises to 30
Bob folds
Carol folds
Alice wins Pot (25)
Rake (0) Pot (25) Players (Alice: 10, Bob: 5, Carol: 10)`

const sidePotLog = `Hand #2001 - Holdem (No Limit)
Seat 1: Alice (100)
Seat 2: Bob (500)
Seat 3: Carol (500)
Alice posts small blind 5
Bob posts big blind 10
Carol raises to 500
Alice calls 95
Bob calls 490
** Show Down **
Alice shows [Ah Ad]
Bob shows [Kh Kd]
Carol shows [Qh Qd]
Bob wins side pot (800)
Rake (0) Pot (800) Players (Alice: 0, Bob: 400, Carol: 400)
Alice wins main pot (300)
Rake (0) Pot (300) Players (Alice: 100, Bob: 100, Carol: 100)
`

const splitPotLog = `Hand #3001 - Holdem (No Limit)
Seat 1: Alice (1000)
Seat 2: Bob (1000)
Alice posts small blind 5
Bob posts big blind 10
Alice calls 5
** Show Down **
Alice shows [Ah Kd]
Bob shows [As Kc]
Alice splits Pot (10) with a pair
Bob splits Pot (10) with a pair
Rake (0) Pot (20) Players (Alice: 10, Bob: 10)
`

func parseString(t *testing.T, raw string) *HandHistory {
	t.Helper()
	history, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.NotNil(t, history)
	return history
}

func TestParse_SampleLog(t *testing.T) {
	history := parseString(t, sampleLog)
	require.Len(t, history.Hands, 2)

	first := history.Hands[0]
	assert.Equal(t, map[string]bool{"Alice": true, "Bob": true, "Carol": true}, first.AtTable)
	assert.Equal(t, map[string]float64{"Alice": 0.5, "Bob": 1.0}, first.Blinds)
	assert.Equal(t, map[string]bool{"Alice": true, "Bob": true}, first.VPIP)
	assert.True(t, first.HasShowdown)
	require.Len(t, first.Pots, 1)
	assert.Equal(t, map[string]float64{"Alice": 3, "Bob": 3}, first.Pots[0].Amounts)
	assert.Equal(t, map[string]float64{"Bob": 6}, first.Pots[0].Winners)
	assert.Equal(t, map[string]bool{"Alice": true, "Bob": true}, first.Pots[0].AtShowdown)

	second := history.Hands[1]
	assert.Equal(t, map[string]float64{"Bob": 0.5, "Carol": 1.0}, second.Blinds)
	assert.Equal(t, map[string]bool{"Alice": true}, second.VPIP)
	assert.False(t, second.HasShowdown)
	require.Len(t, second.Pots, 1)
	assert.Equal(t, map[string]float64{"Alice": 1, "Bob": 0.5, "Carol": 1}, second.Pots[0].Amounts)
	assert.Equal(t, map[string]float64{"Alice": 2.5}, second.Pots[0].Winners)
	assert.Empty(t, second.Pots[0].AtShowdown, "shows are reset when a new hand starts")

	assert.Empty(t, history.Additions)
}

func TestParse_TrailingHandFlushedAtEOF(t *testing.T) {
	withoutBlank := parseString(t, sampleLog)
	withBlank := parseString(t, sampleLog+"\n\n")

	require.Len(t, withoutBlank.Hands, 2)
	assert.Equal(t, withBlank.Hands, withoutBlank.Hands)
}

func TestParse_BlankLinesDoNotCreatePhantomHands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"only blanks", "\n\n   \n\t\n", 0},
		{"leading blanks", "\n\n" + splitPotLog, 1},
		{"repeated separators", splitPotLog + "\n\n\n\n" + splitPotLog, 2},
		{"crlf", strings.ReplaceAll(splitPotLog+"\n"+splitPotLog, "\n", "\r\n"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := parseString(t, tt.input)
			assert.Len(t, history.Hands, tt.want)
			for _, hand := range history.Hands {
				assert.False(t, hand.IsEmpty())
			}
		})
	}
}

func TestParse_HandStartResetsWithoutFlushing(t *testing.T) {
	// The first hand is never terminated by a blank line, so the second
	// hand-start marker discards it.
	input := `Hand #1
Seat 1: Alice (1000)
Alice posts big blind 10
Hand #2
Seat 1: Bob (1000)
Bob posts big blind 10
`
	history := parseString(t, input)
	require.Len(t, history.Hands, 1)
	assert.Equal(t, map[string]bool{"Bob": true}, history.Hands[0].AtTable)
	assert.Equal(t, map[string]float64{"Bob": 1}, history.Hands[0].Blinds)
}

func TestParse_HandStartDiscardsOpenPot(t *testing.T) {
	input := `Hand #1
Seat 1: Alice (1000)
Alice wins Pot (40)

Hand #2
Seat 1: Bob (1000)
Bob wins Pot (20)
Rake (0) Pot (20) Players (Bob: 20)
`
	history := parseString(t, input)
	require.Len(t, history.Hands, 2)
	assert.Empty(t, history.Hands[0].Pots)
	require.Len(t, history.Hands[1].Pots, 1)
	assert.Equal(t, map[string]float64{"Bob": 2}, history.Hands[1].Pots[0].Winners)
}

func TestParse_SidePots(t *testing.T) {
	history := parseString(t, sidePotLog)
	require.Len(t, history.Hands, 1)

	hand := history.Hands[0]
	require.Len(t, hand.Pots, 2)

	side := hand.Pots[0]
	assert.Equal(t, map[string]float64{"Bob": 40, "Carol": 40}, side.Amounts, "zero contributions are omitted")
	assert.Equal(t, map[string]float64{"Bob": 80}, side.Winners)

	main := hand.Pots[1]
	assert.Equal(t, map[string]float64{"Alice": 10, "Bob": 10, "Carol": 10}, main.Amounts)
	assert.Equal(t, map[string]float64{"Alice": 30}, main.Winners)

	everyone := map[string]bool{"Alice": true, "Bob": true, "Carol": true}
	assert.Equal(t, everyone, side.AtShowdown)
	assert.Equal(t, everyone, main.AtShowdown, "shows persist across pots of the same hand")

	assert.Equal(t, 50.0, hand.Bet("Bob"))
	assert.Equal(t, 80.0, hand.Won("Bob"))
	assert.True(t, hand.InPot("Alice"))
	assert.True(t, hand.ShowedDown("Carol"))
}

func TestParse_SplitPot(t *testing.T) {
	history := parseString(t, splitPotLog)
	require.Len(t, history.Hands, 1)
	require.Len(t, history.Hands[0].Pots, 1)

	pot := history.Hands[0].Pots[0]
	assert.Equal(t, map[string]float64{"Alice": 1, "Bob": 1}, pot.Winners)

	won, bet := 0.0, 0.0
	for _, v := range pot.Winners {
		won += v
	}
	for _, v := range pot.Amounts {
		bet += v
	}
	assert.LessOrEqual(t, won, bet)
}

func TestParse_CurrencyScaling(t *testing.T) {
	input := `Hand #1
Seat 1: Alice (1000)
Seat 2: Bob (1000)
Alice posts small blind 125
Bob posts big blind 250
Alice calls 125
Bob wins Pot (500)
Rake (0) Pot (500) Players (Alice: 250, Bob: 250)
Alice adds 125 chips
`
	history := parseString(t, input)
	require.Len(t, history.Hands, 1)
	hand := history.Hands[0]
	assert.Equal(t, 12.5, hand.Blinds["Alice"])
	assert.Equal(t, 25.0, hand.Blinds["Bob"])
	assert.Equal(t, 25.0, hand.Pots[0].Amounts["Alice"])
	assert.Equal(t, 50.0, hand.Pots[0].Winners["Bob"])
	assert.Equal(t, []Addition{{Player: "Alice", Amount: 12.5}}, history.Additions)
}

func TestParse_Additions(t *testing.T) {
	input := `Alice adds 500 chips
Hand #1
Seat 1: Alice (1000)
Alice posts big blind 10
Bob adds 1000 chips (top-up)

Alice adds 250 chips
`
	history := parseString(t, input)
	assert.Len(t, history.Hands, 1)
	assert.Equal(t, []Addition{
		{Player: "Alice", Amount: 50},
		{Player: "Bob", Amount: 100},
		{Player: "Alice", Amount: 25},
	}, history.Additions)
}

func TestParse_SettlementWithoutWinner(t *testing.T) {
	input := `Hand #1
Seat 1: Alice (1000)
Seat 2: Bob (1000)
Rake (0) Pot (20) Players (Alice: 10, Bob: 10)
`
	history := parseString(t, input)
	require.Len(t, history.Hands, 1)
	require.Len(t, history.Hands[0].Pots, 1)
	assert.Empty(t, history.Hands[0].Pots[0].Winners)
	assert.Equal(t, map[string]float64{"Alice": 1, "Bob": 1}, history.Hands[0].Pots[0].Amounts)
}

func TestParse_FirstMatchWins(t *testing.T) {
	// A seat line that also looks like a winner line is only a seat line.
	input := `Hand #1
Seat 1: Alice wins Pot (40)
Rake (0) Pot (40) Players (Alice: 40)
`
	history := parseString(t, input)
	require.Len(t, history.Hands, 1)
	hand := history.Hands[0]
	assert.True(t, hand.AtTable["Alice"])
	require.Len(t, hand.Pots, 1)
	assert.Empty(t, hand.Pots[0].Winners)
}

func TestParse_IgnoresUnknownLines(t *testing.T) {
	input := `*** garbage ***
Dealt to Alice [Ac Kd]
Alice: I'm all in!
Table 'Main' 6-max
`
	history := parseString(t, input)
	assert.Empty(t, history.Hands)
	assert.Empty(t, history.Additions)
}

func TestParse_Idempotent(t *testing.T) {
	input := sampleLog + "\n\n" + sidePotLog + "\n" + splitPotLog
	first := parseString(t, input)
	second := parseString(t, input)
	assert.Equal(t, first, second)
	assert.Len(t, first.Hands, 4)
}

func TestParse_LongLine(t *testing.T) {
	long := "Seat 1: Alice " + strings.Repeat("x", 256*1024)
	history := parseString(t, "Hand #1\n"+long+"\n")
	require.Len(t, history.Hands, 1)
	assert.True(t, history.Hands[0].AtTable["Alice"])
}

func TestParse_ReadError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(errors.New("disk gone")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestParse_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	_, err := Parse(strings.NewReader(splitPotLog), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Pot settled")
	assert.Contains(t, buf.String(), "Hand complete")
}

func TestParser_FeedAndFinish(t *testing.T) {
	p := NewParser()
	for _, line := range strings.Split(splitPotLog, "\n") {
		p.Feed(line)
	}
	history := p.Finish()
	require.Len(t, history.Hands, 1)

	// Finish hands ownership to the caller and leaves the parser empty.
	again := p.Finish()
	assert.Empty(t, again.Hands)
}

func TestHandHistory_BlindPosters(t *testing.T) {
	history := parseString(t, sampleLog)
	assert.Equal(t, map[string]bool{"Alice": true, "Bob": true, "Carol": true}, history.BlindPosters())
}
