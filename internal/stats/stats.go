// Package stats folds parsed hands into per-player performance statistics
// and renders the plain-text report.
package stats

import (
	"github.com/masonium/fadedspade-hand-history-reader/internal/handhistory"
)

// PlayerStats holds the counters and accumulators for one player across a
// whole hand history.
type PlayerStats struct {
	Player string

	TotalHands    int // Hands where the player was seated
	HandsIn       int // Hands where the player contributed to a pot
	HandsVPIP     int // Hands where the player bet, called or raised
	HandsShowdown int // Showdown hands where the player showed before a pot settled

	HandsWon         int
	HandsWonShowdown int
	HandsLost        int
	HandsLostVPIP    int

	Net         float64 // Sum of per-hand net results
	GrossWon    float64 // Amount won over won hands
	NetWon      float64 // Amount won minus amount bet over won hands
	NetLost     float64 // Amount bet minus amount won over lost hands
	NetLostVPIP float64 // NetLost restricted to hands the player entered voluntarily
	BlindsPaid  float64

	MaxNet float64 // Best single-hand net, never below 0
	MinNet float64 // Worst single-hand net, never above 0
}

// Compute derives the statistics for player. The hands are only read.
func Compute(hands []handhistory.HandLog, player string) PlayerStats {
	s := PlayerStats{Player: player}

	for i := range hands {
		hand := &hands[i]

		if hand.AtTable[player] {
			s.TotalHands++
		}
		if hand.InPot(player) {
			s.HandsIn++
		}
		vpip := hand.VPIP[player]
		if vpip {
			s.HandsVPIP++
		}
		if hand.ShowedDown(player) {
			s.HandsShowdown++
		}
		s.BlindsPaid += hand.Blinds[player]

		won := hand.Won(player)
		bet := hand.Bet(player)

		switch {
		case won > 0 && won > bet:
			s.HandsWon++
			if hand.HasShowdown {
				s.HandsWonShowdown++
			}
			s.GrossWon += won
			s.NetWon += won - bet
		case bet > 0:
			s.HandsLost++
			s.NetLost += bet - won
			if vpip {
				s.HandsLostVPIP++
				s.NetLostVPIP += bet - won
			}
		}

		net := won - bet
		s.Net += net
		s.MaxNet = max(s.MaxNet, net)
		s.MinNet = min(s.MinNet, net)
	}

	return s
}

// Ratio divides num by den, returning 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Percent returns count as a percentage of total, or 0 when total is 0.
func Percent(count, total int) float64 {
	return 100 * Ratio(float64(count), float64(total))
}

// PctIn is the share of seated hands in which the player put chips in a pot.
func (s PlayerStats) PctIn() float64 { return Percent(s.HandsIn, s.TotalHands) }

// PctVPIP is the share of seated hands in which the player entered voluntarily.
func (s PlayerStats) PctVPIP() float64 { return Percent(s.HandsVPIP, s.TotalHands) }

// PctShowdown is measured against VPIP hands.
func (s PlayerStats) PctShowdown() float64 { return Percent(s.HandsShowdown, s.HandsVPIP) }

func (s PlayerStats) PctWonOfIn() float64   { return Percent(s.HandsWon, s.HandsIn) }
func (s PlayerStats) PctWonOfVPIP() float64 { return Percent(s.HandsWon, s.HandsVPIP) }

func (s PlayerStats) PctWonShowdownOfIn() float64 { return Percent(s.HandsWonShowdown, s.HandsIn) }

func (s PlayerStats) PctWonShowdownOfShowdown() float64 {
	return Percent(s.HandsWonShowdown, s.HandsShowdown)
}

// AvgGrossWon is the average amount collected on won hands.
func (s PlayerStats) AvgGrossWon() float64 { return Ratio(s.GrossWon, float64(s.HandsWon)) }

// AvgNetWon is the average profit on won hands.
func (s PlayerStats) AvgNetWon() float64 { return Ratio(s.NetWon, float64(s.HandsWon)) }

// AvgLost is the average net loss on lost hands, as a positive amount.
func (s PlayerStats) AvgLost() float64 { return Ratio(s.NetLost, float64(s.HandsLost)) }

// AvgLostVPIP is the average net loss on lost hands the player entered
// voluntarily.
func (s PlayerStats) AvgLostVPIP() float64 {
	return Ratio(s.NetLostVPIP, float64(s.HandsLostVPIP))
}
