package handhistory

// ChipDivisor converts raw log amounts into report currency units.
const ChipDivisor = 10.0

// Pot is the final settlement of one betting pot.
type Pot struct {
	Amounts    map[string]float64 // Net contribution per player, zero entries omitted
	Winners    map[string]float64 // Amount awarded per player
	AtShowdown map[string]bool    // Players who showed before this pot settled
}

func newPot() *Pot {
	return &Pot{
		Amounts:    make(map[string]float64),
		Winners:    make(map[string]float64),
		AtShowdown: make(map[string]bool),
	}
}

// HandLog is one fully played hand.
type HandLog struct {
	Blinds      map[string]float64 // Forced blind posted per player
	AtTable     map[string]bool    // Players seated for the hand
	VPIP        map[string]bool    // Players who bet, called or raised
	Pots        []Pot
	HasShowdown bool
}

// NewHandLog returns an empty hand ready for accumulation.
func NewHandLog() *HandLog {
	return &HandLog{
		Blinds:  make(map[string]float64),
		AtTable: make(map[string]bool),
		VPIP:    make(map[string]bool),
	}
}

// IsEmpty reports whether nothing was recorded for the hand. Empty hands are
// never emitted.
func (h *HandLog) IsEmpty() bool {
	return len(h.Blinds) == 0 && len(h.AtTable) == 0 && len(h.VPIP) == 0 && len(h.Pots) == 0
}

// Won returns the total awarded to player across all pots of the hand.
func (h *HandLog) Won(player string) float64 {
	total := 0.0
	for _, pot := range h.Pots {
		total += pot.Winners[player]
	}
	return total
}

// Bet returns the total contributed by player across all pots of the hand.
func (h *HandLog) Bet(player string) float64 {
	total := 0.0
	for _, pot := range h.Pots {
		total += pot.Amounts[player]
	}
	return total
}

// InPot reports whether player contributed to any pot of the hand.
func (h *HandLog) InPot(player string) bool {
	for _, pot := range h.Pots {
		if _, ok := pot.Amounts[player]; ok {
			return true
		}
	}
	return false
}

// ShowedDown reports whether the hand reached showdown and player showed
// before at least one of its pots settled.
func (h *HandLog) ShowedDown(player string) bool {
	if !h.HasShowdown {
		return false
	}
	for _, pot := range h.Pots {
		if pot.AtShowdown[player] {
			return true
		}
	}
	return false
}

// Addition is a chip top-up made outside of any pot.
type Addition struct {
	Player string
	Amount float64
}

// HandHistory is the complete result of parsing a log.
type HandHistory struct {
	Hands     []HandLog
	Additions []Addition
}

// BlindPosters returns every player who posted at least one blind.
func (h *HandHistory) BlindPosters() map[string]bool {
	players := make(map[string]bool)
	for _, hand := range h.Hands {
		for name := range hand.Blinds {
			players[name] = true
		}
	}
	return players
}
