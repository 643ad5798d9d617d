package handhistory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

const namePattern = `(?P<name>[a-zA-Z0-9_]+)`

var (
	handStartRe = regexp.MustCompile(`Hand #`)
	seatRe      = regexp.MustCompile(`Seat\s*.*:\s+` + namePattern)
	showdownRe  = regexp.MustCompile(`Show Down`)
	winnerRe    = regexp.MustCompile(namePattern + `\s+(?:wins|splits)\s+.*\s+\((?P<amount>[0-9.]+)\)`)
	showsRe     = regexp.MustCompile(namePattern + `\s+shows`)
	vpipRe      = regexp.MustCompile(namePattern + `\s+(?:bets|calls|raises to)\s+(?P<amount>[0-9.]+)`)
	blindRe     = regexp.MustCompile(namePattern + `\s+posts (?:small|big) blind\s+(?P<amount>[0-9.]+)`)
	rakeRe      = regexp.MustCompile(`Rake\s+\([0-9.]+\)\s*Pot\s+\([0-9.]+\)\s+Players\s+\((?P<players>[^)]+)\)`)
	addsRe      = regexp.MustCompile(namePattern + `\s+adds\s+(?P<amount>[0-9.]+)\s+chips`)
)

// rule pairs a line pattern with the state change it causes. Rules are tried
// in order and only the first match is applied.
type rule struct {
	name  string
	re    *regexp.Regexp
	apply func(p *Parser, m match)
}

var rules = []rule{
	{"hand_start", handStartRe, (*Parser).startHand},
	{"seat", seatRe, (*Parser).seat},
	{"showdown", showdownRe, (*Parser).showdown},
	{"winner", winnerRe, (*Parser).winner},
	{"shows", showsRe, (*Parser).shows},
	{"vpip", vpipRe, (*Parser).voluntary},
	{"blind", blindRe, (*Parser).blind},
	{"settlement", rakeRe, (*Parser).settle},
	{"adds", addsRe, (*Parser).add},
}

// match gives named access to a regexp submatch.
type match struct {
	re     *regexp.Regexp
	groups []string
}

func (m match) get(name string) string {
	idx := m.re.SubexpIndex(name)
	if idx < 0 || idx >= len(m.groups) {
		return ""
	}
	return m.groups[idx]
}

// amount parses a raw log amount and scales it into currency units.
func (m match) amount() (float64, bool) {
	return parseAmount(m.get("amount"))
}

func parseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v / ChipDivisor, true
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLogger sets the logger used for debug tracing of parse decisions.
func WithLogger(logger *log.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser is the line-by-line state machine behind Parse. It holds the
// in-progress hand, the open pot (nil outside a winner/settlement span) and
// the names that have shown since the current hand started.
type Parser struct {
	logger  *log.Logger
	lineNum int
	hand    *HandLog
	pot     *Pot
	shown   []string
	history HandHistory
}

// NewParser creates a parser with no hands recorded.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger: log.New(io.Discard),
		hand:   NewHandLog(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a hand-history log to completion. Unrecognised lines are
// ignored; only read failures are returned as errors.
func Parse(r io.Reader, opts ...ParserOption) (*HandHistory, error) {
	p := NewParser(opts...)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			p.Feed(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", p.lineNum+1, err)
		}
	}
	return p.Finish(), nil
}

// Feed classifies a single line and updates parser state.
func (p *Parser) Feed(line string) {
	p.lineNum++
	line = strings.TrimRight(line, "\r\n")

	if strings.TrimSpace(line) == "" {
		p.flush()
		return
	}

	for _, r := range rules {
		groups := r.re.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		r.apply(p, match{re: r.re, groups: groups})
		return
	}
}

// Finish flushes any trailing hand and returns the parsed history. A log
// that does not end in a blank line still yields its last hand.
func (p *Parser) Finish() *HandHistory {
	p.flush()
	history := p.history
	p.history = HandHistory{}
	return &history
}

// flush appends the current hand if anything was recorded and starts a new one.
func (p *Parser) flush() {
	if !p.hand.IsEmpty() {
		p.history.Hands = append(p.history.Hands, *p.hand)
		p.logger.Debug("Hand complete",
			"line", p.lineNum,
			"hand", len(p.history.Hands),
			"players", len(p.hand.AtTable),
			"pots", len(p.hand.Pots))
	}
	p.hand = NewHandLog()
}

func (p *Parser) startHand(match) {
	if p.pot != nil {
		p.logger.Debug("Discarding unsettled pot", "line", p.lineNum, "winners", len(p.pot.Winners))
	}
	p.hand = NewHandLog()
	p.pot = nil
	p.shown = p.shown[:0]
}

func (p *Parser) seat(m match) {
	p.hand.AtTable[m.get("name")] = true
}

func (p *Parser) showdown(match) {
	p.hand.HasShowdown = true
}

func (p *Parser) winner(m match) {
	amount, ok := m.amount()
	if !ok {
		return
	}
	if p.pot == nil {
		p.pot = newPot()
	}
	p.pot.Winners[m.get("name")] += amount
}

func (p *Parser) shows(m match) {
	p.shown = append(p.shown, m.get("name"))
}

func (p *Parser) voluntary(m match) {
	p.hand.VPIP[m.get("name")] = true
}

func (p *Parser) blind(m match) {
	amount, ok := m.amount()
	if !ok {
		return
	}
	p.hand.Blinds[m.get("name")] = amount
}

func (p *Parser) settle(m match) {
	pot := p.pot
	if pot == nil {
		p.logger.Debug("Settlement without winner", "line", p.lineNum)
		pot = newPot()
	}

	for _, entry := range strings.Split(m.get("players"), ", ") {
		name, raw, found := strings.Cut(entry, ": ")
		if !found {
			continue
		}
		amount, ok := parseAmount(raw)
		if !ok || amount == 0 {
			continue
		}
		pot.Amounts[strings.TrimSpace(name)] = amount
	}
	for _, name := range p.shown {
		pot.AtShowdown[name] = true
	}

	p.hand.Pots = append(p.hand.Pots, *pot)
	p.pot = nil
	p.logger.Debug("Pot settled",
		"line", p.lineNum,
		"players", len(pot.Amounts),
		"winners", len(pot.Winners),
		"showdown", len(pot.AtShowdown))
}

func (p *Parser) add(m match) {
	amount, ok := m.amount()
	if !ok {
		return
	}
	p.history.Additions = append(p.history.Additions, Addition{Player: m.get("name"), Amount: amount})
}
