// Package handhistory parses plain-text poker hand-history logs into
// structured hand records.
//
// A log is a sequence of hands separated by blank lines. Each hand lists the
// seated players, blind posts, voluntary actions, an optional showdown
// section, and one settlement line per pot:
//
//	Hand #1001 - Holdem (No Limit)
//	Seat 1: Alice (1000)
//	Seat 2: Bob (1000)
//	Alice posts small blind 5
//	Bob posts big blind 10
//	Alice calls 5
//	** Show Down **
//	Alice shows [Ac Kh]
//	Bob shows [7d 7c]
//	Bob wins Pot (20)
//	Rake (0) Pot (20) Players (Alice: 10, Bob: 10)
//
// # Basic Usage
//
//	history, err := handhistory.Parse(f)
//	if err != nil {
//	    return err
//	}
//	for _, hand := range history.Hands {
//	    // ...
//	}
//
// # Line Rules
//
// Lines are classified by an ordered rule table and the first matching rule
// wins. Lines that match no rule are ignored. All amounts in the log are in
// minor units and are divided by ChipDivisor on ingestion.
//
// A hand is flushed on a blank line and at end of input. A hand-start marker
// resets the in-progress hand without flushing it.
package handhistory
