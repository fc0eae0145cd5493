package domain

import "github.com/jonboulle/clockwork"

// clock stamps rendered layers. Tests freeze it with SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used by NewMarkerLayer. Pass nil to
// restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
