package layout

import "time"

// DefaultFlapWindow is how long a bounced size pair stays suspect.
const DefaultFlapWindow = 500 * time.Millisecond

type flapSample struct {
	width, height int
	at            time.Time
}

// FlapGuard blocks resize requests that are part of a rapid A-B-A-B
// oscillation, as happens when two ends of a PTY size negotiation
// disagree and bounce between two sizes forever. Only the two most recent
// accepted sizes are retained.
type FlapGuard struct {
	// Window overrides DefaultFlapWindow when positive.
	Window time.Duration

	last *flapSample
	prev *flapSample
}

func (g *FlapGuard) window() time.Duration {
	if g.Window > 0 {
		return g.Window
	}
	return DefaultFlapWindow
}

// ShouldApplyResize decides whether a size candidate may be applied.
// A candidate equal to the currently applied size is a no-op and refused;
// a candidate equal to the size accepted immediately before it, observed
// within the flap window, is the oscillation case and refused. Any third
// distinct size is accepted and recorded.
func (g *FlapGuard) ShouldApplyResize(width, height int, at time.Time) bool {
	if g.last != nil && g.last.width == width && g.last.height == height {
		return false
	}
	if g.prev != nil && g.prev.width == width && g.prev.height == height &&
		at.Sub(g.last.at) <= g.window() {
		return false
	}
	g.prev = g.last
	g.last = &flapSample{width: width, height: height, at: at}
	return true
}

// Reset forgets the accepted-size history.
func (g *FlapGuard) Reset() {
	g.last = nil
	g.prev = nil
}
