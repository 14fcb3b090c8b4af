// Package replay plays back recorded move strings against a level.
//
// A Playback is a cursor over a demo string. Each call to Next consumes one
// rune and applies it through core.Move. The cursor advances whether or not
// the move was accepted, so a blocked step never stalls playback.
package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// StopReason tells why playback ended.
type StopReason int

const (
	// Running means playback has not stopped.
	Running StopReason = iota
	// StopEnd means the demo string was exhausted.
	StopEnd
	// StopInvalid means the next rune was not u, d, l or r.
	StopInvalid
	// StopComplete means the level was completed.
	StopComplete
	// StopCancelled means the context was cancelled.
	StopCancelled
)

// String returns the reason name.
func (r StopReason) String() string {
	switch r {
	case Running:
		return "running"
	case StopEnd:
		return "end of demo"
	case StopInvalid:
		return "invalid move"
	case StopComplete:
		return "level complete"
	case StopCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Decode converts a demo string into directions.
// Decoding stops at the first rune that is not a direction; ok reports
// whether the whole string decoded.
func Decode(demo string) (dirs []core.Dir, ok bool) {
	for _, r := range demo {
		d, valid := core.ParseDir(r)
		if !valid {
			return dirs, false
		}
		dirs = append(dirs, d)
	}
	return dirs, true
}

// Encode converts directions into a lowercase demo string.
func Encode(dirs []core.Dir) string {
	buf := make([]rune, len(dirs))
	for i, d := range dirs {
		buf[i] = d.Rune()
	}
	return string(buf)
}

// Playback is a cursor over a demo string.
type Playback struct {
	demo   []rune
	pos    int
	reason StopReason
}

// NewPlayback creates a cursor at the start of demo.
func NewPlayback(demo string) *Playback {
	return &Playback{demo: []rune(demo)}
}

// Pos returns the number of runes consumed so far.
func (p *Playback) Pos() int { return p.pos }

// Len returns the length of the demo in runes.
func (p *Playback) Len() int { return len(p.demo) }

// Done reports whether playback has stopped.
func (p *Playback) Done() bool { return p.reason != Running }

// Reason returns why playback stopped, or Running.
func (p *Playback) Reason() StopReason { return p.reason }

// Stop ends playback with StopCancelled unless it already stopped.
func (p *Playback) Stop() {
	if p.reason == Running {
		p.reason = StopCancelled
	}
}

// Next applies the next demo step to s.
//
// It returns the resulting state and the stop reason, which is Running while
// more steps remain. Once stopped, Next returns s unchanged.
func (p *Playback) Next(s core.State, level core.Level) (core.State, StopReason) {
	if p.reason != Running {
		return s, p.reason
	}
	if s.Complete {
		p.reason = StopComplete
		return s, p.reason
	}
	if p.pos >= len(p.demo) {
		p.reason = StopEnd
		return s, p.reason
	}

	d, ok := core.ParseDir(p.demo[p.pos])
	if !ok {
		p.reason = StopInvalid
		return s, p.reason
	}
	p.pos++

	s = core.Move(s, d, level)
	switch {
	case s.Complete:
		p.reason = StopComplete
	case p.pos >= len(p.demo):
		p.reason = StopEnd
	}
	return s, p.reason
}

// Result summarizes a finished run.
type Result struct {
	State  core.State
	Steps  int
	Reason StopReason
}

// Run plays level's demo from s, one step per interval.
//
// onStep, if non-nil, is called with every state produced, including
// rejected steps. Run blocks until playback stops or ctx is cancelled.
func Run(ctx context.Context, s core.State, level core.Level, interval time.Duration, onStep func(core.State)) Result {
	p := NewPlayback(level.Demo)
	if interval <= 0 {
		return drain(ctx, p, s, level, onStep)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Stop()
			return Result{State: s, Steps: p.Pos(), Reason: p.Reason()}
		case <-ticker.C:
			var reason StopReason
			before := p.Pos()
			s, reason = p.Next(s, level)
			if onStep != nil && p.Pos() != before {
				onStep(s)
			}
			if reason != Running {
				return Result{State: s, Steps: p.Pos(), Reason: reason}
			}
		}
	}
}

// drain runs the whole demo without waiting between steps.
func drain(ctx context.Context, p *Playback, s core.State, level core.Level, onStep func(core.State)) Result {
	for {
		if ctx.Err() != nil {
			p.Stop()
			return Result{State: s, Steps: p.Pos(), Reason: p.Reason()}
		}
		var reason StopReason
		before := p.Pos()
		s, reason = p.Next(s, level)
		if onStep != nil && p.Pos() != before {
			onStep(s)
		}
		if reason != Running {
			return Result{State: s, Steps: p.Pos(), Reason: reason}
		}
	}
}
