package anim

import "math"

// SplashTimings are in seconds from mount.
type SplashTimings struct {
	Fill      float64 // progress bar fill duration
	FadeDelay float64 // when the fade-out starts
	Fade      float64 // fade-out duration
	HideAfter float64 // the splash is removed outright at this point
	Pulse     float64 // half-period of the label pulse
	Spin      float64 // period of one full cube turn
}

func DefaultSplashTimings() SplashTimings {
	return SplashTimings{
		Fill:      1.8,
		FadeDelay: 1.8,
		Fade:      0.5,
		HideAfter: 2.0,
		Pulse:     0.5,
		Spin:      2.0,
	}
}

// SplashState is everything a renderer needs to draw the splash at one
// instant.
type SplashState struct {
	Visible    bool
	Progress   float64 // 0..1 bar fill
	Opacity    float64 // overall overlay opacity
	LabelAlpha float64 // pulsing label opacity, 0.5..1
	CubeAngle  float64 // radians
}

type Splash struct {
	Timings SplashTimings
}

func NewSplash(t SplashTimings) *Splash {
	return &Splash{Timings: t}
}

// At evaluates the splash at elapsed seconds since mount.
func (s *Splash) At(elapsed float64) SplashState {
	t := s.Timings
	if elapsed >= t.HideAfter || elapsed >= t.FadeDelay+t.Fade {
		return SplashState{}
	}
	if elapsed < 0 {
		elapsed = 0
	}

	state := SplashState{
		Visible:    true,
		Progress:   1,
		Opacity:    1,
		LabelAlpha: 1,
	}

	if t.Fill > 0 {
		state.Progress = Power2InOut(elapsed / t.Fill)
	}

	if elapsed > t.FadeDelay && t.Fade > 0 {
		state.Opacity = 1 - Power2InOut((elapsed-t.FadeDelay)/t.Fade)
	}

	if t.Pulse > 0 {
		cycle := math.Floor(elapsed / t.Pulse)
		frac := elapsed/t.Pulse - cycle
		if int(cycle)%2 == 1 {
			frac = 1 - frac
		}
		state.LabelAlpha = 1 - 0.5*Power2InOut(frac)
	}

	if t.Spin > 0 {
		state.CubeAngle = math.Mod(elapsed, t.Spin) / t.Spin * 2 * math.Pi
	}

	return state
}
