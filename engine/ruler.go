package engine

import (
	"fmt"
	"math"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/render"
	"github.com/lixenwraith/crashx/vmath"
)

// Ruler lays out the time and multiplier axes
// The divisors only grow, thinning labels as the round extends; Reset restores them
type Ruler struct {
	XDivisor float64
	YDivisor float64
}

func NewRuler() Ruler {
	return Ruler{XDivisor: 1, YDivisor: 1}
}

func (r *Ruler) Reset() {
	r.XDivisor = 1
	r.YDivisor = 1
}

// Layout fills out with this frame's labels and marks
// A divisor raised here takes effect on the next call
func (r *Ruler) Layout(out *render.RulerLayout, elapsed, payout, width, height, surfaceHeight float64) {
	out.Reset()
	r.layoutTime(out, elapsed, width, surfaceHeight)
	r.layoutPayout(out, payout, width, height)
}

func (r *Ruler) layoutTime(out *render.RulerLayout, elapsed, width, surfaceHeight float64) {
	divisor := r.XDivisor
	runtime := math.Max(elapsed, parameter.RulerMinElapsed)
	rxn := runtime / parameter.RulerTimeUnit / divisor
	rxw := width / rxn

	if rxw < width*parameter.RulerXMinSpacing {
		r.XDivisor += parameter.RulerXStep
	}

	y := surfaceHeight - parameter.TimeRulerOffsetY
	for i := 0; i <= tickCount(rxn); i++ {
		out.TimeLabels = append(out.TimeLabels, render.RulerLabel{
			Pos:  vmath.V2(rxw*float64(i)+parameter.RuleX, y),
			Text: fmt.Sprintf("%.1fs", float64(i)*divisor),
		})
	}
}

func (r *Ruler) layoutPayout(out *render.RulerLayout, payout, width, height float64) {
	divisor := r.YDivisor
	ryn := math.Max(payout, parameter.RulerYMinPayout) / divisor
	span := height * parameter.RulerYExtent
	ryw := span / ryn

	if ryw < height*parameter.RulerYMinSpacing {
		r.YDivisor += parameter.RulerYStep
	}

	mx := parameter.RuleX + width*parameter.RulerYInsetRatio - parameter.RulerYInset
	top := tickCount(ryn) + 1
	for i := top; i >= 0; i-- {
		fi := float64(i)
		y := height - ryw*fi
		out.PayoutLabels = append(out.PayoutLabels, render.RulerLabel{
			Pos:  vmath.V2(mx-parameter.RulerLabelGap, y),
			Text: fmt.Sprintf("%.1fx", (fi+1)*divisor),
		})
		out.Marks = append(out.Marks, render.RulerMark{
			From: vmath.V2(mx, y),
			To:   vmath.V2(mx+parameter.RulerMajorTick, y),
		})
		minor := height - (ryw*fi + ryw/2)
		out.Marks = append(out.Marks, render.RulerMark{
			From: vmath.V2(mx+parameter.RulerMajorTick-parameter.RulerMinorTick, minor),
			To:   vmath.V2(mx+parameter.RulerMajorTick, minor),
		})
	}
}

// tickCount floors n into [0, RulerMaxTicks]
func tickCount(n float64) int {
	if !(n > 0) {
		return 0
	}
	return int(math.Min(math.Floor(n), parameter.RulerMaxTicks))
}
