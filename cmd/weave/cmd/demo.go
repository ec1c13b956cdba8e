package cmd

import (
	"time"

	"github.com/go-drift/weave/pkg/layout"
	"github.com/go-drift/weave/pkg/timer"
	"github.com/go-drift/weave/pkg/update"
	"github.com/go-drift/weave/pkg/vars"
	"github.com/go-drift/weave/pkg/widget"
)

// demo is the headless tree the run command drives: a padded bar whose
// width grows with every tick of an interval timer.
type demo struct {
	ticks *vars.Var[int]
	timer timer.TimerHandle
}

func newDemo(interval time.Duration) *demo {
	d := &demo{ticks: vars.New(0)}
	d.timer = timer.Current().OnInterval(interval, false, func(timer.TimerArgs) {
		d.ticks.Modify(func(n *int) bool {
			*n++
			return true
		})
	})
	return d
}

func (d *demo) stop() {
	d.timer.Release()
}

func (d *demo) node() widget.UiNode {
	bar := widget.MatchNodeLeaf(func(op widget.UiNodeOp) {
		switch op := op.(type) {
		case widget.OpInit:
			widget.SubVar(d.ticks.ReadOnly(), update.FlagLayout|update.FlagRender)
		case widget.OpMeasure:
			*op.DesiredSize = d.barSize()
		case widget.OpLayout:
			*op.FinalSize = d.barSize()
		}
	})
	return widget.Padding(widget.New(0, bar), layout.PxSize{Width: 8, Height: 8})
}

func (d *demo) barSize() layout.PxSize {
	c := layout.Constraints()
	return c.Clamp(layout.PxSize{Width: layout.Px(10 * (d.ticks.Get() + 1)), Height: 20})
}
