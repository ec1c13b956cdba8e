// Package app runs the headless update loop of a weave application.
//
// An App owns the app-wide services (vars, timers and events), installs them
// as the current services while it is open and drives one root widget
// through update passes. Each pass runs, in order:
//
//  1. the timers service (detect elapsed timers, then run their handlers),
//  2. the vars modify queue,
//  3. the event updates (pre actions, widget tree dispatch, pos actions),
//  4. the widget update for widgets that requested one,
//  5. info, layout and render (or render update) of the root widget.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-drift/weave/pkg/config"
	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/event"
	"github.com/go-drift/weave/pkg/layout"
	"github.com/go-drift/weave/pkg/timer"
	"github.com/go-drift/weave/pkg/timing"
	"github.com/go-drift/weave/pkg/update"
	"github.com/go-drift/weave/pkg/vars"
	"github.com/go-drift/weave/pkg/widget"
)

const tracerName = "github.com/go-drift/weave/pkg/app"

// App is a headless weave application.
type App struct {
	cfg  *config.Resolved
	opts options

	signal *update.Signal
	vars   *vars.Service
	timers *timer.Service
	events *event.Service

	prevSignal *update.Signal
	prevVars   *vars.Service
	prevTimers *timer.Service
	prevEvents *event.Service
	prevDebug  bool

	mu      sync.Mutex
	root    widget.Widget
	metrics layout.Metrics
	loop    *update.LoopTimer
	pass    uint64
	closed  bool

	stats  *metrics
	tracer trace.Tracer
	traces *PassTraceBuffer
}

// New creates an app from cfg and installs its services. A nil cfg uses
// config.Default. Close restores the services that were current before.
func New(cfg *config.Resolved, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}

	sig := update.NewSignal()
	vs := vars.NewService(sig)
	a := &App{
		cfg:     cfg,
		opts:    o,
		signal:  sig,
		vars:    vs,
		timers:  timer.NewService(sig, vs),
		events:  event.NewService(sig),
		metrics: cfg.Metrics(),
		loop:    update.NewLoopTimer(timing.Now()),
		tracer:  o.tracerProvider.Tracer(tracerName),
		traces:  NewPassTraceBuffer(o.traceCapacity, o.slowThreshold),
	}
	a.stats = newMetrics(o.registry, o.namespace, cfg.AppName, a.timers)

	a.prevSignal = widget.InstallSignal(sig)
	a.prevVars = vars.Install(a.vars)
	a.prevTimers = timer.Install(a.timers)
	a.prevEvents = event.Install(a.events)
	a.prevDebug = widget.SetDebugMode(cfg.Debug)
	return a
}

// Config returns the resolved configuration of the app.
func (a *App) Config() *config.Resolved {
	return a.cfg
}

// Signal returns the wake signal shared by the app services.
func (a *App) Signal() *update.Signal {
	return a.signal
}

// Vars returns the vars service of the app.
func (a *App) Vars() *vars.Service {
	return a.vars
}

// Timers returns the timers service of the app.
func (a *App) Timers() *timer.Service {
	return a.timers
}

// Events returns the events service of the app.
func (a *App) Events() *event.Service {
	return a.events
}

// Timeline returns the recent pass samples.
func (a *App) Timeline() PassTimeline {
	return a.traces.Snapshot()
}

// Root returns the root widget, or nil.
func (a *App) Root() widget.Widget {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.root
}

// SetRoot deinits the current root and inits node as the new root. A node
// that is not a widget is wrapped in one.
func (a *App) SetRoot(node widget.UiNode) widget.Widget {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.root != nil {
		a.root.Deinit()
		a.root = nil
	}
	if node == nil {
		return nil
	}
	root, ok := widget.AsWidget(node)
	if !ok {
		root = widget.New(0, node)
	}
	root.Init()
	a.root = root
	a.signal.Request(update.FlagInfo | update.FlagLayout | update.FlagRender)
	return root
}

// SetMetrics replaces the root layout metrics, for example after a window
// resize.
func (a *App) SetMetrics(m layout.Metrics) {
	a.mu.Lock()
	a.metrics = m
	a.mu.Unlock()
	a.signal.Request(update.FlagLayout | update.FlagRender)
}

// HasPendingWork reports whether a pass would have something to do now.
func (a *App) HasPendingWork() bool {
	return a.signal.Pending() != 0 ||
		a.vars.HasPending() ||
		a.events.HasPending() ||
		a.timers.HasPendingHandlers()
}

// Wait blocks until the app has pending work, the earliest timer deadline
// elapses, the signal wakes or ctx is done.
func (a *App) Wait(ctx context.Context) error {
	if a.HasPendingWork() {
		return nil
	}
	loop := update.NewLoopTimer(timing.Now())
	a.timers.NextDeadline(loop)
	sleep, ok := loop.Sleep()
	if ok && sleep == 0 {
		return nil
	}

	var elapsed <-chan time.Time
	if ok {
		t := time.NewTimer(sleep)
		defer t.Stop()
		elapsed = t.C
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-a.signal.Woken():
		return nil
	case <-elapsed:
		return nil
	}
}

// Update runs one pass. If wait is true it first waits for work.
func (a *App) Update(wait bool) PassSample {
	if wait {
		_ = a.Wait(context.Background())
	}
	return a.runPass(context.Background())
}

// Run runs passes until ctx is done and returns ctx.Err().
func (a *App) Run(ctx context.Context) error {
	for {
		if err := a.Wait(ctx); err != nil {
			return err
		}
		a.runPass(ctx)
	}
}

// Close deinits the root and restores the services that were current
// before New.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	if a.root != nil {
		a.root.Deinit()
		a.root = nil
	}
	a.stats.unregister()
	widget.InstallSignal(a.prevSignal)
	vars.Install(a.prevVars)
	timer.Install(a.prevTimers)
	event.Install(a.prevEvents)
	widget.SetDebugMode(a.prevDebug)
}

func (a *App) runPass(ctx context.Context) (sample PassSample) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return PassSample{}
	}

	a.pass++
	start := time.Now()
	sample.Pass = a.pass
	sample.Timestamp = timing.Now().UnixMilli()

	_, span := a.tracer.Start(ctx, "weave.update", trace.WithAttributes(
		attribute.Int64("weave.pass", int64(a.pass)),
		attribute.String("weave.app", a.cfg.AppName),
	))
	defer func() {
		if r := recover(); r != nil {
			err := errors.NewPanic("app.update", r)
			errors.ReportPanic(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			a.stats.panics.Inc()
			sample.Panicked = true
		}
		a.finishPass(&sample, start, span)
	}()

	fired := a.timers.Stats().Fired
	phase := time.Now()
	a.loop.Poll(timing.Now())
	a.timers.ApplyUpdates(a.loop)
	a.timers.Notify()
	sample.Phases.TimersMs = durationToMillis(time.Since(phase))
	sample.Counts.TimersFired = a.timers.Stats().Fired - fired

	phase = time.Now()
	a.vars.ApplyUpdates()
	sample.Phases.VarsMs = durationToMillis(time.Since(phase))

	phase = time.Now()
	updates := a.events.ApplyUpdates()
	for _, u := range updates {
		u.CallPreActions()
		if a.root != nil {
			a.root.Event(u)
		}
		u.CallPosActions()
	}
	sample.Counts.Events = len(updates)
	a.stats.events.Add(float64(len(updates)))
	sample.Phases.EventsMs = durationToMillis(time.Since(phase))

	phase = time.Now()
	flags := a.signal.Take()
	if wu := widget.TakeUpdates(); wu != nil && a.root != nil {
		a.root.Update(wu)
	}
	sample.Phases.UpdateMs = durationToMillis(time.Since(phase))

	flags |= a.signal.Take()
	if a.root != nil {
		flags |= a.root.PendingFlags()
	}
	sample.Flags = flags.String()
	span.SetAttributes(attribute.String("weave.flags", sample.Flags))
	if a.root == nil {
		return sample
	}

	if flags&update.FlagInfo != 0 {
		phase = time.Now()
		a.root.Info(a.opts.info)
		sample.Phases.InfoMs = durationToMillis(time.Since(phase))
	}

	if flags&update.FlagLayout != 0 {
		phase = time.Now()
		pass := layout.NewPassID()
		layout.WithRootContext(pass, a.metrics, func() layout.PxSize {
			return a.root.Layout(widget.NewWidgetLayout(pass))
		})
		sample.Phases.LayoutMs = durationToMillis(time.Since(phase))
		// Layout requests a render of widgets that moved or resized.
		flags |= a.signal.Take() | a.root.PendingFlags()
	}

	switch {
	case flags&update.FlagRender != 0:
		phase = time.Now()
		a.root.Render(a.opts.frame)
		sample.Rendered = true
		sample.Phases.RenderMs = durationToMillis(time.Since(phase))
	case flags&update.FlagRenderUpdate != 0:
		phase = time.Now()
		a.root.RenderUpdate(a.opts.frameUpdate)
		sample.Rendered = true
		sample.Phases.RenderMs = durationToMillis(time.Since(phase))
	}
	return sample
}

func (a *App) finishPass(sample *PassSample, start time.Time, span trace.Span) {
	d := time.Since(start)
	sample.PassMs = durationToMillis(d)
	a.stats.passes.Inc()
	a.stats.passDuration.Observe(d.Seconds())
	if a.traces.Add(*sample, d) {
		a.stats.slowPasses.Inc()
	}
	span.SetAttributes(
		attribute.Int("weave.events", sample.Counts.Events),
		attribute.Bool("weave.rendered", sample.Rendered),
	)
	span.End()
}
