package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-drift/weave/pkg/widget"
)

// Option configures an App.
type Option func(*options)

type options struct {
	registry       prometheus.Registerer
	namespace      string
	tracerProvider trace.TracerProvider
	traceCapacity  int
	slowThreshold  time.Duration
	info           widget.InfoBuilder
	frame          widget.FrameBuilder
	frameUpdate    widget.FrameUpdate
}

func defaultOptions() options {
	return options{
		namespace:   "weave",
		info:        discardInfo{},
		frame:       discardFrame{},
		frameUpdate: discardFrame{},
	}
}

// WithRegistry sets the Prometheus registry the app collectors register
// with. By default every app uses a registry of its own.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithNamespace sets the metrics namespace (default: "weave").
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider. By default the
// global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithPassTrace sets the capacity of the pass trace buffer and the duration
// above which a pass counts as slow.
func WithPassTrace(capacity int, slowThreshold time.Duration) Option {
	return func(o *options) {
		o.traceCapacity = capacity
		o.slowThreshold = slowThreshold
	}
}

// WithInfoBuilder sets the builder the info pass writes the widget info
// tree to.
func WithInfoBuilder(b widget.InfoBuilder) Option {
	return func(o *options) {
		o.info = b
	}
}

// WithRenderer sets the builders of the render and render update passes.
func WithRenderer(frame widget.FrameBuilder, update widget.FrameUpdate) Option {
	return func(o *options) {
		o.frame = frame
		o.frameUpdate = update
	}
}

// discardInfo and discardFrame visit every widget and keep nothing.
type (
	discardInfo  struct{}
	discardFrame struct{}
)

func (discardInfo) PushWidget(_ widget.ID, inner func(widget.InfoBuilder)) { inner(discardInfo{}) }
func (discardInfo) Meta(string, any)                                       {}

func (discardFrame) PushWidget(_ widget.ID, inner func(widget.FrameBuilder)) {
	inner(discardFrame{})
}

func (discardFrame) UpdateWidget(_ widget.ID, inner func(widget.FrameUpdate)) {
	inner(discardFrame{})
}
