package widget

import "github.com/go-drift/weave/pkg/layout"

// InfoBuilder collects the widget info tree. Its implementation belongs to
// the info subsystem; nodes only push widgets and metadata.
type InfoBuilder interface {
	// PushWidget opens widget id, calls inner for its descendants and
	// closes it.
	PushWidget(id ID, inner func(InfoBuilder))
	// Meta sets a metadata entry on the innermost widget.
	Meta(key string, value any)
}

// FrameBuilder collects a full frame for the renderer.
type FrameBuilder interface {
	// PushWidget opens widget id, calls inner for its content and closes it.
	PushWidget(id ID, inner func(FrameBuilder))
}

// FrameUpdate collects changes to the previous frame.
type FrameUpdate interface {
	// UpdateWidget opens widget id, calls inner for its changes and closes it.
	UpdateWidget(id ID, inner func(FrameUpdate))
}

// WidgetMeasure is the state of a measure pass.
type WidgetMeasure struct {
	inline    layout.InlineMeasure
	hasInline bool
}

// NewWidgetMeasure returns the state of a new measure pass.
func NewWidgetMeasure() *WidgetMeasure {
	return &WidgetMeasure{}
}

// SetInline records the inline measure of the widget being measured.
func (wm *WidgetMeasure) SetInline(m layout.InlineMeasure) {
	wm.inline = m
	wm.hasInline = true
}

// Inline returns the recorded inline measure.
func (wm *WidgetMeasure) Inline() (layout.InlineMeasure, bool) {
	return wm.inline, wm.hasInline
}

// WidgetLayout is the state of a layout pass.
type WidgetLayout struct {
	pass   layout.PassID
	offset layout.PxVector
}

// NewWidgetLayout returns the state of layout pass pass.
func NewWidgetLayout(pass layout.PassID) *WidgetLayout {
	return &WidgetLayout{pass: pass}
}

// Pass returns the layout pass id.
func (wl *WidgetLayout) Pass() layout.PassID {
	return wl.pass
}

// Translate moves the next widgets laid out by v.
func (wl *WidgetLayout) Translate(v layout.PxVector) {
	wl.offset = wl.offset.Add(v)
}

// Offset returns the accumulated translation.
func (wl *WidgetLayout) Offset() layout.PxVector {
	return wl.offset
}

// WithTranslate runs f with v added to the offset and restores it after.
func (wl *WidgetLayout) WithTranslate(v layout.PxVector, f func() layout.PxSize) layout.PxSize {
	prev := wl.offset
	wl.Translate(v)
	defer func() { wl.offset = prev }()
	return f()
}
