package testing

import (
	"sync"

	"github.com/go-drift/weave/pkg/layout"
	"github.com/go-drift/weave/pkg/widget"
)

// ProbeNode is a leaf node that records the ops it receives. Measure and
// layout return Size, or the fill size of the constraints when Size is
// zero.
type ProbeNode struct {
	Size layout.PxSize

	// OnOp is called with every op after it is recorded.
	OnOp func(op widget.UiNodeOp)

	mu  sync.Mutex
	ops []widget.OpKind
}

// NewProbe returns a probe of the given size.
func NewProbe(size layout.PxSize) *ProbeNode {
	return &ProbeNode{Size: size}
}

// Node returns the probe as a UiNode.
func (p *ProbeNode) Node() widget.UiNode {
	return widget.MatchNodeLeaf(p.op)
}

func (p *ProbeNode) op(op widget.UiNodeOp) {
	p.mu.Lock()
	p.ops = append(p.ops, op.Kind())
	p.mu.Unlock()

	switch o := op.(type) {
	case widget.OpMeasure:
		*o.DesiredSize = p.size()
	case widget.OpLayout:
		*o.FinalSize = p.size()
	}
	if p.OnOp != nil {
		p.OnOp(op)
	}
}

func (p *ProbeNode) size() layout.PxSize {
	if !p.Size.IsZero() {
		return p.Size
	}
	return layout.Constraints().FillSize()
}

// Ops returns the recorded op kinds in order.
func (p *ProbeNode) Ops() []widget.OpKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]widget.OpKind(nil), p.ops...)
}

// Count returns how many ops of kind were recorded.
func (p *ProbeNode) Count(kind widget.OpKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, k := range p.ops {
		if k == kind {
			n++
		}
	}
	return n
}

// Reset forgets the recorded ops.
func (p *ProbeNode) Reset() {
	p.mu.Lock()
	p.ops = nil
	p.mu.Unlock()
}

// InfoRecorder is a widget.InfoBuilder that records the widget tree as
// nested ids.
type InfoRecorder struct {
	Root []*InfoEntry
	cur  *InfoEntry
}

// InfoEntry is one widget recorded by InfoRecorder.
type InfoEntry struct {
	ID       widget.ID
	Meta     map[string]any
	Children []*InfoEntry
}

// PushWidget implements widget.InfoBuilder.
func (r *InfoRecorder) PushWidget(id widget.ID, inner func(widget.InfoBuilder)) {
	e := &InfoEntry{ID: id}
	parent := r.cur
	if parent == nil {
		r.Root = append(r.Root, e)
	} else {
		parent.Children = append(parent.Children, e)
	}
	r.cur = e
	defer func() { r.cur = parent }()
	inner(r)
}

// Meta implements widget.InfoBuilder.
func (r *InfoRecorder) Meta(key string, value any) {
	if r.cur == nil {
		return
	}
	if r.cur.Meta == nil {
		r.cur.Meta = map[string]any{}
	}
	r.cur.Meta[key] = value
}

// IDs returns the recorded ids in depth-first order.
func (r *InfoRecorder) IDs() []widget.ID {
	var ids []widget.ID
	var walk func([]*InfoEntry)
	walk = func(es []*InfoEntry) {
		for _, e := range es {
			ids = append(ids, e.ID)
			walk(e.Children)
		}
	}
	walk(r.Root)
	return ids
}

// FrameRecorder is a widget.FrameBuilder and widget.FrameUpdate that
// records the widgets visited in order.
type FrameRecorder struct {
	Widgets []widget.ID
	Updated []widget.ID
}

// PushWidget implements widget.FrameBuilder.
func (r *FrameRecorder) PushWidget(id widget.ID, inner func(widget.FrameBuilder)) {
	r.Widgets = append(r.Widgets, id)
	inner(r)
}

// UpdateWidget implements widget.FrameUpdate.
func (r *FrameRecorder) UpdateWidget(id widget.ID, inner func(widget.FrameUpdate)) {
	r.Updated = append(r.Updated, id)
	inner(r)
}

// Reset forgets the recorded widgets.
func (r *FrameRecorder) Reset() {
	r.Widgets, r.Updated = nil, nil
}
