package signature

import "sync"

// Pad records strokes as they are drawn. It is safe for concurrent use.
type Pad struct {
	mu    sync.Mutex
	open  *Line
	lines []Line
}

func NewPad() *Pad {
	return &Pad{}
}

// BeginStroke opens a new line at p. It does nothing while another stroke
// is still open.
func (p *Pad) BeginStroke(pt Point) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open != nil {
		return
	}
	p.open = &Line{Points: []Point{pt}}
}

// ExtendStroke appends pt to the open line; ignored when none is open.
func (p *Pad) ExtendStroke(pt Point) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open == nil {
		return
	}
	p.open.Points = append(p.open.Points, pt)
}

// EndStroke commits the open line if it has at least one point.
func (p *Pad) EndStroke() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open != nil && len(p.open.Points) > 0 {
		p.lines = append(p.lines, *p.open)
	}
	p.open = nil
}

// ClearAll drops every committed line and any open stroke.
func (p *Pad) ClearAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open = nil
	p.lines = nil
}

// Lines returns a copy of the committed lines in commit order.
func (p *Pad) Lines() []Line {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Line, len(p.lines))
	for i, l := range p.lines {
		out[i] = l.clone()
	}
	return out
}

// IsEmpty reports whether nothing has been committed yet.
func (p *Pad) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.lines) == 0
}

// Drawing reports whether a stroke is currently open.
func (p *Pad) Drawing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.open != nil
}
