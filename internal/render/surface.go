package render

import "github.com/charmbracelet/lipgloss"

// State is where a Surface is in its load-and-measure cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateMeasurementPending
	StateSized
	StateMeasureFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateMeasurementPending:
		return "measurement-pending"
	case StateSized:
		return "sized"
	case StateMeasureFailed:
		return "measure-failed"
	default:
		return "unknown"
	}
}

// Surface displays one verse. Its height only changes when a measurement
// succeeds; until then the last measured height is kept.
//
//	Idle -> Loading -> Loaded -> MeasurementPending -> Sized
//	                                               \-> MeasureFailed
type Surface struct {
	state    State
	doc      *Document
	content  string
	height   int
	polls    int
	maxPolls int
	err      error
}

// NewSurface returns an idle surface that gives up measuring after maxPolls
// unready polls.
func NewSurface(maxPolls int) *Surface {
	if maxPolls < 1 {
		maxPolls = 1
	}
	return &Surface{maxPolls: maxPolls}
}

func (s *Surface) State() State        { return s.state }
func (s *Surface) Height() int         { return s.height }
func (s *Surface) Content() string     { return s.content }
func (s *Surface) Document() *Document { return s.doc }
func (s *Surface) Err() error          { return s.err }

// Load starts loading new content. Previous content is dropped, the height
// is kept.
func (s *Surface) Load() {
	s.state = StateLoading
	s.doc = nil
	s.content = ""
	s.polls = 0
	s.err = nil
}

// LoadFinished delivers the loaded document. It is ignored unless the
// surface is still loading. A failed load leaves the surface idle and empty.
func (s *Surface) LoadFinished(doc *Document, err error) bool {
	if s.state != StateLoading {
		return false
	}
	if err != nil || doc == nil {
		s.state = StateIdle
		s.err = err
		return false
	}
	s.doc = doc
	s.state = StateLoaded
	return true
}

// BeginMeasure queues a measurement. Valid after a load finished and after
// a previous measurement, e.g. when the available width changes.
func (s *Surface) BeginMeasure() bool {
	switch s.state {
	case StateLoaded, StateSized, StateMeasureFailed:
		s.state = StateMeasurementPending
		s.polls = 0
		return true
	}
	return false
}

// Poll checks whether layout is possible and measures if so. The surface is
// ready once it has a document and a positive width. It returns true while
// another poll is needed.
func (s *Surface) Poll(r *Renderer, width int) bool {
	if s.state != StateMeasurementPending {
		return false
	}

	if s.doc != nil && width > 0 {
		s.content = r.Layout(s.doc, width)
		s.height = r.Measure(s.content)
		s.state = StateSized
		return false
	}

	s.polls++
	if s.polls >= s.maxPolls {
		s.state = StateMeasureFailed
		return false
	}
	return true
}

// Pending reports whether the surface still waits for a load or a measurement.
func (s *Surface) Pending() bool {
	switch s.state {
	case StateLoading, StateLoaded, StateMeasurementPending:
		return true
	}
	return false
}

// View renders the content clipped or padded to the current height.
func (s *Surface) View() string {
	if s.height <= 0 || s.content == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Height(s.height).
		MaxHeight(s.height).
		Render(s.content)
}
