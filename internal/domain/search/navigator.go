package search

import "github.com/okian/facultyhub/internal/domain/model"

// State is the observable state of a Navigator.
type State int

// Navigator states.
const (
	StateIdle State = iota
	StateQueryTyped
	StateHighlighted
)

func (s State) String() string {
	switch s {
	case StateQueryTyped:
		return "query_typed"
	case StateHighlighted:
		return "highlighted"
	default:
		return "idle"
	}
}

// Navigator drives keyboard interaction with the search suggestions. The
// highlight index is -1 when nothing is highlighted.
type Navigator struct {
	roster []model.Professor
	query  string
	open   bool
	index  int
}

// NewNavigator creates an idle navigator over roster.
func NewNavigator(roster []model.Professor) *Navigator {
	return &Navigator{roster: roster, index: -1}
}

// Type replaces the query. The panel opens when the query is non-empty and
// any highlight is dropped.
func (n *Navigator) Type(query string) {
	n.query = query
	n.open = len(query) > 0
	n.index = -1
}

// Down moves the highlight one result further, stopping at the last result.
func (n *Navigator) Down() {
	if n.index < len(n.Results())-1 {
		n.index++
	}
}

// Up moves the highlight one result back. Moving up from the first result
// clears the highlight.
func (n *Navigator) Up() {
	if n.index > 0 {
		n.index--
		return
	}
	n.index = -1
}

// Enter returns the highlighted professor and resets the navigator. Without
// a highlight nothing happens and ok is false.
func (n *Navigator) Enter() (model.Professor, bool) {
	results := n.Results()
	if n.index < 0 || n.index >= len(results) {
		return model.Professor{}, false
	}
	p := results[n.index]
	n.Clear()
	return p, true
}

// Escape clears the query and closes the panel.
func (n *Navigator) Escape() {
	n.Clear()
}

// Focus reopens the panel if a query is present.
func (n *Navigator) Focus() {
	if len(n.query) > 0 {
		n.open = true
	}
}

// Blur closes the panel and drops the highlight but keeps the query.
func (n *Navigator) Blur() {
	n.open = false
	n.index = -1
}

// Clear resets query, panel and highlight.
func (n *Navigator) Clear() {
	n.query = ""
	n.open = false
	n.index = -1
}

// Results returns the suggestions for the current query.
func (n *Navigator) Results() []model.Professor {
	return Search(n.roster, n.query)
}

// Query returns the current query.
func (n *Navigator) Query() string { return n.query }

// Open reports whether the suggestion panel is shown.
func (n *Navigator) Open() bool { return n.open }

// Index returns the highlight index, -1 when nothing is highlighted.
func (n *Navigator) Index() int { return n.index }

// State returns the current state.
func (n *Navigator) State() State {
	switch {
	case n.index >= 0:
		return StateHighlighted
	case n.query != "":
		return StateQueryTyped
	default:
		return StateIdle
	}
}
