// Package nav tracks which page section the visitor has picked and
// whether the mobile menu is showing.
//
// The active section only drives highlighting of the matching nav label.
// It never scrolls the page or hides sections: all six sections are
// always in the document.
package nav

import (
	"strings"

	"github.com/pkg/errors"
)

// Section identifies a page region. Its value doubles as the element
// anchor on the page.
type Section string

const (
	Home       Section = "home"
	About      Section = "about"
	Skills     Section = "skills"
	Projects   Section = "projects"
	Experience Section = "experience"
	Contact    Section = "contact"
)

// ErrUnknownSection is returned for identifiers outside the six sections.
var ErrUnknownSection = errors.New("unknown section")

// ErrUnknownAction is returned by ParseAction for unrecognised action names.
var ErrUnknownAction = errors.New("unknown action")

var labels = []string{"Home", "About", "Skills", "Projects", "Experience", "Contact"}

// Labels returns the nav labels in display order.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// SectionFromLabel derives the identifier for a nav label.
func SectionFromLabel(label string) Section {
	return Section(strings.ToLower(label))
}

// Sections returns the identifiers in display order.
func Sections() []Section {
	out := make([]Section, len(labels))
	for i, l := range labels {
		out[i] = SectionFromLabel(l)
	}
	return out
}

// ParseSection validates an identifier received from outside the process.
func ParseSection(id string) (s Section, err error) {
	for _, known := range Sections() {
		if string(known) == id {
			s = known
			return s, err
		}
	}
	err = errors.Wrapf(ErrUnknownSection, "%q", id)
	return s, err
}

// State is the whole view-state of one page session.
type State struct {
	Active   Section
	MenuOpen bool
	Loaded   bool
}

// Initial is the state of a freshly served page.
func Initial() State {
	return State{Active: Home}
}

// Select makes id the active section and closes the mobile menu.
func Select(s State, id Section) State {
	s.Active = id
	s.MenuOpen = false
	return s
}

// ToggleMenu flips the mobile menu.
func ToggleMenu(s State) State {
	s.MenuOpen = !s.MenuOpen
	return s
}

// Mount records that the page finished its first render. Calling it again
// has no effect.
func Mount(s State) State {
	s.Loaded = true
	return s
}

// ActionKind enumerates the things a visitor can do to the nav.
type ActionKind string

const (
	ActionSelect     ActionKind = "select"
	ActionToggleMenu ActionKind = "toggle-menu"
	ActionMount      ActionKind = "mounted"
)

// Action is one input to Reduce. Section is only read for ActionSelect.
type Action struct {
	Kind    ActionKind
	Section Section
}

// ParseAction builds an Action from its wire name and, for select, the
// target section identifier.
func ParseAction(kind, target string) (a Action, err error) {
	switch ActionKind(kind) {
	case ActionSelect:
		var s Section
		s, err = ParseSection(target)
		if err != nil {
			return a, err
		}
		a = Action{Kind: ActionSelect, Section: s}
	case ActionToggleMenu, ActionMount:
		a = Action{Kind: ActionKind(kind)}
	default:
		err = errors.Wrapf(ErrUnknownAction, "%q", kind)
	}
	return a, err
}

// Reduce applies a to s.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case ActionSelect:
		return Select(s, a.Section)
	case ActionToggleMenu:
		return ToggleMenu(s)
	case ActionMount:
		return Mount(s)
	}
	return s
}

// Item is one nav entry as the renderer needs it.
type Item struct {
	Label   string
	Section Section
	Active  bool
}

// Items lists the nav entries for s in display order.
func Items(s State) []Item {
	items := make([]Item, len(labels))
	for i, l := range labels {
		id := SectionFromLabel(l)
		items[i] = Item{Label: l, Section: id, Active: id == s.Active}
	}
	return items
}
