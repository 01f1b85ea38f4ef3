package offdays

import (
	"errors"
	"sort"
)

// Mode selects which calendar record family an edit session targets.
type Mode string

const (
	// ModePersonal edits personal time-off days keyed by ISO date.
	ModePersonal Mode = "personal"
	// ModeYearly edits recurring holidays keyed by month-day pattern.
	ModeYearly Mode = "yearly"
)

var (
	// ErrNotEditing is returned when a selection operation is attempted
	// outside an active edit session.
	ErrNotEditing = errors.New("offdays: no edit session in progress")
	// ErrEditInProgress is returned when a session is started twice.
	ErrEditInProgress = errors.New("offdays: edit session already in progress")
	// ErrYearNotEditable is returned when a session targets a year other
	// than the current one.
	ErrYearNotEditable = errors.New("offdays: only the current year can be edited")
)

// Session tracks one calendar edit interaction: it is seeded with the
// persisted selection, toggled freely, and either submitted or cancelled.
// The zero value is an idle session.
type Session struct {
	editing   bool
	mode      Mode
	year      int
	selection map[string]struct{}
}

// Editing reports whether a session is active.
func (s *Session) Editing() bool {
	return s != nil && s.editing
}

// Mode returns the active session mode, or the empty mode when idle.
func (s *Session) Mode() Mode {
	if !s.Editing() {
		return ""
	}
	return s.mode
}

// Year returns the year the active session edits, or zero when idle.
func (s *Session) Year() int {
	if !s.Editing() {
		return 0
	}
	return s.year
}

// Begin opens an edit session seeded with the currently persisted keys.
// Editing is only permitted for the current year.
func (s *Session) Begin(mode Mode, year, currentYear int, seed []string) error {
	if s.editing {
		return ErrEditInProgress
	}
	if mode != ModePersonal && mode != ModeYearly {
		return errors.New("offdays: unknown edit mode")
	}
	if year != currentYear {
		return ErrYearNotEditable
	}

	s.mode = mode
	s.year = year
	s.selection = make(map[string]struct{}, len(seed))
	for _, key := range seed {
		s.selection[key] = struct{}{}
	}
	s.editing = true
	return nil
}

// Toggle flips a key in or out of the selection.
func (s *Session) Toggle(key string) error {
	if !s.Editing() {
		return ErrNotEditing
	}
	if _, ok := s.selection[key]; ok {
		delete(s.selection, key)
	} else {
		s.selection[key] = struct{}{}
	}
	return nil
}

// Selected returns the current selection in sorted order.
func (s *Session) Selected() []string {
	if !s.Editing() {
		return nil
	}
	keys := make([]string, 0, len(s.selection))
	for key := range s.selection {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Submit closes the session and hands the final selection to the caller,
// which runs the reconciliation against persisted state.
func (s *Session) Submit() ([]string, error) {
	if !s.Editing() {
		return nil, ErrNotEditing
	}
	selected := s.Selected()
	s.reset()
	return selected, nil
}

// Cancel discards the selection with no mutation.
func (s *Session) Cancel() {
	if s.Editing() {
		s.reset()
	}
}

func (s *Session) reset() {
	s.editing = false
	s.mode = ""
	s.year = 0
	s.selection = nil
}
