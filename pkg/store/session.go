package store

import "time"

// Funnel states. Exactly one is active per session; the funnel service is
// the only writer.
const (
	StateIdle             = "IDLE"
	StateMainMenu         = "MAIN_MENU"
	StateAwaitingBrand    = "AWAITING_BRAND"
	StateAwaitingModel    = "AWAITING_MODEL"
	StateSelectingOptions = "SELECTING_OPTIONS"
	StateConfirmingOrder  = "CONFIRMING_ORDER"
	StateContactManager   = "CONTACT_MANAGER"
)

// Menu action kinds.
const (
	ActionSelect  = "SELECT"  // pick a catalog value from the current page
	ActionPage    = "PAGE"    // jump to another page of the same list
	ActionCommand = "COMMAND" // navigation command (main menu, yes/no, ...)
)

// MenuAction is the callback bound to one menu token. Menus are rebuilt on
// every render and never mutated in place.
type MenuAction struct {
	Kind  string
	Value string // selected catalog value, or command name for COMMAND
	Page  int    // target page for PAGE
}

// Session is the per-user funnel state held in memory between turns.
// ID format: "<tenantSlug>:<channel>:<userRef>".
type Session struct {
	ID        string
	State     string
	Slots     map[string]interface{}
	Menu      map[string]MenuAction
	UpdatedAt time.Time
}

func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		State: StateIdle,
		Slots: make(map[string]interface{}),
	}
}

// StringSlot returns a string-typed slot, or "" if absent.
func (s *Session) StringSlot(key string) string {
	if v, ok := s.Slots[key].(string); ok {
		return v
	}
	return ""
}

// ListSlot returns a list-typed slot, or nil if absent. Paginated catalog
// lists are pinned here so one funnel traversal sees a stable list.
func (s *Session) ListSlot(key string) []string {
	if v, ok := s.Slots[key].([]string); ok {
		return v
	}
	return nil
}

// IntSlot returns an int-typed slot, or 0 if absent.
func (s *Session) IntSlot(key string) int {
	if v, ok := s.Slots[key].(int); ok {
		return v
	}
	return 0
}
