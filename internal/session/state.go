package session

import "strings"

// State is a node of the menu state machine.
type State int

const (
	StateMenu State = iota
	StateView
	StateAdd
	StateBackup
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateView:
		return "view"
	case StateAdd:
		return "add"
	case StateBackup:
		return "backup"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

// MenuEntry is one selectable action.
type MenuEntry struct {
	Key   string
	State State
	Help  string
}

// Menu lists the actions in display order.
var Menu = []MenuEntry{
	{Key: "v", State: StateView, Help: "View a single product's inventory"},
	{Key: "a", State: StateAdd, Help: "Add a new product to the database"},
	{Key: "b", State: StateBackup, Help: "Make a backup of the entire inventory"},
}

// QuitKey ends the loop.
const QuitKey = "q"

// Next returns the state selected by a menu command. Commands are
// case-insensitive and surrounding space is ignored. ok is false for an
// unknown command, in which case the state is StateMenu.
func Next(cmd string) (next State, ok bool) {
	cmd = strings.ToLower(strings.TrimSpace(cmd))
	if cmd == QuitKey {
		return StateExit, true
	}
	for _, e := range Menu {
		if e.Key == cmd {
			return e.State, true
		}
	}
	return StateMenu, false
}
