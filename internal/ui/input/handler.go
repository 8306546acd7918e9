package input

import (
	"github.com/gdamore/tcell/v2"
)

// Command is a logical pager action bound to a key.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandPageDown
	CommandPageUp
	CommandLineDown
	CommandLineUp
	CommandLinesDown
	CommandLinesUp
	CommandHalfPageDown
	CommandHalfPageUp
	CommandFirst
	CommandLast
	CommandSearchForward
	CommandSearchNext
	CommandSearchPrev
	CommandSuspend
	CommandRedraw
)

var commandNames = map[Command]string{
	CommandNone:          "none",
	CommandQuit:          "quit",
	CommandPageDown:      "page-down",
	CommandPageUp:        "page-up",
	CommandLineDown:      "line-down",
	CommandLineUp:        "line-up",
	CommandLinesDown:     "lines-down",
	CommandLinesUp:       "lines-up",
	CommandHalfPageDown:  "half-page-down",
	CommandHalfPageUp:    "half-page-up",
	CommandFirst:         "first",
	CommandLast:          "last",
	CommandSearchForward: "search-forward",
	CommandSearchNext:    "search-next",
	CommandSearchPrev:    "search-prev",
	CommandSuspend:       "suspend",
	CommandRedraw:        "redraw",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// KeyMap converts tcell key events to pager commands.
type KeyMap struct {
	keys  map[tcell.Key]Command
	runes map[rune]Command
}

// DefaultKeyMap returns less-style bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		keys: map[tcell.Key]Command{
			tcell.KeyEscape: CommandQuit,
			tcell.KeyCtrlC:  CommandQuit,
			tcell.KeyPgDn:   CommandPageDown,
			tcell.KeyPgUp:   CommandPageUp,
			tcell.KeyDown:   CommandLineDown,
			tcell.KeyUp:     CommandLineUp,
			tcell.KeyCtrlG:  CommandFirst,
			tcell.KeyHome:   CommandFirst,
			tcell.KeyEnd:    CommandLast,
			tcell.KeyCtrlZ:  CommandSuspend,
			tcell.KeyCtrlL:  CommandRedraw,
		},
		runes: map[rune]Command{
			'q': CommandQuit,
			' ': CommandPageDown,
			'b': CommandPageUp,
			'j': CommandLineDown,
			'J': CommandLinesDown,
			'k': CommandLineUp,
			'K': CommandLinesUp,
			'd': CommandHalfPageDown,
			'u': CommandHalfPageUp,
			'g': CommandFirst,
			'G': CommandLast,
			'/': CommandSearchForward,
			'n': CommandSearchNext,
			'N': CommandSearchPrev,
		},
	}
}

// Lookup returns the command bound to ev, or CommandNone. Modifiers are
// ignored for rune keys, so Alt-g behaves like g.
func (km *KeyMap) Lookup(ev *tcell.EventKey) Command {
	if ev == nil {
		return CommandNone
	}
	if ev.Key() == tcell.KeyRune {
		return km.runes[ev.Rune()]
	}
	return km.keys[ev.Key()]
}
