package model

import "strings"

// Key is a viewer command decoded from a keyboard or remote event.
type Key int

const (
	KeyOther Key = iota
	KeyNext
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyNext:
		return "next"
	case KeyQuit:
		return "quit"
	default:
		return "other"
	}
}

// KeyFromCode maps a raw key code: Enter advances, q quits.
func KeyFromCode(code int) Key {
	switch code {
	case 13, 10:
		return KeyNext
	case 'q', 'Q':
		return KeyQuit
	default:
		return KeyOther
	}
}

// ParseKey maps a typed line or remote command to a Key.
// An empty line counts as Enter.
func ParseKey(s string) Key {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "next", "enter":
		return KeyNext
	case "q", "quit":
		return KeyQuit
	default:
		return KeyOther
	}
}
