package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier is a bitmask of held modifier keys, checked against the
// pressed combination as keyMods&mods == mods (a shortcut's modifiers
// must be a subset of what's held).
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModAlt   Modifier = 1 << iota
	ModCtrl
	ModShift
	ModSuper
)

var namedKeys = map[string]string{
	"ESC": "Escape", "INS": "Insert", "PGUP": "PageUp", "PGDOWN": "PageDown",
	"HOME": "Home", "END": "End", "TAB": "Tab",
}

// parseShortcutKey maps one "+"-separated token to either a modifier bit
// (folded into mods) or a key name (appended to keys).
func parseShortcutKey(token string, keys *[]string, mods *Modifier) error {
	upper := strings.ToUpper(token)

	if len(token) >= 2 && len(token) <= 3 && upper[0] == 'F' {
		if n, err := strconv.Atoi(upper[1:]); err == nil && n >= 1 && n <= 25 {
			*keys = append(*keys, fmt.Sprintf("F%d", n))
			return nil
		}
	}

	switch upper {
	case "ALT":
		*mods |= ModAlt
		return nil
	case "CTRL":
		*mods |= ModCtrl
		return nil
	case "SHIFT":
		*mods |= ModShift
		return nil
	case "SUPER":
		*mods |= ModSuper
		return nil
	}
	if name, ok := namedKeys[upper]; ok {
		*keys = append(*keys, name)
		return nil
	}

	if len(token) == 1 {
		*keys = append(*keys, upper)
		return nil
	}

	return fmt.Errorf("engine: shortcut key not recognized: %q", token)
}

// parseShortcut parses a "Ctrl+Shift+F5"-style string into up to two keys
// plus a modifier mask.
func parseShortcut(shortcut string) (keys [2]string, mods Modifier, err error) {
	var parsed []string
	for _, part := range strings.Split(shortcut, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if err := parseShortcutKey(part, &parsed, &mods); err != nil {
			return keys, 0, err
		}
	}
	if len(parsed) == 0 {
		return keys, 0, fmt.Errorf("engine: invalid shortcut string %q", shortcut)
	}
	if len(parsed) > 2 {
		return keys, 0, fmt.Errorf("engine: shortcut %q names more than two keys", shortcut)
	}
	keys[0] = parsed[0]
	if len(parsed) == 2 {
		keys[1] = parsed[1]
	}
	return keys, mods, nil
}

// ShortcutCallback fires when a registered shortcut's keys and modifiers
// match the current input state.
type ShortcutCallback func(userData any)

type shortcutEntry struct {
	keys     [2]string
	mods     Modifier
	callback ShortcutCallback
	userData any
}

func (e shortcutEntry) sameCombo(keys [2]string, mods Modifier) bool {
	if e.mods != mods {
		return false
	}
	return (e.keys[0] == keys[0] && e.keys[1] == keys[1]) ||
		(e.keys[0] == keys[1] && e.keys[1] == keys[0])
}

// RegisterShortcut parses shortcut and stores it for dispatch by
// BeginFrame, which polls the KeyState it is given. Registering a
// duplicate key+modifier combination is an error.
func (e *Engine) RegisterShortcut(shortcut string, callback ShortcutCallback, userData any) error {
	keys, mods, err := parseShortcut(shortcut)
	if err != nil {
		return err
	}

	e.shortcutsMu.Lock()
	defer e.shortcutsMu.Unlock()
	for _, existing := range e.shortcuts {
		if existing.sameCombo(keys, mods) {
			return fmt.Errorf("engine: shortcut already registered: %q", shortcut)
		}
	}
	e.shortcuts = append(e.shortcuts, shortcutEntry{keys: keys, mods: mods, callback: callback, userData: userData})
	return nil
}

// KeyState reports which keys are currently held, for shortcut dispatch.
// The window/input layer is an external collaborator; this engine only
// consumes its reported state.
type KeyState interface {
	IsKeyDown(key string) bool
	Modifiers() Modifier
}

// dispatchShortcuts fires the first matching shortcut's callback. Only
// the first match fires per call, not every match.
func (e *Engine) dispatchShortcuts(keys KeyState) {
	e.shortcutsMu.Lock()
	entries := append([]shortcutEntry(nil), e.shortcuts...)
	e.shortcutsMu.Unlock()

	held := keys.Modifiers()
	for _, s := range entries {
		if !keys.IsKeyDown(s.keys[0]) {
			continue
		}
		if s.keys[1] != "" && !keys.IsKeyDown(s.keys[1]) {
			continue
		}
		if s.mods != ModNone && held&s.mods != s.mods {
			continue
		}
		s.callback(s.userData)
		break
	}
}
