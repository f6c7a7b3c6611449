package engine

import "testing"

func TestParseShortcutModifiersAndKey(t *testing.T) {
	keys, mods, err := parseShortcut("Ctrl+Shift+F5")
	if err != nil {
		t.Fatalf("parseShortcut: %v", err)
	}
	if mods != ModCtrl|ModShift {
		t.Fatalf("mods = %v, want Ctrl|Shift", mods)
	}
	if keys[0] != "F5" || keys[1] != "" {
		t.Fatalf("keys = %v, want [F5 \"\"]", keys)
	}
}

func TestParseShortcutTwoKeys(t *testing.T) {
	keys, mods, err := parseShortcut("A+B")
	if err != nil {
		t.Fatalf("parseShortcut: %v", err)
	}
	if mods != ModNone {
		t.Fatalf("mods = %v, want none", mods)
	}
	if keys[0] != "A" || keys[1] != "B" {
		t.Fatalf("keys = %v, want [A B]", keys)
	}
}

func TestParseShortcutNamedKey(t *testing.T) {
	keys, _, err := parseShortcut("Ctrl+Esc")
	if err != nil {
		t.Fatalf("parseShortcut: %v", err)
	}
	if keys[0] != "Escape" {
		t.Fatalf("keys[0] = %q, want Escape", keys[0])
	}
}

func TestParseShortcutRejectsThreeKeys(t *testing.T) {
	if _, _, err := parseShortcut("A+B+C"); err == nil {
		t.Fatal("expected an error for a shortcut naming three keys")
	}
}

func TestParseShortcutRejectsUnrecognizedToken(t *testing.T) {
	if _, _, err := parseShortcut("Frobnicate"); err == nil {
		t.Fatal("expected an error for an unrecognized key token")
	}
}

func TestRegisterShortcutRejectsDuplicateCombo(t *testing.T) {
	e := &Engine{}
	if err := e.RegisterShortcut("Ctrl+F5", func(any) {}, nil); err != nil {
		t.Fatalf("first RegisterShortcut: %v", err)
	}
	if err := e.RegisterShortcut("F5+Ctrl", func(any) {}, nil); err == nil {
		t.Fatal("expected an error registering the same combo with keys swapped")
	}
}

type fakeKeyState struct {
	down map[string]bool
	mods Modifier
}

func (f fakeKeyState) IsKeyDown(key string) bool { return f.down[key] }
func (f fakeKeyState) Modifiers() Modifier        { return f.mods }

func TestDispatchShortcutsFirstMatchWins(t *testing.T) {
	e := &Engine{}
	var fired []string
	must := func(err error) {
		if err != nil {
			t.Fatalf("RegisterShortcut: %v", err)
		}
	}
	must(e.RegisterShortcut("Ctrl+A", func(any) { fired = append(fired, "a") }, nil))
	must(e.RegisterShortcut("Ctrl+B", func(any) { fired = append(fired, "b") }, nil))

	e.dispatchShortcuts(fakeKeyState{down: map[string]bool{"A": true, "B": true}, mods: ModCtrl})

	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("fired = %v, want exactly [a]", fired)
	}
}

func TestDispatchShortcutsRequiresHeldModifiers(t *testing.T) {
	e := &Engine{}
	if err := e.RegisterShortcut("Ctrl+A", func(any) { t.Fatal("callback should not fire") }, nil); err != nil {
		t.Fatalf("RegisterShortcut: %v", err)
	}
	e.dispatchShortcuts(fakeKeyState{down: map[string]bool{"A": true}, mods: ModNone})
}
