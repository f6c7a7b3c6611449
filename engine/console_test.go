package engine

import "testing"

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	arenas, err := NewArenaRegistry(1024 * 1024)
	if err != nil {
		t.Fatalf("NewArenaRegistry: %v", err)
	}
	t.Cleanup(func() { arenas.Release() })
	return &Engine{Arenas: arenas}
}

func TestConsoleVmemCommand(t *testing.T) {
	e := newTestEngine(t)
	e.Console = NewConsole(e)

	e.Arenas.Engine.Malloc(64, 8)

	out, err := e.Console.Execute("vmem", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out == "" {
		t.Fatal("expected non-empty vmem output")
	}
}

func TestConsoleUnknownCommand(t *testing.T) {
	e := newTestEngine(t)
	e.Console = NewConsole(e)

	if _, err := e.Console.Execute("does-not-exist", nil); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

type echoCommand struct{}

func (echoCommand) Name() string                        { return "echo" }
func (echoCommand) Execute(args []string) (string, error) { return args[0], nil }

func TestConsoleRegisterCustomCommand(t *testing.T) {
	e := newTestEngine(t)
	e.Console = NewConsole(e)
	e.Console.Register(echoCommand{})

	out, err := e.Console.Execute("echo", []string{"hi"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "hi" {
		t.Fatalf("out = %q, want %q", out, "hi")
	}
}
