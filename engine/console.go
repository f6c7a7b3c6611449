package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ConsoleCommand is one named debug command, the unit the remote console
// dispatches into. The console transport itself (network listener, REPL)
// is an external collaborator; this type is the surface it calls into.
type ConsoleCommand interface {
	Name() string
	Execute(args []string) (string, error)
}

// Console is the engine-owned command registry. A remote or local console
// front-end looks commands up by name and calls Execute; this engine does
// not implement the transport.
type Console struct {
	mu       sync.RWMutex
	commands map[string]ConsoleCommand
}

// NewConsole creates a console with the built-in "vmem" command wired to
// report e's arena registry stats as a text table.
func NewConsole(e *Engine) *Console {
	c := &Console{commands: make(map[string]ConsoleCommand)}
	c.Register(vmemCommand{engine: e})
	return c
}

// Register adds cmd, overwriting any existing command with the same name.
func (c *Console) Register(cmd ConsoleCommand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands[cmd.Name()] = cmd
}

// Execute dispatches to the named command.
func (c *Console) Execute(name string, args []string) (string, error) {
	c.mu.RLock()
	cmd, ok := c.commands[name]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("engine: unknown console command %q", name)
	}
	return cmd.Execute(args)
}

type vmemCommand struct {
	engine *Engine
}

func (vmemCommand) Name() string { return "vmem" }

func (v vmemCommand) Execute([]string) (string, error) {
	stats := v.engine.Arenas.Stats()
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })

	var b strings.Builder
	for _, s := range stats {
		fmt.Fprintf(&b, "%-16s live=%d bytes, %d allocs\n", s.Name, s.LiveBytes, s.LiveCount)
	}
	return b.String(), nil
}
