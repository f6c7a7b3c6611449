// Command enginedemo exercises the engine façade's frame loop and
// memory-stats console command without a graphics device attached,
// since device creation needs a platform-supplied Vulkan
// instance/surface this demo does not create.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/forgelabs/enginecore/engine"
	"github.com/forgelabs/enginecore/gfx"
)

type noopAssets struct{}

func (noopAssets) Update()              {}
func (noopAssets) BootGroupFinished() bool { return true }

type noKeys struct{}

func (noKeys) IsKeyDown(string) bool          { return false }
func (noKeys) Modifiers() engine.Modifier     { return engine.ModNone }

func main() {
	e, err := engine.Initialize(engine.Settings{
		GraphicsEnabled: false,
	}, gfx.DeviceConfig{}, noopAssets{}, nil, nil)
	if err != nil {
		slog.Error("initialize failed", "err", err)
		os.Exit(1)
	}
	defer e.Release()

	if err := e.RegisterShortcut("Ctrl+Shift+F5", func(any) {
		out, _ := e.Console.Execute("vmem", nil)
		fmt.Print(out)
	}, nil); err != nil {
		slog.Error("register shortcut", "err", err)
		os.Exit(1)
	}

	e.Arenas.Engine.Malloc(4096, 16)
	e.Arenas.Jobs.Malloc(1024, 16)

	for i := 0; i < 3; i++ {
		if err := e.BeginFrame(1.0/60.0, noKeys{}); err != nil {
			slog.Error("begin frame", "err", err)
			os.Exit(1)
		}
		if err := e.EndFrame(); err != nil {
			slog.Error("end frame", "err", err)
			os.Exit(1)
		}
		time.Sleep(time.Millisecond)
	}

	if out, err := e.Console.Execute("vmem", nil); err == nil {
		fmt.Print(out)
	}
}
