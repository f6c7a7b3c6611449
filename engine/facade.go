package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/forgelabs/enginecore/gfx"
	"github.com/forgelabs/enginecore/mem"
)

const (
	remoteReconnectInterval = 5 * time.Second
	remoteConnectRetries    = 3
	defaultArenaReserveSize = 2 << 30 // 2 GiB default virtual-memory reservation
)

// AssetManager is the asset-loading subsystem's surface into the engine
// façade. Asset formats and the loader itself are out of scope; this
// engine only drives its per-frame update and asks whether the
// boot-time resource group has finished loading.
type AssetManager interface {
	Update()
	BootGroupFinished() bool
}

// ImGuiFrame is the optional immediate-mode UI integration's per-frame
// hook. UI is out of scope; nil disables it.
type ImGuiFrame interface {
	BeginFrame(dt float32)
}

// RemoteConnector abstracts the remote-services dial used by the
// reconnect retry loop. The transport itself is an external collaborator.
type RemoteConnector interface {
	Connect(url string) error
}

// Settings configures Initialize: the engine/graphics sections this
// package actually consumes.
type Settings struct {
	ArenaReserveSize  uintptr
	GraphicsEnabled   bool
	ConnectToServer   bool
	RemoteServicesURL string
}

// UpdateCallback is the app-provided per-frame update hook. BeginFrame
// does not call it directly; RunInitResourcesUpdate substitutes a
// blank-clear loop for it until boot resources finish loading.
type UpdateCallback func(dt float32)

// Engine is the frame-facing façade: arenas, device, shortcuts, console,
// and the boot-resource/update-override state machine.
type Engine struct {
	Arenas  *ArenaRegistry
	Device  *gfx.Device
	Console *Console

	assets   AssetManager
	imgui    ImGuiFrame
	remote   RemoteConnector
	settings Settings

	shortcutsMu sync.Mutex
	shortcuts   []shortcutEntry

	initResourcesMu  sync.Mutex
	initCallbacks    []func(any)
	initUserData     []any
	resourcesDone    bool
	appUpdate        UpdateCallback
	overriddenUpdate bool

	frameIndex atomic.Uint64
	frameTime  float32
	elapsedTime float64

	remoteReconnect      bool
	remoteDisconnectTime float32
	remoteRetryCount     uint32

	initialized       bool
	beginFrameCalled  bool
	endFrameCalled    bool
}

// Initialize creates the main arena, boots the graphics device when
// enabled, and wires the app's asset/UI/remote collaborators. Device
// creation still requires the platform layer to have already resolved
// an Instance/PhysicalDevice/Surface into cfg, per gfx.DeviceConfig's
// documented scoping.
func Initialize(settings Settings, cfg gfx.DeviceConfig, assets AssetManager, imgui ImGuiFrame, remote RemoteConnector) (*Engine, error) {
	reserve := settings.ArenaReserveSize
	if reserve == 0 {
		reserve = defaultArenaReserveSize
	}
	arenas, err := NewArenaRegistry(reserve)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	var device *gfx.Device
	if settings.GraphicsEnabled {
		device, err = gfx.NewDevice(cfg)
		if err != nil {
			arenas.Release()
			return nil, fmt.Errorf("engine: %w", err)
		}
	}

	e := &Engine{
		Arenas:   arenas,
		Device:   device,
		assets:   assets,
		imgui:    imgui,
		remote:   remote,
		settings: settings,
	}
	e.Console = NewConsole(e)
	e.initialized = true
	slog.Info("engine initialized", "graphics", settings.GraphicsEnabled)
	return e, nil
}

// FrameIndex returns the monotonic frame counter, advanced once per
// EndFrame.
func (e *Engine) FrameIndex() uint64 { return e.frameIndex.Load() }

// FrameTime returns the dt passed to the most recent BeginFrame.
func (e *Engine) FrameTime() float32 { return e.frameTime }

// BeginFrame runs frame-time accounting, the remote reconnect retry loop,
// ImGui frame wrapping, shortcut dispatch, and asset update. It does not
// begin a device frame: the gfx frame scheduler is not driven from here.
func (e *Engine) BeginFrame(dt float32, keys KeyState) error {
	if !e.initialized {
		return fmt.Errorf("engine: BeginFrame before Initialize")
	}
	if e.beginFrameCalled {
		return fmt.Errorf("engine: BeginFrame called twice")
	}
	e.beginFrameCalled = true
	e.endFrameCalled = false

	e.frameTime = dt
	e.elapsedTime += float64(dt)

	if e.settings.ConnectToServer && e.remoteReconnect {
		e.tickReconnect(dt)
	}

	if e.settings.GraphicsEnabled {
		if e.resourcesDone && e.imgui != nil {
			e.imgui.BeginFrame(dt)
		}
	}

	if keys != nil {
		e.dispatchShortcuts(keys)
	}

	if e.assets != nil {
		e.assets.Update()
	}
	return nil
}

// tickReconnect runs the 5s-interval, <=3-attempt reconnect retry loop.
func (e *Engine) tickReconnect(dt float32) {
	e.remoteDisconnectTime += dt
	if e.remoteDisconnectTime < float32(remoteReconnectInterval.Seconds()) {
		return
	}
	e.remoteDisconnectTime = 0
	e.remoteReconnect = false
	e.remoteRetryCount++
	if e.remoteRetryCount > remoteConnectRetries {
		slog.Warn("failed to connect to remote server after retries",
			"url", e.settings.RemoteServicesURL, "retries", remoteConnectRetries)
		return
	}
	if e.remote == nil {
		return
	}
	if err := e.remote.Connect(e.settings.RemoteServicesURL); err != nil {
		e.remoteReconnect = true
		slog.Info("remote reconnect failed, retrying", "url", e.settings.RemoteServicesURL, "err", err)
		return
	}
	e.remoteRetryCount = 0
}

// OnRemoteDisconnected marks the connection for a reconnect attempt on
// the next eligible BeginFrame. Disconnects the caller initiated on
// purpose (e.g. a clean shutdown) are ignored.
func (e *Engine) OnRemoteDisconnected(onPurpose bool) {
	if onPurpose {
		return
	}
	if e.remoteRetryCount <= remoteConnectRetries {
		e.remoteReconnect = true
	}
}

// EndFrame resets every thread's transient allocator and advances the
// frame index. It does not end a device frame.
func (e *Engine) EndFrame() error {
	if !e.beginFrameCalled {
		return fmt.Errorf("engine: EndFrame without BeginFrame")
	}
	e.beginFrameCalled = false
	e.endFrameCalled = true

	if e.settings.GraphicsEnabled && e.Device != nil {
		// gfx.Device does not export its frame scheduler's begin/end
		// cycle, so no device frame is sequenced here.
	}

	mem.ResetAll(time.Now())
	e.frameIndex.Add(1)
	return nil
}

// RegisterInitializeResources appends callback to the list fired once the
// boot-time asset group finishes loading.
func (e *Engine) RegisterInitializeResources(callback func(any), userData any) {
	e.initResourcesMu.Lock()
	defer e.initResourcesMu.Unlock()
	e.initCallbacks = append(e.initCallbacks, callback)
	e.initUserData = append(e.initUserData, userData)
}

// SetUpdateCallback installs the app's regular per-frame update function.
// RunInitResourcesUpdate overrides it until boot resources finish
// loading, then restores it automatically.
func (e *Engine) SetUpdateCallback(fn UpdateCallback) {
	e.appUpdate = fn
}

// RunInitResourcesUpdate drives one blank-clear frame while boot
// resources are still loading; once assets.BootGroupFinished reports
// true it fires every registered callback once and switches back to the
// app's regular update callback.
func (e *Engine) RunInitResourcesUpdate(dt float32, keys KeyState, clearFrame func() error) error {
	if err := e.BeginFrame(dt, keys); err != nil {
		return err
	}
	if clearFrame != nil {
		if err := clearFrame(); err != nil {
			return err
		}
	}
	if err := e.EndFrame(); err != nil {
		return err
	}

	if e.assets == nil || !e.assets.BootGroupFinished() {
		return nil
	}

	e.initResourcesMu.Lock()
	if e.resourcesDone {
		e.initResourcesMu.Unlock()
		return nil
	}
	callbacks := e.initCallbacks
	userData := e.initUserData
	e.resourcesDone = true
	e.initResourcesMu.Unlock()

	for i, cb := range callbacks {
		cb(userData[i])
	}
	e.overriddenUpdate = false
	return nil
}

// Tick runs one app-update frame: the boot-resources loop while loading,
// otherwise the app's registered update callback.
func (e *Engine) Tick(dt float32, keys KeyState, clearFrame func() error) error {
	e.initResourcesMu.Lock()
	done := e.resourcesDone
	e.initResourcesMu.Unlock()

	if !done {
		e.overriddenUpdate = true
		return e.RunInitResourcesUpdate(dt, keys, clearFrame)
	}
	if e.appUpdate != nil {
		e.appUpdate(dt)
	}
	return nil
}

// Release tears down the arena and, if present, waits for the graphics
// device to go idle.
func (e *Engine) Release() error {
	if e.Device != nil {
		if err := e.Device.WaitIdle(); err != nil {
			return err
		}
	}
	return e.Arenas.Release()
}
