package engine

import (
	"errors"
	"testing"

	"github.com/forgelabs/enginecore/gfx"
)

type stubAssets struct {
	bootDone bool
	updates  int
}

func (s *stubAssets) Update()                  { s.updates++ }
func (s *stubAssets) BootGroupFinished() bool { return s.bootDone }

func TestInitializeWithoutGraphics(t *testing.T) {
	assets := &stubAssets{bootDone: true}
	e, err := Initialize(Settings{}, gfx.DeviceConfig{}, assets, nil, nil)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer e.Release()

	if e.Device != nil {
		t.Fatal("expected a nil device when GraphicsEnabled is false")
	}
	if e.Arenas == nil || e.Console == nil {
		t.Fatal("Initialize must wire the arena registry and console")
	}
}

func TestBeginEndFrameAdvancesFrameIndex(t *testing.T) {
	assets := &stubAssets{bootDone: true}
	e, err := Initialize(Settings{}, gfx.DeviceConfig{}, assets, nil, nil)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer e.Release()

	if err := e.BeginFrame(1.0/60.0, nil); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := e.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if e.FrameIndex() != 1 {
		t.Fatalf("FrameIndex() = %d, want 1", e.FrameIndex())
	}
	if assets.updates != 1 {
		t.Fatalf("asset Update calls = %d, want 1", assets.updates)
	}
}

func TestBeginFrameTwiceErrors(t *testing.T) {
	assets := &stubAssets{bootDone: true}
	e, err := Initialize(Settings{}, gfx.DeviceConfig{}, assets, nil, nil)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer e.Release()

	if err := e.BeginFrame(1.0/60.0, nil); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := e.BeginFrame(1.0/60.0, nil); err == nil {
		t.Fatal("expected an error calling BeginFrame twice in a row")
	}
}

func TestEndFrameWithoutBeginFrameErrors(t *testing.T) {
	assets := &stubAssets{bootDone: true}
	e, err := Initialize(Settings{}, gfx.DeviceConfig{}, assets, nil, nil)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer e.Release()

	if err := e.EndFrame(); err == nil {
		t.Fatal("expected an error calling EndFrame before BeginFrame")
	}
}

func TestRunInitResourcesUpdateFiresCallbacksOnce(t *testing.T) {
	assets := &stubAssets{bootDone: false}
	e, err := Initialize(Settings{}, gfx.DeviceConfig{}, assets, nil, nil)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer e.Release()

	fired := 0
	e.RegisterInitializeResources(func(any) { fired++ }, nil)

	clears := 0
	clearFrame := func() error { clears++; return nil }

	if err := e.RunInitResourcesUpdate(1.0/60.0, nil, clearFrame); err != nil {
		t.Fatalf("RunInitResourcesUpdate (loading): %v", err)
	}
	if fired != 0 {
		t.Fatalf("callback fired before boot group finished: %d", fired)
	}
	if clears != 1 {
		t.Fatalf("clearFrame calls = %d, want 1", clears)
	}

	assets.bootDone = true
	if err := e.RunInitResourcesUpdate(1.0/60.0, nil, clearFrame); err != nil {
		t.Fatalf("RunInitResourcesUpdate (done): %v", err)
	}
	if fired != 1 {
		t.Fatalf("callback fire count = %d, want 1", fired)
	}

	// A later call must not re-fire the callback.
	if err := e.RunInitResourcesUpdate(1.0/60.0, nil, clearFrame); err != nil {
		t.Fatalf("RunInitResourcesUpdate (after done): %v", err)
	}
	if fired != 1 {
		t.Fatalf("callback fired again after resources were already done: %d", fired)
	}
}

func TestTickDispatchesUpdateOnceResourcesAreDone(t *testing.T) {
	assets := &stubAssets{bootDone: true}
	e, err := Initialize(Settings{}, gfx.DeviceConfig{}, assets, nil, nil)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer e.Release()

	// Drain the boot-resources loop so resourcesDone flips to true.
	if err := e.RunInitResourcesUpdate(1.0/60.0, nil, nil); err != nil {
		t.Fatalf("RunInitResourcesUpdate: %v", err)
	}

	updateCalls := 0
	e.SetUpdateCallback(func(dt float32) { updateCalls++ })

	if err := e.Tick(1.0/60.0, nil, nil); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if updateCalls != 1 {
		t.Fatalf("update callback calls = %d, want 1", updateCalls)
	}
}

type failingConnector struct{ calls int }

func (c *failingConnector) Connect(url string) error {
	c.calls++
	return errors.New("connect failed")
}

func TestTickReconnectRetriesThenGivesUp(t *testing.T) {
	connector := &failingConnector{}
	e := &Engine{
		remote:   connector,
		settings: Settings{ConnectToServer: true, RemoteServicesURL: "ws://example"},
	}
	e.remoteReconnect = true

	// Each call below crosses the 5s interval boundary.
	for i := 0; i < remoteConnectRetries+1; i++ {
		e.tickReconnect(float32(remoteReconnectInterval.Seconds()) + 0.01)
	}
	if connector.calls != remoteConnectRetries {
		t.Fatalf("connect attempts = %d, want %d", connector.calls, remoteConnectRetries)
	}
	if e.remoteReconnect {
		t.Fatal("expected reconnect to give up after exhausting retries")
	}
}

func TestOnRemoteDisconnectedIgnoresOnPurpose(t *testing.T) {
	e := &Engine{}
	e.OnRemoteDisconnected(true)
	if e.remoteReconnect {
		t.Fatal("an on-purpose disconnect must not schedule a reconnect")
	}
	e.OnRemoteDisconnected(false)
	if !e.remoteReconnect {
		t.Fatal("an unexpected disconnect must schedule a reconnect")
	}
}
