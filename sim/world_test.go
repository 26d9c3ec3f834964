package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/automoto/slide2d/components"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/scripting"
	"github.com/automoto/slide2d/shared/leveldata"
	"github.com/automoto/slide2d/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// testLevel is a 400x200 room: a floor at y=100, a wall at x=300 and one
// spawn point 40 units above the floor.
func testLevel() *leveldata.CollisionData {
	return &leveldata.CollisionData{
		MapWidth:  400,
		MapHeight: 200,
		SolidRects: []leveldata.SolidRect{
			{X: 0, Y: 100, W: 400, H: 16},
			{X: 300, Y: 0, W: 16, H: 100},
		},
		SpawnPoints: []leveldata.SpawnPoint{{X: 50, Y: 60}},
	}
}

func newTestWorld(t *testing.T, level *leveldata.CollisionData, opts Options) *World {
	t.Helper()
	w, err := NewWorld("test", level, opts)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func steps(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}

func body(t *testing.T, w *World) *motion.Character {
	t.Helper()
	b, ok := w.Body(0)
	if !ok {
		t.Fatal("no character in the world")
	}
	return b
}

func TestWorldLands(t *testing.T) {
	for _, backend := range []string{"resolv", "cp"} {
		t.Run(backend, func(t *testing.T) {
			w := newTestWorld(t, testLevel(), Options{Backend: backend})
			steps(w, 60)

			b := body(t, w)
			if !b.IsOnFloor() {
				t.Fatalf("not on the floor after a second: %+v", b.State())
			}
			if y := b.Transform.Origin[1]; y < 99.5 || y > 100 {
				t.Errorf("resting height: got %v, want just above 100", y)
			}
			if x := b.Transform.Origin[0]; math.Abs(x-50) > 1e-3 {
				t.Errorf("drifted sideways to %v", x)
			}
			if w.Tick() != 60 {
				t.Errorf("Tick: got %d, want 60", w.Tick())
			}
		})
	}
}

func TestWorldWalksIntoWall(t *testing.T) {
	w := newTestWorld(t, testLevel(), Options{})
	steps(w, 20)
	w.SetInput(0, false, true, false)
	steps(w, 120)

	b := body(t, w)
	half := cfg.Character.Width / 2
	if x := b.Transform.Origin[0]; x > 300-half || x < 300-half-1 {
		t.Errorf("x against the wall: got %v, want just left of %v", x, 300-half)
	}
	if !b.IsOnFloor() {
		t.Error("lost the floor while pushing the wall")
	}
}

func TestWorldJump(t *testing.T) {
	w := newTestWorld(t, testLevel(), Options{})
	steps(w, 30)
	b := body(t, w)
	ground := b.Transform.Origin[1]

	w.SetInput(0, false, false, true)
	steps(w, 5)
	if b.IsOnFloor() {
		t.Fatal("still on the floor after jumping")
	}
	if b.Transform.Origin[1] > ground-10 {
		t.Errorf("jumped to %v from %v", b.Transform.Origin[1], ground)
	}

	// Holding jump does not jump again on landing.
	steps(w, 120)
	if !b.IsOnFloor() {
		t.Error("did not land")
	}
}

func TestWorldRidesPlatform(t *testing.T) {
	level := testLevel()
	level.Platforms = []leveldata.Platform{
		{X: 100, Y: 80, W: 48, H: 8, MoveX: 64, Duration: 1},
	}
	level.SpawnPoints = []leveldata.SpawnPoint{{X: 124, Y: 70}}
	w := newTestWorld(t, level, Options{})

	var platform motion.ColliderID
	components.Platform.Each(w.ECS.World, func(e *donburi.Entry) {
		platform = components.Collider.Get(e).ID
	})

	steps(w, 30)
	b := body(t, w)
	if !b.IsOnFloor() || b.FloorBody() != platform {
		t.Fatalf("not riding the platform: %+v", b.State())
	}
	if x := b.Transform.Origin[0]; x < 145 || x > 157 {
		t.Errorf("x after half a trip: got %v, want carried about 28 units", x)
	}
	if v, ok := w.ColliderVelocity(platform); !ok || math.Abs(v[0]-64) > 1e-3 {
		t.Errorf("platform velocity: got %v %v, want 64", v, ok)
	}

	// Removing the platform mid-ride drops the rider without a fault.
	if !w.Destroy(platform) {
		t.Fatal("Destroy failed")
	}
	if _, ok := w.ColliderVelocity(platform); ok {
		t.Error("destroyed platform still reports a velocity")
	}
	steps(w, 2)
	if b.IsOnFloor() {
		t.Error("still on the floor after the platform vanished")
	}
}

func TestWorldDigest(t *testing.T) {
	run := func(right bool) uint64 {
		w := newTestWorld(t, testLevel(), Options{})
		w.SetInput(0, false, right, false)
		steps(w, 45)
		return w.Digest()
	}

	if a, b := run(true), run(true); a != b {
		t.Errorf("same inputs gave digests %x and %x", a, b)
	}
	if a, b := run(true), run(false); a == b {
		t.Error("different inputs gave the same digest")
	}
}

func TestWorldColliderVelocity(t *testing.T) {
	w := newTestWorld(t, testLevel(), Options{})
	b := body(t, w)
	b.SetLinearVelocity(mgl64.Vec2{5, 0})

	if v, ok := w.ColliderVelocity(b.ID); !ok || v != (mgl64.Vec2{5, 0}) {
		t.Errorf("body velocity: got %v %v", v, ok)
	}
	var solid motion.ColliderID
	tags.Solid.Each(w.ECS.World, func(e *donburi.Entry) {
		solid = components.Collider.Get(e).ID
	})
	if v, ok := w.ColliderVelocity(solid); !ok || v != (mgl64.Vec2{}) {
		t.Errorf("solid velocity: got %v %v, want zero", v, ok)
	}
}

func TestWorldApplyMotion(t *testing.T) {
	w := newTestWorld(t, testLevel(), Options{})

	bad := motion.DefaultConfig()
	bad.MaxSlides = 0
	if err := w.ApplyMotion(bad); !errors.Is(err, motion.ErrInvalidMaxSlides) {
		t.Errorf("got %v, want ErrInvalidMaxSlides", err)
	}

	good := motion.DefaultConfig()
	good.MaxSlides = 2
	if err := w.ApplyMotion(good); err != nil {
		t.Fatalf("ApplyMotion: %v", err)
	}
	if got := body(t, w).Config().MaxSlides; got != 2 {
		t.Errorf("MaxSlides: got %d, want 2", got)
	}
}

func TestWorldScript(t *testing.T) {
	script, err := scripting.New("right", []byte(`
update := func(body, input, delta) {
	v := body.velocity()
	body.set_velocity(60.0, v[1] + 900.0 * delta)
}
`))
	if err != nil {
		t.Fatalf("scripting.New: %v", err)
	}

	w := newTestWorld(t, testLevel(), Options{Script: script})
	steps(w, 60)
	if x := body(t, w).Transform.Origin[0]; x < 100 {
		t.Errorf("script did not move the body: x=%v", x)
	}

	w.SetScript(nil)
	body(t, w).SetLinearVelocity(mgl64.Vec2{})
	before := body(t, w).Transform.Origin[0]
	steps(w, 10)
	if x := body(t, w).Transform.Origin[0]; x != before {
		t.Errorf("walker without input moved from %v to %v", before, x)
	}
}

func TestNewWorldErrors(t *testing.T) {
	if _, err := NewWorld("bad", testLevel(), Options{Backend: "box2d"}); err == nil {
		t.Error("expected an error for an unknown backend")
	}

	empty := testLevel()
	empty.SpawnPoints = nil
	if _, err := NewWorld("empty", empty, Options{}); err == nil {
		t.Error("expected an error for a level without spawns")
	}
}
