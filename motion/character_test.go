package motion

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestCharacter(w Query) *Character {
	c := NewCharacter(10)
	c.Attach(NewResolver(w, nil, nil))
	return c
}

func TestCharacterMoveAndSlide(t *testing.T) {
	w := &planeWorld{planes: []halfPlane{floorPlane(1, 0)}}
	c := newTestCharacter(w)
	c.Transform.Origin = mgl64.Vec2{0, -1}
	c.SetLinearVelocity(mgl64.Vec2{0, 600})
	c.SetStopOnSlope(true)

	if err := c.MoveAndSlide(1.0 / 60); err != nil {
		t.Fatalf("MoveAndSlide: %v", err)
	}
	if !c.IsOnFloor() || c.IsOnWall() || c.IsOnCeiling() {
		t.Errorf("flags: %+v", c.State())
	}
	if c.FloorNormal() != (mgl64.Vec2{0, -1}) || c.FloorBody() != 1 {
		t.Errorf("floor: normal %v body %d", c.FloorNormal(), c.FloorBody())
	}
	if c.SlideCount() != 1 {
		t.Fatalf("slide count: got %d, want 1", c.SlideCount())
	}
	hit, err := c.SlideCollision(0)
	if err != nil || hit.Collider != 1 {
		t.Errorf("SlideCollision(0): %+v, %v", hit, err)
	}
	if _, err := c.SlideCollision(1); !errors.Is(err, ErrSlideIndex) {
		t.Errorf("SlideCollision(1): got %v, want ErrSlideIndex", err)
	}
}

func TestCharacterDetached(t *testing.T) {
	c := NewCharacter(10)
	c.SetLinearVelocity(mgl64.Vec2{5, 0})

	if err := c.MoveAndSlide(1); !errors.Is(err, ErrDetached) {
		t.Fatalf("MoveAndSlide: got %v, want ErrDetached", err)
	}
	if c.Transform.Origin != (mgl64.Vec2{}) {
		t.Errorf("detached body moved to %v", c.Transform.Origin)
	}
	if _, _, err := c.MoveAndCollide(mgl64.Vec2{1, 0}, false); !errors.Is(err, ErrDetached) {
		t.Errorf("MoveAndCollide: got %v, want ErrDetached", err)
	}

	c.Attach(NewResolver(&planeWorld{}, nil, nil))
	c.Detach()
	if c.Attached() {
		t.Error("still attached after Detach")
	}
}

func TestCharacterSetMaxSlides(t *testing.T) {
	c := newTestCharacter(&planeWorld{})

	if err := c.SetMaxSlides(0); !errors.Is(err, ErrInvalidMaxSlides) {
		t.Fatalf("SetMaxSlides(0): got %v, want ErrInvalidMaxSlides", err)
	}
	if got := c.Config().MaxSlides; got != DefaultMaxSlides {
		t.Errorf("max slides after rejected set: got %d, want %d", got, DefaultMaxSlides)
	}
	if err := c.SetMaxSlides(6); err != nil {
		t.Fatalf("SetMaxSlides(6): %v", err)
	}
	if got := c.Config().MaxSlides; got != 6 {
		t.Errorf("max slides: got %d, want 6", got)
	}
}

func TestCharacterSetters(t *testing.T) {
	c := newTestCharacter(&planeWorld{})

	c.SetUpDirection(mgl64.Vec2{3, 0})
	c.SetSnap(mgl64.Vec2{0, 8})
	c.SetInfiniteInertia(false)
	c.SetSeparateRays(true)
	if err := c.SetSafeMargin(0.5); err != nil {
		t.Fatalf("SetSafeMargin: %v", err)
	}
	if err := c.SetFloorMaxAngle(0.3); err != nil {
		t.Fatalf("SetFloorMaxAngle: %v", err)
	}
	if err := c.SetSafeMargin(-1); !errors.Is(err, ErrInvalidMargin) {
		t.Errorf("SetSafeMargin(-1): got %v, want ErrInvalidMargin", err)
	}

	want := Config{
		Margin:        0.5,
		MaxSlides:     DefaultMaxSlides,
		FloorMaxAngle: 0.3,
		UpDirection:   mgl64.Vec2{1, 0},
		Snap:          mgl64.Vec2{0, 8},
		SeparateRays:  true,
	}
	if got := c.Config(); got != want {
		t.Errorf("config: got %+v, want %+v", got, want)
	}
}

func TestCharacterMoveAndCollide(t *testing.T) {
	w := &planeWorld{planes: []halfPlane{{id: 2, n: mgl64.Vec2{-1, 0}, d: -10}}}
	c := newTestCharacter(w)

	res, ok, err := c.MoveAndCollide(mgl64.Vec2{20, 0}, true)
	if err != nil || !ok {
		t.Fatalf("test-only MoveAndCollide: %v, %v", ok, err)
	}
	if c.Transform.Origin != (mgl64.Vec2{}) {
		t.Errorf("test-only move committed: %v", c.Transform.Origin)
	}

	if _, _, err := c.MoveAndCollide(mgl64.Vec2{20, 0}, false); err != nil {
		t.Fatalf("MoveAndCollide: %v", err)
	}
	if !vecNear(c.Transform.Origin, res.Motion) {
		t.Errorf("origin: got %v, want %v", c.Transform.Origin, res.Motion)
	}

	_, ok, err = c.TestMove(c.Transform, mgl64.Vec2{-5, 0})
	if err != nil || ok {
		t.Errorf("TestMove away from the wall: %v, %v", ok, err)
	}
}

func TestCharacterReset(t *testing.T) {
	w := &planeWorld{planes: []halfPlane{floorPlane(1, 0)}}
	c := newTestCharacter(w)
	c.Transform.Origin = mgl64.Vec2{0, -1}
	c.SetLinearVelocity(mgl64.Vec2{0, 600})
	if err := c.MoveAndSlide(1.0 / 60); err != nil {
		t.Fatalf("MoveAndSlide: %v", err)
	}

	c.Reset()
	if c.IsOnFloor() || c.FloorBody() != NoCollider || c.SlideCount() != 0 {
		t.Errorf("after Reset: %+v, %d contacts", c.State(), c.SlideCount())
	}
}

func TestCharacterLastFrameKeepsContacts(t *testing.T) {
	w := &planeWorld{planes: []halfPlane{{id: 2, n: mgl64.Vec2{-1, 0}, d: -1}}}
	c := newTestCharacter(w)
	c.SetLinearVelocity(mgl64.Vec2{120, 0})

	if err := c.MoveAndSlide(1.0 / 60); err != nil {
		t.Fatalf("MoveAndSlide: %v", err)
	}
	held := c.LastFrame()
	if held.Collisions.Count() != 1 {
		t.Fatalf("contacts: got %d, want 1", held.Collisions.Count())
	}

	c.SetLinearVelocity(mgl64.Vec2{})
	if err := c.MoveAndSlide(1.0 / 60); err != nil {
		t.Fatalf("MoveAndSlide: %v", err)
	}
	if c.SlideCount() != 0 {
		t.Errorf("slide count: got %d, want 0", c.SlideCount())
	}
	hit, err := held.Collisions.At(0)
	if err != nil || hit.Collider != 2 {
		t.Errorf("held contact: got %+v, %v", hit, err)
	}
}
