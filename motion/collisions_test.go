package motion

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCollisionsAt(t *testing.T) {
	var c Collisions
	c.add(Result{Collider: 1})
	c.add(Result{Collider: 2, Normal: mgl64.Vec2{0, -1}})

	tests := []struct {
		index   int
		want    ColliderID
		wantErr bool
	}{
		{index: 0, want: 1},
		{index: 1, want: 2},
		{index: 2, wantErr: true},
		{index: -1, wantErr: true},
	}

	for _, tt := range tests {
		got, err := c.At(tt.index)
		if tt.wantErr {
			if !errors.Is(err, ErrSlideIndex) {
				t.Errorf("At(%d): got error %v, want ErrSlideIndex", tt.index, err)
			}
			if got != (Result{}) {
				t.Errorf("At(%d): got %+v, want zero result", tt.index, got)
			}
			continue
		}
		if err != nil || got.Collider != tt.want {
			t.Errorf("At(%d): got %d, %v, want %d", tt.index, got.Collider, err, tt.want)
		}
	}
}

func TestCollisionsOrder(t *testing.T) {
	var c Collisions
	for id := ColliderID(1); id <= 3; id++ {
		c.add(Result{Collider: id})
	}

	var seen []ColliderID
	for i, r := range c.All() {
		if ColliderID(i+1) != r.Collider {
			t.Errorf("index %d holds collider %d", i, r.Collider)
		}
		seen = append(seen, r.Collider)
	}
	if len(seen) != 3 {
		t.Fatalf("iterated %d contacts, want 3", len(seen))
	}

	last, ok := c.Last()
	if !ok || last.Collider != 3 {
		t.Errorf("Last: got %d, %v", last.Collider, ok)
	}

	c.reset()
	if c.Count() != 0 {
		t.Errorf("Count after reset: %d", c.Count())
	}
	if _, ok := c.Last(); ok {
		t.Error("Last on empty store reported a contact")
	}
}
