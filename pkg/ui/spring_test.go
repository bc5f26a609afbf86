package ui

import (
	"testing"
	"time"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

func TestSpring_SettlesWithoutOvershoot(t *testing.T) {
	s := NewSpring(1)
	s.Target = 0

	for i := 0; i < 200 && !s.Settled(); i++ {
		s.Step()
		if s.Pos < -0.01 {
			t.Fatalf("overdamped spring overshot to %f at frame %d", s.Pos, i)
		}
	}
	if !s.Settled() || s.Pos != 0 {
		t.Fatalf("spring did not settle: pos=%f vel=%f", s.Pos, s.Vel)
	}
}

func TestSpring_Constants(t *testing.T) {
	if springFrequency != 10 {
		t.Errorf("angular frequency = %v, want 10", springFrequency)
	}
	if springRatio != 1.25 {
		t.Errorf("damping ratio = %v, want 1.25", springRatio)
	}
	s := NewSpring(0)
	if !s.Settled() {
		t.Error("spring at its target should be settled")
	}
}

func TestSpring_SettlesWithinTwoSeconds(t *testing.T) {
	s := NewSpring(0)
	s.Target = 1

	frames := 0
	for ; frames < 200 && !s.Settled(); frames++ {
		s.Step()
		if s.Pos > 1.01 {
			t.Fatalf("overdamped spring overshot to %f at frame %d", s.Pos, frames)
		}
	}
	if s.Pos != 1 || s.Vel != 0 {
		t.Fatalf("spring did not snap to its target: pos=%f vel=%f", s.Pos, s.Vel)
	}
	if limit := int(2 * time.Second / frameInterval); frames > limit {
		t.Errorf("spring took %d frames to settle, want at most %d", frames, limit)
	}
}

func TestDetailPanel_SlideInAndOut(t *testing.T) {
	p := newDetailPanel()
	if p.visible {
		t.Fatal("panel should start hidden")
	}

	data := model.NodeData{Label: "GitHub", Status: model.StatusConnected}
	p.open(data)
	if !p.visible || p.offset(10) != 11 {
		t.Fatalf("panel should start fully below the canvas, offset=%d", p.offset(10))
	}

	for i := 0; i < 100 && p.animating(); i++ {
		p.step()
	}
	if p.offset(10) != 0 {
		t.Fatalf("panel should rest at offset 0, got %d", p.offset(10))
	}

	p.close()
	p.step()
	if !p.visible || p.data != data {
		t.Fatal("panel should keep the payload while sliding out")
	}
	for i := 0; i < 100 && p.visible; i++ {
		p.step()
	}
	if p.visible {
		t.Fatal("panel should hide after sliding out")
	}
}
