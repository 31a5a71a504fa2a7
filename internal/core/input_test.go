package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.String() != "None" {
		t.Fatalf("zero frame should be empty, got %v", f)
	}

	f.Set(ActionLeft)
	f.Set(ActionPause)
	f.Set(ActionNone)
	if !f.Has(ActionLeft) || !f.Has(ActionPause) || f.Has(ActionNone) || f.Has(ActionRight) {
		t.Errorf("unexpected frame %v", f)
	}
	if got := f.String(); got != "Left+Pause" {
		t.Errorf("String() = %q, expected Left+Pause", got)
	}

	d := f.Directional()
	if !d.Has(ActionLeft) || d.Has(ActionPause) {
		t.Errorf("Directional() = %v, expected Left", d)
	}

	copied := f
	f.Clear()
	if !f.Empty() || copied.Empty() {
		t.Error("Clear should not affect copies")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "None"},
		{ActionUp, "Up"},
		{ActionRestart, "Restart"},
		{ActionPause, "Pause"},
		{Action(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, expected %q", tt.a, got, tt.want)
		}
	}
}
