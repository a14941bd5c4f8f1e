package debug

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/lixenwraith/arena/component"
	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/engine"
	"github.com/lixenwraith/arena/physics"
	"github.com/lixenwraith/arena/status"
	"github.com/lixenwraith/arena/vmath"
)

func TestDiagnosticsLogsOncePerEpisode(t *testing.T) {
	var buf bytes.Buffer
	reg := status.NewRegistry()
	d := NewDiagnostics(reg, log.New(&buf, "", 0))
	e := core.NewEntity(3, 1)
	err := fmt.Errorf("collider: %w", core.ErrMissingComponent)

	// Ticks 1-5 continuous, gap at 6, resumes at 7
	for _, tick := range []uint64{1, 2, 3, 4, 5, 7} {
		d.BeginTick(tick)
		d.Report(KindMissingCollider, e, err)
	}

	if got := d.Logged(); got != 2 {
		t.Errorf("logged %d episodes, want 2", got)
	}
	if got := reg.Counter(status.KeyMissingComponent).Load(); got != 6 {
		t.Errorf("counted %d occurrences, want 6", got)
	}
	if !strings.Contains(buf.String(), "missing component") {
		t.Errorf("log line lacks wrapped error: %q", buf.String())
	}
}

func TestDiagnosticsSeparatesKindsAndEntities(t *testing.T) {
	reg := status.NewRegistry()
	d := NewDiagnostics(reg, log.New(&bytes.Buffer{}, "", 0))
	d.BeginTick(1)

	a, b := core.NewEntity(1, 1), core.NewEntity(2, 1)
	if !d.Report(KindDegenerateNormal, a, nil) {
		t.Error("first report not logged")
	}
	if d.Report(KindDegenerateNormal, a, nil) {
		t.Error("repeat within the same tick logged")
	}
	if !d.Report(KindDegenerateNormal, b, nil) {
		t.Error("second entity not logged")
	}
	if !d.Report(KindMissingTransform, a, nil) {
		t.Error("second kind not logged")
	}
	if got := reg.Counter(status.KeyDegenerate).Load(); got != 3 {
		t.Errorf("degenerate count = %d, want 3", got)
	}
}

func TestKindString(t *testing.T) {
	if KindMissingCollider.String() != "missing collider" || Kind(99).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}

func TestCaptureAndEncode(t *testing.T) {
	w := engine.NewWorld(nil)
	idx, err := physics.BuildStaticIndex([]physics.Footprint{
		{Center: vmath.Vec3{2, 1, 0}, HalfExtents: vmath.Vec3{0.5, 1, 0.5}},
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	player := w.Spawn(engine.With(engine.With(w.NewEntity(),
		w.Components.Transform, component.TransformComponent{Position: vmath.Vec3{0, 0.9, 0}}),
		w.Components.Collider, component.ColliderComponent{Radius: 0.4, Height: 1.8, Flags: component.ColliderPlayer}))
	w.Create() // no collider, not captured

	before := w.Components.Transform.Count()
	snap := Capture(w, idx)
	if w.Components.Transform.Count() != before {
		t.Error("Capture mutated the store")
	}

	if len(snap.Boxes) != 1 || len(snap.Capsules) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if c := snap.Capsules[0]; c.Entity != player || !vmath.Vec3(c.Start).ApproxEqual(vmath.Vec3{0, 0.4, 0}) || c.Radius != 0.4 {
		t.Errorf("capsule = %+v", c)
	}

	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.AABBs()[0] != idx.Boxes()[0] || back.Capsules[0].Flags != uint8(component.ColliderPlayer) {
		t.Errorf("decoded = %+v", back)
	}

	if _, err := Decode(nil); err == nil {
		t.Error("expected decode error on empty input")
	}
}

func TestCaptureWithoutIndex(t *testing.T) {
	snap := Capture(engine.NewWorld(nil), nil)
	if len(snap.Boxes) != 0 || len(snap.Capsules) != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}
