package tracelog

import (
	"path/filepath"
	"reflect"
	"testing"

	"logo/interpreter-go/pkg/canvas"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openStore(t)

	id, err := store.BeginRun("spiral.lg", 600, 400)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if id == "" {
		t.Fatalf("run id is empty")
	}

	run, err := store.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Script != "spiral.lg" || run.Status != "Running" {
		t.Fatalf("run: got %q/%q, want spiral.lg/Running", run.Script, run.Status)
	}
	if run.Width != 600 || run.Height != 400 {
		t.Fatalf("canvas: got %dx%d, want 600x400", run.Width, run.Height)
	}
	if run.EndedAt != nil {
		t.Fatalf("fresh run already ended")
	}

	if err := store.EndRun(id, "HaltedSuccess"); err != nil {
		t.Fatalf("EndRun: %v", err)
	}
	run, err = store.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun after end: %v", err)
	}
	if run.Status != "HaltedSuccess" || run.EndedAt == nil {
		t.Fatalf("ended run: got %q/%v", run.Status, run.EndedAt)
	}
}

func TestOpsRoundTrip(t *testing.T) {
	store := openStore(t)
	id, err := store.BeginRun("square.lg", 100, 100)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	ops := []canvas.Op{
		canvas.PenState(true),
		canvas.SetColor(4),
		canvas.LineTo(10, 0),
		canvas.MoveTo(0, 0),
		canvas.LineTo(2.5, -7.25),
	}
	if err := store.RecordOps(id, ops); err != nil {
		t.Fatalf("RecordOps: %v", err)
	}

	got, err := store.RunOps(id)
	if err != nil {
		t.Fatalf("RunOps: %v", err)
	}
	if !reflect.DeepEqual(got, ops) {
		t.Fatalf("ops: got %v, want %v", got, ops)
	}
}

func TestRunsAreIsolated(t *testing.T) {
	store := openStore(t)
	first, err := store.BeginRun("a.lg", 10, 10)
	if err != nil {
		t.Fatalf("BeginRun a: %v", err)
	}
	second, err := store.BeginRun("b.lg", 10, 10)
	if err != nil {
		t.Fatalf("BeginRun b: %v", err)
	}
	if first == second {
		t.Fatalf("run ids collide: %s", first)
	}

	if err := store.RecordOps(first, []canvas.Op{canvas.LineTo(1, 1)}); err != nil {
		t.Fatalf("RecordOps: %v", err)
	}
	ops, err := store.RunOps(second)
	if err != nil {
		t.Fatalf("RunOps: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("second run ops: got %d, want 0", len(ops))
	}
}

func TestGetRunMissing(t *testing.T) {
	store := openStore(t)
	if _, err := store.GetRun("no-such-run"); err == nil {
		t.Fatalf("expected error for missing run")
	}
}
