package watch

import (
	"testing"
	"time"
)

const testWindow = 50 * time.Millisecond

func receiveBatch(t *testing.T, d *Debouncer) []string {
	t.Helper()

	select {
	case batch := <-d.Output():
		return batch
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for settle signal")
		return nil
	}
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(testWindow)
	defer d.Stop()

	d.Record("b.txt")
	d.Record("a.txt")
	d.Record("b.txt")

	batch := receiveBatch(t, d)
	if len(batch) != 2 {
		t.Fatalf("expected 2 names, got %d: %v", len(batch), batch)
	}
	if batch[0] != "a.txt" || batch[1] != "b.txt" {
		t.Fatalf("expected sorted names, got %v", batch)
	}
}

func TestDebouncerEmitsSeparateSettles(t *testing.T) {
	d := NewDebouncer(testWindow)
	defer d.Stop()

	d.Record("first.txt")
	first := receiveBatch(t, d)
	if len(first) != 1 || first[0] != "first.txt" {
		t.Fatalf("unexpected first batch: %v", first)
	}

	d.Record("second.txt")
	second := receiveBatch(t, d)
	if len(second) != 1 || second[0] != "second.txt" {
		t.Fatalf("unexpected second batch: %v", second)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(testWindow)

	d.Record("orphan.txt")
	d.Stop()

	select {
	case batch := <-d.Output():
		t.Fatalf("expected no settle after stop, got %v", batch)
	case <-time.After(4 * testWindow):
	}
}
