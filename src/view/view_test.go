package view

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"bitlife/src/simulation"
	"bitlife/src/universe"
)

type fakeEngine struct {
	simulation.Engine
	st simulation.Status
	o  simulation.Options
}

func (e *fakeEngine) Status() simulation.Status   { return e.st }
func (e *fakeEngine) Options() simulation.Options { return e.o }

func newFrame(t *testing.T, width uint32, height uint32, live []universe.Coord) universe.Frame {
	t.Helper()
	u := universe.New()
	if err := u.SetWidth(width); err != nil {
		t.Fatal(err)
	}
	if err := u.SetHeight(height); err != nil {
		t.Fatal(err)
	}
	if err := u.SetCells(live); err != nil {
		t.Fatal(err)
	}
	return u.Frame()
}

func TestFillFrameRGBA(t *testing.T) {
	f := newFrame(t, 2, 2, []universe.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}})
	buf := make([]byte, 4*4)
	fillFrameRGBA(buf, f, color.White, color.Black)

	want := []byte{
		0, 0, 0, 255, 255, 255, 255, 255,
		255, 255, 255, 255, 0, 0, 0, 255,
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("got %v, expected %v", buf, want)
	}
}

func TestFieldText(t *testing.T) {
	f := newFrame(t, 3, 2, []universe.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 2}})
	if got := fieldText(f, 10, 10, "#", "."); got != "#..\n..#" {
		t.Fatalf("got %q", got)
	}
	//columns beyond the view are cut
	if got := fieldText(f, 2, 10, "#", "."); !strings.HasPrefix(got, "#.\n") {
		t.Fatalf("got %q", got)
	}
	//the last visible line carries the warning
	got := fieldText(f, 10, 1, "#", ".")
	if !strings.Contains(got, "larger than the viewing area") {
		t.Fatalf("got %q", got)
	}
}

func TestConsoleOut(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleOut(&out, false)
	e := &fakeEngine{o: simulation.Options{
		Width:    8,
		Height:   4,
		MaxSteps: 100,
		Advanced: map[string]interface{}{"engine": "packed"},
	}}
	c.Register(e)
	c.Start()
	for _, want := range []string{"Dimension: 8 x 4", "Max iterations: 100 steps", "engine: packed", "Simulation started"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in %q", want, out.String())
		}
	}

	out.Reset()
	e.st = simulation.Status{IterationNum: 20, RunningMode: simulation.RunningStateRun, LiveCells: 7}
	c.Refresh()
	if !strings.Contains(out.String(), "Iterations done: 20, live cells: 7") {
		t.Fatalf("got %q", out.String())
	}

	out.Reset()
	e.st = simulation.Status{IterationNum: 21, RunningMode: simulation.RunningStateRun}
	c.Refresh()
	if out.Len() != 0 {
		t.Fatalf("unexpected progress output %q", out.String())
	}

	e.st = simulation.Status{IterationNum: 33, RunningMode: simulation.RunningStateFinished, LiveCells: 5}
	c.Refresh()
	for _, want := range []string{"Finished:", "Last iteration: 33", "Live cells: 5"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in %q", want, out.String())
		}
	}
}

func TestSideText(t *testing.T) {
	o := simulation.DefaultOptions
	o.Width, o.Height = 12, 7
	st := simulation.Status{IterationNum: 3, LiveCells: 9, RunningMode: simulation.RunningStateFinished}

	got := sideText(o, st)
	for _, want := range []string{"12x7", "3\n", "9\n", "finished"} {
		if !strings.Contains(got, want) {
			t.Fatalf("%q not found in %q", want, got)
		}
	}
	if lines := strings.Count(got, "\n"); lines != 8 {
		t.Fatalf("got %v lines, expected 8", lines)
	}
}
