package compare

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakePredictor sums the row, plus a fixed offset.
type fakePredictor struct {
	name   string
	offset float64
	calls  [][]float64
	err    error
}

func (f *fakePredictor) EndpointName() string { return f.name }

func (f *fakePredictor) Predict(_ context.Context, row []float64) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.calls = append(f.calls, row)
	sum := f.offset
	for _, v := range row {
		sum += v
	}
	return sum, nil
}

func TestRunPreservesOrderAndCount(t *testing.T) {
	rows := [][]float64{{1}, {2}, {3}, {4}}
	p := &fakePredictor{name: "local"}
	rep, err := Run(context.Background(), rows, nil, p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rep.Columns) != 1 {
		t.Fatalf("columns=%d", len(rep.Columns))
	}
	got := rep.Columns[0].Predictions
	if len(got) != len(rows) {
		t.Fatalf("got %d outputs for %d rows", len(got), len(rows))
	}
	for i, want := range []float64{1, 2, 3, 4} {
		if got[i] != want {
			t.Fatalf("output %d = %v, want %v (order not preserved)", i, got[i], want)
		}
	}
	// inputs were seen in order too
	for i := range rows {
		if p.calls[i][0] != rows[i][0] {
			t.Fatalf("call %d saw %v", i, p.calls[i])
		}
	}
}

func TestRunTruthLengthMismatch(t *testing.T) {
	_, err := Run(context.Background(), [][]float64{{1}, {2}}, []float64{1}, &fakePredictor{name: "x"})
	if err == nil {
		t.Fatalf("expected truth length error")
	}
}

func TestRunNoPredictors(t *testing.T) {
	if _, err := Run(context.Background(), [][]float64{{1}}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunPropagatesPredictError(t *testing.T) {
	boom := errors.New("endpoint not found")
	_, err := Run(context.Background(), [][]float64{{1}}, nil, &fakePredictor{name: "x", err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestAgreeAndMaxDeviation(t *testing.T) {
	rows := [][]float64{{1}, {10}}
	a := &fakePredictor{name: "a"}
	b := &fakePredictor{name: "b", offset: 0.0001}
	rep, err := Run(context.Background(), rows, nil, a, b)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if dev := rep.MaxDeviation(0, 1); dev < 0.00009 || dev > 0.00011 {
		t.Fatalf("deviation=%v", dev)
	}
	if !rep.Agree(0.001) {
		t.Fatalf("expected agreement at 1e-3")
	}
	if rep.Agree(0.00001) {
		t.Fatalf("expected disagreement at 1e-5")
	}
}

func TestRenderIncludesTruthAndColumns(t *testing.T) {
	rows := [][]float64{{1}, {2}}
	rep, err := Run(context.Background(), rows, []float64{1.5, 2.5}, &fakePredictor{name: "local"}, &fakePredictor{name: "hosted"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var sb strings.Builder
	if err := rep.Render(&sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"truth", "local", "hosted", "1.5", "2.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
	if len(strings.Split(strings.TrimSpace(out), "\n")) != 3 {
		t.Fatalf("expected header + 2 rows:\n%s", out)
	}
}
