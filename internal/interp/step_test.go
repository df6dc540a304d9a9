package interp

import (
	"errors"
	"math"
	"testing"
)

func alternating() TimeSeries {
	return NewTimeSeries("u", []float64{0, 1, 2, 3}, []float64{0, 1, 0, 1})
}

func TestStep_Eval(t *testing.T) {
	s, err := NewStep(alternating(), DefaultOptions())
	if err != nil {
		t.Fatalf("NewStep: %v", err)
	}

	tests := []struct {
		at   float64
		want float64
	}{
		{0, 0},
		{0.5, 1},
		{1, 1},
		{1.5, 0},
		{2, 0},
		{2.01, 1},
		{3, 1},
	}
	for _, tt := range tests {
		got, err := s.Eval(tt.at)
		if err != nil {
			t.Fatalf("Eval(%v): %v", tt.at, err)
		}
		if got != tt.want {
			t.Errorf("Eval(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}

	if _, err := s.Eval(3.5); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("expected ErrOutOfDomain, got %v", err)
	}
}

func TestStep_Integrate(t *testing.T) {
	s, _ := NewStep(alternating(), DefaultOptions())

	tests := []struct {
		a, b float64
		want float64
	}{
		{0, 3, 2},
		{0.5, 2.5, 1},
		{1, 2, 0},
		{2.5, 0.5, -1},
		{1.5, 1.5, 0},
	}
	for _, tt := range tests {
		got, err := s.Integrate(tt.a, tt.b)
		if err != nil {
			t.Fatalf("Integrate(%v, %v): %v", tt.a, tt.b, err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Integrate(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStep_Extrapolation(t *testing.T) {
	opts := DefaultOptions()
	opts.Extrapolate = true
	s, _ := NewStep(NewTimeSeries("u", []float64{0, 1, 2}, []float64{3, 5, 7}), opts)

	if v, _ := s.Eval(-1); v != 3 {
		t.Errorf("Eval(-1) = %v, want 3", v)
	}
	if v, _ := s.Eval(10); v != 7 {
		t.Errorf("Eval(10) = %v, want 7", v)
	}
	area, err := s.Integrate(-1, 3)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if want := 3.0 + 5 + 7 + 7; area != want {
		t.Errorf("Integrate(-1, 3) = %v, want %v", area, want)
	}
}

func TestStep_Switches(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		opts   func(*Options)
		want   []float64
	}{
		{
			name:   "alternating",
			values: []float64{0, 1, 0, 1},
			want:   []float64{0, 1, 2},
		},
		{
			name:   "leading jump only",
			values: []float64{0, 1, 1, 1},
			want:   []float64{0},
		},
		{
			name:   "flat start",
			values: []float64{1, 1, 0, 0},
			want:   []float64{1},
		},
		{
			name:   "below tolerance",
			values: []float64{1, 1, 1.0000000001, 0},
			opts:   func(o *Options) { o.Tolerance = 1e-6 },
			want:   []float64{2},
		},
		{
			name:   "absolute tolerance",
			values: []float64{100, 100, 100.5, 0},
			opts:   func(o *Options) { o.Tolerance = 0.01 },
			want:   []float64{1, 2},
		},
		{
			name:   "normalized tolerance",
			values: []float64{100, 100, 100.5, 0},
			opts:   func(o *Options) { o.Tolerance = 0.01; o.Normalize = true },
			want:   []float64{2},
		},
		{
			name:   "spike kept",
			values: []float64{1, 1, 1, 5, 1, 1, 0, 0},
			want:   []float64{2, 3, 5},
		},
		{
			name:   "spike filtered",
			values: []float64{1, 1, 1, 5, 1, 1, 0, 0},
			opts:   func(o *Options) { o.MedianWindow = 3 },
			want:   []float64{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times := make([]float64, len(tt.values))
			for i := range times {
				times[i] = float64(i)
			}
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			s, err := NewStep(NewTimeSeries("u", times, tt.values), opts)
			if err != nil {
				t.Fatalf("NewStep: %v", err)
			}
			got := s.Switches()
			if len(got) != len(tt.want) {
				t.Fatalf("Switches() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Switches() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestStep_Segments(t *testing.T) {
	s, _ := NewStep(alternating(), DefaultOptions())
	segs := s.Segments()
	want := []Segment{
		{Start: 0, End: 0, Level: 0},
		{Start: 0, End: 1, Level: 1},
		{Start: 1, End: 2, Level: 0},
		{Start: 2, End: 3, Level: 1},
	}
	if len(segs) != len(want) {
		t.Fatalf("Segments() = %v, want %v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestStep_Derivative(t *testing.T) {
	s, _ := NewStep(alternating(), DefaultOptions())
	d, err := Differentiate(s)
	if err != nil {
		t.Fatalf("Differentiate: %v", err)
	}
	imp, ok := d.(*Impulses)
	if !ok {
		t.Fatalf("Differentiate returned %T, want *Impulses", d)
	}

	if v, _ := imp.Eval(1.5); v != 0 {
		t.Errorf("Eval(1.5) = %v, want 0", v)
	}
	sw := imp.Switches()
	if len(sw) != 3 || sw[0] != 0 || sw[1] != 1 || sw[2] != 2 {
		t.Errorf("Switches() = %v, want [0 1 2]", sw)
	}

	bounds := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3}
	for _, a := range bounds {
		for _, b := range bounds {
			got, _ := imp.Integrate(a, b)
			va, _ := s.Eval(a)
			vb, _ := s.Eval(b)
			if got != vb-va {
				t.Errorf("Integrate(%v, %v) = %v, want %v", a, b, got, vb-va)
			}
		}
	}
}

func TestStep_LeadingJump(t *testing.T) {
	s, _ := NewStep(NewTimeSeries("u", []float64{0, 1, 2, 3}, []float64{0, 1, 1, 1}), DefaultOptions())

	if v, _ := s.Eval(0); v != 0 {
		t.Errorf("Eval(0) = %v, want 0", v)
	}
	if v, _ := s.Eval(0.5); v != 1 {
		t.Errorf("Eval(0.5) = %v, want 1", v)
	}
	if sw := s.Switches(); len(sw) != 1 || sw[0] != 0 {
		t.Errorf("Switches() = %v, want [0]", sw)
	}
	if ev := s.Events(); len(ev) != 1 || ev[0] != (SwitchEvent{Time: 0, From: 0, To: 1}) {
		t.Errorf("Events() = %v", ev)
	}

	imp := s.Derivative()
	if total, _ := imp.Integrate(0, 3); total != 1 {
		t.Errorf("integral of impulses over [0, 3] = %v, want 1", total)
	}

	want := "u(t) \\approx \\begin{cases}\n" +
		"0 &\\text{ if } t = 0 \\\\\n" +
		"1 &\\text{ if } t\\in (0, 3] \\\\\n" +
		`\end{cases}`
	if got := s.LaTeX(""); got != want {
		t.Errorf("LaTeX() = %q, want %q", got, want)
	}
}

func TestStep_EvenMedianWindow(t *testing.T) {
	opts := DefaultOptions()
	opts.MedianWindow = 4
	if _, err := NewStep(alternating(), opts); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

type constant struct{}

func (constant) Name() string                            { return "c" }
func (constant) Domain() (float64, float64)              { return 0, 1 }
func (constant) Extrapolates() bool                      { return false }
func (constant) Eval(float64) (float64, error)           { return 1, nil }
func (constant) Integrate(a, b float64) (float64, error) { return b - a, nil }

func TestDifferentiate_Unknown(t *testing.T) {
	if _, err := Differentiate(constant{}); !errors.Is(err, ErrNotDifferentiable) {
		t.Errorf("expected ErrNotDifferentiable, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		values []float64
		index  int
	}{
		{"repeated time", []float64{0, 0}, []float64{0, 1}, 1},
		{"decreasing", []float64{0, 2, 1}, []float64{0, 1, 2}, 2},
		{"single sample", []float64{0}, []float64{1}, -1},
		{"length mismatch", []float64{0, 1}, []float64{1}, -1},
		{"nan value", []float64{0, 1}, []float64{math.NaN(), 1}, 0},
		{"inf time", []float64{0, math.Inf(1)}, []float64{0, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []Mode{ModeSmooth, ModeStep} {
				opts := DefaultOptions()
				opts.Mode = mode
				_, err := Build(NewTimeSeries("x", tt.times, tt.values), opts)
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("%v: expected ErrInvalidInput, got %v", mode, err)
				}
				var ie *InputError
				if !errors.As(err, &ie) || ie.Index != tt.index {
					t.Errorf("%v: index = %+v, want %d", mode, ie, tt.index)
				}
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"smooth": ModeSmooth, "Spline": ModeSmooth, " step ": ModeStep, "constant": ModeStep} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("linear"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestBuild_DoesNotAlias(t *testing.T) {
	ts := alternating()
	s, _ := Build(ts, Options{Mode: ModeStep})
	ts.Values[1] = 42
	if v, _ := s.Eval(1); v != 1 {
		t.Errorf("interpolant changed with caller data: Eval(1) = %v", v)
	}
}
