package interp

// Impulses is the derivative of a Step: zero almost everywhere, with a Dirac
// impulse of height To-From at every switch. Eval reports the regular part.
// A step jumps right after its switch time, so Integrate sums the impulses in
// [a, b) and Integrate(a, b) equals Step(b) - Step(a).
type Impulses struct {
	name        string
	lo, hi      float64
	events      []SwitchEvent
	extrapolate bool
}

func (p *Impulses) Name() string { return p.name }

func (p *Impulses) Domain() (float64, float64) { return p.lo, p.hi }

func (p *Impulses) Extrapolates() bool { return p.extrapolate }

func (p *Impulses) Eval(t float64) (float64, error) {
	if err := checkDomain(t, p.lo, p.hi, p.extrapolate); err != nil {
		return 0, err
	}
	return 0, nil
}

func (p *Impulses) Integrate(a, b float64) (float64, error) {
	if err := checkDomain(a, p.lo, p.hi, p.extrapolate); err != nil {
		return 0, err
	}
	if err := checkDomain(b, p.lo, p.hi, p.extrapolate); err != nil {
		return 0, err
	}
	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}
	total := 0.0
	for _, e := range p.events {
		if e.Time >= a && e.Time < b {
			total += e.To - e.From
		}
	}
	return sign * total, nil
}

// Switches returns the ordered impulse times.
func (p *Impulses) Switches() []float64 {
	out := make([]float64, len(p.events))
	for i, e := range p.events {
		out[i] = e.Time
	}
	return out
}

func (p *Impulses) Events() []SwitchEvent {
	out := make([]SwitchEvent, len(p.events))
	copy(out, p.events)
	return out
}
