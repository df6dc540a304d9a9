package interp_test

import (
	"math"
	"math/rand"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bocop/internal/interp"
)

// randomSeries draws n strictly increasing times on [0, 10] with smooth values.
func randomSeries(rng *rand.Rand, n int) interp.TimeSeries {
	times := make([]float64, n)
	for i := range times {
		times[i] = rng.Float64() * 10
	}
	sort.Float64s(times)
	for i := 1; i < n; i++ {
		if times[i] <= times[i-1] {
			times[i] = times[i-1] + 1e-3
		}
	}
	values := make([]float64, n)
	for i, t := range times {
		values[i] = math.Sin(t) + 0.1*t*t + rng.Float64()*0.01
	}
	return interp.NewTimeSeries("x", times, values)
}

var _ = Describe("Interpolants", func() {
	var (
		rng    *rand.Rand
		series []interp.TimeSeries
	)

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(7))
		series = series[:0]
		for _, n := range []int{2, 3, 4, 7, 25, 120} {
			series = append(series, randomSeries(rng, n))
		}
	})

	DescribeTable("reproduce every sample",
		func(mode interp.Mode) {
			for _, ts := range series {
				f, err := interp.Build(ts, interp.Options{Mode: mode})
				Expect(err).NotTo(HaveOccurred())
				for i, t := range ts.Times {
					v, err := f.Eval(t)
					Expect(err).NotTo(HaveOccurred())
					Expect(v).To(BeNumerically("~", ts.Values[i], 1e-9*(1+math.Abs(ts.Values[i]))))
				}
			}
		},
		Entry("smooth", interp.ModeSmooth),
		Entry("step", interp.ModeStep),
	)

	DescribeTable("integrals are additive",
		func(mode interp.Mode) {
			for _, ts := range series {
				f, err := interp.Build(ts, interp.Options{Mode: mode})
				Expect(err).NotTo(HaveOccurred())
				lo, hi := f.Domain()
				for k := 0; k < 10; k++ {
					cuts := []float64{lo + rng.Float64()*(hi-lo), lo + rng.Float64()*(hi-lo), lo + rng.Float64()*(hi-lo)}
					sort.Float64s(cuts)
					a, b, c := cuts[0], cuts[1], cuts[2]

					ab, err := f.Integrate(a, b)
					Expect(err).NotTo(HaveOccurred())
					bc, err := f.Integrate(b, c)
					Expect(err).NotTo(HaveOccurred())
					ac, err := f.Integrate(a, c)
					Expect(err).NotTo(HaveOccurred())
					Expect(ab + bc).To(BeNumerically("~", ac, 1e-9*(1+math.Abs(ac))))
				}
			}
		},
		Entry("smooth", interp.ModeSmooth),
		Entry("step", interp.ModeStep),
	)

	It("recovers the spline from its antiderivative", func() {
		for _, ts := range series {
			s, err := interp.NewSpline(ts, interp.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			d, err := interp.Differentiate(s.Antiderivative())
			Expect(err).NotTo(HaveOccurred())

			lo, hi := s.Domain()
			for k := 0; k < 20; k++ {
				t := lo + rng.Float64()*(hi-lo)
				want, _ := s.Eval(t)
				got, err := d.Eval(t)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(BeNumerically("~", want, 1e-8*(1+math.Abs(want))))
			}
		}
	})

	It("has a derivative matching finite differences", func() {
		ts := randomSeries(rng, 40)
		s, err := interp.NewSpline(ts, interp.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		d := s.Derivative()
		Expect(d.Degree()).To(Equal(2))

		lo, hi := s.Domain()
		const h = 1e-6
		for k := 0; k < 20; k++ {
			t := lo + h + rng.Float64()*(hi-lo-2*h)
			fp, _ := s.Eval(t + h)
			fm, _ := s.Eval(t - h)
			got, _ := d.Eval(t)
			Expect(got).To(BeNumerically("~", (fp-fm)/(2*h), 1e-4*(1+math.Abs(got))))
		}
	})
})

var _ = Describe("Failure modes", func() {
	It("rejects non-increasing times", func() {
		ts := interp.NewTimeSeries("x", []float64{0, 0}, []float64{0, 1})
		_, err := interp.Build(ts, interp.Options{Mode: interp.ModeSmooth})
		Expect(err).To(MatchError(interp.ErrInvalidInput))
		_, err = interp.Build(ts, interp.Options{Mode: interp.ModeStep})
		Expect(err).To(MatchError(interp.ErrInvalidInput))
	})

	It("refuses to evaluate beyond the last sample", func() {
		ts := interp.NewTimeSeries("x", []float64{0, 1, 2}, []float64{0, 1, 4})
		for _, mode := range []interp.Mode{interp.ModeSmooth, interp.ModeStep} {
			f, err := interp.Build(ts, interp.Options{Mode: mode})
			Expect(err).NotTo(HaveOccurred())
			_, err = f.Eval(2.5)
			Expect(err).To(MatchError(interp.ErrOutOfDomain))

			g, err := interp.Build(ts, interp.Options{Mode: mode, Extrapolate: true})
			Expect(err).NotTo(HaveOccurred())
			_, err = g.Eval(2.5)
			Expect(err).NotTo(HaveOccurred())
		}
	})
})

var _ = Describe("DetectBangBang", func() {
	It("finds the two switches of an alternating control", func() {
		ts := interp.NewTimeSeries("u", []float64{0, 1, 2, 3}, []float64{0, 1, 0, 1})
		s, err := interp.NewStep(ts, interp.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		bb, err := interp.DetectBangBang(s, 1e-6)
		Expect(err).NotTo(HaveOccurred())
		Expect(bb.Switches()).To(Equal([]float64{1, 2}))
		Expect(bb.LaTeX("u")).To(ContainSubstring(`\begin{cases}`))
	})
})
