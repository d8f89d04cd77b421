package visualizer_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rbfviz/internal/compute"
	"github.com/san-kum/rbfviz/internal/field"
	"github.com/san-kum/rbfviz/internal/rbf"
	"github.com/san-kum/rbfviz/internal/sampling"
	"github.com/san-kum/rbfviz/internal/visualizer"
)

type recorder struct {
	scenes []*visualizer.Scene
	err    error
}

func (r *recorder) Render(s *visualizer.Scene) error {
	r.scenes = append(r.scenes, s)
	return r.err
}

// fixedSampler returns the same points on every call.
type fixedSampler struct{ x, y []float64 }

func (f fixedSampler) Name() string { return "fixed" }
func (f fixedSampler) Points(n int) ([]float64, []float64, error) {
	return f.x[:n], f.y[:n], nil
}

var _ = Describe("Visualizer", func() {
	Describe("New", func() {
		It("uses 100 points and a 100x100 grid by default", func() {
			v, err := visualizer.Default()
			Expect(err).NotTo(HaveOccurred())
			Expect(v.NumPoints()).To(Equal(100))
			Expect(v.GridResolution()).To(Equal(100))
			Expect(v.SamplerName()).To(Equal("halton"))

			s := v.Samples()
			Expect(s.X).To(HaveLen(100))
			Expect(s.Y).To(HaveLen(100))
			Expect(s.Z).To(HaveLen(100))
			Expect(s.Validate()).To(Succeed())

			r, c := v.Grid().XI.Dims()
			Expect([]int{r, c}).To(Equal([]int{100, 100}))
			Expect(v.Grid().Validate()).To(Succeed())
		})

		It("evaluates the target at every sample", func() {
			v, err := visualizer.New(37, 5, visualizer.WithSeed(9))
			Expect(err).NotTo(HaveOccurred())
			s := v.Samples()
			for i := range s.X {
				Expect(s.Z[i]).To(BeNumerically("~", math.Cos(math.Pi*s.X[i])*math.Sin(math.Pi*s.Y[i]), 1e-12))
			}
		})

		DescribeTable("rejects invalid sizes",
			func(points, resolution int, want error) {
				_, err := visualizer.New(points, resolution)
				Expect(errors.Is(err, want)).To(BeTrue(), "got %v", err)
			},
			Entry("zero points", 0, 10, field.ErrInvalidCount),
			Entry("negative points", -3, 10, field.ErrInvalidCount),
			Entry("resolution one", 10, 1, field.ErrInvalidResolution),
			Entry("resolution zero", 10, 0, field.ErrInvalidResolution),
		)

		It("is reproducible for a fixed seed", func() {
			a, _ := visualizer.New(20, 4, visualizer.WithSeed(5))
			b, _ := visualizer.New(20, 4, visualizer.WithSeed(5))
			Expect(a.Samples().X).To(Equal(b.Samples().X))
			Expect(a.Samples().Y).To(Equal(b.Samples().Y))
		})
	})

	Describe("Interpolate", func() {
		It("passes through every sample", func() {
			v, err := visualizer.New(60, 10, visualizer.WithBackend(compute.NewSerialBackend()))
			Expect(err).NotTo(HaveOccurred())

			ip, zi, err := v.Interpolate()
			Expect(err).NotTo(HaveOccurred())
			Expect(field.MatchesGrid(zi, v.Grid())).To(BeTrue())

			s := v.Samples()
			for i := range s.X {
				Expect(ip.At(s.X[i], s.Y[i])).To(BeNumerically("~", s.Z[i], 1e-6))
			}
		})

		It("returns a fresh field on every call", func() {
			v, _ := visualizer.New(30, 8)
			_, a, err := v.Interpolate()
			Expect(err).NotTo(HaveOccurred())
			_, b, err := v.Interpolate()
			Expect(err).NotTo(HaveOccurred())
			Expect(a).NotTo(BeIdenticalTo(b))
			Expect(a.RawMatrix().Data).To(Equal(b.RawMatrix().Data))
		})

		It("is near zero at the centre when sampling the corners", func() {
			corners := fixedSampler{x: []float64{0, 1, 0, 1}, y: []float64{0, 0, 1, 1}}
			v, err := visualizer.New(4, 3, visualizer.WithSampler(corners))
			Expect(err).NotTo(HaveOccurred())

			ip, zi, err := v.Interpolate()
			Expect(err).NotTo(HaveOccurred())
			Expect(ip.At(0.5, 0.5)).To(BeNumerically("~", 0, 1e-9))
			Expect(zi.At(1, 1)).To(BeNumerically("~", 0, 1e-9))
		})

		It("reports a singular system for a single sample", func() {
			v, err := visualizer.New(1, 4)
			Expect(err).NotTo(HaveOccurred())
			_, _, err = v.Interpolate()
			Expect(err).To(MatchError(rbf.ErrSingular))
		})
	})

	Describe("InterpolateAndPlot", func() {
		It("hands a consistent scene to the renderer", func() {
			v, err := visualizer.New(25, 12, visualizer.WithLevels(8), visualizer.WithSampler(sampling.NewHalton(2)))
			Expect(err).NotTo(HaveOccurred())

			rec := &recorder{}
			Expect(v.InterpolateAndPlot(rec)).To(Succeed())
			Expect(rec.scenes).To(HaveLen(1))

			scene := rec.scenes[0]
			Expect(scene.Validate()).To(Succeed())
			Expect(scene.Title).To(ContainSubstring(field.TargetFormula))
			Expect(scene.Levels).To(Equal(8))
			Expect(scene.ContourLevels()).To(HaveLen(9))
			Expect(scene.Resolution()).To(Equal(12))

			lo, hi := scene.Range()
			Expect(lo).To(BeNumerically("<", hi))
		})

		It("redraws equivalent scenes when called again", func() {
			v, _ := visualizer.New(25, 6)
			rec := &recorder{}
			Expect(v.InterpolateAndPlot(rec)).To(Succeed())
			Expect(v.InterpolateAndPlot(rec)).To(Succeed())
			Expect(rec.scenes).To(HaveLen(2))
			Expect(rec.scenes[0].Field.RawMatrix().Data).To(Equal(rec.scenes[1].Field.RawMatrix().Data))
		})

		It("wraps renderer failures", func() {
			boom := errors.New("display unavailable")
			v, _ := visualizer.New(10, 4)
			err := v.InterpolateAndPlot(visualizer.RendererFunc(func(*visualizer.Scene) error { return boom }))
			Expect(err).To(MatchError(boom))
			Expect(err.Error()).To(HavePrefix("render:"))
		})

		It("does not call the renderer when fitting fails", func() {
			dup := fixedSampler{x: []float64{0.2, 0.2, 0.7}, y: []float64{0.4, 0.4, 0.1}}
			v, err := visualizer.New(3, 4, visualizer.WithSampler(dup))
			Expect(err).NotTo(HaveOccurred())

			rec := &recorder{}
			Expect(v.InterpolateAndPlot(rec)).To(MatchError(rbf.ErrDegenerate))
			Expect(rec.scenes).To(BeEmpty())
		})
	})
})
