package deck

// EMU is an English Metric Unit, the integer length unit of presentation
// geometry. All layout arithmetic is done in EMU so results are exact and
// reproducible.
type EMU int64

// Unit conversions.
const (
	EMUPerInch  EMU = 914400
	EMUPerPoint EMU = 12700
)

// Inches converts a length in inches to EMU, truncating toward zero.
func Inches(v float64) EMU {
	return EMU(v * float64(EMUPerInch))
}

// Points converts a length in points to EMU, truncating toward zero.
func Points(v float64) EMU {
	return EMU(v * float64(EMUPerPoint))
}

// Inches returns e as a fractional number of inches.
func (e EMU) Inches() float64 {
	return float64(e) / float64(EMUPerInch)
}

// Points returns e as a fractional number of points.
func (e EMU) Points() float64 {
	return float64(e) / float64(EMUPerPoint)
}

// Rectangle is a positioned box on a slide.
type Rectangle struct {
	Top    EMU `yaml:"top"`
	Left   EMU `yaml:"left"`
	Height EMU `yaml:"height"`
	Width  EMU `yaml:"width"`
}

// Bottom returns the y coordinate of the lower edge.
func (r Rectangle) Bottom() EMU { return r.Top + r.Height }

// Right returns the x coordinate of the right edge.
func (r Rectangle) Right() EMU { return r.Left + r.Width }

// Empty reports whether r has no visible area. Callers must not draw an
// empty rectangle.
func (r Rectangle) Empty() bool { return r.Height <= 0 || r.Width <= 0 }

// Contains reports whether inner lies entirely within r.
func (r Rectangle) Contains(inner Rectangle) bool {
	return inner.Left >= r.Left && inner.Top >= r.Top &&
		inner.Right() <= r.Right() && inner.Bottom() <= r.Bottom()
}
