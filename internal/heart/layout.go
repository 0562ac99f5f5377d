package heart

// Range selects fragments [Start, End) from a symbol. Bounds past the
// fragment count are clamped, so a short symbol yields empty ranges.
type Range struct {
	Start int `yaml:"start" mapstructure:"start"`
	End   int `yaml:"end" mapstructure:"end"`
}

func (r Range) clamp(n int) (int, int) {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < 0 {
		end = 0
	}
	if start > end {
		start = end
	}
	return start, end
}

// Slices are the fragment ranges spread over the decorative regions.
type Slices struct {
	LeftLobe     Range `yaml:"left_lobe" mapstructure:"left_lobe"`
	RightLobe    Range `yaml:"right_lobe" mapstructure:"right_lobe"`
	LeftCluster  Range `yaml:"left_cluster" mapstructure:"left_cluster"`
	RightCluster Range `yaml:"right_cluster" mapstructure:"right_cluster"`
}

var DefaultSlices = Slices{
	LeftLobe:     Range{0, 10},
	RightLobe:    Range{10, 20},
	LeftCluster:  Range{20, 25},
	RightCluster: Range{25, 30},
}

type Layout struct {
	Slices      Slices
	Background  string
	Accent      string // outline and swatches
	Disc        string // lobe disc fill
	StrokeWidth float64

	// EscapeOffset is the device-unit translation of the scannable copy,
	// applied on both axes and independent of size.
	EscapeOffset float64
}

var DefaultLayout = Layout{
	Slices:       DefaultSlices,
	Background:   "#FFFFFF",
	Accent:       "#FF0000",
	Disc:         "#FFE4EC",
	StrokeWidth:  2,
	EscapeOffset: -1000,
}

// Geometry, all as fractions of the image size.
const (
	canvasRatio = 0.6

	diamondX     = 0.5
	diamondY     = 0.45
	diamondScale = 0.5

	lobeLeftX  = 0.3
	lobeRightX = 0.7
	lobeY      = 0.27
	lobeRadius = 0.11
	lobeScale  = 0.25

	clusterLeftX  = 0.37
	clusterRightX = 0.63
	clusterY      = 0.6
	clusterScale  = 0.2

	lobeOpacity         = 0.8
	leftClusterOpacity  = 0.6
	rightClusterOpacity = 0.5
	swatchOpacity       = 0.6
)

type swatch struct{ x, y, side float64 }

var swatches = []swatch{
	{0.16, 0.24, 0.06},
	{0.78, 0.24, 0.06},
	{0.41, 0.7, 0.04},
	{0.55, 0.7, 0.04},
}

// CanvasSide is the encoder canvas side for an image of the given size.
func CanvasSide(size int) float64 {
	return float64(size) * canvasRatio
}
