package manifest

import (
	"github.com/ivlev/filmstrip/internal/assemble"
	"github.com/ivlev/filmstrip/internal/walker"
)

// Version is written into every manifest.
const Version = "1.0"

// Manifest describes a sprite sheet: where each frame was cut and where it sits.
type Manifest struct {
	Version string  `yaml:"version" toml:"version" json:"version"`
	Source  string  `yaml:"source" toml:"source" json:"source"`
	Output  string  `yaml:"output,omitempty" toml:"output,omitempty" json:"output,omitempty"`
	Frame   Size    `yaml:"frame" toml:"frame" json:"frame"`
	Delta   Vector  `yaml:"delta" toml:"delta" json:"delta"`
	Stop    string  `yaml:"stop" toml:"stop" json:"stop"`
	Frames  []Entry `yaml:"frames" toml:"frames" json:"frames"`
}

type Size struct {
	W uint32 `yaml:"w" toml:"w" json:"w"`
	H uint32 `yaml:"h" toml:"h" json:"h"`
}

type Vector struct {
	X float32 `yaml:"x" toml:"x" json:"x"`
	Y float32 `yaml:"y" toml:"y" json:"y"`
}

// Entry is one frame. Origin is the rounded source position, Ideal the unrounded one,
// Slot the frame's rectangle in the output sheet.
type Entry struct {
	Index  int       `yaml:"index" toml:"index" json:"index"`
	Origin Point     `yaml:"origin" toml:"origin" json:"origin"`
	Ideal  Vector    `yaml:"ideal" toml:"ideal" json:"ideal"`
	Slot   Rectangle `yaml:"slot" toml:"slot" json:"slot"`
}

type Point struct {
	X uint32 `yaml:"x" toml:"x" json:"x"`
	Y uint32 `yaml:"y" toml:"y" json:"y"`
}

// Rectangle represents a bounding box
type Rectangle struct {
	X int `yaml:"x" toml:"x" json:"x"`
	Y int `yaml:"y" toml:"y" json:"y"`
	W int `yaml:"w" toml:"w" json:"w"`
	H int `yaml:"h" toml:"h" json:"h"`
}

type Params struct {
	Source string
	Output string
	Width  uint32
	Height uint32
	DeltaX float32
	DeltaY float32
}

// Build describes a finished walk.
func Build(p Params, res *walker.Result) *Manifest {
	m := &Manifest{
		Version: Version,
		Source:  p.Source,
		Output:  p.Output,
		Frame:   Size{W: p.Width, H: p.Height},
		Delta:   Vector{X: p.DeltaX, Y: p.DeltaY},
		Stop:    res.Stop.String(),
		Frames:  make([]Entry, 0, len(res.Frames)),
	}
	for _, f := range res.Frames {
		slot := assemble.Slot(p.Width, p.Height, f.Index)
		m.Frames = append(m.Frames, Entry{
			Index:  f.Index,
			Origin: Point{X: f.X, Y: f.Y},
			Ideal:  Vector{X: f.IdealX, Y: f.IdealY},
			Slot:   Rectangle{X: slot.Min.X, Y: slot.Min.Y, W: slot.Dx(), H: slot.Dy()},
		})
	}
	return m
}
