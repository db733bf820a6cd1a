package timeline

import (
	"math"
	"time"

	"github.com/matzehuels/casegraph/pkg/errors"
	"github.com/matzehuels/casegraph/pkg/scale"
)

// Default layout values.
const (
	DefaultWidth    = 1200
	DefaultHeight   = 600
	DefaultLanguage = "en"
)

// Margin is the space between the chart area and the viewport edges.
type Margin struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// Config holds the layout constants read once at construction.
type Config struct {
	Width  float64 `toml:"width"`  // viewport width including margins
	Height float64 `toml:"height"` // viewport height including margins
	Margin Margin  `toml:"margin"`

	// DateTickFormatter labels bottom-axis ticks. Defaults to scale.MultiFormat.
	DateTickFormatter func(time.Time) string `toml:"-"`

	// Language is the two-letter code fixing the axis captions. Only "ro"
	// has a translation; anything else uses English.
	Language string `toml:"language"`

	// MarkerBaseURL prefixes arrowhead references, e.g. "page.html" yields
	// url(page.html#arrow-x). Empty keeps fragment-only references.
	MarkerBaseURL string `toml:"marker_base_url"`
}

// DefaultConfig returns the default layout.
func DefaultConfig() Config {
	return Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Margin:   Margin{Top: 10, Right: 10, Bottom: 50, Left: 200},
		Language: DefaultLanguage,
	}
}

// InnerWidth returns the width of the plotting area.
func (c Config) InnerWidth() float64 {
	return c.Width - c.Margin.Left - c.Margin.Right
}

// InnerHeight returns the height of the plotting area.
func (c Config) InnerHeight() float64 {
	return c.Height - c.Margin.Top - c.Margin.Bottom
}

// Validate reports layouts that leave no plotting area or carry a
// non-finite size.
func (c Config) Validate() error {
	m := c.Margin
	for _, v := range []float64{c.Width, c.Height, m.Top, m.Right, m.Bottom, m.Left} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig,
				"size %v x %v with margins %v/%v/%v/%v is not finite", c.Width, c.Height, m.Top, m.Right, m.Bottom, m.Left)
		}
	}
	if !(c.InnerWidth() > 0) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"width %v leaves no room after margins %v+%v", c.Width, c.Margin.Left, c.Margin.Right)
	}
	if !(c.InnerHeight() > 0) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"height %v leaves no room after margins %v+%v", c.Height, c.Margin.Top, c.Margin.Bottom)
	}
	if c.Language != "" {
		if err := errors.ValidateLanguage(c.Language); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.DateTickFormatter == nil {
		c.DateTickFormatter = scale.MultiFormat
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	return c
}

// captions are the axis titles for one language.
type captions struct {
	x, y string
}

var captionsByLanguage = map[string]captions{
	"en": {x: "Day", y: "Ordered cases per day"},
	"ro": {x: "Ziua", y: "Cazuri ordonate pe zi"},
}

func captionsFor(lang string) captions {
	if c, ok := captionsByLanguage[lang]; ok {
		return c
	}
	return captionsByLanguage[DefaultLanguage]
}
