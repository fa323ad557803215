package placement

// Default tuning constants.
const (
	DefaultMinSize           = 40.0
	DefaultMobileMaxSize     = 90.0
	DefaultDesktopMaxSize    = 140.0
	DefaultMobileBreakpoint  = 768.0
	DefaultPadding           = 36.0
	DefaultBorder            = 4.0
	DefaultSafetyMargin      = 8.0
	DefaultShrinkFactor      = 0.85
	DefaultMaxShrinkAttempts = 20
	DefaultMaxJitterPasses   = 10
	DefaultSpacingFactor     = 0.7
	DefaultJitterFactor      = 0.08
)

// Options tunes the resolver. Zero fields take the defaults above.
type Options struct {
	MinSize          float64 `toml:"min_size" json:"min_size"`
	MobileMaxSize    float64 `toml:"mobile_max_size" json:"mobile_max_size"`
	DesktopMaxSize   float64 `toml:"desktop_max_size" json:"desktop_max_size"`
	MobileBreakpoint float64 `toml:"mobile_breakpoint" json:"mobile_breakpoint"`
	Padding          float64 `toml:"padding" json:"padding"`
	Border           float64 `toml:"border" json:"border"`
	SafetyMargin     float64 `toml:"safety_margin" json:"safety_margin"`

	ShrinkFactor      float64 `toml:"shrink_factor" json:"shrink_factor"`
	MaxShrinkAttempts int     `toml:"max_shrink_attempts" json:"max_shrink_attempts"`
	MaxJitterPasses   int     `toml:"max_jitter_passes" json:"max_jitter_passes"`
	SpacingFactor     float64 `toml:"spacing_factor" json:"spacing_factor"`
	JitterFactor      float64 `toml:"jitter_factor" json:"jitter_factor"`
}

// DefaultOptions returns the default tuning.
func DefaultOptions() Options {
	return Options{}.WithDefaults()
}

// WithDefaults returns o with every zero field replaced by its default.
func (o Options) WithDefaults() Options {
	def := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	def(&o.MinSize, DefaultMinSize)
	def(&o.MobileMaxSize, DefaultMobileMaxSize)
	def(&o.DesktopMaxSize, DefaultDesktopMaxSize)
	def(&o.MobileBreakpoint, DefaultMobileBreakpoint)
	def(&o.Padding, DefaultPadding)
	def(&o.Border, DefaultBorder)
	def(&o.SafetyMargin, DefaultSafetyMargin)
	def(&o.ShrinkFactor, DefaultShrinkFactor)
	def(&o.SpacingFactor, DefaultSpacingFactor)
	def(&o.JitterFactor, DefaultJitterFactor)
	if o.MaxShrinkAttempts <= 0 {
		o.MaxShrinkAttempts = DefaultMaxShrinkAttempts
	}
	if o.MaxJitterPasses <= 0 {
		o.MaxJitterPasses = DefaultMaxJitterPasses
	}
	if o.ShrinkFactor >= 1 {
		o.ShrinkFactor = DefaultShrinkFactor
	}
	return o
}

// Device is the size class selected by viewport width.
type Device int

const (
	Desktop Device = iota
	Mobile
)

// String returns "desktop" or "mobile".
func (d Device) String() string {
	if d == Mobile {
		return "mobile"
	}
	return "desktop"
}

// DeviceFor returns Mobile for widths below the breakpoint.
func (o Options) DeviceFor(width float64) Device {
	if width < o.MobileBreakpoint {
		return Mobile
	}
	return Desktop
}

// Ceiling returns the maximum circle size for a device class.
func (o Options) Ceiling(d Device) float64 {
	if d == Mobile {
		return o.MobileMaxSize
	}
	return o.DesktopMaxSize
}

// Clearance is the gap required between two circles' edges.
func (o Options) Clearance() float64 {
	return o.Border + o.SafetyMargin
}
