package uvmend

import "fmt"

// Default thresholds and budgets. The two vortex thresholds are empirically
// tuned; treat them as starting points, not optima, and override per
// repairer when a pipeline knows better.
const (
	// DefaultDensityThreshold is the max/min texel-density ratio above
	// which an island is classified as a vortex.
	DefaultDensityThreshold = 15.0

	// DefaultShapeCVThreshold is the per-face shape CV above which an
	// island is classified as a vortex.
	DefaultShapeCVThreshold = 0.3

	// DefaultMaxCuts bounds how many seam cuts one repair session may make.
	DefaultMaxCuts = 10

	// DefaultMaxConsecutiveFailures bounds how many iterations in a row a
	// session may run without progress (no UV change, or no reachable
	// boundary) before giving up.
	DefaultMaxConsecutiveFailures = 20

	// DefaultOverlapMargin is the U-axis gap left between islands by
	// ResolveOverlaps.
	DefaultOverlapMargin = 0.01
)

// Config holds the tunables for detection and repair. Construct it with
// DefaultConfig and adjust fields, or pass Options to NewRepairer.
type Config struct {
	DensityThreshold       float64
	ShapeCVThreshold       float64
	MaxCuts                int
	MaxConsecutiveFailures int
	OverlapMargin          float64

	// RestoreSeams reverts every seam flag this session toggled once the
	// session ends, succeed or fail. Repaired UV coordinates are kept
	// either way; seams exist only to steer the external solver.
	RestoreSeams bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DensityThreshold:       DefaultDensityThreshold,
		ShapeCVThreshold:       DefaultShapeCVThreshold,
		MaxCuts:                DefaultMaxCuts,
		MaxConsecutiveFailures: DefaultMaxConsecutiveFailures,
		OverlapMargin:          DefaultOverlapMargin,
	}
}

// validate rejects configurations that would break loop termination or
// threshold comparisons.
func (c Config) validate() error {
	if c.DensityThreshold <= 0 {
		return fmt.Errorf("uvmend: density threshold must be > 0, got %v", c.DensityThreshold)
	}
	if c.ShapeCVThreshold <= 0 {
		return fmt.Errorf("uvmend: shape CV threshold must be > 0, got %v", c.ShapeCVThreshold)
	}
	if c.MaxCuts < 1 {
		return fmt.Errorf("uvmend: max cuts must be >= 1, got %d", c.MaxCuts)
	}
	if c.MaxConsecutiveFailures < 1 {
		return fmt.Errorf("uvmend: max consecutive failures must be >= 1, got %d", c.MaxConsecutiveFailures)
	}
	if c.OverlapMargin < 0 {
		return fmt.Errorf("uvmend: overlap margin must be >= 0, got %v", c.OverlapMargin)
	}
	return nil
}

// Option configures a Repairer during creation.
//
// Example:
//
//	r, err := uvmend.NewRepairer(solver,
//		uvmend.WithMaxCuts(4),
//		uvmend.WithRestoreSeams(true))
type Option func(*Config)

// WithDensityThreshold sets the texel-density ratio threshold.
func WithDensityThreshold(v float64) Option {
	return func(c *Config) { c.DensityThreshold = v }
}

// WithShapeCVThreshold sets the shape CV threshold.
func WithShapeCVThreshold(v float64) Option {
	return func(c *Config) { c.ShapeCVThreshold = v }
}

// WithMaxCuts sets the per-session seam cut budget.
func WithMaxCuts(n int) Option {
	return func(c *Config) { c.MaxCuts = n }
}

// WithMaxConsecutiveFailures sets the per-session no-progress cap.
func WithMaxConsecutiveFailures(n int) Option {
	return func(c *Config) { c.MaxConsecutiveFailures = n }
}

// WithOverlapMargin sets the gap ResolveOverlaps leaves between islands.
func WithOverlapMargin(v float64) Option {
	return func(c *Config) { c.OverlapMargin = v }
}

// WithRestoreSeams controls whether session seams are reverted on exit.
func WithRestoreSeams(restore bool) Option {
	return func(c *Config) { c.RestoreSeams = restore }
}
