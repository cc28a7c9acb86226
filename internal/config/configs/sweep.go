package configs

import "time"

// Sweep configures the recurring lifecycle sweep. Interval controls how
// often pending submissions are scanned for due automatic transitions;
// Workers bounds the parallelism of a single pass.
type Sweep struct {
	// Enabled turns the background sweep on. Disable it when running
	// multiple instances against the same store and only one should sweep.
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// Interval between sweep passes.
	Interval time.Duration `env:"INTERVAL" envDefault:"5m"`
	// Workers processing evaluated submissions per pass.
	Workers int `env:"WORKERS" envDefault:"4"`
}
