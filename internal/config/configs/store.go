package configs

// Store selects the persistence backend. The memory driver keeps everything
// in process and is meant for local runs and demos; postgres is the
// production driver.
type Store struct {
	// Driver is either "postgres" or "memory".
	Driver string `env:"DRIVER" envDefault:"postgres"`
}
