package bloom

type config struct {
	seeds    [2]uint64
	hasSeeds bool
	family   HashFamily
	logger   Logger
	hooks    *Hooks
}

type Option func(c *config)

// WithSeeds fixes the two hash seeds. Filters built with equal parameters,
// seeds and hash family map every item to the same bit positions.
func WithSeeds(seed1, seed2 uint64) Option {
	return func(c *config) {
		c.seeds = [2]uint64{seed1, seed2}
		c.hasSeeds = true
	}
}

func WithHashFamily(family HashFamily) Option {
	return func(c *config) {
		c.family = family
	}
}

func WithLogger(logger Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithHooks(hooks *Hooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

func newConfig(opts []Option) config {
	c := config{
		family: XXHash,
		logger: StdLogger(nil),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if !c.hasSeeds {
		c.seeds = randomSeeds()
	}
	if c.logger == nil {
		c.logger = NoOpLogger()
	}
	return c
}
