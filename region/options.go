package region

/*
Options for region construction.
*/

////////////////////////////////////////////////////////////////////////////////

type config struct {
	name string
}

// Option is a function that modifies the region configuration.
type Option func(*config)

// WithName sets the name the region uses to tag its log records and errors.
// Unnamed regions get a random UUID.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
