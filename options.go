package obj

type config struct {
	strict bool
}

func defaultConfig() config {
	return config{strict: true}
}

// Option configures parsing.
type Option func(*config) error

// Strict controls how unrecognized, non-comment OBJ commands are handled.
// When enabled (the default) they abort the parse with ErrUnexpectedCommand;
// when disabled the offending lines are skipped. Comments and blank lines
// are ignored in both modes.
func Strict(enabled bool) Option {
	return func(c *config) error {
		c.strict = enabled
		return nil
	}
}
