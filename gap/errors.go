package gap

import "fmt"

// ConfigurationError reports an invalid or missing parameter combination for
// the selected geometry type, coordinate system or evaluation mode. It is
// raised once at setup and the model cannot be evaluated after one.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

func configErrf(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// GeometryError reports a degenerate normal/radial alignment or a violated
// search-boundary contract during evaluation, indicating upstream mesh or
// normal-orientation corruption. Not retryable.
type GeometryError struct {
	Msg string
}

func (e *GeometryError) Error() string { return e.Msg }

func geomErrf(format string, args ...interface{}) error {
	return &GeometryError{Msg: fmt.Sprintf(format, args...)}
}
