package mission

import "errors"

// Sentinel causes of a ConfigError (Mission construction failures).
// Build always wraps one of these rather than returning them bare, so
// callers can still errors.Is against the sentinel while getting the
// offending spec string and field in the message.
var (
	ErrUnknownEncoding    = errors.New("mission: unknown encoding label")
	ErrBadInteger         = errors.New("mission: unparsable integer field")
	ErrUnknownFilterAlias = errors.New("mission: unknown filter alias")
	ErrTooManyFields      = errors.New("mission: too many comma-separated fields")
	ErrGrepNotASCII       = errors.New("mission: grep char must be <128")
	ErrLineCapTooSmall    = errors.New("mission: output line char max below minimum")
)

// ConfigError reports a mission spec that failed to parse or validate. It
// carries the original spec string for diagnostics and wraps one of the
// sentinels above so callers can classify the failure with errors.Is.
type ConfigError struct {
	Spec string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Spec == "" {
		return "mission: " + e.Err.Error()
	}
	return "mission: " + e.Err.Error() + ": " + e.Spec
}

func (e *ConfigError) Unwrap() error { return e.Err }
