package rendering

import "fmt"

// UndefinedMode controls how the renderer treats template variables that
// have no entry in the data context.
type UndefinedMode string

const (
	// UndefinedSilent renders missing variables as empty strings.
	UndefinedSilent UndefinedMode = "silent"
	// UndefinedMarker renders missing top-level variables as a visible
	// [missing: name] placeholder.
	UndefinedMarker UndefinedMode = "marker"
	// UndefinedStrict aborts rendering when any referenced variable is
	// absent from the data context.
	UndefinedStrict UndefinedMode = "strict"
)

// ParseUndefinedMode validates a mode string from configuration or flags.
func ParseUndefinedMode(s string) (UndefinedMode, error) {
	switch UndefinedMode(s) {
	case UndefinedSilent, UndefinedMarker, UndefinedStrict:
		return UndefinedMode(s), nil
	case "":
		return UndefinedSilent, nil
	}
	return "", fmt.Errorf("unknown undefined-variable mode %q (want silent, marker or strict)", s)
}
