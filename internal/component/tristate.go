package component

// Tristate is a style flag that may be left unset so that it falls
// through to the parent component.
type Tristate uint8

const (
	Unset Tristate = iota
	True
	False
)

// TristateOf converts a bool into an explicitly set Tristate.
func TristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// IsSet returns true if the value is True or False.
func (t Tristate) IsSet() bool {
	return t == True || t == False
}

// Bool returns the explicit value and whether it was set.
func (t Tristate) Bool() (value, ok bool) {
	switch t {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}

// String returns the string representation of the value.
func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}
