package errors

import (
	"regexp"
	"unicode"
)

// gateNameRegex matches names that survive QASM and DOT export verbatim:
// a letter followed by letters, digits, and underscores. QASM lowercases
// names on emission, so mixed case is accepted here.
var gateNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateGateName validates a gate or box name for export safety. Names
// are written verbatim into QASM call lines and DOT labels, so anything
// outside the identifier alphabet would corrupt the output text.
func ValidateGateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCircuit, "gate name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidCircuit, "gate name too long (max 64 characters)")
	}
	if !gateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidCircuit, "invalid gate name: %q", name)
	}
	return nil
}

// ValidatePath validates a user-supplied artifact path before reads or
// writes.
//
// The rules are intentionally conservative:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
