package flatpack

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// baseName returns the name stored in the container for a source path.
func baseName(path string) string {
	return filepath.Base(path)
}

// ValidateName reports whether name can be stored in a container and later
// extracted as a single file inside the destination directory.
//
// Names must be non-empty valid UTF-8, must not be "." or "..", and must not
// contain NUL, '/' or '\\'.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case !utf8.ValidString(name):
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidName, name)
	case strings.ContainsAny(name, "\x00/\\"):
		return fmt.Errorf("%w: %q contains a separator or NUL", ErrInvalidName, name)
	}
	return nil
}
