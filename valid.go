package argbind

import (
	"fmt"
	"unicode"
)

// validate verifies an enumeration member or schema name.
func validate(name string) error {
	if len(name) == 0 {
		return fmt.Errorf(`empty name`)
	}
	for _, r := range name {
		if !valid(r) {
			return fmt.Errorf(`"%s" cannot be used as a name because it includes the character '%c'`, name, r)
		}
	}
	return nil
}

// valid returns true iff char is valid in a name.
// Valid characters are letters, digits, the hyphen and the underscore.
func valid(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsDigit(char) || char == '-' || char == '_'
}
