package argbind

// Target gives a parser access to the structure taking values. A parser
// knows bound variables only by name; a Target resolves the declared type of
// a name, creates instances and writes values into them.
//
// Values passed to Set have exactly the Go type corresponding to the field
// type: string, bool, int8 to int64, int, uint8 to uint64, uint, rune for
// Char, float32, float64 and EnumValue, or a slice of one of these for an
// array.
type Target interface {
	// FieldType returns the declared type of a variable, or an error if the
	// target has no such variable.
	FieldType(name string) (FieldType, error)

	// New returns a new instance with default values.
	New() (any, error)

	// Set writes the value of a variable into an instance returned by New.
	Set(instance any, name string, value any) error
}
