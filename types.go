package argbind

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind identifies the type of values a bound variable takes.
type Kind uint8

// Kinds of bound variables. Unsupported marks a declared type which cannot
// take values; it is rejected when a parser is initialized.
const (
	Unsupported Kind = iota
	String
	Bool
	Int8
	Int16
	Int32
	Int64
	Int
	Uint8
	Uint16
	Uint32
	Uint64
	Uint
	Char
	Float32
	Float64
	Enum
)

var kindNames = [...]string{
	Unsupported: "unsupported",
	String:      "string",
	Bool:        "bool",
	Int8:        "int8",
	Int16:       "int16",
	Int32:       "int32",
	Int64:       "int64",
	Int:         "int",
	Uint8:       "uint8",
	Uint16:      "uint16",
	Uint32:      "uint32",
	Uint64:      "uint64",
	Uint:        "uint",
	Char:        "char",
	Float32:     "float32",
	Float64:     "float64",
	Enum:        "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// goTypes maps kinds to the Go type of converted values.
var goTypes = map[Kind]reflect.Type{
	String:  reflect.TypeOf(""),
	Bool:    reflect.TypeOf(false),
	Int8:    reflect.TypeOf(int8(0)),
	Int16:   reflect.TypeOf(int16(0)),
	Int32:   reflect.TypeOf(int32(0)),
	Int64:   reflect.TypeOf(int64(0)),
	Int:     reflect.TypeOf(0),
	Uint8:   reflect.TypeOf(uint8(0)),
	Uint16:  reflect.TypeOf(uint16(0)),
	Uint32:  reflect.TypeOf(uint32(0)),
	Uint64:  reflect.TypeOf(uint64(0)),
	Uint:    reflect.TypeOf(uint(0)),
	Char:    reflect.TypeOf(rune(0)),
	Float32: reflect.TypeOf(float32(0)),
	Float64: reflect.TypeOf(float64(0)),
	Enum:    reflect.TypeOf(EnumValue{}),
}

// Character is the single character type. A field of type Character takes the first
// character of its value.
type Character rune

// Enumeration is implemented by named types taking one of a fixed set of
// names. A value must match one of the names exactly.
type Enumeration interface {
	EnumNames() []string
}

// EnumValue is the converted value of an enumeration: the member name and its
// index in the declared names.
type EnumValue struct {
	Name  string
	Index int
}

// MarshalText returns the member name.
func (e EnumValue) MarshalText() ([]byte, error) {
	return []byte(e.Name), nil
}

func (e EnumValue) String() string {
	return e.Name
}

// FieldType describes the declared type of a bound variable. Name is the
// declared type name as known to the target and is only used in messages.
type FieldType struct {
	Kind  Kind
	Array bool     // one-dimensional array of Kind
	Enum  []string // member names when Kind is Enum
	Name  string
}

// String returns the textual form read by ParseFieldType.
func (ft FieldType) String() string {
	var b strings.Builder
	if ft.Array {
		b.WriteString("[]")
	}
	switch ft.Kind {
	case Enum:
		b.WriteString("enum(")
		b.WriteString(strings.Join(ft.Enum, ","))
		b.WriteString(")")
	case Unsupported:
		if ft.Name != "" {
			return ft.Name
		}
		b.WriteString(ft.Kind.String())
	default:
		b.WriteString(ft.Kind.String())
	}
	return b.String()
}

// goType returns the Go type of converted values.
func (ft FieldType) goType() reflect.Type {
	t := goTypes[ft.Kind]
	if ft.Array {
		return reflect.SliceOf(t)
	}
	return t
}

// isSwitch returns true if the variable is set by the presence of its option
// alone, without a value.
func (ft FieldType) isSwitch() bool {
	return ft.Kind == Bool && !ft.Array
}

// ParseFieldType reads a field type written as a kind name ("int32"), an array
// of a kind ("[]string"), or an enumeration ("enum(low,high)" or
// "[]enum(a,b)").
func ParseFieldType(s string) (FieldType, error) {
	var ft FieldType
	text := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(text, "[]"); ok {
		ft.Array = true
		text = strings.TrimSpace(rest)
	}
	if strings.HasPrefix(text, "enum(") && strings.HasSuffix(text, ")") {
		members := strings.Split(text[len("enum("):len(text)-1], ",")
		for i := range members {
			members[i] = strings.TrimSpace(members[i])
			if err := validate(members[i]); err != nil {
				return FieldType{}, fmt.Errorf(`field type "%s": %v`, s, err)
			}
		}
		ft.Kind, ft.Enum, ft.Name = Enum, members, "enum"
		return ft, nil
	}
	for k, name := range kindNames {
		if name == text && Kind(k) != Unsupported && Kind(k) != Enum {
			ft.Kind, ft.Name = Kind(k), name
			return ft, nil
		}
	}
	return FieldType{}, fmt.Errorf(`field type "%s" is not supported`, s)
}

// validateFieldType verifies that the declared type of a bound variable can
// take values.
func validateFieldType(variable string, ft FieldType) error {
	switch {
	case ft.Kind == Unsupported || ft.Kind > Enum:
		return fmt.Errorf(`%w: variable "%s" has type %s`, ErrUnsupportedFieldType, variable, ft)
	case ft.Kind == Enum && len(ft.Enum) == 0:
		return fmt.Errorf(`%w: variable "%s" is an enumeration without members`, ErrUnsupportedFieldType, variable)
	}
	return nil
}
