package argbind

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tagName is the struct tag naming the variable bound to a field.
const tagName = "argbind"

var (
	charType        = reflect.TypeOf(Character(0))
	enumerationType = reflect.TypeOf((*Enumeration)(nil)).Elem()
)

// StructTarget is a Target for a struct type, using reflection. A variable
// name resolves to the field with the tag `argbind:"name"`, else to the field
// with exactly that name, else to the field with that name capitalized, so
// that the variable "intVal" is written into the field IntVal.
//
// Fields must be exported to take values. A slice is an array of its element
// type. A named type implementing Enumeration is an enumeration: a field with
// an integer type takes the index of the member, a field with a string type
// takes its name.
type StructTarget struct {
	typ reflect.Type
}

// StructOf returns a StructTarget for T. It panics if T is not a struct.
func StructOf[T any]() *StructTarget {
	return NewStructTarget(reflect.TypeOf((*T)(nil)).Elem())
}

// NewStructTarget returns a StructTarget for a struct type or a pointer to a
// struct type. It panics if typ is neither, since this is a bug in the
// program.
func NewStructTarget(typ reflect.Type) *StructTarget {
	if typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		panic(fmt.Errorf(`target type %v is not a struct`, typ))
	}
	return &StructTarget{typ: typ}
}

// Type returns the struct type.
func (s *StructTarget) Type() reflect.Type {
	return s.typ
}

// FieldType implements Target.
func (s *StructTarget) FieldType(name string) (FieldType, error) {
	f, ok := s.field(name)
	if !ok {
		return FieldType{}, fmt.Errorf(`variable "%s" not present in %v`, name, s.typ)
	}
	return describe(f.Type), nil
}

// New implements Target. It returns a pointer to a new zero value.
func (s *StructTarget) New() (any, error) {
	return reflect.New(s.typ).Interface(), nil
}

// Set implements Target. The instance must be a pointer returned by New.
func (s *StructTarget) Set(instance any, name string, value any) error {
	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Type() != s.typ {
		return fmt.Errorf(`instance of %T is not a pointer to %v`, instance, s.typ)
	}
	f, ok := s.field(name)
	if !ok {
		return fmt.Errorf(`variable "%s" not present in %v`, name, s.typ)
	}
	fv := v.Elem().FieldByIndex(f.Index)
	if !fv.CanSet() {
		return fmt.Errorf(`field %s of %v cannot be set (unexported)`, f.Name, s.typ)
	}
	return assign(fv, value)
}

// field finds the field bound to a variable.
func (s *StructTarget) field(name string) (reflect.StructField, bool) {
	for i := 0; i < s.typ.NumField(); i++ {
		f := s.typ.Field(i)
		if tag, ok := f.Tag.Lookup(tagName); ok && tag == name {
			return f, true
		}
	}
	if f, ok := s.typ.FieldByName(name); ok {
		return f, true
	}
	return s.typ.FieldByName(capitalize(name))
}

// capitalize returns s with its first letter in upper case.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	var b strings.Builder
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(s[size:])
	return b.String()
}

// describe returns the field type of a Go type.
func describe(t reflect.Type) FieldType {
	ft := FieldType{Name: t.String()}
	if t.Kind() == reflect.Slice {
		ft.Array = true
		t = t.Elem()
	}
	if enumerable(t.Kind()) {
		if names, ok := enumNames(t); ok {
			ft.Kind, ft.Enum = Enum, names
			return ft
		}
	}
	if t == charType {
		ft.Kind = Char
		return ft
	}
	switch t.Kind() {
	case reflect.String:
		ft.Kind = String
	case reflect.Bool:
		ft.Kind = Bool
	case reflect.Int8:
		ft.Kind = Int8
	case reflect.Int16:
		ft.Kind = Int16
	case reflect.Int32:
		ft.Kind = Int32
	case reflect.Int64:
		ft.Kind = Int64
	case reflect.Int:
		ft.Kind = Int
	case reflect.Uint8:
		ft.Kind = Uint8
	case reflect.Uint16:
		ft.Kind = Uint16
	case reflect.Uint32:
		ft.Kind = Uint32
	case reflect.Uint64:
		ft.Kind = Uint64
	case reflect.Uint:
		ft.Kind = Uint
	case reflect.Float32:
		ft.Kind = Float32
	case reflect.Float64:
		ft.Kind = Float64
	default:
		ft.Kind = Unsupported
	}
	return ft
}

// enumerable reports whether a type of kind k can hold an enumeration member.
// Only these kinds are checked for EnumNames, which must not be called through
// a nil pointer or a nil interface.
func enumerable(k reflect.Kind) bool {
	switch k {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// enumNames returns the member names if t implements Enumeration, with a
// value or a pointer receiver. t must be enumerable.
func enumNames(t reflect.Type) ([]string, bool) {
	switch {
	case t.Implements(enumerationType):
		return reflect.Zero(t).Interface().(Enumeration).EnumNames(), true
	case reflect.PointerTo(t).Implements(enumerationType):
		return reflect.New(t).Interface().(Enumeration).EnumNames(), true
	}
	return nil, false
}

// assign writes a converted value into a field, converting to named types
// where needed.
func assign(dst reflect.Value, value any) error {
	if e, ok := value.(EnumValue); ok {
		switch dst.Kind() {
		case reflect.String:
			dst.SetString(e.Name)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetInt(int64(e.Index))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst.SetUint(uint64(e.Index))
		default:
			return fmt.Errorf(`cannot assign enumeration member "%s" to %v`, e.Name, dst.Type())
		}
		return nil
	}

	src := reflect.ValueOf(value)
	if !src.IsValid() {
		return fmt.Errorf(`cannot assign nil to %v`, dst.Type())
	}
	if src.Kind() == reflect.Slice && dst.Kind() == reflect.Slice {
		s := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if err := assign(s.Index(i), src.Index(i).Interface()); err != nil {
				return err
			}
		}
		dst.Set(s)
		return nil
	}
	// int to string is a legal conversion in Go, but not a legal assignment here
	if (dst.Kind() == reflect.String) != (src.Kind() == reflect.String) || !src.Type().ConvertibleTo(dst.Type()) {
		return fmt.Errorf(`cannot assign %v to %v`, src.Type(), dst.Type())
	}
	dst.Set(src.Convert(dst.Type()))
	return nil
}
