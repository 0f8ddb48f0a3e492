package argbind

import (
	"fmt"
	"reflect"
	"sort"
)

// MapTarget is a Target without a Go type behind it. Its fields are declared
// by name and type, and its instances are maps from field names to values.
type MapTarget struct {
	fields map[string]FieldType
}

// NewMapTarget returns a MapTarget with the given fields. The map is copied.
func NewMapTarget(fields map[string]FieldType) *MapTarget {
	m := &MapTarget{fields: make(map[string]FieldType, len(fields))}
	for n, ft := range fields {
		m.fields[n] = ft
	}
	return m
}

// Names returns the field names in lexical order.
func (m *MapTarget) Names() []string {
	names := make([]string, 0, len(m.fields))
	for n := range m.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FieldType implements Target.
func (m *MapTarget) FieldType(name string) (FieldType, error) {
	ft, ok := m.fields[name]
	if !ok {
		return FieldType{}, fmt.Errorf(`field "%s" not declared`, name)
	}
	return ft, nil
}

// New implements Target. It returns a map[string]any holding the zero value
// of every field. The zero value of an enumeration is its first member.
func (m *MapTarget) New() (any, error) {
	instance := make(map[string]any, len(m.fields))
	for n, ft := range m.fields {
		if validateFieldType(n, ft) != nil {
			continue
		}
		if ft.Kind == Enum && !ft.Array {
			instance[n] = EnumValue{Name: ft.Enum[0]}
			continue
		}
		instance[n] = reflect.Zero(ft.goType()).Interface()
	}
	return instance, nil
}

// Set implements Target.
func (m *MapTarget) Set(instance any, name string, value any) error {
	values, ok := instance.(map[string]any)
	if !ok {
		return fmt.Errorf(`instance of %T is not a map[string]any`, instance)
	}
	ft, ok := m.fields[name]
	if !ok {
		return fmt.Errorf(`field "%s" not declared`, name)
	}
	if value == nil || reflect.TypeOf(value) != ft.goType() {
		return fmt.Errorf(`cannot assign %T to field "%s" of type %s`, value, name, ft)
	}
	values[name] = value
	return nil
}
