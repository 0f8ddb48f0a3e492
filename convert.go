package argbind

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// convert converts a raw value to the Go type of a field type. Arrays are
// split first and each element is converted separately.
func convert(value string, ft FieldType, s *splitter) (any, error) {
	if !ft.Array {
		return convertScalar(value, ft)
	}
	elements := s.split(value)
	scalar := ft
	scalar.Array = false
	result := reflect.MakeSlice(ft.goType(), len(elements), len(elements))
	for i, e := range elements {
		v, err := convertScalar(e, scalar)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		result.Index(i).Set(reflect.ValueOf(v))
	}
	return result.Interface(), nil
}

// convertScalar converts value to the Go type of a non-array field type.
// Numbers are parsed in base 10 with the bit size of the field.
func convertScalar(value string, ft FieldType) (any, error) {
	var (
		b   bool
		i   int64
		u   uint64
		f   float64
		err error
	)
	switch ft.Kind {
	case String:
		return value, nil
	case Bool:
		if b, err = strconv.ParseBool(value); err == nil {
			return b, nil
		}
	case Int8:
		if i, err = strconv.ParseInt(value, 10, 8); err == nil {
			return int8(i), nil
		}
	case Int16:
		if i, err = strconv.ParseInt(value, 10, 16); err == nil {
			return int16(i), nil
		}
	case Int32:
		if i, err = strconv.ParseInt(value, 10, 32); err == nil {
			return int32(i), nil
		}
	case Int64:
		if i, err = strconv.ParseInt(value, 10, 64); err == nil {
			return i, nil
		}
	case Int:
		if i, err = strconv.ParseInt(value, 10, 0); err == nil {
			return int(i), nil
		}
	case Uint8:
		if u, err = strconv.ParseUint(value, 10, 8); err == nil {
			return uint8(u), nil
		}
	case Uint16:
		if u, err = strconv.ParseUint(value, 10, 16); err == nil {
			return uint16(u), nil
		}
	case Uint32:
		if u, err = strconv.ParseUint(value, 10, 32); err == nil {
			return uint32(u), nil
		}
	case Uint64:
		if u, err = strconv.ParseUint(value, 10, 64); err == nil {
			return u, nil
		}
	case Uint:
		if u, err = strconv.ParseUint(value, 10, 0); err == nil {
			return uint(u), nil
		}
	case Float32:
		if f, err = strconv.ParseFloat(value, 32); err == nil {
			return float32(f), nil
		}
	case Float64:
		if f, err = strconv.ParseFloat(value, 64); err == nil {
			return f, nil
		}
	case Char:
		r, size := utf8.DecodeRuneInString(value)
		if size == 0 {
			return nil, fmt.Errorf(`%w: empty value for a character`, ErrDataFormat)
		}
		return r, nil
	case Enum:
		for index, name := range ft.Enum {
			if name == value {
				return EnumValue{Name: name, Index: index}, nil
			}
		}
		return nil, fmt.Errorf(`%w: "%s" is not one of %v`, ErrDataFormat, value, ft.Enum)
	default:
		return nil, fmt.Errorf(`%w: value "%s" for type %s`, ErrUnsupportedFieldType, value, ft)
	}
	return nil, fmt.Errorf(`%w: "%s" is not a valid %s (%w)`, ErrDataFormat, value, ft.Kind, err)
}
