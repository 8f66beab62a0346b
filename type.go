// File: lixenwraith/fini/type.go
package fini

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// String resolves option and converts the result to a string.
// Lists are rendered comma separated so that the comma function reads them back.
func (s *Section) String(option string) (string, error) {
	val, err := s.Value(option)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil // blank bool/int/float results
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case []string:
		return joinComma(v), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for %s.%s", val, s.name, option)
	}
}

// Int64 resolves option and converts the result to an int64.
// Strings are parsed with base auto-detection ("0x1F").
func (s *Section) Int64(option string) (int64, error) {
	val, err := s.Value(option)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, fmt.Errorf("value for %s.%s is blank, cannot convert to int64", s.name, option)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		maxInt64 := int64(^uint64(0) >> 1)
		if u > uint64(maxInt64) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d to int64 for %s.%s: overflow", u, s.name, option)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil
	case reflect.String:
		str := strings.TrimSpace(v.String())
		i, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64 for %s.%s: %w", str, s.name, option, err)
		}
		return i, nil
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for %s.%s", val, s.name, option)
}

// Bool resolves option and converts the result to a bool.
// Strings use the same truth table as the bool function.
func (s *Section) Bool(option string) (bool, error) {
	val, err := s.Value(option)
	if err != nil {
		return false, err
	}
	if val == nil {
		return false, fmt.Errorf("value for %s.%s is blank, cannot convert to bool", s.name, option)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		b, ok := booleanStates[strings.ToLower(strings.TrimSpace(v.String()))]
		if !ok {
			return false, fmt.Errorf("cannot convert string %q to bool for %s.%s", v.String(), s.name, option)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for %s.%s", val, s.name, option)
}

// Float64 resolves option and converts the result to a float64.
func (s *Section) Float64(option string) (float64, error) {
	val, err := s.Value(option)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, fmt.Errorf("value for %s.%s is blank, cannot convert to float64", s.name, option)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		str := strings.TrimSpace(v.String())
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64 for %s.%s: %w", str, s.name, option, err)
		}
		return f, nil
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to float64 for %s.%s", val, s.name, option)
}

// Strings resolves option and converts the result to a string list.
// A plain string is split with the comma function rules.
func (s *Section) Strings(option string) ([]string, error) {
	val, err := s.Value(option)
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return v, nil
	case string:
		return parseComma(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	}

	return nil, fmt.Errorf("cannot convert type %T to []string for %s.%s", val, s.name, option)
}
