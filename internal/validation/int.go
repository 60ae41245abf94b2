package validation

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Int is a JSON integer field that also accepts base-10 integer strings,
// since form-backed clients send numeric foreign keys as strings.
//
// Decoding never fails: anything that is not a whole number (fractions,
// exponents, booleans, arbitrary text) is kept aside and rejected later by
// the "whole" validation tag, so the error names the field. null and ""
// mean absent.
type Int struct {
	value   int64
	set     bool
	invalid bool
	raw     string
}

// NewInt returns a present Int holding n.
func NewInt(n int64) Int {
	return Int{value: n, set: true}
}

func (i *Int) UnmarshalJSON(b []byte) error {
	*i = Int{}
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			i.invalid, i.raw = true, s
			return nil
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		i.invalid, i.raw = true, s
		return nil
	}
	i.value, i.set = n, true
	return nil
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(i.value, 10)), nil
}

// Value returns the decoded number, zero when absent.
func (i Int) Value() int64 { return i.value }

// Ptr returns nil when the field was absent.
func (i Int) Ptr() *int64 {
	if !i.set {
		return nil
	}
	v := i.value
	return &v
}

// intField feeds Int to the validator: nil when absent (so "required" and
// "omitempty" behave), the raw text when malformed, and a pointer to the
// number otherwise. The pointer makes an explicit 0 count as present, so
// it fails "min" instead of passing "omitempty" or failing "required".
func intField(field reflect.Value) interface{} {
	i, ok := field.Interface().(Int)
	if !ok {
		return nil
	}
	switch {
	case i.invalid:
		return i.raw
	case i.set:
		v := i.value
		return &v
	}
	return nil
}
