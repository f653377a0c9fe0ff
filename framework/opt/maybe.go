package opt

import (
	"encoding/json"
	"fmt"
)

// Maybe is an optional value type. The memory API omits many response fields
// depending on server configuration, so response types use Maybe to
// distinguish "absent" from a zero value.
type Maybe[V any] struct {
	defined bool
	value   V
}

// Some returns a Maybe holding a value.
func Some[V any](value V) Maybe[V] {
	return Maybe[V]{defined: true, value: value}
}

// None returns a Maybe with no value.
func None[V any]() Maybe[V] { return Maybe[V]{} }

// IsDefined returns true if the Maybe holds a value.
func (m Maybe[V]) IsDefined() bool { return m.defined }

// Value returns the held value, or the zero value for the type if undefined.
func (m Maybe[V]) Value() V { return m.value }

// OrElse returns the held value if any, or valueIfUndefined otherwise.
func (m Maybe[V]) OrElse(valueIfUndefined V) V {
	if m.defined {
		return m.value
	}
	return valueIfUndefined
}

// FormatOr returns the value formatted with %v, or fallback if undefined.
// Display code uses this for the "N/A" substitution on absent fields.
func (m Maybe[V]) FormatOr(fallback string) string {
	if m.defined {
		return fmt.Sprintf("%v", m.value)
	}
	return fallback
}

func (m Maybe[V]) String() string {
	return m.FormatOr("[none]")
}

// MarshalJSON writes the held value's normal JSON representation, or null.
func (m Maybe[V]) MarshalJSON() ([]byte, error) {
	if m.defined {
		return json.Marshal(m.value)
	}
	return []byte("null"), nil
}

// UnmarshalJSON sets the Maybe to None for a JSON null, or Some of the
// unmarshaled value otherwise. An omitted field leaves the Maybe untouched,
// which for a zero-valued Maybe also means None.
func (m *Maybe[V]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = None[V]()
		return nil
	}
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*m = Some(value)
	return nil
}
