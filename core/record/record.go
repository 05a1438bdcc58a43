package record

import "fmt"

// Record is the surface the diff engine needs from a typed record instance.
// Get reports ok=false when the field has no value set, which the engine
// treats as absence, not as an error.
type Record interface {
	RecordType() *Type
	Get(field string) (any, bool)
}

// MapRecord is a Record backed by a plain map. It is the building block for
// duck-typed record trees, such as those loaded from documents.
type MapRecord struct {
	typ    *Type
	values map[string]any
}

// NewMapRecord builds a record of the given type. Values for unknown fields
// are rejected; fields without a value are simply unset.
func NewMapRecord(typ *Type, values map[string]any) (*MapRecord, error) {
	r := &MapRecord{typ: typ, values: make(map[string]any, len(values))}
	for name, v := range values {
		if err := r.Set(name, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustMapRecord is NewMapRecord for fixtures and declarations; it panics on
// unknown fields.
func MustMapRecord(typ *Type, values map[string]any) *MapRecord {
	r, err := NewMapRecord(typ, values)
	if err != nil {
		panic(err)
	}
	return r
}

// RecordType returns the declared type.
func (r *MapRecord) RecordType() *Type {
	return r.typ
}

// Get returns the value of the named field, ok=false when unset.
func (r *MapRecord) Get(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Set assigns a field value. The field must exist on the record's type.
func (r *MapRecord) Set(field string, v any) error {
	if _, ok := r.typ.Field(field); !ok {
		return fmt.Errorf("record: type %s has no field %q", r.typ.Name(), field)
	}
	r.values[field] = v
	return nil
}

// Unset removes a field value, returning the record to the "not set" state
// for that field.
func (r *MapRecord) Unset(field string) {
	delete(r.values, field)
}

func (r *MapRecord) String() string {
	return fmt.Sprintf("<%s record>", r.typ.Name())
}
