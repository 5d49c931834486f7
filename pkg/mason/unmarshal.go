package mason

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// Unmarshaler is the interface implemented by types that can decode a MASON
// value into themselves.
type Unmarshaler interface {
	UnmarshalMASON(Value) error
}

// Unmarshal parses the MASON-encoded data and stores the result in the value pointed to by v.
//
// Unmarshal allocates maps, slices, and pointers as necessary, with the following rules:
//
// A MASON null sets the target to its zero value (nil for pointers, maps,
// slices and interfaces).
//
// To unmarshal into a struct, Unmarshal matches object keys to the field's
// `mason:"name"` tag, or to the lowercased field name when there is no tag,
// preferring an exact match but also accepting a case-insensitive match. A
// tag of "-" skips the field. Unmarshal will only set exported fields; keys
// without a matching field are ignored.
//
// Numbers decode into any integer or floating point type. Integer targets
// require a whole number within the target's range.
//
// Byte strings decode into []byte; text strings decode into string or
// []byte.
//
// To unmarshal into an empty interface value, Unmarshal stores one of these:
//
//	nil, for null
//	bool, for booleans
//	float64, for numbers
//	string, for text strings
//	[]byte, for byte strings
//	[]interface{}, for arrays
//	map[string]interface{}, for objects
//
// Fields of type Value receive the parsed subtree unchanged, and types
// implementing Unmarshaler receive it through UnmarshalMASON.
//
// If the document is not valid, Unmarshal returns a *ParseError.
//
// Example:
//
//	type Config struct {
//	    Name string
//	    Port int `mason:"port"`
//	}
//	var cfg Config
//	err := mason.Unmarshal([]byte("name: \"server\"\nport: 0x1F90"), &cfg)
func Unmarshal(data []byte, v interface{}, opts ...Option) error {
	val, err := ParseBytes(data, opts...)
	if err != nil {
		return err
	}
	return Decode(val, v)
}

// Decode stores an already parsed Value in the value pointed to by v, with
// the rules of Unmarshal.
func Decode(val Value, v interface{}) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return errors.New("mason: Decode(nil)")
	}

	if rv.Kind() != reflect.Ptr {
		return errors.New("mason: Decode(non-pointer " + rv.Type().String() + ")")
	}

	if rv.IsNil() {
		return errors.New("mason: Decode(nil " + rv.Type().String() + ")")
	}

	return decodeValue(val, rv.Elem())
}

var (
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	valueType       = reflect.TypeOf(Value{})
)

// decodeValue decodes val into rv
func decodeValue(val Value, rv reflect.Value) error {
	// Value targets keep the subtree as parsed
	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(val))
		return nil
	}

	// Handle null
	if val.IsNull() {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	if rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(unmarshalerType) {
		return rv.Addr().Interface().(Unmarshaler).UnmarshalMASON(val)
	}

	// Handle interface{} specially
	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		rv.Set(reflect.ValueOf(val.Interface()))
		return nil
	}

	// Handle pointers
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeValue(val, rv.Elem())
	}

	switch val.Kind() {
	case KindBool:
		return decodeBool(val, rv)
	case KindNumber:
		return decodeNumber(val, rv)
	case KindText:
		return decodeText(val, rv)
	case KindBytes:
		return decodeBytes(val, rv)
	case KindList:
		return decodeList(val, rv)
	case KindMap:
		return decodeMap(val, rv)
	default:
		return fmt.Errorf("mason: unsupported value kind %s", val.Kind())
	}
}

func mismatch(val Value, rv reflect.Value) error {
	return fmt.Errorf("mason: cannot unmarshal %s into Go value of type %s", val.Kind(), rv.Type())
}

func decodeBool(val Value, rv reflect.Value) error {
	b, _ := val.AsBool()
	if rv.Kind() != reflect.Bool {
		return mismatch(val, rv)
	}
	rv.SetBool(b)
	return nil
}

// decodeNumber decodes a number into an integer or floating point target
func decodeNumber(val Value, rv reflect.Value) error {
	f, _ := val.AsNumber()

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return fmt.Errorf("mason: cannot unmarshal number %v into Go value of type %s", f, rv.Type())
		}
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if f < math.MinInt64 || f >= math.MaxInt64 || rv.OverflowInt(int64(f)) {
			return fmt.Errorf("mason: value %v overflows %s", f, rv.Type())
		}
		rv.SetInt(int64(f))
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if f < 0 || f != math.Trunc(f) || math.IsInf(f, 0) {
			return fmt.Errorf("mason: cannot unmarshal number %v into Go value of type %s", f, rv.Type())
		}
		if f >= math.MaxUint64 || rv.OverflowUint(uint64(f)) {
			return fmt.Errorf("mason: value %v overflows %s", f, rv.Type())
		}
		rv.SetUint(uint64(f))
		return nil

	case reflect.Float32, reflect.Float64:
		if rv.OverflowFloat(f) {
			return fmt.Errorf("mason: value %v overflows %s", f, rv.Type())
		}
		rv.SetFloat(f)
		return nil
	}
	return mismatch(val, rv)
}

func decodeText(val Value, rv reflect.Value) error {
	s, _ := val.AsText()

	switch {
	case rv.Kind() == reflect.String:
		rv.SetString(s)
		return nil
	case isByteSlice(rv.Type()):
		rv.SetBytes([]byte(s))
		return nil
	}
	return mismatch(val, rv)
}

func decodeBytes(val Value, rv reflect.Value) error {
	b, _ := val.AsBytes()

	if !isByteSlice(rv.Type()) {
		return mismatch(val, rv)
	}
	rv.SetBytes(b)
	return nil
}

func isByteSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// decodeList decodes an array into a slice or array
func decodeList(val Value, rv reflect.Value) error {
	items, _ := val.AsList()

	switch rv.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeValue(item, slice.Index(i)); err != nil {
				return fmt.Errorf("%w (index %d)", err, i)
			}
		}
		rv.Set(slice)
		return nil

	case reflect.Array:
		if len(items) > rv.Len() {
			return fmt.Errorf("mason: array length %d exceeds target array length %d", len(items), rv.Len())
		}
		for i := 0; i < rv.Len(); i++ {
			if i >= len(items) {
				rv.Index(i).Set(reflect.Zero(rv.Type().Elem()))
				continue
			}
			if err := decodeValue(items[i], rv.Index(i)); err != nil {
				return fmt.Errorf("%w (index %d)", err, i)
			}
		}
		return nil
	}
	return mismatch(val, rv)
}

// decodeMap decodes an object into a struct or a map with string keys
func decodeMap(val Value, rv reflect.Value) error {
	m, _ := val.AsMap()

	switch rv.Kind() {
	case reflect.Struct:
		fc := getFieldCache(rv.Type())
		var err error
		m.Range(func(key string, item Value) bool {
			info, ok := fc.lookup(key)
			if !ok {
				return true
			}
			if e := decodeValue(item, rv.Field(info.index)); e != nil {
				err = fmt.Errorf("%w (key %q)", e, key)
				return false
			}
			return true
		})
		return err

	case reflect.Map:
		mapType := rv.Type()
		keyType := mapType.Key()
		if keyType.Kind() != reflect.String {
			return fmt.Errorf("mason: unsupported map key type %s", keyType)
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMapWithSize(mapType, m.Len()))
		}

		var err error
		m.Range(func(key string, item Value) bool {
			elem := reflect.New(mapType.Elem()).Elem()
			if e := decodeValue(item, elem); e != nil {
				err = fmt.Errorf("%w (key %q)", e, key)
				return false
			}
			rv.SetMapIndex(reflect.ValueOf(key).Convert(keyType), elem)
			return true
		})
		return err
	}
	return mismatch(val, rv)
}
