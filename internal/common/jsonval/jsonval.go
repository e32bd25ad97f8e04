// Package jsonval models JSON documents of unknown shape, such as
// application form data, as a tagged union. Object member order is
// preserved through decode/encode so a round-tripped document matches
// what the server sent.
package jsonval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is one JSON value: null, bool, number, string, array, or an
// ordered string-keyed object.
type Value struct {
	kind    Kind
	boolVal bool
	numVal  json.Number
	strVal  string
	items   []Value
	keys    []string
	fields  map[string]Value
}

// Member is one object field, used by Object.
type Member struct {
	Key   string
	Value Value
}

func Null() Value { return Value{kind: KindNull} }

func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

func Number(f float64) Value {
	return Value{kind: KindNumber, numVal: json.Number(strconv.FormatFloat(f, 'f', -1, 64))}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, numVal: json.Number(strconv.FormatInt(i, 10))}
}

func String(s string) Value { return Value{kind: KindString, strVal: s} }

func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

func Object(members ...Member) Value {
	v := Value{kind: KindObject, fields: make(map[string]Value, len(members))}
	for _, m := range members {
		if _, exists := v.fields[m.Key]; !exists {
			v.keys = append(v.keys, m.Key)
		}
		v.fields[m.Key] = m.Value
	}
	return v
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) BoolValue() bool { return v.boolVal }

// NumberValue returns the numeric value as float64; 0 for non-numbers.
func (v Value) NumberValue() float64 {
	f, _ := v.numVal.Float64()
	return f
}

func (v Value) StringValue() string { return v.strVal }

func (v Value) Items() []Value { return v.items }

// Keys returns object member names in their original order.
func (v Value) Keys() []string { return v.keys }

// Field returns the named object member.
func (v Value) Field(key string) (Value, bool) {
	f, ok := v.fields[key]
	return f, ok
}

// Set adds or replaces an object member, appending new keys at the end.
func (v *Value) Set(key string, val Value) {
	if v.kind != KindObject {
		*v = Object()
	}
	if _, exists := v.fields[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
}

// Equal compares two values structurally. Numbers compare numerically,
// arrays element-wise in order, objects by key set regardless of member
// order. Values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindNumber:
		a, errA := v.numVal.Float64()
		b, errB := other.numVal.Float64()
		return errA == nil && errB == nil && a == b
	case KindString:
		return v.strVal == other.strVal
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for key, val := range v.fields {
			otherVal, ok := other.fields[key]
			if !ok || !val.Equal(otherVal) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON encodes the value, writing object members in key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolVal))
	case KindNumber:
		if v.numVal == "" {
			buf.WriteByte('0')
		} else {
			buf.WriteString(string(v.numVal))
		}
	case KindString:
		b, err := json.Marshal(v.strVal)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, key := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := v.fields[key].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
	return nil
}

// UnmarshalJSON decodes any JSON document, preserving object member order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}

	// Reject trailing content after the first document
	if _, err := dec.Token(); err == nil {
		return fmt.Errorf("unexpected data after JSON value")
	}

	*v = parsed
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Value{kind: KindNumber, numVal: t}, nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			arr := Value{kind: KindArray}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				arr.items = append(arr.items, item)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return Value{}, err
			}
			return arr, nil
		case '{':
			obj := Value{kind: KindObject, fields: make(map[string]Value)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				if _, exists := obj.fields[key]; !exists {
					obj.keys = append(obj.keys, key)
				}
				obj.fields[key] = val
			}
			if _, err := dec.Token(); err != nil { // closing }
				return Value{}, err
			}
			return obj, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token: %v", tok)
}

// ToInterface converts the value to the equivalent
// map[string]interface{}/[]interface{} representation, losing member
// order. Used where third-party validators expect plain Go values.
func (v Value) ToInterface() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindNumber:
		f, _ := v.numVal.Float64()
		return f
	case KindString:
		return v.strVal
	case KindArray:
		out := make([]interface{}, len(v.items))
		for i, item := range v.items {
			out[i] = item.ToInterface()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.fields))
		for key, val := range v.fields {
			out[key] = val.ToInterface()
		}
		return out
	}
	return nil
}
