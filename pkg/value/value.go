package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a node of a parsed document tree.
// Objects keep their members in document order and may hold repeated keys;
// deciding what a repeated key means is left to the consumer.
type Value struct {
	kind    Kind
	text    string // string contents or number literal
	boolean bool
	items   []*Value
	members []Member
}

// NewNull returns a null value.
func NewNull() *Value { return &Value{kind: Null} }

// NewBool returns a boolean value.
func NewBool(b bool) *Value { return &Value{kind: Bool, boolean: b} }

// NewString returns a string value.
func NewString(s string) *Value { return &Value{kind: String, text: s} }

// NewNumber returns a number value from its literal text (e.g. "42", "1.5e3").
func NewNumber(literal string) *Value { return &Value{kind: Number, text: literal} }

// NewArray returns an array holding items in order.
func NewArray(items ...*Value) *Value {
	return &Value{kind: Array, items: append([]*Value(nil), items...)}
}

// NewObject returns an object holding members in order.
func NewObject(members ...Member) *Value {
	return &Value{kind: Object, members: append([]Member(nil), members...)}
}

// Field is shorthand for building a Member.
func Field(key string, v *Value) Member {
	return Member{Key: key, Value: v}
}

// Strings returns an array of string values.
func Strings(items ...string) *Value {
	arr := &Value{kind: Array, items: make([]*Value, 0, len(items))}
	for _, s := range items {
		arr.items = append(arr.items, NewString(s))
	}
	return arr
}

// Kind reports the value's kind. A nil *Value reports Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// Is reports whether v is non-nil and of kind k.
func (v *Value) Is(k Kind) bool {
	return v != nil && v.kind == k
}

// Str returns the string contents if v is a string.
func (v *Value) Str() (string, bool) {
	if !v.Is(String) {
		return "", false
	}
	return v.text, true
}

// Literal returns the number literal if v is a number.
func (v *Value) Literal() (string, bool) {
	if !v.Is(Number) {
		return "", false
	}
	return v.text, true
}

// Boolean returns the boolean if v is a bool.
func (v *Value) Boolean() (bool, bool) {
	if !v.Is(Bool) {
		return false, false
	}
	return v.boolean, true
}

// Len returns the number of items of an array or members of an object.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th array item, or nil if v is not an array or i is out of range.
func (v *Value) Index(i int) *Value {
	if !v.Is(Array) || i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Items returns the array items. The slice must not be modified.
func (v *Value) Items() []*Value {
	if !v.Is(Array) {
		return nil
	}
	return v.items
}

// Get returns the first member named key.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.Is(Object) {
		return nil, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Members returns the object members in document order. The slice must not be modified.
func (v *Value) Members() []Member {
	if !v.Is(Object) {
		return nil
	}
	return v.members
}

// Keys returns the object keys in document order, repeats included.
func (v *Value) Keys() []string {
	if !v.Is(Object) {
		return nil
	}
	keys := make([]string, 0, len(v.members))
	for _, m := range v.members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Interface converts v into plain Go values: map[string]any, []any, string,
// json.Number, bool or nil. Repeated object keys keep the last occurrence.
func (v *Value) Interface() any {
	switch v.Kind() {
	case Bool:
		return v.boolean
	case Number:
		return json.Number(v.text)
	case String:
		return v.text
	case Array:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.Interface())
		}
		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v keeping object member order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) encode(buf *bytes.Buffer) error {
	switch v.Kind() {
	case Null:
		buf.WriteString("null")
	case Bool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		buf.WriteString(v.text)
	case String:
		b, err := json.Marshal(v.text)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Array:
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
	case Object:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
