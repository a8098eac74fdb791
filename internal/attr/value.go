package attr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Kind is the type of value held by a [Value].
type Kind int

const (
	// KindInvalid is the kind of the zero Value.
	KindInvalid Kind = iota

	// KindString is a free-form string, e.g. an account name.
	KindString

	// KindBool is a boolean flag.
	KindBool

	// KindBytes is an opaque blob such as a password payload.
	KindBytes

	// KindTag is a value taken from a small fixed vocabulary,
	// e.g. the class of a credential.
	KindTag
)

var _kindNames = map[Kind]string{
	KindString: "string",
	KindBool:   "bool",
	KindBytes:  "bytes",
	KindTag:    "tag",
}

func (k Kind) String() string {
	if name, ok := _kindNames[k]; ok {
		return name
	}
	return "invalid"
}

func parseKind(name string) (Kind, error) {
	for k, n := range _kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown value kind %q", name)
}

// Value is a typed attribute value.
//
// Values are immutable.
// Byte values are copied on the way in and on the way out.
type Value struct {
	kind Kind
	str  string // KindString, KindTag
	b    bool
	bs   []byte
}

// StringValue builds a string value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// BoolValue builds a boolean value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// BytesValue builds a byte blob value.
func BytesValue(bs []byte) Value {
	return Value{kind: KindBytes, bs: bytes.Clone(bs)}
}

// TagValue builds an enumerated tag value.
func TagValue(tag string) Value {
	return Value{kind: KindTag, str: tag}
}

// Kind reports the kind of value.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string held by a KindString value.
// It panics for other kinds.
func (v Value) Str() string {
	v.mustBe(KindString)
	return v.str
}

// Bool returns the flag held by a KindBool value.
// It panics for other kinds.
func (v Value) Bool() bool {
	v.mustBe(KindBool)
	return v.b
}

// Bytes returns a copy of the blob held by a KindBytes value.
// It panics for other kinds.
func (v Value) Bytes() []byte {
	v.mustBe(KindBytes)
	return bytes.Clone(v.bs)
}

// Tag returns the tag held by a KindTag value.
// It panics for other kinds.
func (v Value) Tag() string {
	v.mustBe(KindTag)
	return v.str
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("attr: value of kind %v used as %v", v.kind, k))
	}
}

// Equal reports whether two values have the same kind and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindString, KindTag:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindBytes:
		return bytes.Equal(v.bs, o.bs)
	default:
		return true
	}
}

// String renders the value for humans.
// Byte values are never rendered, only their size.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindTag:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindBytes:
		return "<" + humanize.Bytes(uint64(len(v.bs))) + ">"
	default:
		return "<invalid>"
	}
}

type valueJSON struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON implements [json.Marshaler].
func (v Value) MarshalJSON() ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch v.kind {
	case KindString, KindTag:
		raw, err = json.Marshal(v.str)
	case KindBool:
		raw, err = json.Marshal(v.b)
	case KindBytes:
		raw, err = json.Marshal(v.bs)
	default:
		return nil, fmt.Errorf("cannot marshal %v value", v.kind)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(valueJSON{Kind: v.kind.String(), Value: raw})
}

// UnmarshalJSON implements [json.Unmarshaler].
func (v *Value) UnmarshalJSON(data []byte) error {
	var vj valueJSON
	if err := json.Unmarshal(data, &vj); err != nil {
		return err
	}

	kind, err := parseKind(vj.Kind)
	if err != nil {
		return err
	}

	switch kind {
	case KindString, KindTag:
		var s string
		if err := json.Unmarshal(vj.Value, &s); err != nil {
			return fmt.Errorf("%v value: %w", kind, err)
		}
		*v = Value{kind: kind, str: s}

	case KindBool:
		var b bool
		if err := json.Unmarshal(vj.Value, &b); err != nil {
			return fmt.Errorf("bool value: %w", err)
		}
		*v = BoolValue(b)

	case KindBytes:
		var bs []byte
		if err := json.Unmarshal(vj.Value, &bs); err != nil {
			return fmt.Errorf("bytes value: %w", err)
		}
		*v = Value{kind: KindBytes, bs: bs}
	}

	return nil
}
