package action

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnsupportedValue reports a Value outside the closed variant set,
// i.e. a zero Value that was never built with a constructor.
var ErrUnsupportedValue = errors.New("action: unsupported value variant")

// Encode serializes v into canonical msgpack bytes. Encoding is
// deterministic: structurally identical trees, including map entry
// order, produce identical bytes.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeValue(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(enc *msgpack.Encoder, v Value) error {
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindInt:
		// EncodeInt picks the narrowest tag and uses the unsigned
		// family for non-negative values, matching the verifier.
		return enc.EncodeInt(v.i)
	case KindFloat:
		return enc.EncodeFloat64(v.f)
	case KindString:
		return enc.EncodeString(v.s)
	case KindArray:
		if err := enc.EncodeArrayLen(len(v.arr)); err != nil {
			return err
		}
		for _, elem := range v.arr {
			if err := encodeValue(enc, elem); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		if err := enc.EncodeMapLen(len(v.m)); err != nil {
			return err
		}
		for _, entry := range v.m {
			if err := enc.EncodeString(entry.Key); err != nil {
				return err
			}
			if err := encodeValue(enc, entry.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupportedValue, v.kind)
	}
}
