package rootio

import (
	"strings"

	"github.com/mdouchement/dumpsg/internal/inspect"
	"github.com/pkg/errors"
)

type (
	decoder interface {
		ptr() interface{}
		decode(values *inspect.Values)
	}

	number interface {
		~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
	}

	scalar[T number] struct {
		v    T
		size int64
	}

	slice[T number] struct {
		v    []T
		size int64
	}

	boolean struct {
		v bool
	}

	booleans struct {
		v []bool
	}
)

// newDecoder returns the decoder able to read data of the given ROOT type name.
func newDecoder(typename string) (decoder, error) {
	elem, vector := unwrapVector(typename)

	switch canonical(elem) {
	case "bool":
		if vector {
			return &booleans{}, nil
		}
		return &boolean{}, nil
	case "int8":
		return newNumber[int8](vector, 1), nil
	case "uint8":
		return newNumber[uint8](vector, 1), nil
	case "int16":
		return newNumber[int16](vector, 2), nil
	case "uint16":
		return newNumber[uint16](vector, 2), nil
	case "int32":
		return newNumber[int32](vector, 4), nil
	case "uint32":
		return newNumber[uint32](vector, 4), nil
	case "int64":
		return newNumber[int64](vector, 8), nil
	case "uint64":
		return newNumber[uint64](vector, 8), nil
	case "float32":
		return newNumber[float32](vector, 4), nil
	case "float64":
		return newNumber[float64](vector, 8), nil
	}
	return nil, errors.Errorf("unsupported type %q", typename)
}

// IsNumeric reports whether the values of the given type name can be decoded.
func IsNumeric(typename string) bool {
	_, err := newDecoder(typename)
	return err == nil
}

func newNumber[T number](vector bool, size int64) decoder {
	if vector {
		return &slice[T]{size: size}
	}
	return &scalar[T]{size: size}
}

func unwrapVector(typename string) (string, bool) {
	t := strings.TrimSpace(typename)
	if !strings.HasPrefix(t, "vector<") || !strings.HasSuffix(t, ">") {
		return t, false
	}

	t = strings.TrimPrefix(t, "vector<")
	t = strings.TrimSuffix(t, ">")
	return strings.TrimSpace(t), true
}

func canonical(typename string) string {
	switch typename {
	case "bool", "Bool_t":
		return "bool"
	case "char", "Char_t", "int8_t", "int8":
		return "int8"
	case "unsigned char", "UChar_t", "uint8_t", "uint8":
		return "uint8"
	case "short", "Short_t", "int16_t", "int16":
		return "int16"
	case "unsigned short", "UShort_t", "uint16_t", "uint16":
		return "uint16"
	case "int", "Int_t", "int32_t", "int32":
		return "int32"
	case "unsigned int", "UInt_t", "uint32_t", "uint32":
		return "uint32"
	case "long", "long long", "Long_t", "Long64_t", "int64_t", "int64":
		return "int64"
	case "unsigned long", "unsigned long long", "ULong_t", "ULong64_t", "uint64_t", "uint64", "size_t":
		return "uint64"
	case "float", "Float_t", "float32":
		return "float32"
	case "double", "Double_t", "float64":
		return "float64"
	}
	return ""
}

func (d *scalar[T]) ptr() interface{} {
	return &d.v
}

func (d *scalar[T]) decode(values *inspect.Values) {
	values.Data = append(values.Data, float64(d.v))
	values.Items++
	values.Bytes += d.size
}

func (d *slice[T]) ptr() interface{} {
	return &d.v
}

func (d *slice[T]) decode(values *inspect.Values) {
	for _, v := range d.v {
		values.Data = append(values.Data, float64(v))
	}
	values.Items += int64(len(d.v))
	values.Bytes += d.size * int64(len(d.v))
}

func (d *boolean) ptr() interface{} {
	return &d.v
}

func (d *boolean) decode(values *inspect.Values) {
	values.Data = append(values.Data, b2f(d.v))
	values.Items++
	values.Bytes++
}

func (d *booleans) ptr() interface{} {
	return &d.v
}

func (d *booleans) decode(values *inspect.Values) {
	for _, v := range d.v {
		values.Data = append(values.Data, b2f(v))
	}
	values.Items += int64(len(d.v))
	values.Bytes += int64(len(d.v))
}

func b2f(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
