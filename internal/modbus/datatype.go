package modbus

import (
	"encoding/binary"
	"math"
)

// DataType is the Modbus-visible scalar type matrix (spec §3/§4.1). Encoding
// is always big-endian; word counts are in 16-bit Modbus registers.
type DataType byte

const (
	U16 DataType = iota
	U32
	I32
	F32
	U64
	Byte
)

func (dt DataType) String() string {
	switch dt {
	case U16:
		return "U16"
	case U32:
		return "U32"
	case I32:
		return "I32"
	case F32:
		return "F32"
	case U64:
		return "U64"
	case Byte:
		return "Byte"
	}
	return "Unknown"
}

// SizeWords returns the number of 16-bit Modbus registers occupied by a value
// of this type: U16=1, {U32,I32,F32}=2, U64=4, Byte=1.
func (dt DataType) SizeWords() uint16 {
	switch dt {
	case U16, Byte:
		return 1
	case U32, I32, F32:
		return 2
	case U64:
		return 4
	}
	return 0
}

// sizeBytes is SizeWords*2, the byte length of the wire encoding.
func (dt DataType) sizeBytes() int {
	return int(dt.SizeWords()) * 2
}

// DataValue is a tagged union over the DataType matrix. The zero value is
// U16(0).
type DataValue struct {
	typ DataType
	u16 uint16
	u32 uint32
	i32 int32
	f32 float32
	u64 uint64
	b   byte
}

// ValueU16 constructs a DataValue of type U16.
func ValueU16(v uint16) DataValue { return DataValue{typ: U16, u16: v} }

// ValueU32 constructs a DataValue of type U32.
func ValueU32(v uint32) DataValue { return DataValue{typ: U32, u32: v} }

// ValueI32 constructs a DataValue of type I32.
func ValueI32(v int32) DataValue { return DataValue{typ: I32, i32: v} }

// ValueF32 constructs a DataValue of type F32.
func ValueF32(v float32) DataValue { return DataValue{typ: F32, f32: v} }

// ValueU64 constructs a DataValue of type U64.
func ValueU64(v uint64) DataValue { return DataValue{typ: U64, u64: v} }

// ValueByte constructs a DataValue of type Byte.
func ValueByte(v byte) DataValue { return DataValue{typ: Byte, b: v} }

// Type returns the variant tag of the value.
func (v DataValue) Type() DataType { return v.typ }

// AsF64 widens the value to a float64 on a best-effort basis.
func (v DataValue) AsF64() float64 {
	switch v.typ {
	case U16:
		return float64(v.u16)
	case U32:
		return float64(v.u32)
	case I32:
		return float64(v.i32)
	case F32:
		return float64(v.f32)
	case U64:
		return float64(v.u64)
	case Byte:
		return float64(v.b)
	}
	return 0
}

// AsU16/AsU32/AsI32/AsF32/AsU64/AsByte return the stored scalar for callers
// that already know the variant; they do not validate the tag.
func (v DataValue) AsU16() uint16   { return v.u16 }
func (v DataValue) AsU32() uint32   { return v.u32 }
func (v DataValue) AsI32() int32    { return v.i32 }
func (v DataValue) AsF32() float32  { return v.f32 }
func (v DataValue) AsU64() uint64   { return v.u64 }
func (v DataValue) AsByte() byte    { return v.b }

// Bytes serializes the value big-endian, length == 2*SizeWords(Type()).
func (v DataValue) Bytes() []byte {
	buf := make([]byte, v.typ.sizeBytes())
	switch v.typ {
	case U16:
		binary.BigEndian.PutUint16(buf, v.u16)
	case U32:
		binary.BigEndian.PutUint32(buf, v.u32)
	case I32:
		binary.BigEndian.PutUint32(buf, uint32(v.i32))
	case F32:
		binary.BigEndian.PutUint32(buf, math.Float32bits(v.f32))
	case U64:
		binary.BigEndian.PutUint64(buf, v.u64)
	case Byte:
		buf[0] = v.b
	}
	return buf
}

// DecodeDataValue decodes bytes into a DataValue of the given type. The
// slice must be exactly 2*SizeWords(dt) bytes long.
func DecodeDataValue(dt DataType, b []byte) (DataValue, error) {
	if len(b) != dt.sizeBytes() {
		return DataValue{}, ErrInvalidData(ReasonDecodingError)
	}
	switch dt {
	case U16:
		return ValueU16(binary.BigEndian.Uint16(b)), nil
	case U32:
		return ValueU32(binary.BigEndian.Uint32(b)), nil
	case I32:
		return ValueI32(int32(binary.BigEndian.Uint32(b))), nil
	case F32:
		return ValueF32(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case U64:
		return ValueU64(binary.BigEndian.Uint64(b)), nil
	case Byte:
		return ValueByte(b[0]), nil
	}
	return DataValue{}, ErrInvalidData(ReasonDecodingError)
}

// Floating returns the deterministic default value a register of this type
// reads back as before it has ever been written on the emulated transport.
func Floating(dt DataType) DataValue {
	switch dt {
	case U16:
		return ValueU16(0)
	case U32:
		return ValueU32(0)
	case I32:
		return ValueI32(0)
	case F32:
		return ValueF32(0)
	case U64:
		return ValueU64(0)
	case Byte:
		return ValueByte(0)
	}
	return ValueU16(0)
}
