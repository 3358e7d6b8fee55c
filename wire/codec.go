// Package wire implements the primitive framing pieces shared by the
// request and response packages: the protocol version and the little
// endian byte codec for 16- and 32-bit lengths. It plays the role
// parse_types.go (PField, OffsT) plays for github.com/intuitivelabs/
// httpsp: small, dependency-free primitives that everything else in the
// wire layer builds on.
package wire

// Version is the single supported protocol version byte. Both sides of a
// froggi exchange must send this value; any other value is a fatal
// framing error.
const Version byte = 0

// EncodeUint16LE encodes n as 2 little-endian bytes. It panics if n does
// not fit in 16 bits; callers that accept untrusted sizes must range-check
// before calling this (see request.New).
func EncodeUint16LE(n int) []byte {
	if n < 0 || n > 0xffff {
		panic("wire: EncodeUint16LE: value out of range")
	}
	return []byte{byte(n), byte(n >> 8)}
}

// EncodeUint32LE encodes n as 4 little-endian bytes. It panics if n does
// not fit in 32 bits.
func EncodeUint32LE(n int64) []byte {
	if n < 0 || n > 0xffffffff {
		panic("wire: EncodeUint32LE: value out of range")
	}
	return []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
}

// PutUint16LE writes the little-endian encoding of n into the first 2
// bytes of buf, a lower-allocation alternative to EncodeUint16LE for
// callers building a frame into a preallocated buffer.
func PutUint16LE(buf []byte, n int) {
	_ = buf[1]
	if n < 0 || n > 0xffff {
		panic("wire: PutUint16LE: value out of range")
	}
	buf[0] = byte(n)
	buf[1] = byte(n >> 8)
}

// PutUint32LE writes the little-endian encoding of n into the first 4
// bytes of buf.
func PutUint32LE(buf []byte, n int64) {
	_ = buf[3]
	if n < 0 || n > 0xffffffff {
		panic("wire: PutUint32LE: value out of range")
	}
	buf[0] = byte(n)
	buf[1] = byte(n >> 8)
	buf[2] = byte(n >> 16)
	buf[3] = byte(n >> 24)
}

// DecodeUint16LE decodes exactly 2 little-endian bytes. It panics if b does
// not have length 2, mirroring the deserialize_bytes assertion discipline
// in original_source/library/src/lib.rs.
func DecodeUint16LE(b []byte) int {
	if len(b) != 2 {
		panic("wire: DecodeUint16LE: need exactly 2 bytes")
	}
	return int(b[0]) | int(b[1])<<8
}

// DecodeUint32LE decodes exactly 4 little-endian bytes.
func DecodeUint32LE(b []byte) int64 {
	if len(b) != 4 {
		panic("wire: DecodeUint32LE: need exactly 4 bytes")
	}
	return int64(b[0]) | int64(b[1])<<8 | int64(b[2])<<16 | int64(b[3])<<24
}
