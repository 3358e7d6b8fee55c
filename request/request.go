// Package request implements the framing of a froggi Request, the first
// half of the client/server exchange: a version byte, a 16-bit path
// length, and the path bytes. The layout and error discipline mirror
// github.com/intuitivelabs/httpsp's ParseFLine/PFLine split between a
// typed accessor and a byte-exact wire reader, generalized
// here to a one-shot (non-resumable) read since a froggi connection only
// ever carries a single request.
package request

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/zphixon/froggi/protoerr"
	"github.com/zphixon/froggi/wire"
)

// MaxPathLen is the largest path length representable in the 16-bit
// path-length field.
const MaxPathLen = 0xffff

// Request is a froggi request: the protocol version and the requested
// page path.
type Request struct {
	version byte
	path    string
}

// New builds a Request for path, failing with a RequestFormat error if the
// path is longer than MaxPathLen bytes or is not valid UTF-8.
func New(path string) (*Request, error) {
	if len(path) > MaxPathLen {
		return nil, protoerr.NewRequestFormat("path length <= 65535", "longer path").
			Withf("path is %d bytes", len(path))
	}
	if !utf8.ValidString(path) {
		return nil, protoerr.NewRequestFormat("utf-8 path", "invalid utf-8").
			With("request path is not valid utf-8")
	}
	return &Request{version: wire.Version, path: path}, nil
}

// Version returns the protocol version byte the request was built or
// parsed with.
func (r *Request) Version() byte { return r.version }

// Path returns the requested page path.
func (r *Request) Path() string { return r.path }

// ToBytes encodes the request as:
//
//	[version:1][path_len_lo:1][path_len_hi:1][path_bytes:path_len]
func (r *Request) ToBytes() []byte {
	out := make([]byte, 0, 3+len(r.path))
	out = append(out, r.version)
	out = append(out, wire.EncodeUint16LE(len(r.path))...)
	out = append(out, r.path...)
	return out
}

// FromBytes reads exactly one Request from rd. It reads exactly 3 +
// path_len bytes and consumes no trailing data.
func FromBytes(rd io.Reader) (*Request, error) {
	head := make([]byte, 3)
	if _, err := io.ReadFull(rd, head); err != nil {
		return nil, protoerr.NewIO(err).With("reading request header")
	}

	version := head[0]
	if version != wire.Version {
		return nil, protoerr.NewRequestFormat("version 0", strconv.Itoa(int(version)))
	}

	pathLen := wire.DecodeUint16LE(head[1:3])
	pathBytes := make([]byte, pathLen)
	if pathLen > 0 {
		if _, err := io.ReadFull(rd, pathBytes); err != nil {
			return nil, protoerr.NewIO(err).With("reading request path")
		}
	}

	if !utf8.Valid(pathBytes) {
		return nil, protoerr.NewEncoding().With("request path is not valid utf-8")
	}

	return &Request{version: version, path: string(pathBytes)}, nil
}
