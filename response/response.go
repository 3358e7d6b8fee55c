// Package response implements the framing of a froggi Response: a page of
// FML text plus zero or more named binary items.
// The item table / length-prefixed-payload layout is the wire-framing
// analogue of github.com/intuitivelabs/httpsp's HdrLst
// (parse_headers.go): a small fixed-size table of entries read up front,
// each pointing at variable-length data that follows.
package response

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/zphixon/froggi/protoerr"
	"github.com/zphixon/froggi/wire"
)

// MaxNameLen is the largest item name length representable in the 1-byte
// name-length field.
const MaxNameLen = 0xff

// MaxItemCount is the largest item count representable in the 16-bit
// item-count field.
const MaxItemCount = 0xffff

// Item is a single named binary blob embedded in a Response, e.g. an
// image referenced by a Blob page item.
type Item struct {
	Name    string
	Payload []byte
}

// NewItem builds an Item, failing with RequestFormat if name is longer
// than MaxNameLen bytes.
func NewItem(name string, payload []byte) (Item, error) {
	if len(name) > MaxNameLen {
		return Item{}, protoerr.NewRequestFormat("item name length <= 255", "longer name").
			Withf("item name is %d bytes", len(name))
	}
	return Item{Name: name, Payload: payload}, nil
}

// Response is a froggi response: a page of FML source text plus its
// embedded items, in table order.
type Response struct {
	version byte
	page    string
	items   []Item
}

// New builds a Response from page text and items. It does not validate
// item name lengths or the item count; construct items with NewItem to get
// the name-length check. ToBytes does not check name lengths either.
func New(page string, items []Item) *Response {
	return &Response{version: wire.Version, page: page, items: items}
}

// Version returns the protocol version byte.
func (r *Response) Version() byte { return r.version }

// Page returns the page FML source text.
func (r *Response) Page() string { return r.page }

// Items returns the response's items, in wire order.
func (r *Response) Items() []Item { return r.items }

// ToBytes encodes the response. The returned bytes round-trip
// bit-exactly through FromBytes.
func (r *Response) ToBytes() []byte {
	itemCount := len(r.items)

	tableLen := 0
	for _, it := range r.items {
		tableLen += 1 + len(it.Name) + 4
	}

	// total_length covers everything after itself: the item-count field,
	// the item table, the page-length field, the page, and the payloads.
	payloadsLen := 0
	for _, it := range r.items {
		payloadsLen += len(it.Payload)
	}
	totalLength := 2 + tableLen + 4 + len(r.page) + payloadsLen

	out := make([]byte, 0, 1+4+totalLength)
	out = append(out, r.version)
	out = append(out, wire.EncodeUint32LE(int64(totalLength))...)
	out = append(out, wire.EncodeUint16LE(itemCount)...)

	for _, it := range r.items {
		out = append(out, byte(len(it.Name)))
		out = append(out, it.Name...)
		out = append(out, wire.EncodeUint32LE(int64(len(it.Payload)))...)
	}

	out = append(out, wire.EncodeUint32LE(int64(len(r.page)))...)
	out = append(out, r.page...)

	for _, it := range r.items {
		out = append(out, it.Payload...)
	}

	return out
}

// FromBytes reads exactly one Response from rd, validating the version
// byte, declared-length consistency, and UTF-8 page/name text.
func FromBytes(rd io.Reader) (*Response, error) {
	head := make([]byte, 1+4+2)
	if _, err := io.ReadFull(rd, head); err != nil {
		return nil, protoerr.NewIO(err).With("reading response header")
	}

	version := head[0]
	if version != wire.Version {
		return nil, protoerr.NewRequestFormat("version 0", strconv.Itoa(int(version)))
	}

	totalLength := int(wire.DecodeUint32LE(head[1:5]))
	itemCount := wire.DecodeUint16LE(head[5:7])

	// total_length counts the item-count field, which head already holds.
	if totalLength < 2 {
		return nil, protoerr.NewRequestFormat("total_length >= 2", strconv.Itoa(totalLength))
	}
	rest := make([]byte, totalLength-2)
	if _, err := io.ReadFull(rd, rest); err != nil {
		return nil, protoerr.NewIO(err).With("reading response body")
	}

	type tableEntry struct {
		name       string
		payloadLen int
	}

	off := 0
	entries := make([]tableEntry, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		if off+1 > len(rest) {
			return nil, protoerr.NewRequestFormat("item table entry", "truncated item table")
		}
		nameLen := int(rest[off])
		off++
		if off+nameLen+4 > len(rest) {
			return nil, protoerr.NewRequestFormat("item table entry", "truncated item table")
		}
		nameBytes := rest[off : off+nameLen]
		if !utf8.Valid(nameBytes) {
			return nil, protoerr.NewEncoding().Withf("item %d name is not valid utf-8", i)
		}
		off += nameLen
		payloadLen := int(wire.DecodeUint32LE(rest[off : off+4]))
		off += 4
		entries = append(entries, tableEntry{name: string(nameBytes), payloadLen: payloadLen})
	}

	if off+4 > len(rest) {
		return nil, protoerr.NewRequestFormat("page length field", "truncated response")
	}
	pageLen := int(wire.DecodeUint32LE(rest[off : off+4]))
	off += 4

	if off+pageLen > len(rest) {
		return nil, protoerr.NewRequestFormat("page text", "truncated response")
	}
	pageBytes := rest[off : off+pageLen]
	if !utf8.Valid(pageBytes) {
		return nil, protoerr.NewEncoding().With("page text is not valid utf-8")
	}
	off += pageLen

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		if off+e.payloadLen > len(rest) {
			return nil, protoerr.NewRequestFormat("item payload", "truncated response")
		}
		payload := make([]byte, e.payloadLen)
		copy(payload, rest[off:off+e.payloadLen])
		off += e.payloadLen
		items = append(items, Item{Name: e.name, Payload: payload})
	}

	if off != len(rest) {
		return nil, protoerr.NewRequestFormat("declared lengths", "sum does not match total_length").
			Withf("consumed %d of %d declared bytes", off, len(rest))
	}

	return &Response{version: version, page: string(pageBytes), items: items}, nil
}
