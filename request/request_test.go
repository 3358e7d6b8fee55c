package request

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zphixon/froggi/protoerr"
)

func TestRootPathEncoding(t *testing.T) {
	req, err := New("/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := req.ToBytes()
	want := []byte{0x00, 0x01, 0x00, 0x2f}
	if !bytes.Equal(got, want) {
		t.Errorf("ToBytes() = %x, want %x", got, want)
	}

	back, err := FromBytes(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if back.Path() != "/" || back.Version() != 0 {
		t.Errorf("round trip = %q/%d, want \"/\"/0", back.Path(), back.Version())
	}
}

func TestRoundTripVariousPaths(t *testing.T) {
	paths := []string{"", "/", "/index.fml", "/a/b/c", strings.Repeat("x", 1000), "/naïve/café"}
	for _, p := range paths {
		req, err := New(p)
		if err != nil {
			t.Fatalf("New(%q): %v", p, err)
		}
		back, err := FromBytes(bytes.NewReader(req.ToBytes()))
		if err != nil {
			t.Fatalf("FromBytes round trip for %q: %v", p, err)
		}
		if back.Path() != p {
			t.Errorf("round trip path = %q, want %q", back.Path(), p)
		}
		if back.Version() != 0 {
			t.Errorf("round trip version = %d, want 0", back.Version())
		}
	}
}

func TestNewRejectsOverlongPath(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxPathLen+1))
	if err == nil {
		t.Fatal("expected error for overlong path")
	}
	pe, ok := err.(*protoerr.Error)
	if !ok || pe.Kind != protoerr.RequestFormat {
		t.Errorf("expected RequestFormat error, got %v", err)
	}
}

func TestNewRejectsInvalidUTF8(t *testing.T) {
	_, err := New(string([]byte{0xff, 0xfe}))
	if err == nil {
		t.Fatal("expected error for invalid utf-8 path")
	}
}

func TestFromBytesRejectsWrongVersion(t *testing.T) {
	buf := []byte{0x01, 0x01, 0x00, 0x2f}
	_, err := FromBytes(bytes.NewReader(buf))
	if err == nil {
		t.Fatal("expected error for non-zero version byte")
	}
	pe, ok := err.(*protoerr.Error)
	if !ok || pe.Kind != protoerr.RequestFormat {
		t.Errorf("expected RequestFormat error, got %v", err)
	}
}

func TestFromBytesRejectsTruncatedStream(t *testing.T) {
	buf := []byte{0x00, 0x05, 0x00, 'h', 'i'} // claims 5 bytes, only has 2
	_, err := FromBytes(bytes.NewReader(buf))
	if err == nil {
		t.Fatal("expected error for truncated path")
	}
}
