package response

import (
	"bytes"
	"testing"

	"github.com/zphixon/froggi/protoerr"
)

func TestEmptyResponseEncoding(t *testing.T) {
	r := New("", nil)
	got := r.ToBytes()
	want := []byte{0x00, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("ToBytes() = %x, want %x", got, want)
	}

	back, err := FromBytes(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if back.Page() != "" || len(back.Items()) != 0 {
		t.Errorf("round trip = %q/%v, want empty", back.Page(), back.Items())
	}
}

func TestRoundTripWithItems(t *testing.T) {
	item1, err := NewItem("header.jpg", []byte{0xff, 0xd8, 0xff, 0x00})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	item2, err := NewItem("", []byte{})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}

	r := New(`(* "hello world")`, []Item{item1, item2})
	back, err := FromBytes(bytes.NewReader(r.ToBytes()))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	if back.Page() != r.Page() {
		t.Errorf("page = %q, want %q", back.Page(), r.Page())
	}
	if len(back.Items()) != 2 {
		t.Fatalf("got %d items, want 2", len(back.Items()))
	}
	if back.Items()[0].Name != "header.jpg" || !bytes.Equal(back.Items()[0].Payload, item1.Payload) {
		t.Errorf("item 0 = %+v, want %+v", back.Items()[0], item1)
	}
	if back.Items()[1].Name != "" || len(back.Items()[1].Payload) != 0 {
		t.Errorf("item 1 = %+v, want empty", back.Items()[1])
	}
}

func TestItemOrderPreserved(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	items := make([]Item, len(names))
	for i, n := range names {
		it, err := NewItem(n, []byte{byte(i)})
		if err != nil {
			t.Fatal(err)
		}
		items[i] = it
	}
	r := New("page", items)
	back, err := FromBytes(bytes.NewReader(r.ToBytes()))
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range names {
		if back.Items()[i].Name != n {
			t.Errorf("item %d name = %q, want %q", i, back.Items()[i].Name, n)
		}
	}
}

func TestFromBytesRejectsWrongVersion(t *testing.T) {
	r := New("", nil)
	buf := r.ToBytes()
	buf[0] = 1
	_, err := FromBytes(bytes.NewReader(buf))
	if err == nil {
		t.Fatal("expected error for non-zero version")
	}
	pe, ok := err.(*protoerr.Error)
	if !ok || pe.Kind != protoerr.RequestFormat {
		t.Errorf("expected RequestFormat error, got %v", err)
	}
}

func TestFromBytesRejectsTruncation(t *testing.T) {
	item, _ := NewItem("x", []byte("payload"))
	r := New("some page text", []Item{item})
	buf := r.ToBytes()

	// truncate by one byte: total_length still claims more than is present
	truncated := buf[:len(buf)-1]
	_, err := FromBytes(bytes.NewReader(truncated))
	if err == nil {
		t.Fatal("expected error for truncated response")
	}
}

func TestFromBytesRejectsBadLengthSum(t *testing.T) {
	r := New("abcd", nil)
	buf := r.ToBytes()
	// corrupt total_length to not match the real encoded size
	buf[1] = 0xff
	_, err := FromBytes(bytes.NewReader(buf))
	if err == nil {
		t.Fatal("expected error for mismatched total_length")
	}
}

func TestNewItemRejectsOverlongName(t *testing.T) {
	_, err := NewItem(string(make([]byte, MaxNameLen+1)), nil)
	if err == nil {
		t.Fatal("expected error for overlong item name")
	}
}
