package froggi

import (
	"net"
	"testing"

	"github.com/zphixon/froggi/request"
	"github.com/zphixon/froggi/response"
)

func TestSendRequestRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		req, err := request.FromBytes(conn)
		if err != nil {
			t.Errorf("server: reading request: %v", err)
			return
		}
		if req.Path() != "/hello" {
			t.Errorf("server: got path %q, want %q", req.Path(), "/hello")
		}

		item, err := response.NewItem("pic.jpg", []byte{1, 2, 3})
		if err != nil {
			t.Errorf("server: building item: %v", err)
			return
		}
		resp := response.New(`(* "hi")`, []response.Item{item})
		conn.Write(resp.ToBytes())
	}()

	resp, err := SendRequest(ln.Addr().String(), "/hello")
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if resp.Page() != `(* "hi")` {
		t.Errorf("got page %q, want %q", resp.Page(), `(* "hi")`)
	}
	if len(resp.Items()) != 1 || resp.Items()[0].Name != "pic.jpg" {
		t.Errorf("got items %+v, want one item named pic.jpg", resp.Items())
	}
}

func TestSendRequestConnectFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	if _, err := SendRequest(addr, "/x"); err == nil {
		t.Error("expected an error connecting to a closed listener")
	}
}
