package froggi

import (
	"fmt"
	"net"
	"time"

	"github.com/zphixon/froggi/request"
	"github.com/zphixon/froggi/response"
)

// DefaultPort is the TCP port a froggi server listens on unless configured
// otherwise.
const DefaultPort = 11121

// SendRequest dials addr, sends a Request for path, and returns the
// server's Response. Grounded on original_source/library/src/lib.rs's
// send_request: connect, write the request bytes, read back a response.
func SendRequest(addr, path string) (*response.Response, error) {
	req, err := request.New(path)
	if err != nil {
		return nil, err
	}

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(req.ToBytes()); err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	resp, err := response.FromBytes(conn)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return resp, nil
}
