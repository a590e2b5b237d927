package slight

import (
	"fmt"
	"net"
	"sync"
)

// Client is a connection to a running Core. Requests are serialized.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
}

// Dial connects to the core socket at path.
func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", path, err)
	}
	return &Client{conn: conn}, nil
}

// Send sends req with a fresh id when it has none and waits for the response.
func (cl *Client) Send(req map[string]any) (map[string]any, error) {
	if _, ok := req["id"]; !ok {
		req["id"] = NextID()
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if err := WriteMsg(cl.conn, req); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	resp, err := ReadMsg(cl.conn)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return resp, nil
}

func (cl *Client) Close() error {
	return cl.conn.Close()
}
