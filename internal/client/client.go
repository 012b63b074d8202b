// Package client implements the TCP client half of the kvs wire protocol:
// dial a server, send one request, read back exactly one response.
package client

import (
	"errors"
	"fmt"
	"net"

	"github.com/LuisBarroso37/kvs/internal/wire"
)

// ErrKeyNotFound is returned by Remove when the server reports the key has
// no live entry. Get reports a missing key as ok == false instead.
var ErrKeyNotFound = errors.New("key not found")

// RequestError wraps an Error(msg) response returned by the server.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s", e.Message)
}

// Client is a connection to one kvs-server, good for exactly one request at
// a time (it is not safe for concurrent use by multiple goroutines).
type Client struct {
	conn net.Conn
	enc  *wire.Encoder
	dec  *wire.Decoder
}

// Dial connects to addr and returns a Client ready to issue requests.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	return &Client{conn: conn, enc: wire.NewEncoder(conn), dec: wire.NewDecoder(conn)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Get retrieves the value stored under key.
func (c *Client) Get(key string) (string, bool, error) {
	resp, err := c.roundTrip(wire.GetRequest(key))
	if err != nil {
		return "", false, err
	}

	switch resp.Kind {
	case wire.KindValue:
		return resp.Value, true, nil
	case wire.KindKeyNotFound:
		return "", false, nil
	case wire.KindError:
		return "", false, &RequestError{Message: resp.Message}
	default:
		return "", false, fmt.Errorf("unexpected response kind %q", resp.Kind)
	}
}

// Set stores value under key.
func (c *Client) Set(key, value string) error {
	resp, err := c.roundTrip(wire.SetRequest(key, value))
	if err != nil {
		return err
	}
	return errorFromResponse(resp)
}

// Remove deletes key, returning ErrKeyNotFound if the server reports it was
// absent.
func (c *Client) Remove(key string) error {
	resp, err := c.roundTrip(wire.RemoveRequest(key))
	if err != nil {
		return err
	}
	return errorFromResponse(resp)
}

func errorFromResponse(resp wire.Response) error {
	switch resp.Kind {
	case wire.KindSuccess:
		return nil
	case wire.KindKeyNotFound:
		return ErrKeyNotFound
	case wire.KindError:
		return &RequestError{Message: resp.Message}
	default:
		return fmt.Errorf("unexpected response kind %q", resp.Kind)
	}
}

func (c *Client) roundTrip(req wire.Request) (wire.Response, error) {
	if err := c.enc.EncodeRequest(req); err != nil {
		return wire.Response{}, fmt.Errorf("sending request: %w", err)
	}
	resp, err := c.dec.DecodeResponse()
	if err != nil {
		return wire.Response{}, fmt.Errorf("reading response: %w", err)
	}
	return resp, nil
}
