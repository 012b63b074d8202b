// Package wire defines the request/response shapes exchanged between a
// kvs-client and a kvs-server over one TCP connection, and their
// self-delimiting JSON encoding.
//
// It reuses exactly the approach internal/record uses for the log codec —
// one independently parseable JSON object per message, read with a
// streaming json.Decoder — rather than inventing a second framing scheme
// for the wire protocol.
package wire

import (
	"encoding/json"
	"fmt"
	"io"
)

// RequestKind tags which operation a Request carries.
type RequestKind string

const (
	KindGet    RequestKind = "get"
	KindSet    RequestKind = "set"
	KindRemove RequestKind = "remove"
)

// Request is one client call: a key lookup, a write, or a deletion.
type Request struct {
	Kind  RequestKind `json:"kind"`
	Key   string      `json:"key"`
	Value string      `json:"value,omitempty"`
}

// GetRequest builds a Get(key) request.
func GetRequest(key string) Request { return Request{Kind: KindGet, Key: key} }

// SetRequest builds a Set(key, value) request.
func SetRequest(key, value string) Request { return Request{Kind: KindSet, Key: key, Value: value} }

// RemoveRequest builds a Remove(key) request.
func RemoveRequest(key string) Request { return Request{Kind: KindRemove, Key: key} }

// ResponseKind tags which shape a Response carries.
type ResponseKind string

const (
	KindValue       ResponseKind = "value"
	KindSuccess     ResponseKind = "success"
	KindKeyNotFound ResponseKind = "key_not_found"
	KindError       ResponseKind = "error"
)

// Response is the server's reply to exactly one Request.
type Response struct {
	Kind    ResponseKind `json:"kind"`
	Value   string       `json:"value,omitempty"`
	Message string       `json:"message,omitempty"`
}

// ValueResponse builds a successful Get response carrying value.
func ValueResponse(value string) Response { return Response{Kind: KindValue, Value: value} }

// SuccessResponse builds a successful Set/Remove response.
func SuccessResponse() Response { return Response{Kind: KindSuccess} }

// KeyNotFoundResponse builds the response for a Get or Remove of an absent key.
func KeyNotFoundResponse() Response { return Response{Kind: KindKeyNotFound} }

// ErrorResponse builds a response carrying a server-side failure message.
func ErrorResponse(message string) Response { return Response{Kind: KindError, Message: message} }

// Encoder writes a stream of self-delimiting JSON values to one connection.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder wraps w for writing Requests or Responses.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// EncodeRequest writes one Request.
func (e *Encoder) EncodeRequest(r Request) error {
	if err := e.enc.Encode(r); err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return nil
}

// EncodeResponse writes one Response.
func (e *Encoder) EncodeResponse(r Response) error {
	if err := e.enc.Encode(r); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}

// Decoder reads a stream of self-delimiting JSON values from one
// connection.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder wraps r for reading Requests or Responses.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// DecodeRequest reads the next Request. io.EOF is returned unwrapped when
// the peer has closed the connection at a message boundary.
func (d *Decoder) DecodeRequest() (Request, error) {
	var r Request
	if err := d.dec.Decode(&r); err != nil {
		return Request{}, err
	}
	return r, nil
}

// DecodeResponse reads the next Response.
func (d *Decoder) DecodeResponse() (Response, error) {
	var r Response
	if err := d.dec.Decode(&r); err != nil {
		return Response{}, err
	}
	return r, nil
}
