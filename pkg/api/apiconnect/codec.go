// Package apiconnect wires the api messages to Connect handlers and clients
// for the biblioteca.v1 services.
package apiconnect

import (
	"net/http"
	"strings"

	"connectrpc.com/connect"
	jsoniter "github.com/json-iterator/go"
)

// codecName replaces Connect's built-in protojson codec, which only accepts
// protobuf messages.
const codecName = "json"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonCodec encodes plain Go structs with json-iterator.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return jsonAPI.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return jsonAPI.Unmarshal(data, msg)
}

// WithJSON makes a handler or client speak the JSON codec used by every
// biblioteca.v1 service. Constructors in this package apply it already.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}

// procedureMux routes a service's procedures by exact path.
type procedureMux map[string]http.Handler

func (m procedureMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func servicePath(service string) string {
	return "/" + service + "/"
}

func procedureURL(baseURL, procedure string) string {
	return strings.TrimRight(baseURL, "/") + procedure
}
