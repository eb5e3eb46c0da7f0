package ordersproto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype negotiated with the orders service.
const CodecName = "json"

// Codec encodes messages as JSON over the gRPC transport.
type Codec struct{}

var _ encoding.Codec = Codec{}

// Marshal encodes v.
func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes data into v.
func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns CodecName.
func (Codec) Name() string { return CodecName }
