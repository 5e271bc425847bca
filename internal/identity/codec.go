package identity

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content subtype the identity channel negotiates.
const codecName = "json"

// jsonCodec marshals identity messages as JSON frames on the wire.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
