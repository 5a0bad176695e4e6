// Package api defines the SplitBetter RPC messages.
//
// Messages are plain Go structs exchanged as JSON over the Connect protocol.
// Amounts are decimal strings so no precision is lost in transit.
package api

import (
	"encoding/json"
)

// CodecName is the Connect codec name; requests use Content-Type application/json.
const CodecName = "json"

// JSONCodec is a connect.Codec for the plain structs in this package.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
