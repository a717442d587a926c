package tracker

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// tokenPayload is the tracker's token format. Callers treat the encoded
// bytes as opaque; only this package reads or writes them.
type tokenPayload struct {
	RecordID string         `cbor:"record_id"`
	Device   uint64         `cbor:"device"`
	Inode    uint64         `cbor:"inode"`
	Path     string         `cbor:"path"`
	Scope    string         `cbor:"scope,omitempty"`
	Alias    bool           `cbor:"alias,omitempty"`
	Values   map[string]any `cbor:"values,omitempty"`
}

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): the same logical payload always produces
// identical bytes, so serialized bookmarks round-trip byte-identically.
var encMode cbor.EncMode

// decMode decodes standard CBOR, ignoring unknown fields for forward
// compatibility and mapping any-typed values to map[string]any.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("tracker: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("tracker: CBOR decoder initialization failed: " + err.Error())
	}
}

// marshalToken encodes a payload to token bytes.
func marshalToken(p tokenPayload) ([]byte, error) {
	data, err := encMode.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding token: %w", err)
	}
	return data, nil
}

// unmarshalToken decodes token bytes, rejecting anything that is not a
// tracker token.
func unmarshalToken(data []byte) (tokenPayload, error) {
	var p tokenPayload
	if err := decMode.Unmarshal(data, &p); err != nil {
		return tokenPayload{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if p.RecordID == "" || p.Path == "" {
		return tokenPayload{}, fmt.Errorf("%w: missing record id or path", ErrBadToken)
	}
	return p, nil
}
