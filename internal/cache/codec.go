package cache

import (
	"encoding/json"

	apperrors "tiercache/internal/common/errors"
)

// Codec converts cache values to and from the bytes stored by the remote and
// file tiers.
type Codec[V any] interface {
	Marshal(value V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSONCodec stores values as JSON text.
type JSONCodec[V any] struct{}

// Marshal implements Codec.
func (JSONCodec[V]) Marshal(value V) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, apperrors.SerializationError("cannot encode value as JSON", err)
	}
	return data, nil
}

// Unmarshal implements Codec.
func (JSONCodec[V]) Unmarshal(data []byte) (V, error) {
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		var zero V
		return zero, apperrors.SerializationError("cannot decode JSON value", err)
	}
	return value, nil
}
