// Package formats serializes record snapshots for the storage backends.
// Every dump is prefixed with a single format byte so that backends can load
// snapshots regardless of the format they were written with.
package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Serialization formats. AUTO selects the default format when dumping.
const (
	AUTO    uint8 = 0
	JSON    uint8 = 'J'
	CBOR    uint8 = 'C'
	MsgPack uint8 = 'M'
)

// Errors.
var (
	ErrNoData        = errors.New("formats: no data to load")
	ErrUnknownFormat = errors.New("formats: unknown format")
)

// Dump serializes the given value with the requested format and prefixes the
// format byte.
func Dump(t interface{}, format uint8) ([]byte, error) {
	if format == AUTO {
		format = JSON
	}

	var data []byte
	var err error
	switch format {
	case JSON:
		data, err = json.Marshal(t)
	case CBOR:
		data, err = cbor.Marshal(t)
	case MsgPack:
		data, err = msgpack.Marshal(t)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return append([]byte{format}, data...), nil
}

// Load deserializes data dumped by Dump into t, honoring the format byte.
func Load(data []byte, t interface{}) error {
	if len(data) < 2 {
		return ErrNoData
	}

	switch data[0] {
	case JSON:
		return json.Unmarshal(data[1:], t)
	case CBOR:
		return cbor.Unmarshal(data[1:], t)
	case MsgPack:
		return msgpack.Unmarshal(data[1:], t)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, data[0])
	}
}

// Parse returns the format identified by the given name.
func Parse(name string) (uint8, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return AUTO, nil
	case "json":
		return JSON, nil
	case "cbor":
		return CBOR, nil
	case "msgpack":
		return MsgPack, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
