package wire

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// ErrEmptyData is returned when a codec is asked to decode nothing.
var ErrEmptyData = errors.New("wire: empty data")

// Codec encodes and decodes wire records.
type Codec interface {
	// Name returns the codec name, e.g. "json".
	Name() string
	// Marshal encodes v.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into the value pointed to by v.
	Unmarshal(data []byte, v any) error
}

var (
	// JSON encodes records as JSON.
	JSON Codec = jsonCodec{}

	// MessagePack encodes records as MessagePack.
	MessagePack Codec = msgpackCodec{}

	// YAML encodes records as YAML.
	YAML Codec = yamlCodec{}

	// Protobuf encodes records as a serialized google.protobuf.Struct.
	Protobuf Codec = protobufCodec{}
)

// Codecs returns every built-in codec.
func Codecs() []Codec {
	return []Codec{JSON, MessagePack, YAML, Protobuf}
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to encode JSON: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire: failed to decode JSON: %w", err)
	}
	return nil
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to encode MessagePack: %w", err)
	}
	return data, nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire: failed to decode MessagePack: %w", err)
	}
	return nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to encode YAML: %w", err)
	}
	return data, nil
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire: failed to decode YAML: %w", err)
	}
	return nil
}

// protobufCodec goes through the JSON object model: records become a
// structpb.Struct, which is then serialized with proto.
type protobufCodec struct{}

func (protobufCodec) Name() string { return "protobuf" }

func (protobufCodec) Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to encode protobuf: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("wire: failed to encode protobuf: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to encode protobuf: %w", err)
	}
	data, err := proto.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to encode protobuf: %w", err)
	}
	return data, nil
}

func (protobufCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	st := &structpb.Struct{}
	if err := proto.Unmarshal(data, st); err != nil {
		return fmt.Errorf("wire: failed to decode protobuf: %w", err)
	}
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return fmt.Errorf("wire: failed to decode protobuf: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("wire: failed to decode protobuf: %w", err)
	}
	return nil
}
