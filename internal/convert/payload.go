// Package convert moves domain values across the gRPC boundary as
// google.protobuf.Struct payloads holding their JSON form.
package convert

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Empty is the payload of calls that carry no data.
type Empty struct{}

// ID addresses a single entity.
type ID struct {
	ID string `json:"id"`
}

// Update carries an entity id and a partial patch.
type Update[P any] struct {
	ID    string `json:"id"`
	Patch P      `json:"patch"`
}

// List wraps a collection; Items is never null on the wire.
type List[T any] struct {
	Items []T `json:"items"`
}

// ToStruct encodes v's JSON form into a Struct. v must encode to a JSON object.
func ToStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var s structpb.Struct
	if err := protojson.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return &s, nil
}

// FromStruct decodes a Struct into v. A nil Struct decodes as {}.
func FromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// ToList encodes a collection.
func ToList[T any](items []T) (*structpb.Struct, error) {
	if items == nil {
		items = []T{}
	}
	return ToStruct(List[T]{Items: items})
}

// FromList decodes a collection; the result is never nil.
func FromList[T any](s *structpb.Struct) ([]T, error) {
	var l List[T]
	if err := FromStruct(s, &l); err != nil {
		return nil, err
	}
	if l.Items == nil {
		l.Items = []T{}
	}
	return l.Items, nil
}
