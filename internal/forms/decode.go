package forms

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/model"
)

type decoder struct {
	one  func(*yaml.Decoder) (model.Record, error)
	many func(*yaml.Decoder) ([]model.Record, error)
	// accepts reports whether a payload is a record of this kind.
	accepts func(model.Record) bool
}

func decoderFor[T model.Record]() decoder {
	return decoder{
		accepts: func(r model.Record) bool {
			switch r.(type) {
			case T:
				return true
			}
			return false
		},
		one: func(d *yaml.Decoder) (model.Record, error) {
			var v T
			if err := d.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		},
		many: func(d *yaml.Decoder) ([]model.Record, error) {
			var vs []T
			if err := d.Decode(&vs); err != nil {
				return nil, err
			}
			out := make([]model.Record, len(vs))
			for i, v := range vs {
				out[i] = v
			}
			return out, nil
		},
	}
}

var kinds = map[string]decoder{
	"contact":  decoderFor[model.Contact](),
	"deal":     decoderFor[model.Deal](),
	"campaign": decoderFor[model.Campaign](),
	"partner":  decoderFor[model.Partner](),
	"ticket":   decoderFor[model.Ticket](),
}

// Kinds lists the record kinds a form can submit.
func Kinds() []string {
	return slices.Sorted(maps.Keys(kinds))
}

// Decode parses a single YAML (or JSON) record of kind.
func Decode(kind string, data []byte) (model.Record, error) {
	dec, d, err := newDecoder(kind, data)
	if err != nil {
		return nil, err
	}
	r, err := dec.one(d)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty %s document", common.ErrInvalidPayload, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidPayload, err)
	}
	return r, nil
}

// DecodeBatch parses a YAML list of records of kind.
func DecodeBatch(kind string, data []byte) ([]model.Record, error) {
	dec, d, err := newDecoder(kind, data)
	if err != nil {
		return nil, err
	}
	rs, err := dec.many(d)
	if errors.Is(err, io.EOF) {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidPayload, err)
	}
	return rs, nil
}

func newDecoder(kind string, data []byte) (decoder, *yaml.Decoder, error) {
	dec, ok := kinds[kind]
	if !ok {
		return decoder{}, nil, fmt.Errorf("%w: %q", common.ErrUnknownKind, kind)
	}
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	return dec, d, nil
}
