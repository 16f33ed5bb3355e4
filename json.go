package goswitch

import (
	"bytes"
	"errors"

	j "github.com/goccy/go-json"
)

// wire shape: {"ok": <value>} or {"error": <payload>}
type resultWire struct {
	Ok    j.RawMessage `json:"ok,omitempty"`
	Error j.RawMessage `json:"error,omitempty"`
}

// MarshalJSON encodes r as {"ok": value} or {"error": payload}.
func (r Result[T, E]) MarshalJSON() ([]byte, error) {
	if r.ok {
		v, err := j.Marshal(r.value)
		if err != nil {
			return nil, err
		}
		return j.Marshal(resultWire{Ok: v})
	}
	e, err := j.Marshal(r.err)
	if err != nil {
		return nil, err
	}
	return j.Marshal(resultWire{Error: e})
}

// UnmarshalJSON decodes the shape written by MarshalJSON. Exactly one of the
// two keys must be present.
func (r *Result[T, E]) UnmarshalJSON(data []byte) error {
	var w resultWire
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return err
	}
	switch {
	case w.Ok != nil && w.Error != nil:
		return errors.New("goswitch: result has both ok and error")
	case w.Ok != nil:
		var v T
		if err := j.Unmarshal(w.Ok, &v); err != nil {
			return err
		}
		*r = Ok[T, E](v)
	case w.Error != nil:
		var e E
		if err := j.Unmarshal(w.Error, &e); err != nil {
			return err
		}
		*r = Error[T](e)
	default:
		return errors.New("goswitch: result has neither ok nor error")
	}
	return nil
}
