// Package params defines OutputParams, the serializable description of a
// generated track, and the seed vectors that drive generation.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// SeedLength is the size of the latent vector sent to the decoder.
const SeedLength = 100

// VariantScale scales the standard-normal perturbation applied by Variant.
const VariantScale = 0.5

// Known JSON keys. Anything else is kept in OutputParams.Extra.
const (
	keyTitle     = "title"
	keyInputList = "inputList"
	keyBPM       = "bpm"
	keyNotes     = "notes"
)

// ErrNoTitle is returned when an OutputParams entry has an empty title.
var ErrNoTitle = errors.New("params: missing title")

// OutputParams describes one generated track. Title is its identity.
// Values are treated as immutable once produced; use Clone before editing.
type OutputParams struct {
	Title     string
	InputList []float64
	BPM       float64 // 0 means producer default
	Notes     []int   // optional scale degrees, derived from InputList when empty

	// Extra holds decoder fields this program does not interpret,
	// so they survive a storage or share-link round trip untouched.
	Extra map[string]json.RawMessage
}

// Clone returns a deep copy.
func (p OutputParams) Clone() OutputParams {
	c := p
	c.InputList = slices.Clone(p.InputList)
	c.Notes = slices.Clone(p.Notes)
	if p.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = slices.Clone(v)
		}
	}
	return c
}

// MarshalJSON writes the known fields alongside any preserved extras.
func (p OutputParams) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+4)
	for k, v := range p.Extra {
		out[k] = v
	}
	out[keyTitle] = p.Title
	inputList := p.InputList
	if inputList == nil {
		inputList = []float64{}
	}
	out[keyInputList] = inputList
	if p.BPM != 0 {
		out[keyBPM] = p.BPM
	}
	if len(p.Notes) > 0 {
		out[keyNotes] = p.Notes
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the known fields and keeps the rest in Extra.
func (p *OutputParams) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("params: expected object")
	}

	var out OutputParams
	if v, ok := raw[keyTitle]; ok {
		if err := json.Unmarshal(v, &out.Title); err != nil {
			return fmt.Errorf("params: title: %w", err)
		}
		delete(raw, keyTitle)
	}
	if v, ok := raw[keyInputList]; ok {
		if err := json.Unmarshal(v, &out.InputList); err != nil {
			return fmt.Errorf("params: inputList: %w", err)
		}
		delete(raw, keyInputList)
	}
	if v, ok := raw[keyBPM]; ok {
		if err := json.Unmarshal(v, &out.BPM); err != nil {
			return fmt.Errorf("params: bpm: %w", err)
		}
		delete(raw, keyBPM)
	}
	if v, ok := raw[keyNotes]; ok {
		if err := json.Unmarshal(v, &out.Notes); err != nil {
			return fmt.Errorf("params: notes: %w", err)
		}
		delete(raw, keyNotes)
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	*p = out
	return nil
}

// ParseList parses a serialized array of OutputParams.
// Every entry must carry a non-empty title.
func ParseList(data []byte) ([]OutputParams, error) {
	var list []OutputParams
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse playlist: %w", err)
	}
	for i, p := range list {
		if p.Title == "" {
			return nil, fmt.Errorf("parse playlist: entry %d: %w", i, ErrNoTitle)
		}
	}
	return list, nil
}

// MarshalList serializes a list of OutputParams as a JSON array.
func MarshalList(list []OutputParams) ([]byte, error) {
	if list == nil {
		list = []OutputParams{}
	}
	return json.Marshal(list)
}

// Titles returns the titles of list in order.
func Titles(list []OutputParams) []string {
	titles := make([]string, len(list))
	for i, p := range list {
		titles[i] = p.Title
	}
	return titles
}

// ExtraKeys returns the sorted keys of Extra.
func (p OutputParams) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(p.Extra))
}
