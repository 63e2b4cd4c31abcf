package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeRulesDocument reads the legacy JSON rule document. Both keys are
// optional; absent keys keep the current values. The "replace" object is read
// token by token so its key order becomes the replacement order.
func decodeRulesDocument(r io.Reader, rules *Rules) error {
	var doc struct {
		Remove  *[]string       `json:"remove"`
		Replace json.RawMessage `json:"replace"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode json rules: %w", err)
	}
	if doc.Remove != nil {
		rules.Remove = append([]string(nil), (*doc.Remove)...)
	}
	if len(doc.Replace) == 0 || string(bytes.TrimSpace(doc.Replace)) == "null" {
		return nil
	}
	pairs, err := orderedReplacements(doc.Replace)
	if err != nil {
		return err
	}
	rules.Replace = pairs
	return nil
}

func orderedReplacements(raw json.RawMessage) ([]Replacement, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode replace: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("replace must be an object mapping strings to strings")
	}
	pairs := []Replacement{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode replace key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("replace key %v is not a string", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("replace[%q]: %w", key, err)
		}
		pairs = append(pairs, Replacement{From: key, To: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode replace: %w", err)
	}
	return pairs, nil
}
