// File: encode.go
// Title: AST Serialization
// Description: JSON and YAML encodings of fragment trees. JSON objects carry
//              either a "value" (leaf) or a "children" array (group); YAML
//              renders each fragment as a single-key mapping so the output
//              reads like the text tree dump.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type jsonFragment struct {
	Name     string      `json:"name"`
	Value    *string     `json:"value,omitempty"`
	Children *[]Fragment `json:"children,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (f Fragment) MarshalJSON() ([]byte, error) {
	out := jsonFragment{Name: f.Name}
	if f.IsLeaf() {
		v := f.leaf
		out.Value = &v
	} else {
		children := f.children
		if children == nil {
			children = []Fragment{}
		}
		out.Children = &children
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Fragment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string          `json:"name"`
		Value    *string         `json:"value"`
		Children json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Value != nil && raw.Children != nil:
		return fmt.Errorf("fragment %q has both value and children", raw.Name)
	case raw.Value != nil:
		*f = NewLeaf(raw.Name, *raw.Value)
	case raw.Children != nil:
		var children []Fragment
		if err := json.Unmarshal(raw.Children, &children); err != nil {
			return err
		}
		*f = Fragment{Name: raw.Name, kind: KindGroup, children: children}
	default:
		return fmt.Errorf("fragment %q has neither value nor children", raw.Name)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (f Fragment) MarshalYAML() (interface{}, error) {
	return yamlNode(f), nil
}

func yamlNode(f Fragment) *yaml.Node {
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name}
	var value *yaml.Node
	if f.IsLeaf() {
		value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.leaf, Style: yaml.DoubleQuotedStyle}
	} else {
		value = yamlList(f.children)
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{key, value}}
}

func yamlList(fragments []Fragment) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, f := range fragments {
		seq.Content = append(seq.Content, yamlNode(f))
	}
	return seq
}

// ToJSON encodes a fragment list as an indented JSON array
func ToJSON(fragments []Fragment) ([]byte, error) {
	if fragments == nil {
		fragments = []Fragment{}
	}
	return json.MarshalIndent(fragments, "", "  ")
}

// FromJSON decodes a fragment list produced by ToJSON
func FromJSON(data []byte) ([]Fragment, error) {
	var fragments []Fragment
	if err := json.Unmarshal(data, &fragments); err != nil {
		return nil, err
	}
	return fragments, nil
}

// ToYAML encodes a fragment list as a YAML sequence of single-key mappings
func ToYAML(fragments []Fragment) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlList(fragments)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
