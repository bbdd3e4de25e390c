package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID identifies a menu record. It is assigned by the store and is opaque to
// the client: it goes back on the wire with the JSON type it arrived with, so
// the number 7 and the string "7" are different ids.
//
// A plain ID("b7f0") is a string id. Number ids carry numTag in front of
// their literal; the byte can never appear in decoded JSON text, so the two
// kinds cannot collide. Use String for display.
type ID string

const numTag = "\xff"

// NumberID returns the id for the JSON number literal lit.
func NumberID(lit string) ID { return ID(numTag + lit) }

// IsNumber reports whether the id travels as a JSON number.
func (id ID) IsNumber() bool { return strings.HasPrefix(string(id), numTag) }

// String returns the id's text: the number literal or the string value.
func (id ID) String() string { return strings.TrimPrefix(string(id), numTag) }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNumber() {
		lit := id.String()
		if !isNumberLiteral(lit) {
			return nil, fmt.Errorf("id: bad number literal %q", lit)
		}
		return []byte(lit), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("id: empty value")
	}
	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		if s == "" {
			return errors.New("id: empty string")
		}
		*id = ID(s)
		return nil
	case isNumberLiteral(string(b)):
		*id = NumberID(string(b))
		return nil
	}
	return fmt.Errorf("id: want string or number, got %s", b)
}

func (id ID) MarshalYAML() (any, error) {
	if !id.IsNumber() {
		return string(id), nil
	}
	tag := "!!float"
	if _, err := strconv.ParseInt(id.String(), 10, 64); err == nil {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: id.String()}, nil
}

func (id *ID) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return errors.New("id: want a non-empty scalar")
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		*id = NumberID(n.Value)
	default:
		*id = ID(n.Value)
	}
	return nil
}

func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

// Record is one menu entry as the store reports it.
// Name is the only field the client ever sends; Likes is counted by the store.
type Record struct {
	ID    ID     `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Likes int    `json:"likes" yaml:"likes"`
}
