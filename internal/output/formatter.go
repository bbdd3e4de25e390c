// Package output renders command results in machine-friendly formats.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formats accepted by NewFormatter. "table" is drawn by the caller as a
// themed panel; the rest are produced here.
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	Format(data any) string
}

// ValidFormat reports whether format is one of the supported names.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatTable, FormatPlain, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// NewFormatter returns a Formatter for the given format string.
// Unknown formats are an error so typos do not silently change output.
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatPlain, FormatTable:
		return &PlainFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table, plain, json or yaml)", format)
}

// PlainFormatter formats data as aligned text columns using tabwriter.
// Column headers come from the json tag of each field.
type PlainFormatter struct{}

func (f *PlainFormatter) Format(data any) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Invalid:
		// nil, or a nil pointer
		return "No menus yet.\n"
	case reflect.Slice:
		if v.Len() == 0 {
			return "No menus yet.\n"
		}
		elem := v.Index(0)
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			break
		}
		fmt.Fprintln(w, strings.Join(headers(elem.Type()), "\t"))
		for i := 0; i < v.Len(); i++ {
			row := v.Index(i)
			if row.Kind() == reflect.Ptr {
				row = row.Elem()
			}
			fmt.Fprintln(w, strings.Join(cells(row), "\t"))
		}
	case reflect.Struct:
		hs := headers(v.Type())
		for i, c := range cells(v) {
			fmt.Fprintf(w, "%s:\t%s\n", hs[i], c)
		}
	default:
		fmt.Fprintln(w, data)
	}

	w.Flush()
	return buf.String()
}

func headers(t reflect.Type) []string {
	out := make([]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Name
		if tag, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		out[i] = strings.ToUpper(name)
	}
	return out
}

func cells(v reflect.Value) []string {
	out := make([]string, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		out[i] = fmt.Sprintf("%v", v.Field(i).Interface())
	}
	return out
}

// JSONFormatter formats data as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("error formatting JSON: %v\n", err)
	}
	return string(b) + "\n"
}

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any) string {
	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("error formatting YAML: %v\n", err)
	}
	return string(b)
}
