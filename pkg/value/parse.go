package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input holds no value at all.
var ErrEmptyDocument = errors.New("empty document")

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DetectFormat reports JSON when data starts (after whitespace) with '{' or '[',
// and YAML otherwise.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Value, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSON, "":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ParseJSON decodes a JSON document, keeping object member order and repeated keys.
func ParseJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSON(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse json: trailing data after document")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &Value{kind: Object}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				member, err := decodeJSON(dec)
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				obj.members = append(obj.members, Member{Key: key, Value: member})
			}
			if _, err := dec.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return obj, nil
		case '[':
			arr := &Value{kind: Array}
			for dec.More() {
				item, err := decodeJSON(dec)
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				arr.items = append(arr.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// unexpectedEOF keeps a truncated document from looking like an empty one.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ParseYAML decodes a YAML document. Since YAML is a superset of JSON,
// JSON input is accepted too.
func ParseYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return nil, ErrEmptyDocument
	}
	d := &yamlDecoder{
		expanding: make(map[*yaml.Node]bool),
		budget:    max(minAliasBudget, aliasExpansionRatio*countYAML(&doc)),
	}
	v, err := d.decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return v, nil
}

// Alias expansion is bounded relative to the size of the source tree.
const (
	aliasExpansionRatio = 100
	minAliasBudget      = 10000
)

// ErrAliasExpansion is returned when anchors expand past the allowed size.
var ErrAliasExpansion = errors.New("alias expansion too large")

// yamlDecoder converts a yaml.Node tree, following aliases.
type yamlDecoder struct {
	expanding map[*yaml.Node]bool
	budget    int
}

// countYAML counts the nodes of the tree as written, without following aliases.
func countYAML(n *yaml.Node) int {
	total := 1
	for _, c := range n.Content {
		total += countYAML(c)
	}
	return total
}

func (d *yamlDecoder) decode(n *yaml.Node) (*Value, error) {
	d.budget--
	if d.budget < 0 {
		return nil, fmt.Errorf("line %d: %w", n.Line, ErrAliasExpansion)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		return d.decode(n.Content[0])
	case yaml.AliasNode:
		target := n.Alias
		if target == nil {
			return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
		}
		if d.expanding[target] {
			return nil, fmt.Errorf("line %d: anchor %q contains itself", n.Line, n.Value)
		}
		d.expanding[target] = true
		defer delete(d.expanding, target)
		return d.decode(target)
	case yaml.MappingNode:
		obj := &Value{kind: Object}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			member, err := d.decode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.members = append(obj.members, Member{Key: keyNode.Value, Value: member})
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := &Value{kind: Array}
		for _, c := range n.Content {
			item, err := d.decode(c)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, item)
		}
		return arr, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return NewNull(), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return NewBool(b), nil
		case "!!int", "!!float":
			return NewNumber(n.Value), nil
		default:
			return NewString(n.Value), nil
		}
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

// FromAny converts plain Go values (as produced by encoding/json, yaml.v3 or
// mapstructure) into a Value. Map keys are sorted so the result is deterministic.
func FromAny(in any) (*Value, error) {
	switch t := in.(type) {
	case nil:
		return NewNull(), nil
	case *Value:
		return t, nil
	case string:
		return NewString(t), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case int:
		return NewNumber(strconv.Itoa(t)), nil
	case int64:
		return NewNumber(strconv.FormatInt(t, 10)), nil
	case uint64:
		return NewNumber(strconv.FormatUint(t, 10)), nil
	case float64:
		return NewNumber(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case []string:
		return Strings(t...), nil
	case []any:
		arr := &Value{kind: Array, items: make([]*Value, 0, len(t))}
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.items = append(arr.items, v)
		}
		return arr, nil
	case map[string]string:
		generic := make(map[string]any, len(t))
		for k, s := range t {
			generic[k] = s
		}
		return FromAny(generic)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := &Value{kind: Object, members: make([]Member, 0, len(t))}
		for _, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj.members = append(obj.members, Member{Key: k, Value: v})
		}
		return obj, nil
	case map[any]any:
		generic := make(map[string]any, len(t))
		for k, item := range t {
			generic[fmt.Sprint(k)] = item
		}
		return FromAny(generic)
	default:
		return nil, fmt.Errorf("unsupported value type %T", in)
	}
}
