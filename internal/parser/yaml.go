package parser

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
)

// ParseYAML converts a single YAML document into an IntermediateRepresentation.
//
// Mappings become models.OrderedObject so member order and non-string keys
// survive. An alias resolves to the very value produced for its anchor, which
// keeps shared references shared and turns a self-referencing anchor into a
// real cycle.
func ParseYAML(reader io.Reader) (models.IntermediateRepresentation, error) {
	decoder := yaml.NewDecoder(reader)

	var doc yaml.Node
	if err := decoder.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.IntermediateRepresentation{}, errors.NewParsingError(
			fmt.Sprintf("YAML syntax error: %v", err),
			errors.ErrInvalidYAML,
		)
	}

	var next yaml.Node
	if err := decoder.Decode(&next); err == nil {
		return models.IntermediateRepresentation{}, errors.NewParsingError("multiple YAML documents found", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.IntermediateRepresentation{}, errors.NewParsingError("invalid trailing data after first YAML document", errors.ErrInvalidYAML)
	}

	conv := &yamlConverter{memo: make(map[*yaml.Node]models.JSONValue)}
	root, err := conv.convert(&doc)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewParsingError("failed to convert YAML document", err)
	}
	return newIR(root, FormatYAML), nil
}

// ParseYAMLString parses YAML from a string
func ParseYAMLString(yamlString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(yamlString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return ParseYAML(strings.NewReader(yamlString))
}

type yamlConverter struct {
	// memo maps composite nodes to the value built for them
	memo map[*yaml.Node]models.JSONValue
}

func (c *yamlConverter) convert(n *yaml.Node) (models.JSONValue, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: alias %q has no anchor", n.Line, n.Value)
		}
		return c.convert(n.Alias)
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case yaml.SequenceNode:
		if v, ok := c.memo[n]; ok {
			return v, nil
		}
		out := make(models.JSONArray, len(n.Content))
		c.memo[n] = out
		for i, child := range n.Content {
			v, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		if v, ok := c.memo[n]; ok {
			return v, nil
		}
		out := make(models.OrderedObject, len(n.Content)/2)
		c.memo[n] = out
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := c.convert(n.Content[i])
			if err != nil {
				return nil, err
			}
			value, err := c.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[i/2] = models.Member{Key: key, Value: value}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}
