package data

import (
	"errors"
	"fmt"
	"io"

	"github.com/mchmarny/scorekit/pkg/score"
	"gopkg.in/yaml.v3"
)

var errUnsupportedDocument = errors.New("expected a mapping of key: score or a list of {key, score}")

// Decode reads a score document. YAML and JSON are both accepted, either as
// a mapping (document order becomes insertion order) or as a sequence of
// {key, score} entries. An empty document yields an empty scorer.
func Decode(r io.Reader) (*score.Scorer[string], error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading scores: %w", err)
	}
	return DecodeBytes(b)
}

func DecodeBytes(b []byte) (*score.Scorer[string], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("error parsing scores: %w", err)
	}

	s := score.New[string]()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return s, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			var v score.Value
			if err := root.Content[i+1].Decode(&v); err != nil {
				return nil, fmt.Errorf("error decoding score for %q: %w", root.Content[i].Value, err)
			}
			s.Set(root.Content[i].Value, v)
		}
	case yaml.SequenceNode:
		for _, n := range root.Content {
			var it struct {
				Key   *string      `yaml:"key"`
				Score *score.Value `yaml:"score"`
			}
			if err := n.Decode(&it); err != nil {
				return nil, fmt.Errorf("error decoding item at line %d: %w", n.Line, err)
			}
			if it.Key == nil || it.Score == nil {
				return nil, fmt.Errorf("item at line %d requires key and score", n.Line)
			}
			s.Set(*it.Key, *it.Score)
		}
	default:
		return nil, fmt.Errorf("line %d: %w", root.Line, errUnsupportedDocument)
	}
	return s, nil
}

// Encode writes s as a YAML mapping in insertion order, which Decode reads
// back unchanged.
func Encode(w io.Writer, s *score.Scorer[string]) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for k, v := range s.All() {
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return fmt.Errorf("error encoding score for %q: %w", k, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}

	e := yaml.NewEncoder(w)
	defer e.Close()
	if err := e.Encode(root); err != nil {
		return fmt.Errorf("error writing scores: %w", err)
	}
	return nil
}
