package curve

import "gopkg.in/yaml.v3"

// Spec is the configuration form of a curve: either a preset name
//
//	curve: ease_out_back
//
// or explicit keys
//
//	curve:
//	  keys:
//	    - {time: 0, value: 0, out: 0}
//	    - {time: 1, value: 1, in: 0}
type Spec struct {
	Name string
	Keys []Key
}

type keysForm struct {
	Keys []Key `yaml:"keys"`
}

func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Name = node.Value
		s.Keys = nil
		return nil
	}
	var raw keysForm
	if err := node.Decode(&raw); err != nil {
		return err
	}
	s.Name = ""
	s.Keys = raw.Keys
	return nil
}

func (s Spec) MarshalYAML() (interface{}, error) {
	if len(s.Keys) > 0 {
		return keysForm{Keys: s.Keys}, nil
	}
	return s.Name, nil
}

func (s Spec) IsZero() bool {
	return s.Name == "" && len(s.Keys) == 0
}

// Curve resolves the spec. A zero Spec resolves to nil so callers can fall
// back to their own default.
func (s Spec) Curve() (Curve, error) {
	if len(s.Keys) > 0 {
		return NewKeyframed(s.Keys...), nil
	}
	if s.Name == "" {
		return nil, nil
	}
	return Lookup(s.Name)
}
