package jadxd

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// maxAnnotationDepth bounds the recursive annotation decode. Real programs
// stay in single digits; a payload deeper than this fails closed as a decode
// error instead of overflowing the stack.
const maxAnnotationDepth = 64

var errAnnotationDepth = errors.New("jadxd: annotation nesting exceeds depth limit")

// AnnotationValue is one annotation member value: a scalar, an ordered array
// of values, or a nested annotation. Type discriminates; exactly one of the
// three shapes is populated. Nesting depth is whatever the decompiled program
// contains, up to maxAnnotationDepth.
type AnnotationValue struct {
	Type       string            `json:"type"`
	Value      string            `json:"value,omitempty"`
	Values     []AnnotationValue `json:"values,omitempty"`
	Annotation *AnnotationInfo   `json:"annotation,omitempty"`
}

// AnnotationInfo is one annotation instance with its member values.
type AnnotationInfo struct {
	AnnotationClass string                     `json:"annotation_class"`
	Visibility      string                     `json:"visibility"`
	Values          map[string]AnnotationValue `json:"values"`
}

// UnmarshalJSON decodes the value tree with explicit depth accounting. The
// nested cases are walked manually so the ceiling applies to the whole tree,
// not per hop.
func (v *AnnotationValue) UnmarshalJSON(data []byte) error {
	return v.decodeAtDepth(data, 0)
}

// UnmarshalJSON decodes one annotation and its member value trees.
func (a *AnnotationInfo) UnmarshalJSON(data []byte) error {
	return a.decodeAtDepth(data, 0)
}

type rawAnnotationValue struct {
	Type       string            `json:"type"`
	Value      string            `json:"value"`
	Values     []json.RawMessage `json:"values"`
	Annotation json.RawMessage   `json:"annotation"`
}

type rawAnnotationInfo struct {
	AnnotationClass string                     `json:"annotation_class"`
	Visibility      string                     `json:"visibility"`
	Values          map[string]json.RawMessage `json:"values"`
}

func (v *AnnotationValue) decodeAtDepth(data []byte, depth int) error {
	if depth > maxAnnotationDepth {
		return errAnnotationDepth
	}
	var raw rawAnnotationValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == "" {
		return fmt.Errorf("missing required field %q", "type")
	}
	v.Type = raw.Type
	v.Value = raw.Value
	v.Values = nil
	v.Annotation = nil
	if raw.Values != nil {
		v.Values = make([]AnnotationValue, len(raw.Values))
		for i, item := range raw.Values {
			if err := v.Values[i].decodeAtDepth(item, depth+1); err != nil {
				return err
			}
		}
	}
	if len(raw.Annotation) > 0 && string(raw.Annotation) != "null" {
		nested := &AnnotationInfo{}
		if err := nested.decodeAtDepth(raw.Annotation, depth+1); err != nil {
			return err
		}
		v.Annotation = nested
	}
	return nil
}

func (a *AnnotationInfo) decodeAtDepth(data []byte, depth int) error {
	if depth > maxAnnotationDepth {
		return errAnnotationDepth
	}
	var raw rawAnnotationInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.AnnotationClass == "" {
		return fmt.Errorf("missing required field %q", "annotation_class")
	}
	if raw.Visibility == "" {
		return fmt.Errorf("missing required field %q", "visibility")
	}
	a.AnnotationClass = raw.AnnotationClass
	a.Visibility = raw.Visibility
	a.Values = make(map[string]AnnotationValue, len(raw.Values))
	for name, item := range raw.Values {
		var member AnnotationValue
		if err := member.decodeAtDepth(item, depth+1); err != nil {
			return err
		}
		a.Values[name] = member
	}
	return nil
}

// AnnotationResult lists annotations attached to one type, method or field.
// ParameterAnnotations is populated for methods only, one slot per parameter.
type AnnotationResult struct {
	ID                   string             `json:"id"`
	Kind                 string             `json:"kind"`
	Annotations          []AnnotationInfo   `json:"annotations"`
	ParameterAnnotations [][]AnnotationInfo `json:"parameter_annotations"`
	Provenance           Provenance         `json:"provenance"`
	Warnings             []string           `json:"warnings"`
}

func (r *AnnotationResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Annotations == nil {
		r.Annotations = []AnnotationInfo{}
	}
	if r.ParameterAnnotations == nil {
		r.ParameterAnnotations = [][]AnnotationInfo{}
	}
	if err := requireFields(map[string]string{
		"id":   r.ID,
		"kind": r.Kind,
	}); err != nil {
		return err
	}
	return r.Provenance.validate()
}
