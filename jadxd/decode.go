package jadxd

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// payload is implemented by every result type. validate runs after raw JSON
// decoding: it defaults absent optional collections to empty and rejects any
// payload missing a required field.
type payload interface {
	validate() error
}

// decodeResult turns one raw response body into a validated entity. Every
// failure surfaces as a decode-kind *Error carrying the operation name; a
// partially-populated object is never returned.
func decodeResult(op string, raw []byte, out payload) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return decodeFailure(op, err)
	}
	if err := out.validate(); err != nil {
		return decodeFailure(op, err)
	}
	return nil
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required field %q", name)
	}
	return nil
}

func requireFields(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := requireField(name, fields[name]); err != nil {
			return err
		}
	}
	return nil
}

func emptyIfNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
