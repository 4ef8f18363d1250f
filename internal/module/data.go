// SPDX-License-Identifier: MPL-2.0

package module

import (
	"encoding/json"
	"fmt"

	"jssh-cli/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DataDecoder converts the raw content of a data file into JSON text, which
// the Engine then turns into a value.
type DataDecoder func(filename string, data []byte) ([]byte, error)

// defaultDecoders returns the built-in data formats keyed by extension.
// Only DataExtension takes part in extension inference; the others apply to
// specifiers that name the extension explicitly.
func defaultDecoders() map[string]DataDecoder {
	return map[string]DataDecoder{
		DataExtension: decodeJSON,
		".yaml":       decodeYAML,
		".yml":        decodeYAML,
		".toml":       decodeTOML,
		".cue":        decodeCUE,
	}
}

// decodeJSON passes JSON through untouched so the engine parses it with its
// own JSON semantics (key order included).
func decodeJSON(_ string, data []byte) ([]byte, error) {
	return data, nil
}

func decodeYAML(filename string, data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	out, err := json.Marshal(stringKeys(v))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return out, nil
}

// stringKeys rewrites YAML mappings with non-string keys (1: a, true: b)
// into string-keyed maps, as object keys are strings once parsed by the
// engine.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = stringKeys(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = stringKeys(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = stringKeys(e)
		}
		return t
	}
	return v
}

func decodeTOML(filename string, data []byte) ([]byte, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return out, nil
}

func decodeCUE(filename string, data []byte) ([]byte, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	v := cuecontext.New().CompileBytes(data, cue.Filename(filename))
	if v.Err() != nil {
		return nil, cueutil.FormatError(v.Err(), filename)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueutil.FormatError(err, filename)
	}

	out, err := v.MarshalJSON()
	if err != nil {
		return nil, cueutil.FormatError(err, filename)
	}
	return out, nil
}
