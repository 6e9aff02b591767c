package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfigConstants reads inline configuration constants. Both a flat
// form and a table-per-namespace form are accepted:
//
//	CONFIG::DEBUG: true
//
//	CONFIG:
//	  DEBUG: true
//
// Values are source snippets keyed by "NS::NAME". Strings are taken
// verbatim; other scalars are formatted.
func LoadConfigConstants(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config constants")
	}

	raw := map[string]interface{}{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(err, "parse %v", path)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(err, "parse %v", path)
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", ext)
	}

	return flattenConstants(raw)
}

func flattenConstants(raw map[string]interface{}) (map[string]string, error) {
	result := map[string]string{}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := raw[key].(type) {
		case map[string]interface{}:
			for name, v := range value {
				if err := addConstant(result, key+"::"+name, v); err != nil {
					return nil, err
				}
			}
		default:
			if !strings.Contains(key, "::") {
				return nil, errors.Errorf("config constant %q is not namespace-qualified", key)
			}
			if err := addConstant(result, key, value); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func addConstant(result map[string]string, key string, value interface{}) error {
	switch value := value.(type) {
	case string:
		result[key] = value
	case bool, int, int64, uint64, float64:
		result[key] = fmt.Sprint(value)
	default:
		return errors.Errorf("config constant %q has unsupported value %v", key, value)
	}
	return nil
}
