// Package parameters handles generic configuration Params, a map[string]string that the
// user can set with a string like "board_size=35,queen_to_move".
package parameters

import (
	"github.com/pkg/errors"
	"slices"
	"strconv"
	"strings"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString create params from user's configuration string: a comma-separated
// list of "key=value" or "key" entries. Spaces around keys and values are trimmed.
//
// See GetParamOr and PopParamOr to parse values from this map.
func NewFromConfigString(config string) (Params, error) {
	params := make(Params)
	if strings.TrimSpace(config) == "" {
		return params, nil
	}
	for _, part := range strings.Split(config, ",") {
		key, value, _ := strings.Cut(part, "=") // Only the first '=' splits, values may hold more.
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, errors.Errorf("empty key in configuration %q", config)
		}
		if _, found := params[key]; found {
			return nil, errors.Errorf("key %q given more than once in configuration %q", key, config)
		}
		params[key] = strings.TrimSpace(value)
	}
	return params, nil
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T interface {
	bool | int | string
}](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T interface {
	bool | int | string
}](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	var parsed any
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		i, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		parsed = i
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			parsed = true
		case "false", "0":
			parsed = false
		default:
			return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
		}
	}
	return parsed.(T), nil
}

// CheckEmpty returns an error listing the keys still in params. Use it after popping every
// known parameter, to report typos in the configuration.
func (params Params) CheckEmpty() error {
	if len(params) == 0 {
		return nil
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return errors.Errorf("unknown configuration parameter(s) %q", keys)
}
