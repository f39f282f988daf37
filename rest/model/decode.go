package model

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

var timeType = reflect.TypeOf(time.Time{})

// epochMillisToTimeHook reads a number bound for a time as milliseconds
// since the Unix epoch.
func epochMillisToTimeHook(_ reflect.Type, t reflect.Type, data any) (any, error) {
	if t != timeType {
		return data, nil
	}

	switch v := data.(type) {
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return nil, errors.Wrapf(err, "reading '%s' as epoch milliseconds", v)
		}
		return time.UnixMilli(ms).UTC(), nil
	default:
		return data, nil
	}
}

// decodeDocument copies a decoded JSON object onto out. Values are coerced
// the way the store would coerce them: numbers and booleans become
// strings where a string is expected, and RFC 3339 strings or epoch
// milliseconds become times. Keys match tags exactly, so a key that
// differs from a typed field only by case is kept as an extra field.
func decodeDocument(in map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		MatchName:        func(mapKey, fieldName string) bool { return mapKey == fieldName },
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			epochMillisToTimeHook,
		),
	})
	if err != nil {
		return errors.Wrap(err, "constructing decoder")
	}

	return errors.Wrap(decoder.Decode(in), "decoding document")
}

// marshalWithExtra renders v as a JSON object and adds every extra field
// whose key v does not already define.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(extra) == 0 {
		return out, nil
	}

	fields := map[string]json.RawMessage{}
	if err = json.Unmarshal(out, &fields); err != nil {
		return nil, errors.Wrap(err, "reading typed fields")
	}
	for k, val := range extra {
		if _, ok := fields[k]; ok {
			continue
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, errors.Wrapf(err, "marshalling field '%s'", k)
		}
		fields[k] = raw
	}

	return json.Marshal(fields)
}
