package http

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// BuildURL appends an already-encoded query string to a URL
func BuildURL(rawURL, query string) string {
	if query == "" {
		return rawURL
	}
	return rawURL + "?" + query
}

// EncodeQuery URL-encodes params. Keys are sorted; nil values are skipped and
// slices become repeated keys. Values that are not scalars, or strings that are
// not valid UTF-8, are rejected.
func EncodeQuery(params map[string]interface{}) (string, error) {
	if len(params) == 0 {
		return "", nil
	}

	q := url.Values{}
	for key, value := range params {
		if !utf8.ValidString(key) {
			return "", fmt.Errorf("parameter name %q is not valid UTF-8", key)
		}
		if value == nil {
			continue
		}

		rv := reflect.ValueOf(value)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := 0; i < rv.Len(); i++ {
				s, err := queryScalar(rv.Index(i).Interface())
				if err != nil {
					return "", fmt.Errorf("parameter %q: %w", key, err)
				}
				q.Add(key, s)
			}
			continue
		}

		s, err := queryScalar(value)
		if err != nil {
			return "", fmt.Errorf("parameter %q: %w", key, err)
		}
		q.Set(key, s)
	}

	return q.Encode(), nil
}

func queryScalar(value interface{}) (string, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case bool:
		s = strconv.FormatBool(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s = fmt.Sprint(v)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		s = v.String()
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}

	if !utf8.ValidString(s) {
		return "", fmt.Errorf("value %q is not valid UTF-8", strings.ToValidUTF8(s, "�"))
	}
	return s, nil
}
