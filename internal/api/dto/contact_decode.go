package dto

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNullBody is returned for a JSON body of null.
var ErrNullBody = errors.New("contact payload is null")

// DecodeContactRequest reads a contact body the way the website's form
// handler always has. Any JSON value other than null is accepted: arrays and
// scalars carry no fields, so they fail the required-fields rule. Falsy
// values (null, false, 0, "") count as missing. Other non-string values are
// converted to their script text form and listed in NonString.
func DecodeContactRequest(raw []byte) (*ContactRequest, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, ErrNullBody
	}

	req := &ContactRequest{}
	fields, ok := body.(map[string]any)
	if !ok {
		return req, nil
	}

	read := func(key string) string {
		v := fields[key]
		if !truthy(v) {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		req.NonString = append(req.NonString, key)
		return scriptString(v)
	}
	req.Name = read("name")
	req.Email = read("email")
	req.Phone = read("phone")
	req.Company = read("company")
	req.Message = read("message")
	return req, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// scriptString mirrors String(v) for decoded JSON values.
func scriptString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if abs := math.Abs(t); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
			return strconv.FormatFloat(t, 'g', -1, 64)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, el := range t {
			if el != nil {
				parts[i] = scriptString(el)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}
