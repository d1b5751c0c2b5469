package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field probes in priority order
var (
	idFields    = []string{"_id", "id", "userId", "uuid"}
	tokenFields = []string{"token", "accessToken", "jwt", "id_token", "authToken"}
)

// Envelope probes in priority order; "" is the document root
var (
	tokenProbes = []string{"", "data"}
	userProbes  = []string{"user", "data.user", "data", ""}
)

// Lookup follows a dotted path of object keys from doc. The empty path
// returns doc itself.
func Lookup(doc interface{}, path string) (interface{}, bool) {
	if doc == nil {
		return nil, false
	}
	if path == "" {
		return doc, true
	}
	cur := doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// FirstObject returns the first probe that resolves to a JSON object
func FirstObject(doc interface{}, probes ...string) map[string]interface{} {
	for _, p := range probes {
		v, ok := Lookup(doc, p)
		if !ok {
			continue
		}
		if obj, ok := v.(map[string]interface{}); ok {
			return obj
		}
	}
	return nil
}

// FirstList returns the first probe that resolves to a JSON array
func FirstList(doc interface{}, probes ...string) []interface{} {
	for _, p := range probes {
		v, ok := Lookup(doc, p)
		if !ok {
			continue
		}
		if list, ok := v.([]interface{}); ok {
			return list
		}
	}
	return nil
}

// firstString returns the first field of obj holding a non-empty scalar
func firstString(obj map[string]interface{}, fields []string) string {
	for _, f := range fields {
		if s := scalar(obj[f]); s != "" {
			return s
		}
	}
	return ""
}

func scalar(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool, map[string]interface{}, []interface{}:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// ExtractID returns the first of _id, id, userId and uuid that holds a
// non-empty value, or "" when obj is not an object or has none of them
func ExtractID(obj interface{}) string {
	m, ok := obj.(map[string]interface{})
	if !ok {
		return ""
	}
	return firstString(m, idFields)
}

// ExtractToken returns the first of token, accessToken, jwt, id_token and
// authToken found at the root of doc, then under data
func ExtractToken(doc interface{}) string {
	for _, p := range tokenProbes {
		v, ok := Lookup(doc, p)
		if !ok {
			continue
		}
		if obj, ok := v.(map[string]interface{}); ok {
			if tok := firstString(obj, tokenFields); tok != "" {
				return tok
			}
		}
	}
	return ""
}

// ExtractUser returns the user object of an auth response: user, data.user,
// data, or the document itself
func ExtractUser(doc interface{}) map[string]interface{} {
	return FirstObject(doc, userProbes...)
}

// ExtractEntity returns the object named name from a response envelope:
// name, data.name, data, or the document itself
func ExtractEntity(doc interface{}, name string) map[string]interface{} {
	return FirstObject(doc, name, "data."+name, "data", "")
}

// ExtractList returns the list named name from a response envelope: name,
// data, or the document itself
func ExtractList(doc interface{}, name string) []interface{} {
	return FirstList(doc, name, "data", "")
}

// StringField reads a scalar field of obj as a string
func StringField(obj map[string]interface{}, field string) string {
	if obj == nil {
		return ""
	}
	return scalar(obj[field])
}
