package injector

import (
	"strings"
	"unicode"
)

const (
	markerPrefix = "inject"
	namePrefix   = `(name="`
	nameSuffix   = `")`
)

// ParseMarker parses an injection marker found on the property named property.
//
//	inject                      -> (property, unnamed)
//	inject(name="Q")            -> (property, Q)
//	inject:K                    -> (K, unnamed)
//	inject(name="Q"):K          -> (K, Q)
//
// Any other value, including near misses such as an unterminated quote or an
// empty K, is not a marker and ok is false.
func ParseMarker(property, value string) (key Key, ok bool) {
	rest, found := strings.CutPrefix(value, markerPrefix)
	if !found {
		return Key{}, false
	}

	key = TypeKey(property)

	if after, hasName := strings.CutPrefix(rest, namePrefix); hasName {
		end := strings.Index(after, nameSuffix)
		if end < 0 {
			return Key{}, false
		}
		name := after[:end]
		if strings.ContainsRune(name, '"') {
			return Key{}, false
		}
		key.Name, key.Named = name, true
		rest = after[end+len(nameSuffix):]
	}

	if rest == "" {
		return key, true
	}

	typ, hasType := strings.CutPrefix(rest, ":")
	if !hasType || !validTypeKey(typ) {
		return Key{}, false
	}
	key.Type = typ
	return key, true
}

func validTypeKey(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}
