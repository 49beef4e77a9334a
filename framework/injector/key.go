package injector

// Key identifies a binding: a type key plus an optional qualifier name.
//
// Keys are comparable and used directly as map keys. An unnamed key and a key
// named "" are different keys.
type Key struct {
	Type  string
	Name  string
	Named bool
}

// TypeKey returns the unqualified key for typ.
func TypeKey(typ string) Key {
	return Key{Type: typ}
}

// NamedKey returns the key for typ qualified by name.
func NamedKey(typ, name string) Key {
	return Key{Type: typ, Name: name, Named: true}
}

// keyOf builds a key from the variadic name argument used across the public API.
// Only the first name is used.
func keyOf(typ string, name []string) Key {
	if len(name) > 0 {
		return NamedKey(typ, name[0])
	}
	return TypeKey(typ)
}

// String renders the key the way error messages refer to it.
func (k Key) String() string {
	if k.Named {
		return k.Type + " by name " + k.Name
	}
	return k.Type
}

// less orders keys by type, then unnamed before named, then name.
func (k Key) less(o Key) bool {
	if k.Type != o.Type {
		return k.Type < o.Type
	}
	if k.Named != o.Named {
		return !k.Named
	}
	return k.Name < o.Name
}
