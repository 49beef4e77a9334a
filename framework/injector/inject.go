package injector

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// TagName is the struct tag holding an injection marker.
//
//	type Greeter struct {
//	    Greeting string `di:"inject"`
//	    Other    string `di:"inject(name=\"one\"):greeting"`
//	}
const TagName = "di"

// PostConstructsKey is the map entry listing post-construct callbacks.
const PostConstructsKey = "postConstructs"

// InjectionPoint is one explicitly declared injection: Field receives the
// binding for Type (the field name when empty) and the optional Name.
type InjectionPoint struct {
	Field string
	Type  string
	Name  string
	Named bool
}

// Key returns the binding key the point resolves.
func (p InjectionPoint) Key() Key {
	typ := p.Type
	if typ == "" {
		typ = p.Field
	}
	return Key{Type: typ, Name: p.Name, Named: p.Named}
}

// Injectable is implemented by structs that declare their injection points
// instead of using struct tags.
type Injectable interface {
	InjectionPoints() []InjectionPoint
}

// PostConstructor is implemented by structs that want methods called after
// injection. Each named method must take no arguments; results are ignored.
type PostConstructor interface {
	PostConstructs() []string
}

// FieldError is returned when an injection point names a field that cannot
// receive a value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("injector: field %q: %s", e.Field, e.Reason)
}

// ── InjectInto ────────────────────────────────────────────────────────────────

// InjectInto resolves every injection point of target through this node and
// writes the results back, then runs the target's post-construct callbacks
// once each, in order.
//
// Supported targets:
//   - map[string]any: string values matching the marker grammar are replaced;
//     the "postConstructs" entry lists keys holding func() or
//     func(map[string]any) callbacks.
//   - pointer to struct implementing Injectable.
//   - pointer to struct with `di` tags (used when Injectable is not implemented).
//
// Other targets are left untouched. Every point is resolved and checked before
// anything is written, so a failing call leaves target unchanged.
func (i *Injector) InjectInto(target any) error {
	switch t := target.(type) {
	case nil:
		return nil
	case map[string]any:
		return i.injectMap(t)
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	return i.injectStruct(target, v)
}

// ── map targets ───────────────────────────────────────────────────────────────

func (i *Injector) injectMap(m map[string]any) error {
	resolved := make(map[string]any)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, prop := range keys {
		s, ok := m[prop].(string)
		if !ok {
			continue
		}
		key, ok := ParseMarker(prop, s)
		if !ok {
			continue
		}
		v, err := i.resolve(key)
		if err != nil {
			return err
		}
		resolved[prop] = v
	}

	callbacks, err := mapPostConstructs(m)
	if err != nil {
		return err
	}

	for prop, v := range resolved {
		m[prop] = v
	}
	for _, cb := range callbacks {
		i.log.Debug("post construct", zap.String("method", cb.name))
		cb.call(m)
	}
	return nil
}

type mapCallback struct {
	name string
	call func(map[string]any)
}

func mapPostConstructs(m map[string]any) ([]mapCallback, error) {
	names, err := postConstructNames(m[PostConstructsKey])
	if err != nil {
		return nil, err
	}
	out := make([]mapCallback, 0, len(names))
	for _, name := range names {
		switch fn := m[name].(type) {
		case func():
			out = append(out, mapCallback{name: name, call: func(map[string]any) { fn() }})
		case func(map[string]any):
			out = append(out, mapCallback{name: name, call: fn})
		case nil:
			return nil, &PostConstructError{Method: name, Reason: "no such entry"}
		default:
			return nil, &PostConstructError{Method: name, Reason: fmt.Sprintf("entry is %T, not a callback", fn)}
		}
	}
	return out, nil
}

func postConstructNames(raw any) ([]string, error) {
	switch list := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []any:
		names := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &PostConstructError{Method: fmt.Sprint(item), Reason: "name is not a string"}
			}
			names = append(names, s)
		}
		return names, nil
	default:
		return nil, &PostConstructError{Method: PostConstructsKey, Reason: fmt.Sprintf("list is %T", raw)}
	}
}

// ── struct targets ────────────────────────────────────────────────────────────

type fieldAssignment struct {
	field reflect.Value
	value reflect.Value
}

func (i *Injector) injectStruct(target any, ptr reflect.Value) error {
	elem := ptr.Elem()

	var points []InjectionPoint
	if inj, ok := target.(Injectable); ok {
		points = inj.InjectionPoints()
	} else {
		points = tagPoints(elem.Type())
	}

	assignments := make([]fieldAssignment, 0, len(points))
	for _, p := range points {
		sf, ok := elem.Type().FieldByName(p.Field)
		if !ok {
			return &FieldError{Field: p.Field, Reason: "no such field"}
		}
		fv, err := elem.FieldByIndexErr(sf.Index)
		if err != nil {
			return &FieldError{Field: p.Field, Reason: err.Error()}
		}
		if !fv.CanSet() {
			return &FieldError{Field: p.Field, Reason: "field is not exported"}
		}

		key := p.Key()
		resolved, err := i.resolve(key)
		if err != nil {
			return err
		}

		value, err := assignable(key, sf, resolved)
		if err != nil {
			return err
		}
		assignments = append(assignments, fieldAssignment{field: fv, value: value})
	}

	methods, err := structPostConstructs(target, ptr)
	if err != nil {
		return err
	}

	for _, a := range assignments {
		a.field.Set(a.value)
	}
	for _, name := range methods {
		i.log.Debug("post construct", zap.String("method", name))
		ptr.MethodByName(name).Call(nil)
	}
	return nil
}

// tagPoints reads `di` markers from the exported fields of t.
func tagPoints(t reflect.Type) []InjectionPoint {
	var points []InjectionPoint
	for idx := 0; idx < t.NumField(); idx++ {
		sf := t.Field(idx)
		tag, ok := sf.Tag.Lookup(TagName)
		if !ok {
			continue
		}
		key, ok := ParseMarker(sf.Name, tag)
		if !ok {
			continue
		}
		points = append(points, InjectionPoint{Field: sf.Name, Type: key.Type, Name: key.Name, Named: key.Named})
	}
	return points
}

func assignable(key Key, sf reflect.StructField, resolved any) (reflect.Value, error) {
	if resolved == nil {
		switch sf.Type.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(sf.Type), nil
		}
		return reflect.Value{}, &TypeMismatchError{Key: key, Target: "field " + sf.Name, Want: sf.Type.String(), Got: "nil"}
	}
	rv := reflect.ValueOf(resolved)
	if !rv.Type().AssignableTo(sf.Type) {
		return reflect.Value{}, &TypeMismatchError{Key: key, Target: "field " + sf.Name, Want: sf.Type.String(), Got: rv.Type().String()}
	}
	return rv, nil
}

func structPostConstructs(target any, ptr reflect.Value) ([]string, error) {
	pc, ok := target.(PostConstructor)
	if !ok {
		return nil, nil
	}
	names := pc.PostConstructs()
	for _, name := range names {
		m := ptr.MethodByName(name)
		if !m.IsValid() {
			return nil, &PostConstructError{Method: name, Reason: "no such method"}
		}
		if m.Type().NumIn() != 0 {
			return nil, &PostConstructError{Method: name, Reason: "method takes arguments"}
		}
	}
	return names, nil
}
