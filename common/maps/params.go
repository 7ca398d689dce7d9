package maps

import (
	"strings"

	"github.com/spf13/cast"
)

// Params is a map where all keys are lower case.
type Params map[string]any

// Set overwrites values in p with values in pp for common or new keys.
// Nested Params are merged recursively.
func (p Params) Set(pp Params) {
	for k, v := range pp {
		existing, found := p[k]
		if !found {
			p[k] = v
			continue
		}
		if ep, ok := existing.(Params); ok {
			if vp, ok := v.(Params); ok {
				ep.Set(vp)
				continue
			}
		}
		p[k] = v
	}
}

// SetDefaults adds the keys in pp that are missing from p, recursively.
func (p Params) SetDefaults(pp Params) {
	for k, v := range pp {
		existing, found := p[k]
		if !found {
			p[k] = v
			continue
		}
		if ep, ok := existing.(Params); ok {
			if vp, ok := v.(Params); ok {
				ep.SetDefaults(vp)
			}
		}
	}
}

// Get does a lower case and nested search in this map.
// It will return nil if none found.
func (p Params) Get(indices ...string) any {
	v, _, _ := getNested(p, indices)
	return v
}

// GetString is Get followed by a string conversion.
func (p Params) GetString(indices ...string) string {
	return cast.ToString(p.Get(indices...))
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		if vp, ok := v.(Params); ok {
			c[k] = vp.Clone()
			continue
		}
		c[k] = v
	}
	return c
}

func getNested(m map[string]any, indices []string) (any, string, map[string]any) {
	if len(indices) == 0 {
		return nil, "", nil
	}

	first := indices[0]
	v, found := m[strings.ToLower(first)]
	if !found {
		if len(indices) == 1 {
			return nil, first, m
		}
		return nil, "", nil
	}

	if len(indices) == 1 {
		return v, first, m
	}

	switch m2 := v.(type) {
	case Params:
		return getNested(m2, indices[1:])
	case map[string]any:
		return getNested(m2, indices[1:])
	default:
		return nil, "", nil
	}
}

// GetNestedParam gets the first match of the keyStr in the candidates given.
// It will first try the exact match and then try to find it as a nested map value,
// using the given separator, e.g. "mymap.name".
func GetNestedParam(keyStr, separator string, candidates ...Params) (any, error) {
	keyStr = strings.ToLower(keyStr)

	for _, m := range candidates {
		if v, ok := m[keyStr]; ok {
			return v, nil
		}
	}

	keySegments := strings.Split(keyStr, separator)
	for _, m := range candidates {
		if v := m.Get(keySegments...); v != nil {
			return v, nil
		}
	}

	return nil, nil
}

// PrepareParams
// * makes all the keys in the given map lower cased
// * converts any nested map[any]any, map[string]any or map[string]string to Params.
// This will modify the map given.
func PrepareParams(m Params) {
	for k, v := range m {
		var retyped bool
		lKey := strings.ToLower(k)

		switch vv := v.(type) {
		case map[any]any:
			var p Params = cast.ToStringMap(v)
			v = p
			PrepareParams(p)
			retyped = true
		case map[string]any:
			var p Params = vv
			v = p
			PrepareParams(p)
			retyped = true
		case map[string]string:
			p := make(Params, len(vv))
			for k, v := range vv {
				p[k] = v
			}
			v = p
			PrepareParams(p)
			retyped = true
		case Params:
			PrepareParams(vv)
		}

		if retyped || k != lKey {
			delete(m, k)
			m[lKey] = v
		}
	}
}
