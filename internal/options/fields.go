package options

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// field describes one option of Style, derived from its struct tags.
type field struct {
	name    string // canonical camelCase name
	index   int
	kind    reflect.Kind
	dynamic bool
	enum    []string
	aliases map[string]string
}

// keyAliases maps alternative spellings to canonical lowercase keys.
var keyAliases = map[string]string{
	"contentsplitdirn":           "contentsplitdirection",
	"fixedpitchheightwidthratio": "fpratio",
	"leftfooter":                 "leftfootertext",
	"middlefooter":               "middlefootertext",
	"rightfooter":                "rightfootertext",
}

var (
	fieldsOnce  sync.Once
	fieldsByKey map[string]*field
)

// fields returns the option table keyed by lowercase option name.
func fields() map[string]*field {
	fieldsOnce.Do(func() {
		t := reflect.TypeOf(Style{})
		fieldsByKey = make(map[string]*field, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			name := sf.Tag.Get("yaml")
			f := &field{
				name:    name,
				index:   i,
				kind:    sf.Type.Kind(),
				dynamic: sf.Tag.Get("dynamic") == "true",
			}
			if enum, ok := sf.Tag.Lookup("enum"); ok {
				f.enum = strings.Split(enum, "|")
			}
			if alias := sf.Tag.Get("alias"); alias != "" {
				f.aliases = make(map[string]string)
				for _, pair := range strings.Split(alias, ",") {
					from, to, _ := strings.Cut(pair, "=")
					f.aliases[from] = to
				}
			}
			fieldsByKey[strings.ToLower(name)] = f
		}
	})
	return fieldsByKey
}

// lookup finds the option for a key, ignoring case and known aliases.
func lookup(key string) (*field, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if canonical, ok := keyAliases[k]; ok {
		k = canonical
	}
	f, ok := fields()[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	return f, nil
}

// Names returns every canonical option name, sorted.
func Names() []string {
	names := make([]string, 0, len(fields()))
	for _, f := range fields() {
		names = append(names, f.name)
	}
	slices.Sort(names)
	return names
}

// parse converts a raw metadata value into a value assignable to the field.
func (f *field) parse(raw string) (reflect.Value, error) {
	raw = strings.TrimSpace(raw)

	switch f.kind {
	case reflect.String:
		v := raw
		if f.enum != nil {
			v = strings.ToLower(v)
			if to, ok := f.aliases[v]; ok {
				v = to
			}
			if !slices.Contains(f.enum, v) {
				return reflect.Value{}, fmt.Errorf("%w: %s %q (want one of %s)", ErrInvalidValue, f.name, raw, strings.Join(f.enum, ", "))
			}
		}
		return reflect.ValueOf(v), nil

	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidValue, f.name, raw)
		}
		return reflect.ValueOf(n), nil

	case reflect.Float64:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %s %q is not a number", ErrInvalidValue, f.name, raw)
		}
		return reflect.ValueOf(n), nil

	case reflect.Bool:
		switch strings.ToLower(raw) {
		case "yes", "true", "on", "1":
			return reflect.ValueOf(true), nil
		case "no", "false", "off", "0":
			return reflect.ValueOf(false), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: %s %q (want yes or no)", ErrInvalidValue, f.name, raw)

	case reflect.Slice:
		parts := strings.Fields(strings.ReplaceAll(raw, ",", " "))
		if len(parts) > MaxBlocks {
			return reflect.Value{}, fmt.Errorf("%w: %s has more than %d weights", ErrInvalidValue, f.name, MaxBlocks)
		}
		weights := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return reflect.Value{}, fmt.Errorf("%w: %s weight %q", ErrInvalidValue, f.name, p)
			}
			weights = append(weights, n)
		}
		return reflect.ValueOf(PadSplit(weights)), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s has unsupported kind %s", ErrInvalidValue, f.name, f.kind)
}

// get returns a detached copy of the field value in s.
func (f *field) get(s *Style) reflect.Value {
	v := reflect.ValueOf(s).Elem().Field(f.index)
	if v.Kind() == reflect.Slice {
		return reflect.ValueOf(slices.Clone(v.Interface().([]int)))
	}
	return reflect.ValueOf(v.Interface())
}

// set assigns v to the field in s.
func (f *field) set(s *Style, v reflect.Value) {
	reflect.ValueOf(s).Elem().Field(f.index).Set(v)
}
