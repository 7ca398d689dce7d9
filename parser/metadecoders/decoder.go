package metadecoders

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/clbanning/mxj/v2"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"
)

// Decoder provides some configuration options for the decoders.
type Decoder struct {
	// Location is used when converting TOML local dates and times to time.Time.
	// Defaults to UTC.
	Location *time.Location
}

// Default is a Decoder in its default configuration.
var Default = Decoder{}

// UnmarshalToMap will unmarshall data in format f into a new map. This is
// what's needed for front matter and config files.
func (d Decoder) UnmarshalToMap(data []byte, f Format) (map[string]any, error) {
	m := make(map[string]any)
	if data == nil {
		return m, nil
	}

	err := d.UnmarshalTo(data, f, &m)

	return m, err
}

// UnmarshalFileToMap is the same as UnmarshalToMap, but reads the data from
// the given filename.
func (d Decoder) UnmarshalFileToMap(fs afero.Fs, filename string) (map[string]any, error) {
	format := FormatFromString(filename)
	if format == "" {
		return nil, fmt.Errorf("%q is not a valid configuration format", filename)
	}

	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, err
	}
	return d.UnmarshalToMap(data, format)
}

// Unmarshal will unmarshall data in format f into an interface{}.
// This is what's needed for data files, which may hold a list at the root.
func (d Decoder) Unmarshal(data []byte, f Format) (any, error) {
	if len(data) == 0 {
		return make(map[string]any), nil
	}
	var v any
	if err := d.UnmarshalTo(data, f, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// UnmarshalTo unmarshals data in format f into v.
func (d Decoder) UnmarshalTo(data []byte, f Format, v any) error {
	var err error

	switch f {
	case JSON:
		err = json.Unmarshal(data, v)
	case TOML:
		err = toml.Unmarshal(data, v)
	case YAML:
		err = yaml.Unmarshal(data, v)
	case XML:
		err = d.unmarshalXML(data, v)
	default:
		return fmt.Errorf("unmarshal of format %q is not supported", f)
	}

	if err != nil {
		return fmt.Errorf("unmarshal failed: %w", err)
	}

	return d.normalize(v)
}

func (d Decoder) unmarshalXML(data []byte, v any) error {
	xmlRoot, err := mxj.NewMapXml(data)
	if err != nil {
		return err
	}

	// Drop the single root element, <site><title/></site> reads as {title}.
	var root map[string]any = xmlRoot
	if len(xmlRoot) == 1 {
		for _, inner := range xmlRoot {
			if m, ok := inner.(map[string]any); ok {
				root = m
			}
		}
	}

	switch vv := v.(type) {
	case *map[string]any:
		*vv = root
	case *any:
		*vv = root
	default:
		return fmt.Errorf("unmarshal of XML into %T is not supported", v)
	}
	return nil
}

func (d Decoder) normalize(v any) error {
	switch vv := v.(type) {
	case *map[string]any:
		for k, e := range *vv {
			(*vv)[k] = d.normalizeValue(e)
		}
	case *any:
		*vv = d.normalizeValue(*vv)
	}
	return nil
}

type localTime interface {
	AsTime(zone *time.Location) time.Time
}

// normalizeValue turns YAML's map[any]any into map[string]any and TOML's
// local dates into time.Time, recursively.
func (d Decoder) normalizeValue(v any) any {
	switch vv := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(vv))
		for k, e := range vv {
			m[cast.ToString(k)] = d.normalizeValue(e)
		}
		return m
	case map[string]any:
		for k, e := range vv {
			vv[k] = d.normalizeValue(e)
		}
		return vv
	case []any:
		for i, e := range vv {
			vv[i] = d.normalizeValue(e)
		}
		return vv
	case localTime:
		loc := d.Location
		if loc == nil {
			loc = time.UTC
		}
		return vv.AsTime(loc)
	}
	return v
}
