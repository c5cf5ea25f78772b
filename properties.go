package tagbridge

import (
	"go.uber.org/zap"

	"github.com/simonhull/tagbridge/internal/multivalue"
	"github.com/simonhull/tagbridge/internal/propjson"
)

// Separator joins multiple values into one string in Property,
// PropertiesJSON and multi-valued SetProperty calls.
const Separator = multivalue.Separator

// Properties returns a fresh copy of the file's property map. Editing it
// has no effect until it is passed to SetProperties. A closed file has an
// empty map.
func (f *File) Properties() *PropertyMap {
	if f.tagged == nil {
		return NewPropertyMap()
	}
	return f.tagged.Properties()
}

// SetProperties replaces the whole tag with props and returns the keys
// the format could not store. Those keys are dropped. A closed file stores
// nothing and reports every key.
func (f *File) SetProperties(props *PropertyMap) []string {
	if f.tagged == nil {
		return props.Keys()
	}
	unsupported := f.tagged.SetProperties(props)
	if len(unsupported) > 0 {
		f.log.Warn("properties not supported by format",
			zap.Stringer("type", f.tagged.FileType()),
			zap.Strings("keys", unsupported),
		)
	}
	return unsupported
}

// Property returns the values of key joined with Separator.
func (f *File) Property(key string) (string, bool) {
	values, ok := f.Properties().Get(key)
	if !ok {
		return "", false
	}
	return multivalue.Join(values), true
}

// PropertyAttrs reports the number of values stored under key and the
// byte length of the string Property would return.
func (f *File) PropertyAttrs(key string) (count, length int, ok bool) {
	return f.Properties().Attrs(key)
}

// PropertyKeyAt returns the key at position index of the property map.
func (f *File) PropertyKeyAt(index int) (string, bool) {
	return f.Properties().KeyAt(index)
}

// SetProperty sets one key and writes the whole map back.
//
// With multi set, value is split on Separator and empty parts are dropped;
// otherwise it is stored as a single value. A key left with no values is
// removed, so SetProperty(key, "", false) deletes key.
//
// Example:
//
//	file.SetProperty("ALBUM", "Greatest Hits; Live", true)
//	// ALBUM now holds ["Greatest Hits", "Live"]
func (f *File) SetProperty(key, value string, multi bool) []string {
	values := []string{value}
	if multi {
		values = multivalue.Split(value)
	}

	props := f.Properties()
	props.Set(key, values...)
	return f.SetProperties(props)
}

// PropertiesJSON renders the property map as a JSON object with values
// joined by Separator:
//
//	{ "ALBUM": "Greatest Hits; Live", "ARTIST": "Queen" }
//
// The default rendering escapes only double quotes. Set Config.StrictJSON
// for output that is valid JSON for every value.
func (f *File) PropertiesJSON() string {
	return propjson.Render(f.Properties(), f.jsonMode())
}

// PropertiesJSONLength returns len(f.PropertiesJSON()) without building
// the string.
func (f *File) PropertiesJSONLength() int {
	return propjson.RenderedLength(f.Properties(), f.jsonMode())
}

func (f *File) jsonMode() propjson.Mode {
	if f.config.StrictJSON {
		return propjson.Strict
	}
	return propjson.Legacy
}
