package mason

import (
	"reflect"
	"strings"
	"sync"
)

// fieldInfo describes where a MASON key is stored in a struct.
type fieldInfo struct {
	name  string
	index int
}

// fieldCache indexes the decodable fields of one struct type.
type fieldCache struct {
	byName map[string]*fieldInfo
	byFold map[string]*fieldInfo // lowercased names, for case-insensitive matching
}

var (
	fieldCacheMu  sync.RWMutex
	fieldCacheMap = make(map[reflect.Type]*fieldCache)
)

func getFieldCache(t reflect.Type) *fieldCache {
	fieldCacheMu.RLock()
	fc, ok := fieldCacheMap[t]
	fieldCacheMu.RUnlock()
	if ok {
		return fc
	}

	fc = buildFieldCache(t)
	fieldCacheMu.Lock()
	fieldCacheMap[t] = fc
	fieldCacheMu.Unlock()
	return fc
}

// lookup finds the field for key, preferring an exact match.
func (fc *fieldCache) lookup(key string) (*fieldInfo, bool) {
	if info, ok := fc.byName[key]; ok {
		return info, true
	}
	info, ok := fc.byFold[strings.ToLower(key)]
	return info, ok
}

func buildFieldCache(t reflect.Type) *fieldCache {
	fc := &fieldCache{
		byName: make(map[string]*fieldInfo),
		byFold: make(map[string]*fieldInfo),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported
			continue
		}

		name, skip := fieldName(field)
		if skip {
			continue
		}

		info := &fieldInfo{name: name, index: i}
		fc.byName[name] = info
		lower := strings.ToLower(name)
		if _, taken := fc.byFold[lower]; !taken {
			fc.byFold[lower] = info
		}
	}

	return fc
}

// fieldName extracts the MASON key of a struct field from its `mason` tag.
// Untagged fields use their lowercased name. Tag options after the name are
// accepted for symmetry with other encoders and ignored.
func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("mason")

	if tag == "" {
		return strings.ToLower(field.Name), false
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	if name == "" {
		name = strings.ToLower(field.Name)
	}
	return name, false
}
