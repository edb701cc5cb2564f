package access

import (
	"reflect"
	"strings"
	"sync"

	"field-mapper/internal/match"
)

// typeCache caches struct key lookup tables.
type typeCache struct {
	mu    sync.RWMutex
	cache map[reflect.Type]*structInfo
}

// structInfo maps the keys a struct answers to onto field indexes.
// Lookup order is exact field name, then json tag, then normalized name.
type structInfo struct {
	byName map[string][]int
	byTag  map[string][]int
	byNorm map[string][]int
}

func newTypeCache() *typeCache {
	return &typeCache{
		cache: make(map[reflect.Type]*structInfo),
	}
}

var structs = newTypeCache()

func (tc *typeCache) info(t reflect.Type) *structInfo {
	tc.mu.RLock()
	info, ok := tc.cache[t]
	tc.mu.RUnlock()

	if ok {
		return info
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	// Double-check after acquiring write lock
	if info, ok = tc.cache[t]; ok {
		return info
	}

	info = buildStructInfo(t)
	tc.cache[t] = info

	return info
}

func buildStructInfo(t reflect.Type) *structInfo {
	info := &structInfo{
		byName: make(map[string][]int),
		byTag:  make(map[string][]int),
		byNorm: make(map[string][]int),
	}

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}

		info.byName[f.Name] = f.Index

		if tag := jsonName(f.Tag); tag != "" {
			if _, taken := info.byTag[tag]; !taken {
				info.byTag[tag] = f.Index
			}
		}

		norm := match.NormalizeIdent(f.Name)
		if _, taken := info.byNorm[norm]; !taken {
			info.byNorm[norm] = f.Index
		}
	}

	return info
}

func (s *structInfo) lookup(key string) ([]int, bool) {
	if idx, ok := s.byName[key]; ok {
		return idx, true
	}

	if idx, ok := s.byTag[key]; ok {
		return idx, true
	}

	idx, ok := s.byNorm[match.NormalizeIdent(key)]

	return idx, ok
}

func jsonName(tag reflect.StructTag) string {
	name, _, _ := strings.Cut(tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}
