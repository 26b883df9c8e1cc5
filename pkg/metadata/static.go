package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// StaticSource serves object metadata from an in-memory table, typically
// loaded from a JSON file. It backs the CLI, which has no live org to talk
// to, and doubles as the upstream fetcher in tests.
type StaticSource struct {
	objects map[string]*ObjectInfo
}

// NewStaticSource builds a source over the given objects.
func NewStaticSource(objects map[string]map[string]string) *StaticSource {
	table := make(map[string]*ObjectInfo, len(objects))
	for name, fields := range objects {
		table[name] = &ObjectInfo{Name: name, Fields: fields}
	}
	return &StaticSource{objects: table}
}

// LoadStatic reads a JSON file mapping entity names to field-name/type-name
// maps:
//
//	{"Account": {"Name": "String", "Industry": "String"}}
func LoadStatic(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading objects file: %w", err)
	}
	var objects map[string]map[string]string
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("parsing objects file %s: %w", path, err)
	}
	return NewStaticSource(objects), nil
}

// GetObjectInfo implements Source. Unknown names return (nil, nil).
func (s *StaticSource) GetObjectInfo(_ context.Context, name string) (*ObjectInfo, error) {
	return s.objects[name], nil
}

// FetchObjectInfo implements Fetcher so a StaticSource can sit behind a
// Cache.
func (s *StaticSource) FetchObjectInfo(ctx context.Context, name string) (*ObjectInfo, error) {
	return s.GetObjectInfo(ctx, name)
}

// ObjectNames returns every entity name, sorted.
func (s *StaticSource) ObjectNames() []string {
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
