// Package metadata provides object metadata to rules that check field names
// against a known entity. Lookups are fallible and may legitimately come back
// empty (no session, unknown entity, network trouble); rules are expected to
// treat "no information" as "nothing to report".
package metadata

import (
	"context"
	"sort"
)

// ObjectInfo describes one named entity: its field names mapped to type
// names.
type ObjectInfo struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"`
}

// FieldNames returns the entity's field names, sorted.
func (o *ObjectInfo) FieldNames() []string {
	names := make([]string, 0, len(o.Fields))
	for name := range o.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasField reports whether the entity has a field with the given name.
func (o *ObjectInfo) HasField(name string) bool {
	_, ok := o.Fields[name]
	return ok
}

// Source answers object-metadata lookups. A (nil, nil) return means the
// entity is unknown; an error means the lookup itself failed. Callers must
// treat both as "no information".
type Source interface {
	GetObjectInfo(ctx context.Context, name string) (*ObjectInfo, error)
}

// Fetcher is the upstream a Cache pulls from on a miss, typically a slow
// network call in the real deployment.
type Fetcher interface {
	FetchObjectInfo(ctx context.Context, name string) (*ObjectInfo, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, name string) (*ObjectInfo, error)

func (f FetcherFunc) FetchObjectInfo(ctx context.Context, name string) (*ObjectInfo, error) {
	return f(ctx, name)
}
