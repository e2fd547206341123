package solrdex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/solrdex/internal/urlenc"
)

// CollectionService manages collections through the collections admin
// API.
type CollectionService struct {
	rest doer
	obs  *observer
}

// Create starts building a new collection. Nothing is sent until
// Commit is called on the returned builder.
func (s *CollectionService) Create(name string) *CollectionBuilder {
	return &CollectionBuilder{
		rest:   s.rest,
		obs:    s.obs,
		name:   name,
		params: map[string]string{},
	}
}

// Names lists the names of all collections on the node.
func (s *CollectionService) Names(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.list", start, err) }()

	body, err := s.rest.Get(ctx, "admin/collections?action=LIST")
	if err != nil {
		return nil, opErr("collection.list", err)
	}

	raw, ok := body["collections"].([]any)
	if !ok {
		err = fmt.Errorf("%w: no collections array", ErrMalformedResponse)
		return nil, opErr("collection.list", err)
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// List lists all collections as info records.
func (s *CollectionService) List(ctx context.Context) ([]CollectionInfo, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CollectionInfo, len(names))
	for i, n := range names {
		out[i] = CollectionInfo{Name: n}
	}
	return out, nil
}

// Get returns a handle to an existing collection, or ErrNotFound if no
// collection with that name exists.
func (s *CollectionService) Get(ctx context.Context, name string) (*Collection, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if n == name {
			return newCollection(s.rest, s.obs, name), nil
		}
	}
	return nil, opErr("collection.get", fmt.Errorf("%w: %q", ErrNotFound, name))
}

// Delete removes a collection and all its documents.
func (s *CollectionService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("collection.delete", start, err) }()

	_, err = s.rest.Get(ctx, "admin/collections?action=DELETE&name="+urlenc.Encode(name))
	if err != nil {
		return opErr("collection.delete", err)
	}
	return nil
}
