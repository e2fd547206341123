package solrdex

import (
	"context"
	"fmt"
	"time"
)

// Collection is a handle to one collection. It carries the pending
// document queue: Add enqueues locally, Commit flushes the whole queue
// as one update request.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	rest doer
	obs  *observer
	name string

	queue   []any
	pending error // sticky, consumed by the next Commit
}

func newCollection(rest doer, obs *observer, name string) *Collection {
	return &Collection{rest: rest, obs: obs, name: name}
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Add enqueues documents for the next Commit. A single object is
// enqueued directly. An array is enqueued element by element; the first
// non-object element sets a sticky error and stops that call, elements
// enqueued before it stay queued. Any other shape is ignored.
func (c *Collection) Add(doc any) *Collection {
	switch d := doc.(type) {
	case map[string]any:
		c.queue = append(c.queue, d)
	case []map[string]any:
		for _, el := range d {
			c.queue = append(c.queue, el)
		}
	case []any:
		for i, el := range d {
			obj, ok := el.(map[string]any)
			if !ok {
				if c.pending == nil {
					c.pending = fmt.Errorf("%w: array element %d is not an object", ErrValidation, i)
				}
				return c
			}
			c.queue = append(c.queue, obj)
		}
	}
	return c
}

// Pending returns the number of queued documents.
func (c *Collection) Pending() int { return len(c.queue) }

// Commit flushes the queued documents as one update request. A sticky
// error from Add is returned first and cleared, without touching the
// queue or the network. An empty queue succeeds without a network call.
// The queue is cleared only on success; a failed flush keeps every
// document queued so the caller can retry.
func (c *Collection) Commit(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("docs.commit", start, err) }()

	if c.pending != nil {
		err = c.pending
		c.pending = nil
		return opErr("docs.commit", err)
	}
	if len(c.queue) == 0 {
		return nil
	}

	if _, err = c.rest.Post(ctx, c.name+"/update?commit=true", c.queue); err != nil {
		return opErr("docs.commit", err)
	}
	c.queue = nil
	return nil
}

// Schema starts an empty schema mutation batch for this collection.
func (c *Collection) Schema() *SchemaBatch {
	return &SchemaBatch{rest: c.rest, obs: c.obs, collection: c.name}
}

// Search starts an empty query against this collection.
func (c *Collection) Search() *Query {
	return &Query{rest: c.rest, obs: c.obs, collection: c.name, params: map[string]string{}}
}
