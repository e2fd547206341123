package solrdex

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/solrdex/internal/urlenc"
)

// CollectionBuilder accumulates collection-creation parameters. Values
// are percent-encoded as they are set; Commit issues one CREATE action
// with the parameters joined in sorted key order.
type CollectionBuilder struct {
	rest   doer
	obs    *observer
	name   string
	params map[string]string
	fields []Field
}

// Set stores an arbitrary creation parameter. The value is
// percent-encoded before storage.
func (b *CollectionBuilder) Set(param, value string) *CollectionBuilder {
	b.params[param] = urlenc.Encode(value)
	return b
}

// NumShards sets the number of shards the collection is split into.
func (b *CollectionBuilder) NumShards(n int) *CollectionBuilder {
	return b.Set("numShards", strconv.Itoa(n))
}

// MaxShardsPerNode limits how many shards one node may host.
func (b *CollectionBuilder) MaxShardsPerNode(n int) *CollectionBuilder {
	return b.Set("maxShardsPerNode", strconv.Itoa(n))
}

// ReplicationFactor sets the number of NRT replicas per shard.
func (b *CollectionBuilder) ReplicationFactor(n int) *CollectionBuilder {
	return b.Set("replicationFactor", strconv.Itoa(n))
}

// NRTReplicas sets the number of near-real-time replicas per shard.
func (b *CollectionBuilder) NRTReplicas(n int) *CollectionBuilder {
	return b.Set("nrtReplicas", strconv.Itoa(n))
}

// TlogReplicas sets the number of transaction-log replicas per shard.
func (b *CollectionBuilder) TlogReplicas(n int) *CollectionBuilder {
	return b.Set("tlogReplicas", strconv.Itoa(n))
}

// PullReplicas sets the number of pull replicas per shard.
func (b *CollectionBuilder) PullReplicas(n int) *CollectionBuilder {
	return b.Set("pullReplicas", strconv.Itoa(n))
}

// RouterName selects the document router, "compositeId" or "implicit".
func (b *CollectionBuilder) RouterName(name string) *CollectionBuilder {
	return b.Set("router.name", name)
}

// RouterField routes documents by a field value instead of their id.
func (b *CollectionBuilder) RouterField(field string) *CollectionBuilder {
	return b.Set("router.field", field)
}

// ConfigSet names the config set the collection is created from.
func (b *CollectionBuilder) ConfigSet(name string) *CollectionBuilder {
	return b.Set("collection.configName", name)
}

// CreateNodeSet restricts the nodes the collection is placed on.
func (b *CollectionBuilder) CreateNodeSet(nodes string) *CollectionBuilder {
	return b.Set("createNodeSet", nodes)
}

// WithCollection co-locates this collection with another one.
func (b *CollectionBuilder) WithCollection(name string) *CollectionBuilder {
	return b.Set("withCollection", name)
}

// Alias also registers the new collection under an alias.
func (b *CollectionBuilder) Alias(alias string) *CollectionBuilder {
	return b.Set("alias", alias)
}

// AddField attaches a field descriptor submitted as one schema batch
// after the collection is created.
func (b *CollectionBuilder) AddField(f Field) *CollectionBuilder {
	b.fields = append(b.fields, f)
	return b
}

// Commit creates the collection and returns a handle to it. A response
// without a "success" key fails with ErrServer. When fields were
// attached and their schema submission fails, the handle is returned
// together with the error: the collection exists, its schema is
// incomplete.
func (b *CollectionBuilder) Commit(ctx context.Context) (_ *Collection, err error) {
	start := time.Now()
	defer func() { b.obs.observe("collection.create", start, err) }()

	if b.name == "" {
		err = fmt.Errorf("%w: collection name is required", ErrValidation)
		return nil, opErr("collection.create", err)
	}

	var path strings.Builder
	path.WriteString("admin/collections?action=CREATE&name=")
	path.WriteString(urlenc.Encode(b.name))
	for _, k := range sortedKeys(b.params) {
		path.WriteByte('&')
		path.WriteString(k)
		path.WriteByte('=')
		path.WriteString(b.params[k])
	}

	body, err := b.rest.Get(ctx, path.String())
	if err != nil {
		return nil, opErr("collection.create", err)
	}
	if _, ok := body["success"]; !ok {
		err = fmt.Errorf("%w: creation not acknowledged", ErrServer)
		return nil, opErr("collection.create", err)
	}

	col := newCollection(b.rest, b.obs, b.name)
	if len(b.fields) > 0 {
		batch := col.Schema()
		for _, f := range b.fields {
			batch.AddField(f)
		}
		if err = batch.Commit(ctx); err != nil {
			return col, opErr("collection.create", fmt.Errorf("collection created, schema incomplete: %w", err))
		}
	}
	return col, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
