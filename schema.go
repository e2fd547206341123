package solrdex

import (
	"context"
	"fmt"
	"time"
)

// SchemaBatch accumulates add, delete and replace field operations and
// flushes them as one schema request.
//
// A SchemaBatch is not safe for concurrent use.
type SchemaBatch struct {
	rest       doer
	obs        *observer
	collection string

	add     []Field
	delete  []string
	replace []Field
}

// AddField queues a new field definition.
func (b *SchemaBatch) AddField(f Field) *SchemaBatch {
	b.add = append(b.add, f)
	return b
}

// DeleteField queues removal of the named field.
func (b *SchemaBatch) DeleteField(name string) *SchemaBatch {
	b.delete = append(b.delete, name)
	return b
}

// ReplaceField queues a full redefinition of an existing field.
func (b *SchemaBatch) ReplaceField(f Field) *SchemaBatch {
	b.replace = append(b.replace, f)
	return b
}

// Commit flushes the batch as one request. With nothing queued it
// succeeds without a network call. Queues are cleared only on success;
// a failed flush keeps them so the caller can retry.
func (b *SchemaBatch) Commit(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { b.obs.observe("schema.commit", start, err) }()

	if len(b.add) == 0 && len(b.delete) == 0 && len(b.replace) == 0 {
		return nil
	}

	body := map[string]any{}
	if len(b.add) > 0 {
		body["add-field"] = b.add
	}
	if len(b.delete) > 0 {
		names := make([]map[string]any, len(b.delete))
		for i, n := range b.delete {
			names[i] = map[string]any{"name": n}
		}
		body["delete-field"] = names
	}
	if len(b.replace) > 0 {
		body["replace-field"] = b.replace
	}

	if _, err = b.rest.Post(ctx, b.collection+"/schema", body); err != nil {
		return opErr("schema.commit", err)
	}
	b.add, b.delete, b.replace = nil, nil, nil
	return nil
}

// Fetch retrieves the current schema of the collection.
func (b *SchemaBatch) Fetch(ctx context.Context) (_ SchemaInfo, err error) {
	start := time.Now()
	defer func() { b.obs.observe("schema.fetch", start, err) }()

	body, err := b.rest.Get(ctx, b.collection+"/schema")
	if err != nil {
		return SchemaInfo{}, opErr("schema.fetch", err)
	}

	schema, ok := body["schema"].(map[string]any)
	if !ok {
		err = fmt.Errorf("%w: no schema object", ErrMalformedResponse)
		return SchemaInfo{}, opErr("schema.fetch", err)
	}

	info := SchemaInfo{}
	info.Name, _ = schema["name"].(string)
	info.Version, _ = schema["version"].(float64)
	info.UniqueKey, _ = schema["uniqueKey"].(string)
	if fields, ok := schema["fields"].([]any); ok {
		for _, raw := range fields {
			if f, ok := raw.(map[string]any); ok {
				info.Fields = append(info.Fields, Field(f))
			}
		}
	}
	return info, nil
}
