package solrdex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/solrdex/internal/rest"
)

// doer is the wire capability the SDK builds on. Satisfied by
// *rest.Client; declared here so tests can substitute it.
type doer interface {
	Get(ctx context.Context, path string) (map[string]any, error)
	Post(ctx context.Context, path string, body any) (map[string]any, error)
}

// Client is the solrdex SDK entry point, bound to a single Solr node.
type Client struct {
	rest doer
	obs  *observer
}

// New creates a Client for the node at {protocol}://{host}:{port}.
// No connection is opened; the first request happens on the first
// operation.
func New(protocol, host string, port int, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrValidation)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrValidation, port)
	}
	if protocol == "" {
		protocol = "http"
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	endpoint := rest.Endpoint{Protocol: protocol, Host: host, Port: port}
	return &Client{
		rest: rest.New(endpoint, cfg.httpClient),
		obs:  obs,
	}, nil
}

// Collections returns the collection administration service.
func (c *Client) Collections() *CollectionService {
	return &CollectionService{rest: c.rest, obs: c.obs}
}

// Collection binds a handle to a named collection without any network
// call. The collection is not checked for existence; use
// Collections().Get for that.
func (c *Client) Collection(name string) *Collection {
	return newCollection(c.rest, c.obs, name)
}

// SystemInfo reports mode and version metadata of the node.
func (c *Client) SystemInfo(ctx context.Context) (_ SystemInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("system.info", start, err) }()

	body, err := c.rest.Get(ctx, "admin/info/system?wt=json")
	if err != nil {
		return SystemInfo{}, opErr("system.info", err)
	}

	info := SystemInfo{}
	info.Mode, _ = body["mode"].(string)
	info.SolrHome, _ = body["solr_home"].(string)
	if lucene, ok := body["lucene"].(map[string]any); ok {
		info.SolrVersion, _ = lucene["solr-spec-version"].(string)
		info.LuceneVersion, _ = lucene["lucene-spec-version"].(string)
	}
	return info, nil
}

// ClusterStatus reports every collection with its shard and replica
// layout.
func (c *Client) ClusterStatus(ctx context.Context) (_ ClusterStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("cluster.status", start, err) }()

	body, err := c.rest.Get(ctx, "admin/collections?action=CLUSTERSTATUS")
	if err != nil {
		return ClusterStatus{}, opErr("cluster.status", err)
	}

	cluster, ok := body["cluster"].(map[string]any)
	if !ok {
		err = fmt.Errorf("%w: no cluster object", ErrMalformedResponse)
		return ClusterStatus{}, opErr("cluster.status", err)
	}
	rawCols, ok := cluster["collections"].(map[string]any)
	if !ok {
		err = fmt.Errorf("%w: no cluster.collections object", ErrMalformedResponse)
		return ClusterStatus{}, opErr("cluster.status", err)
	}

	status := ClusterStatus{Collections: make(map[string]ClusterCollection, len(rawCols))}
	for name, raw := range rawCols {
		status.Collections[name] = clusterCollectionFromJSON(raw)
	}
	return status, nil
}

func clusterCollectionFromJSON(v any) ClusterCollection {
	obj, _ := v.(map[string]any)
	col := ClusterCollection{Shards: map[string]ClusterShard{}}
	col.State, _ = obj["health"].(string)
	if s, ok := obj["state"].(string); ok {
		col.State = s
	}
	shards, _ := obj["shards"].(map[string]any)
	for name, raw := range shards {
		col.Shards[name] = clusterShardFromJSON(raw)
	}
	return col
}

func clusterShardFromJSON(v any) ClusterShard {
	obj, _ := v.(map[string]any)
	shard := ClusterShard{Replicas: map[string]ClusterReplica{}}
	shard.State, _ = obj["state"].(string)
	replicas, _ := obj["replicas"].(map[string]any)
	for name, raw := range replicas {
		robj, _ := raw.(map[string]any)
		r := ClusterReplica{}
		r.State, _ = robj["state"].(string)
		r.NodeName, _ = robj["node_name"].(string)
		r.BaseURL, _ = robj["base_url"].(string)
		if leader, ok := robj["leader"].(string); ok {
			r.Leader = leader == "true"
		}
		if leader, ok := robj["leader"].(bool); ok {
			r.Leader = leader
		}
		shard.Replicas[name] = r
	}
	return shard
}
