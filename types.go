package solrdex

// SystemInfo is a subset of the node metadata reported by
// admin/info/system.
type SystemInfo struct {
	Mode          string // "std" or "solrcloud"
	SolrHome      string
	SolrVersion   string
	LuceneVersion string
}

// CollectionInfo is one entry of a collection listing.
type CollectionInfo struct {
	Name string
}

// ClusterStatus describes collections and their shard layout as reported
// by the CLUSTERSTATUS action.
type ClusterStatus struct {
	Collections map[string]ClusterCollection
}

// ClusterCollection is the per-collection part of a cluster status report.
type ClusterCollection struct {
	State  string
	Shards map[string]ClusterShard
}

// ClusterShard is one shard of a collection.
type ClusterShard struct {
	State    string
	Replicas map[string]ClusterReplica
}

// ClusterReplica is one replica of a shard.
type ClusterReplica struct {
	State    string
	NodeName string
	BaseURL  string
	Leader   bool
}

// SchemaInfo is the current schema of a collection as returned by the
// schema endpoint.
type SchemaInfo struct {
	Name      string
	Version   float64
	UniqueKey string
	Fields    []Field
}
