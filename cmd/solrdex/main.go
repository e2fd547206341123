// Command solrdex is a small operational CLI over the solrdex SDK:
// node info, cluster status, collection administration, document
// indexing and queries.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdex"
	"github.com/kailas-cloud/solrdex/internal/config"
	logpkg "github.com/kailas-cloud/solrdex/internal/logger"
	"github.com/kailas-cloud/solrdex/internal/version"
)

// app carries the pieces every subcommand needs, wired once in the
// root PersistentPreRunE.
type app struct {
	logger *zap.Logger
	client *solrdex.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "solrdex:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		flagEnv      string
		flagProtocol string
		flagHost     string
		flagPort     int
		flagLevel    string
	)

	root := &cobra.Command{
		Use:           "solrdex",
		Short:         "Manage and query an Apache Solr node",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env := flagEnv
			if env == "" {
				env = config.GetEnv()
			}
			cfg, err := config.Load(env)
			if err != nil {
				// No config file is fine; flags and defaults take over.
				cfg = config.Config{}
				cfg.ApplyDefaults()
			}

			// Flags override the config file.
			if cmd.Flags().Changed("protocol") {
				cfg.Solr.Protocol = flagProtocol
			}
			if cmd.Flags().Changed("host") {
				cfg.Solr.Host = flagHost
			}
			if cmd.Flags().Changed("port") {
				cfg.Solr.Port = flagPort
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = flagLevel
			}

			a.logger, err = logpkg.NewLogger(env, cfg.Logging.Level)
			if err != nil {
				return err
			}

			a.client, err = solrdex.New(cfg.Solr.Protocol, cfg.Solr.Host, cfg.Solr.Port)
			if err != nil {
				return err
			}

			a.logger.Debug("client ready",
				zap.String("protocol", cfg.Solr.Protocol),
				zap.String("host", cfg.Solr.Host),
				zap.Int("port", cfg.Solr.Port),
			)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagEnv, "env", "", "config environment name (default from ENV, then local)")
	pf.StringVar(&flagProtocol, "protocol", "http", "node protocol, http or https")
	pf.StringVar(&flagHost, "host", "localhost", "node host")
	pf.IntVar(&flagPort, "port", 8983, "node port")
	pf.StringVar(&flagLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newInfoCmd(a),
		newClusterCmd(a),
		newCollectionsCmd(a),
		newSchemaCmd(a),
		newIndexCmd(a),
		newQueryCmd(a),
	)
	return root
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show node mode and version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.client.SystemInfo(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}
}

func newClusterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cluster",
		Short: "Show collections with their shard and replica layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := a.client.ClusterStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(status)
		},
	}
}

func newCollectionsCmd(a *app) *cobra.Command {
	collections := &cobra.Command{
		Use:   "collections",
		Short: "Administer collections",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List collection names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := a.client.Collections().Names(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}

	var (
		shards      int
		replication int
		routerField string
		configSet   string
	)
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := a.client.Collections().Create(args[0])
			if shards > 0 {
				builder.NumShards(shards)
			}
			if replication > 0 {
				builder.ReplicationFactor(replication)
			}
			if routerField != "" {
				builder.RouterField(routerField)
			}
			if configSet != "" {
				builder.ConfigSet(configSet)
			}
			col, err := builder.Commit(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info("collection created", zap.String("name", col.Name()))
			return nil
		},
	}
	create.Flags().IntVar(&shards, "shards", 0, "number of shards")
	create.Flags().IntVar(&replication, "replication", 0, "replication factor")
	create.Flags().StringVar(&routerField, "router-field", "", "route documents by this field")
	create.Flags().StringVar(&configSet, "config-set", "", "config set to create from")

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Collections().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.logger.Info("collection deleted", zap.String("name", args[0]))
			return nil
		},
	}

	collections.AddCommand(list, create, del)
	return collections
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema COLLECTION",
		Short: "Show the schema of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.Collection(args[0]).Schema().Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}
}

func newIndexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index COLLECTION FILE",
		Short: "Index a JSON document or array of documents from a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var payload any
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("parse %s: %w", args[1], err)
			}

			// Documents without an id get one assigned.
			switch docs := payload.(type) {
			case map[string]any:
				ensureID(docs)
			case []any:
				for _, el := range docs {
					if doc, ok := el.(map[string]any); ok {
						ensureID(doc)
					}
				}
			}

			col := a.client.Collection(args[0]).Add(payload)
			pending := col.Pending()
			if err := col.Commit(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("documents indexed",
				zap.String("collection", args[0]),
				zap.Int("count", pending),
			)
			return nil
		},
	}
}

func ensureID(doc map[string]any) {
	if _, ok := doc["id"]; !ok {
		doc["id"] = uuid.NewString()
	}
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		rows   int
		start  int
		sortBy string
		fields string
		filter string
	)
	cmd := &cobra.Command{
		Use:   "query COLLECTION Q",
		Short: "Run a query and print matching documents as JSON lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := a.client.Collection(args[0]).Search().Query(args[1])
			if rows > 0 {
				q.Rows(rows)
			}
			if start > 0 {
				q.Start(start)
			}
			if sortBy != "" {
				q.Sort(sortBy)
			}
			if fields != "" {
				q.FieldList(fields)
			}
			if filter != "" {
				q.FilterQuery(filter)
			}

			docs, err := q.Commit(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			for _, doc := range docs {
				if err := enc.Encode(doc); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "maximum number of documents")
	cmd.Flags().IntVar(&start, "start", 0, "result offset")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort clause, e.g. 'age desc'")
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated field list")
	cmd.Flags().StringVar(&filter, "filter", "", "filter query")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
