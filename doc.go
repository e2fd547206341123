// Package solrdex provides a Go client for the Apache Solr HTTP API:
// collection administration, schema mutation, document ingestion and
// query execution.
//
// Builders accumulate state locally and flush it in one request:
//
//	client, _ := solrdex.New("http", "localhost", 8983)
//
//	users, _ := client.Collections().Create("users").
//	    NumShards(2).
//	    AddField(solrdex.StringField("name").MustBuild()).
//	    AddField(solrdex.NumericField("age").MustBuild()).
//	    Commit(ctx)
//
//	users.Add(map[string]any{"name": "Some", "age": 19})
//	users.Add(map[string]any{"name": "Dude", "age": 21})
//	_ = users.Commit(ctx)
//
// Queries can be written in Solr syntax directly or compiled from a
// structured boolean tree:
//
//	q := users.Search().Rows(10)
//	_ = q.Structured(solrdex.Or(
//	    solrdex.And(
//	        solrdex.Match("name", "Some"),
//	        solrdex.Match("age", 19),
//	    ),
//	    solrdex.Match("age", 21),
//	))
//	docs, _ := q.Commit(ctx)
//
// Every failure is returned to the caller; nothing is retried. Check
// categories with errors.Is against the package sentinels, for example
// errors.Is(err, solrdex.ErrServer).
package solrdex
