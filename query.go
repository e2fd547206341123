package solrdex

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/solrdex/internal/urlenc"
)

// queryParamOrder fixes the order parameters are joined in, so the same
// builder state always produces the same request path.
var queryParamOrder = []string{
	"q", "defType", "sort", "start", "rows", "fq", "fl", "debug",
	"explainOther", "timeAllowed", "segmentTerminateEarly", "omitHeader",
	"wt", "cache", "logParamsList", "echoParams",
}

// Query accumulates search parameters and executes a select request.
// Text parameters are percent-encoded as they are set; numeric and
// boolean parameters are stored in their literal text form. The builder
// stays usable after Commit: setters keep mutating the current state
// and every Commit recomputes the path from it.
//
// A Query is not safe for concurrent use.
type Query struct {
	rest       doer
	obs        *observer
	collection string
	params     map[string]string
}

func (q *Query) set(param, value string) *Query {
	q.params[param] = urlenc.Encode(value)
	return q
}

func (q *Query) setLiteral(param, value string) *Query {
	q.params[param] = value
	return q
}

// Query sets the main query string, written in Solr query syntax.
func (q *Query) Query(text string) *Query { return q.set("q", text) }

// Structured compiles a structured query tree and installs the result
// as the main query string.
func (q *Query) Structured(node Node) error {
	compiled, err := Compile(node)
	if err != nil {
		return opErr("query.compile", err)
	}
	q.Query(compiled)
	return nil
}

// DefType selects the query parser, e.g. "edismax".
func (q *Query) DefType(t string) *Query { return q.set("defType", t) }

// Sort orders results, e.g. "score desc, date asc".
func (q *Query) Sort(s string) *Query { return q.set("sort", s) }

// Start skips the first n results.
func (q *Query) Start(n int) *Query { return q.setLiteral("start", strconv.Itoa(n)) }

// Rows limits the number of returned documents.
func (q *Query) Rows(n int) *Query { return q.setLiteral("rows", strconv.Itoa(n)) }

// FilterQuery restricts results without influencing scores.
func (q *Query) FilterQuery(fq string) *Query { return q.set("fq", fq) }

// FieldList limits which stored fields are returned.
func (q *Query) FieldList(fl string) *Query { return q.set("fl", fl) }

// Debug requests debugging information in the response.
func (q *Query) Debug(mode string) *Query { return q.set("debug", mode) }

// ExplainOther explains how listed documents would have scored.
func (q *Query) ExplainOther(eo string) *Query { return q.set("explainOther", eo) }

// TimeAllowed aborts the search after the given number of milliseconds.
func (q *Query) TimeAllowed(ms int) *Query { return q.setLiteral("timeAllowed", strconv.Itoa(ms)) }

// SegmentTerminateEarly lets segments terminate early when sorted by
// the merge-policy sort.
func (q *Query) SegmentTerminateEarly(v bool) *Query {
	return q.setLiteral("segmentTerminateEarly", strconv.FormatBool(v))
}

// OmitHeader drops the responseHeader from the response.
func (q *Query) OmitHeader(v bool) *Query {
	return q.setLiteral("omitHeader", strconv.FormatBool(v))
}

// WriterType selects the response format, e.g. "json".
func (q *Query) WriterType(wt string) *Query { return q.set("wt", wt) }

// Cache disables result caching when set to false.
func (q *Query) Cache(v bool) *Query { return q.setLiteral("cache", strconv.FormatBool(v)) }

// LogParamsList limits which parameters Solr logs for this request.
func (q *Query) LogParamsList(l string) *Query { return q.set("logParamsList", l) }

// EchoParams controls which parameters are echoed in the header.
func (q *Query) EchoParams(e string) *Query { return q.set("echoParams", e) }

// Commit executes the select request and returns the matching
// documents. Without a query string it fails with ErrMissingQuery
// before any network call; a response without a response.docs array
// fails with ErrMalformedResponse.
func (q *Query) Commit(ctx context.Context) (_ []map[string]any, err error) {
	start := time.Now()
	defer func() { q.obs.observe("query.commit", start, err) }()

	if _, ok := q.params["q"]; !ok {
		err = ErrMissingQuery
		return nil, opErr("query.commit", err)
	}

	var path strings.Builder
	path.WriteString(q.collection)
	path.WriteString("/select?")
	first := true
	for _, k := range queryParamOrder {
		v, ok := q.params[k]
		if !ok {
			continue
		}
		if !first {
			path.WriteByte('&')
		}
		first = false
		path.WriteString(k)
		path.WriteByte('=')
		path.WriteString(v)
	}

	body, err := q.rest.Get(ctx, path.String())
	if err != nil {
		return nil, opErr("query.commit", err)
	}

	response, ok := body["response"].(map[string]any)
	if !ok {
		err = fmt.Errorf("%w: no response object", ErrMalformedResponse)
		return nil, opErr("query.commit", err)
	}
	rawDocs, ok := response["docs"].([]any)
	if !ok {
		err = fmt.Errorf("%w: no response.docs array", ErrMalformedResponse)
		return nil, opErr("query.commit", err)
	}

	docs := make([]map[string]any, 0, len(rawDocs))
	for _, raw := range rawDocs {
		doc, ok := raw.(map[string]any)
		if !ok {
			err = fmt.Errorf("%w: response.docs element is not an object", ErrMalformedResponse)
			return nil, opErr("query.commit", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
