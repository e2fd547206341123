package solrdex

import "context"

// mockDoer substitutes the wire layer. Unset handlers fail loudly so a
// test that expects zero network calls can leave them nil.
type mockDoer struct {
	getFn  func(ctx context.Context, path string) (map[string]any, error)
	postFn func(ctx context.Context, path string, body any) (map[string]any, error)

	gets  []string
	posts []postCall
}

type postCall struct {
	path string
	body any
}

func (m *mockDoer) Get(ctx context.Context, path string) (map[string]any, error) {
	m.gets = append(m.gets, path)
	if m.getFn == nil {
		panic("unexpected GET " + path)
	}
	return m.getFn(ctx, path)
}

func (m *mockDoer) Post(ctx context.Context, path string, body any) (map[string]any, error) {
	m.posts = append(m.posts, postCall{path: path, body: body})
	if m.postFn == nil {
		panic("unexpected POST " + path)
	}
	return m.postFn(ctx, path, body)
}

func (m *mockDoer) calls() int { return len(m.gets) + len(m.posts) }

// okHeader is the minimal successful Solr envelope.
func okHeader() map[string]any {
	return map[string]any{"responseHeader": map[string]any{"status": float64(0)}}
}

// --- helpers ---

func testClient(d doer) *Client {
	return &Client{rest: d}
}

func testCollection(d doer, name string) *Collection {
	return newCollection(d, nil, name)
}
