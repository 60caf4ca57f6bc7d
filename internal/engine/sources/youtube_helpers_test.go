package sources

import (
	"context"
	"sync"
	"testing"
)

func mustTree(t *testing.T, src string) *Node {
	t.Helper()
	n, err := DecodeTree([]byte(src))
	if err != nil {
		t.Fatalf("DecodeTree(%s): %v", src, err)
	}
	return n
}

// stubFetch replaces the page fetcher for one test and records requested URLs.
type stubFetch struct {
	mu   sync.Mutex
	urls []string
}

func (s *stubFetch) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.urls...)
}

func useStubFetch(t *testing.T, fn func(url string) (string, error)) *stubFetch {
	t.Helper()
	s := &stubFetch{}
	prev := fetchDocument
	fetchDocument = func(_ context.Context, url string) (string, error) {
		s.mu.Lock()
		s.urls = append(s.urls, url)
		s.mu.Unlock()
		return fn(url)
	}
	t.Cleanup(func() { fetchDocument = prev })
	return s
}

func page(assignment string) string {
	return `<!DOCTYPE html><html><head><title>YouTube</title></head><body><script nonce="x">` +
		assignment + `</script></body></html>`
}
