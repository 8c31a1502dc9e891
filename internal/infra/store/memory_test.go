package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojanmagar2001/googlaudit/internal/domain"
)

func TestMemory_MergesSameDomain(t *testing.T) {
	m := NewMemory()

	m.RecordMain("https://a.example/one", domain.FetchResult{
		SourceURL: "https://a.example/one",
		Links:     []string{"https://goo.gl/1", "https://goo.gl/2"},
	})
	m.RecordMain("https://b.example/", domain.FetchResult{SourceURL: "https://b.example/"})
	m.RecordMain("https://A.example/two", domain.FetchResult{
		SourceURL: "https://A.example/two",
		Links:     []string{"https://goo.gl/2", "https://goo.gl/3"},
	})

	res := m.Result()
	require.Equal(t, 2, res.Len())
	assert.Equal(t, "a.example", res.Records[0].Domain)
	assert.Equal(t, "b.example", res.Records[1].Domain)

	a := res.Records[0]
	assert.Equal(t, "https://a.example/one", a.PrimaryURL)
	assert.Equal(t, []string{"https://goo.gl/1", "https://goo.gl/2", "https://goo.gl/3"}, a.MainLinks)
}

func TestMemory_SubPagesMergeIntoMainLinks(t *testing.T) {
	m := NewMemory()

	m.RecordMain("https://a.example/", domain.FetchResult{
		SourceURL: "https://a.example/",
		Links:     []string{"https://goo.gl/main"},
	})
	m.RecordSubPage("https://a.example/", domain.FetchResult{
		SourceURL: "https://a.example/access/",
		Links:     []string{"https://goo.gl/sub"},
	})
	m.RecordSubPage("https://a.example/", domain.FetchResult{
		SourceURL: "https://a.example/access.html",
	})
	m.RecordSubPage("https://a.example/", domain.FetchResult{
		SourceURL: "https://a.example/gone",
		Err:       domain.NetworkError(errors.New("404")),
	})

	rec, ok := m.Result().Get("a.example")
	require.True(t, ok)

	assert.Equal(t, []string{"https://goo.gl/main", "https://goo.gl/sub"}, rec.MainLinks)
	assert.Equal(t, []domain.SubPage{
		{URL: "https://a.example/access/", Links: []string{"https://goo.gl/sub"}},
		{URL: "https://a.example/access.html", Links: []string{}},
	}, rec.SubPages)
	assert.Empty(t, rec.Err)
}

func TestMemory_RepeatedSubPageIsMergedOnce(t *testing.T) {
	m := NewMemory()
	for _, in := range []string{"https://a.example/x", "https://a.example/y"} {
		m.RecordSubPage(in, domain.FetchResult{
			SourceURL: "https://a.example/access/",
			Links:     []string{"https://goo.gl/s"},
		})
	}

	rec, _ := m.Result().Get("a.example")
	require.Len(t, rec.SubPages, 1)
	assert.Equal(t, []string{"https://goo.gl/s"}, rec.SubPages[0].Links)
	// The first URL recorded for the domain is primary even when it came via a sub-page.
	assert.Equal(t, "https://a.example/x", rec.PrimaryURL)
}

func TestMemory_ErrorsAccumulate(t *testing.T) {
	m := NewMemory()
	m.RecordMain("not a url", domain.FetchResult{SourceURL: "not a url", Err: domain.InvalidURL("not a url")})
	m.RecordMain("https://c.example/a", domain.FetchResult{Err: domain.NetworkError(errors.New("refused"))})
	m.RecordMain("https://c.example/b", domain.FetchResult{Err: domain.NetworkError(errors.New("timeout"))})
	m.RecordMain("https://c.example/c", domain.FetchResult{Err: domain.NetworkError(errors.New("timeout"))})

	res := m.Result()
	require.Equal(t, 2, res.Len())

	assert.Equal(t, "not a url", res.Records[0].Domain)
	assert.Equal(t, "invalid URL", res.Records[0].Err)
	assert.Empty(t, res.Records[0].MainLinks)

	assert.Equal(t, "error: refused; error: timeout", res.Records[1].Err)
}

func TestMemory_ErrorsWithSharedPrefixAreBothKept(t *testing.T) {
	m := NewMemory()
	m.RecordMain("https://a.example/x/y", domain.FetchResult{
		Err: domain.NetworkError(errors.New("404 Not Found for url: https://a.example/x/y")),
	})
	m.RecordMain("https://a.example/x", domain.FetchResult{
		Err: domain.NetworkError(errors.New("404 Not Found for url: https://a.example/x")),
	})

	rec, ok := m.Result().Get("a.example")
	require.True(t, ok)
	assert.Equal(t,
		"error: 404 Not Found for url: https://a.example/x/y; error: 404 Not Found for url: https://a.example/x",
		rec.Err)
}

func TestMemory_ResultIsIndependentPerStore(t *testing.T) {
	first := NewMemory()
	first.RecordMain("https://a.example/", domain.FetchResult{Links: []string{"https://goo.gl/1"}})

	second := NewMemory()
	assert.Equal(t, 0, second.Result().Len())
	assert.Equal(t, 1, first.Result().Len())
}
