package steamgriddb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backlogerrors "github.com/lepinkainen/backlog/internal/errors"
)

type recordedRequest struct {
	path  string
	query url.Values
}

type fakeAPI struct {
	server   *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	handler  func(w http.ResponseWriter, r *http.Request)
}

func newFakeAPI(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *fakeAPI {
	t.Helper()
	f := &fakeAPI{handler: handler}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{path: r.URL.EscapedPath(), query: r.URL.Query()})
		f.mu.Unlock()
		f.handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) client(opts ...Option) *Client {
	base := []Option{WithBaseURL(f.server.URL), WithRateLimiter(nil)}
	return NewClient("key", append(base, opts...)...)
}

func (f *fakeAPI) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func TestSearch(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":36800,"name":"Hades","types":["steam"],"verified":true,"release_date":1600300800}]}`))
	})

	games, err := f.client().Search(context.Background(), "Hades: Battle Out/Of Hell")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 36800, games[0].ID)
	assert.True(t, games[0].Verified)
	require.NotNil(t, games[0].ReleaseDate)

	calls := f.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/search/autocomplete/Hades:%20Battle%20Out%2FOf%20Hell", calls[0].path)
}

func TestMissingAPIKeyIsConfigurationError(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})
	client := NewClient("", WithBaseURL(f.server.URL), WithRateLimiter(nil))

	_, err := client.Search(context.Background(), "Hades")
	require.Error(t, err)
	assert.True(t, backlogerrors.IsConfigurationError(err))

	_, err = client.GetGrids(context.Background(), 1, Filters{})
	assert.True(t, backlogerrors.IsConfigurationError(err))

	assert.Nil(t, client.BestGrid(context.Background(), 1))
	assert.Empty(t, f.calls())
}

func TestImageEndpointsAndFilters(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"score":3,"style":"alternate","url":"https://cdn/1.png"}]}`))
	})
	client := f.client()
	yes := true

	_, err := client.GetGrids(context.Background(), 42, Filters{Styles: []string{"alternate", "blurred"}, Dimensions: []string{"600x900"}})
	require.NoError(t, err)
	_, err = client.GetHeroes(context.Background(), 42, Filters{NSFW: &yes})
	require.NoError(t, err)
	logos, err := client.GetLogos(context.Background(), 42, Filters{})
	require.NoError(t, err)
	require.Len(t, logos, 1)
	assert.Equal(t, "https://cdn/1.png", logos[0].URL)

	calls := f.calls()
	require.Len(t, calls, 3)

	assert.Equal(t, "/grids/game/42", calls[0].path)
	assert.Equal(t, "alternate,blurred", calls[0].query.Get("styles"))
	assert.Equal(t, "600x900", calls[0].query.Get("dimensions"))
	assert.False(t, calls[0].query.Has("nsfw"))
	assert.False(t, calls[0].query.Has("humor"))

	assert.Equal(t, "/heroes/game/42", calls[1].path)
	assert.Equal(t, "true", calls[1].query.Get("nsfw"))
	assert.False(t, calls[1].query.Has("styles"))

	assert.Equal(t, "/logos/game/42", calls[2].path)
	assert.Empty(t, calls[2].query)
}

func TestUnsuccessfulEnvelopeIsUpstreamError(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"errors":["Game not found"]}`))
	})

	_, err := f.client().GetGrids(context.Background(), 1, Filters{})
	require.Error(t, err)
	assert.True(t, backlogerrors.IsUpstreamError(err))
	assert.Contains(t, err.Error(), "Game not found")
}

func TestSuccessFalseWithOKStatus(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"errors":["Invalid style"]}`))
	})

	_, err := f.client().GetGrids(context.Background(), 1, Filters{Styles: []string{"bogus"}})
	require.Error(t, err)
	assert.True(t, backlogerrors.IsUpstreamError(err))
	assert.Contains(t, err.Error(), "Invalid style")
}

func TestRateLimited(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := f.client().Search(context.Background(), "x")
	assert.True(t, backlogerrors.IsRateLimitError(err))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 256))
	assert.Equal(t, "abc", truncate("abcdef", 3))

	// "é" is two bytes; cutting at 2 would split it.
	got := truncate("aé", 2)
	assert.Equal(t, "a", got)
	assert.True(t, utf8.ValidString(got))

	body := "ゲームが見つかりません"
	for n := 0; n <= len(body); n++ {
		cut := truncate(body, n)
		assert.True(t, utf8.ValidString(cut), "cut at %d", n)
		assert.LessOrEqual(t, len(cut), n)
	}
}
