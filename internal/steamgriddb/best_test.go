package steamgriddb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestGridPreferredStyles(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":1,"score":2,"style":"alternate","url":"a"},
			{"id":2,"score":9,"style":"material","url":"b"},
			{"id":3,"score":9,"style":"blurred","url":"c"}
		]}`))
	})

	best := f.client().BestGrid(context.Background(), 7)
	require.NotNil(t, best)
	assert.Equal(t, 2, best.ID)

	calls := f.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "alternate,material,white_logo,blurred,no_logo", calls[0].query.Get("styles"))
	assert.Equal(t, "false", calls[0].query.Get("nsfw"))
	assert.Equal(t, "false", calls[0].query.Get("humor"))
}

func TestBestGridFallsBackToAnyStyle(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("styles") {
			_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":10,"score":-1,"style":"official","url":"x"},
			{"id":11,"score":14,"style":"official","url":"y"},
			{"id":12,"score":3,"style":"official","url":"z"}
		]}`))
	})

	best := f.client().BestGrid(context.Background(), 7)
	require.NotNil(t, best)
	assert.Equal(t, 11, best.ID)

	calls := f.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "false", calls[1].query.Get("nsfw"))
	assert.False(t, calls[1].query.Has("humor"))
	assert.False(t, calls[1].query.Has("styles"))
}

func TestBestGridNothingFound(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	assert.Nil(t, f.client().BestGrid(context.Background(), 7))
	assert.Len(t, f.calls(), 2)
}

func TestBestGridErrorIsAbsent(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Nil(t, f.client().BestGrid(context.Background(), 7))
	assert.Len(t, f.calls(), 1)
}

func TestBestGridCustomStyles(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"score":0}]}`))
	})

	require.NotNil(t, f.client(WithPreferredStyles([]string{"material"})).BestGrid(context.Background(), 1))
	assert.Equal(t, "material", f.calls()[0].query.Get("styles"))
}

func TestBestGridForTitle(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/autocomplete/Hades":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":36800,"name":"Hades"},{"id":1,"name":"Hades II"}]}`))
		case "/grids/game/36800":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":5,"score":4,"url":"https://cdn/hades.png"}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	best := f.client().BestGridForTitle(context.Background(), "Hades")
	require.NotNil(t, best)
	assert.Equal(t, "https://cdn/hades.png", best.URL)
}

func TestBestGridForTitleNoMatch(t *testing.T) {
	f := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	assert.Nil(t, f.client().BestGridForTitle(context.Background(), "Unknown"))
	assert.Len(t, f.calls(), 1)
	assert.Nil(t, f.client().BestGridForTitle(context.Background(), " "))
}

func TestTopScoredKeepsFirstOnTie(t *testing.T) {
	images := []Image{{ID: 1, Score: 5}, {ID: 2, Score: 5}, {ID: 3, Score: 1}}
	best := topScored(images)
	require.NotNil(t, best)
	assert.Equal(t, 1, best.ID)
	assert.Equal(t, 1, images[0].ID, "input must not be reordered")
	assert.Nil(t, topScored(nil))
}
