package scryfall_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmaia/cardswipe/internal/scryfall"
)

func TestRandomCard(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "abc-123",
			"name": "Shivan Dragon",
			"set": "lea",
			"set_name": "Limited Edition Alpha",
			"type_line": "Creature - Dragon",
			"rarity": "rare",
			"keywords": ["Flying"],
			"image_uris": {"normal": "https://img.example/dragon.jpg"}
		}`))
	}))
	defer server.Close()

	client := scryfall.New(server.URL, 5*time.Second)
	card, err := client.RandomCard(context.Background(), "lea")
	require.NoError(t, err)

	assert.Equal(t, "/cards/random", gotPath)
	assert.Equal(t, "is:booster e:lea", gotQuery.Get("q"))
	assert.Equal(t, "cardswipe/1.0", gotUserAgent)

	assert.Equal(t, "abc-123", card.ID)
	assert.Equal(t, "Shivan Dragon", card.Name)
	assert.Equal(t, "lea", card.SetCode)
	assert.Equal(t, []string{"Flying"}, card.Keywords)
	assert.Equal(t, "https://img.example/dragon.jpg", card.ImageURIs.Best())
}

func TestRandomCard_NoSetFilter(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"id": "abc", "name": "Card", "set": "lea"}`))
	}))
	defer server.Close()

	client := scryfall.New(server.URL, 5*time.Second)
	_, err := client.RandomCard(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "is:booster", gotQuery.Get("q"))
}

func TestRandomCard_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object": "error", "code": "not_found"}`))
	}))
	defer server.Close()

	client := scryfall.New(server.URL, 5*time.Second)
	_, err := client.RandomCard(context.Background(), "zzz")
	assert.ErrorIs(t, err, scryfall.ErrNoMatch)
}

func TestRandomCard_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`upstream down`))
	}))
	defer server.Close()

	client := scryfall.New(server.URL, 5*time.Second)
	_, err := client.RandomCard(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, scryfall.ErrNoMatch)
	assert.Contains(t, err.Error(), "503")
}

func TestSets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sets", r.URL.Path)
		w.Write([]byte(`{
			"data": [
				{"code": "neo", "name": "Kamigawa: Neon Dynasty", "released_at": "2022-02-18", "card_count": 302},
				{"code": "tok", "name": "Token Set", "card_count": 0}
			]
		}`))
	}))
	defer server.Close()

	client := scryfall.New(server.URL, 5*time.Second)
	sets, err := client.Sets(context.Background())
	require.NoError(t, err)

	require.Len(t, sets, 2)
	assert.Equal(t, "neo", sets[0].Code)
	assert.Equal(t, "2022-02-18", sets[0].ReleasedAt)
	assert.Equal(t, 302, sets[0].CardCount)
}

func TestRequestsAreRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "abc", "name": "Card", "set": "lea"}`))
	}))
	defer server.Close()

	client := scryfall.New(server.URL, 5*time.Second)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.RandomCard(ctx, "")
		require.NoError(t, err)
	}
	// The first request spends the initial token; the next two wait.
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestRandomCard_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "abc", "name": "Card", "set": "lea"}`))
	}))
	defer server.Close()

	client := scryfall.New(server.URL, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.RandomCard(ctx, "")
	assert.Error(t, err)
}

func TestImageURIsBest(t *testing.T) {
	assert.Equal(t, "", (*scryfall.ImageURIs)(nil).Best())
	assert.Equal(t, "n", (&scryfall.ImageURIs{Normal: "n", Large: "l", PNG: "p"}).Best())
	assert.Equal(t, "l", (&scryfall.ImageURIs{Large: "l", PNG: "p"}).Best())
	assert.Equal(t, "p", (&scryfall.ImageURIs{PNG: "p"}).Best())
}
