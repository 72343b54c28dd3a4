package producthunt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/defeedco/orbit-producthunt/pkg/lib"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves queued pages per resource and records the "older" cursor of each call.
type fakeAPI struct {
	votePages    [][]map[string]any
	commentPages [][]map[string]any
	cursors      []string
	failVotes    bool
}

func (f *fakeAPI) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("client_id") != "id" || r.PostForm.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]any{"access_token": "token", "token_type": "bearer"})
	}).Methods(http.MethodPost)

	r.HandleFunc("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] != "joebloggs" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{
			"user": map[string]any{
				"maker_of": []map[string]any{
					{"id": 123, "name": "my product1", "tagline": "ignored"},
					{"id": 456, "name": "my product2"},
				},
			},
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/posts/{id}/votes", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.failVotes {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		f.cursors = append(f.cursors, r.URL.Query().Get("older"))
		writeJSON(w, map[string]any{"votes": shift(&f.votePages)})
	}).Methods(http.MethodGet).Queries("order", "desc")

	r.HandleFunc("/posts/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		f.cursors = append(f.cursors, r.URL.Query().Get("older"))
		writeJSON(w, map[string]any{"comments": shift(&f.commentPages)})
	}).Methods(http.MethodGet).Queries("order", "desc")

	return r
}

func shift(pages *[][]map[string]any) []map[string]any {
	if len(*pages) == 0 {
		return []map[string]any{}
	}
	page := (*pages)[0]
	*pages = (*pages)[1:]
	return page
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()

	server := httptest.NewServer(api.router())
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	return NewClient(&Config{
		ClientID:     "id",
		ClientSecret: "secret",
		APIURL:       server.URL,
		Timeout:      5 * time.Second,
	}, &logger)
}

func vote(id int64) map[string]any {
	return map[string]any{
		"id":         id,
		"created_at": "2024-03-01T09:05:38.556-07:00",
		"user": map[string]any{
			"id":               456,
			"username":         "joebloggs",
			"twitter_username": "twitter_username",
			"profile_url":      "https://www.producthunt.com/@joebloggs",
		},
	}
}

func comment(id int64, children ...map[string]any) map[string]any {
	if children == nil {
		children = []map[string]any{}
	}
	return map[string]any{
		"id":             id,
		"body":           "Comment text",
		"created_at":     "2024-03-01T09:05:38.556-07:00",
		"url":            "https://www.producthunt.com/posts/example#comment",
		"user":           map[string]any{"id": 5, "username": "joebloggs"},
		"child_comments": children,
	}
}

func TestClient_Products(t *testing.T) {
	client := newTestClient(t, &fakeAPI{})

	t.Run("maps maker products", func(t *testing.T) {
		products, err := client.Products(context.Background(), "joebloggs")

		require.NoError(t, err)
		assert.Equal(t, []Product{
			{ID: 123, Name: "my product1"},
			{ID: 456, Name: "my product2"},
		}, products)
	})

	t.Run("unknown user returns upstream error", func(t *testing.T) {
		_, err := client.Products(context.Background(), "nobody")

		var upstreamErr *lib.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		var statusErr *lib.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})
}

func TestClient_Votes(t *testing.T) {
	t.Run("follows the cursor until an empty page", func(t *testing.T) {
		api := &fakeAPI{
			votePages: [][]map[string]any{
				{vote(23642909), vote(23642908)},
				{vote(23642900)},
			},
		}
		client := newTestClient(t, api)

		votes, err := client.Votes(context.Background(), "123")

		require.NoError(t, err)
		require.Len(t, votes, 3)
		assert.Equal(t, int64(23642909), votes[0].ID)
		assert.Equal(t, int64(23642900), votes[2].ID)
		assert.Equal(t, "twitter_username", votes[0].User.TwitterUsername)
		assert.Equal(t, []string{"", "23642908", "23642900"}, api.cursors)
	})

	t.Run("empty first page", func(t *testing.T) {
		api := &fakeAPI{}
		client := newTestClient(t, api)

		votes, err := client.Votes(context.Background(), "123")

		require.NoError(t, err)
		assert.Empty(t, votes)
		assert.Len(t, api.cursors, 1)
	})

	t.Run("null entries are skipped", func(t *testing.T) {
		api := &fakeAPI{
			votePages: [][]map[string]any{
				{vote(5), nil},
			},
		}
		client := newTestClient(t, api)

		votes, err := client.Votes(context.Background(), "123")

		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, int64(5), votes[0].ID)
		assert.Equal(t, []string{"", "5"}, api.cursors)
	})

	t.Run("page of only nulls ends the walk", func(t *testing.T) {
		api := &fakeAPI{
			votePages: [][]map[string]any{
				{nil},
				{vote(5)},
			},
		}
		client := newTestClient(t, api)

		votes, err := client.Votes(context.Background(), "123")

		require.NoError(t, err)
		assert.Empty(t, votes)
		assert.Len(t, api.cursors, 1)
	})

	t.Run("page failure aborts", func(t *testing.T) {
		client := newTestClient(t, &fakeAPI{failVotes: true})

		votes, err := client.Votes(context.Background(), "123")

		assert.Nil(t, votes)
		var upstreamErr *lib.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, "list votes", upstreamErr.Op)
	})
}

func TestClient_Comments(t *testing.T) {
	t.Run("null comments and replies are skipped", func(t *testing.T) {
		api := &fakeAPI{
			commentPages: [][]map[string]any{
				{comment(7, nil), nil},
			},
		}
		client := newTestClient(t, api)

		comments, err := client.Comments(context.Background(), "123")

		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, int64(7), comments[0].ID)
	})

	t.Run("single comment without children", func(t *testing.T) {
		api := &fakeAPI{
			commentPages: [][]map[string]any{
				{comment(1)},
			},
		}
		client := newTestClient(t, api)

		comments, err := client.Comments(context.Background(), "123")

		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, int64(1), comments[0].ID)
	})

	t.Run("children are flattened one level and appended last", func(t *testing.T) {
		grandchild := comment(99)
		api := &fakeAPI{
			commentPages: [][]map[string]any{
				{comment(40, comment(45, grandchild)), comment(30)},
				{comment(20, comment(25))},
			},
		}
		client := newTestClient(t, api)

		comments, err := client.Comments(context.Background(), "123")

		require.NoError(t, err)
		ids := make([]int64, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []int64{40, 30, 20, 45, 25}, ids)
		// The cursor follows top-level comments only.
		assert.Equal(t, []string{"", "30", "20"}, api.cursors)
	})
}
