package seed

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/peoplehub/internal/geo"
	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
	"gitlab.com/dirk.krummacker/peoplehub/internal/store"
)

const sampleResponse = `{"results": [
	{"login": {"uuid": "u-1"}, "name": {"first": "Léa", "last": "Martin"},
	 "dob": {"date": "1990-04-12T08:15:00.000Z", "age": 36}, "email": "lea.martin@example.com",
	 "phone": "01-23-45-67-89", "location": {"street": {"number": 12, "name": "rue Nationale"}},
	 "picture": {"thumbnail": "t1", "medium": "m1", "large": "l1"}},
	{"login": {"uuid": "u-2"}, "name": {"first": "Hugo", "last": "Bernard"},
	 "dob": {"date": "1985-11-30T10:00:00.000Z", "age": 40}, "email": "hugo.bernard@example.com",
	 "phone": "04-56-78-90-12", "location": {"street": {"number": 3, "name": "place du Marché"}}},
	{"login": {"uuid": "u-3"}, "name": {"first": "Inès", "last": "Petit"},
	 "dob": {"date": "2001-01-05T00:00:00.000Z", "age": 25}, "email": "ines.petit@example.com",
	 "phone": "06-11-22-33-44", "location": {"street": {"number": 7, "name": "avenue Foch"}}}
]}`

// newServer starts a randomuser.me stand-in answering every request with body.
func newServer(t *testing.T, status int, body string) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "50", r.URL.Query().Get("results"))
		assert.Equal(t, "fr", r.URL.Query().Get("nat"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newSeeder(s *store.Store, url string) *Seeder {
	return NewSeeder(s, NewHTTPFetcher(url, 0, "", time.Second), rand.New(rand.NewPCG(5, 6)))
}

// TestSeedMapsRecords verifies the mapping of randomuser.me records to people.
func TestSeedMapsRecords(t *testing.T) {
	ts := newServer(t, http.StatusOK, sampleResponse)
	s := store.New(model.InitialState())
	defer s.Close()

	require.True(t, newSeeder(s, ts.URL).Seed(context.Background()))
	people := s.State().People
	require.Len(t, people, 3)

	first := people[0]
	assert.Equal(t, "u-1", first.Id)
	assert.Equal(t, "Léa Martin", first.Name)
	assert.Equal(t, "lea.martin@example.com", first.Email)
	require.NotNil(t, first.Age)
	assert.Equal(t, 36, *first.Age)
	assert.Equal(t, "1990-04-12", first.BirthDate)
	assert.Equal(t, "01 23 45 67 89", first.Phone)
	assert.Equal(t, Company, first.Company)
	assert.Contains(t, Jobs, first.Job)
	assert.Empty(t, first.Notes)
	assert.NotEmpty(t, first.AvatarColor)
	assert.Equal(t, &model.Picture{Thumbnail: "t1", Medium: "m1", Large: "l1"}, first.Picture)
	assert.Regexp(t, `^12 rue Nationale, `, first.Address)
	assert.True(t, geo.KnownCity(first.Coordinates))

	assert.True(t, people[0].IsFavorite)
	assert.True(t, people[1].IsFavorite)
	assert.False(t, people[2].IsFavorite)
	assert.Nil(t, people[1].Picture)
	for _, p := range people {
		assert.True(t, p.TagOrEmpty().Valid())
	}
}

// TestSeedSkipsWhenPeoplePresent verifies that the remote API is not called when people exist.
func TestSeedSkipsWhenPeoplePresent(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	s := store.New(model.State{People: []model.Person{{Id: "1", Name: "Aaron"}}})
	defer s.Close()

	assert.False(t, newSeeder(s, ts.URL).Seed(context.Background()))
	assert.False(t, called)
	assert.Len(t, s.State().People, 1)
}

// TestSeedFailuresLeaveListEmpty verifies that failed or malformed responses are only logged.
func TestSeedFailuresLeaveListEmpty(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"ServerError", http.StatusInternalServerError, ""},
		{"NotFound", http.StatusNotFound, "not here"},
		{"Malformed", http.StatusOK, `{"results": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newServer(t, tt.status, tt.body)
			s := store.New(model.InitialState())
			defer s.Close()

			assert.False(t, newSeeder(s, ts.URL).Seed(context.Background()))
			assert.Empty(t, s.State().People)
		})
	}
}

// stubFetcher returns a fixed body and creates a person while the request is "in flight".
type stubFetcher struct {
	store *store.Store
	body  string
}

func (f stubFetcher) Fetch(context.Context) (io.ReadCloser, error) {
	f.store.Dispatch(store.AddPerson{Person: model.Person{Id: "local", Name: "Zoé"}})
	return io.NopCloser(strings.NewReader(f.body)), nil
}

// TestSeedDoesNotOverwriteConcurrentCreate verifies that a person created during the fetch is kept.
func TestSeedDoesNotOverwriteConcurrentCreate(t *testing.T) {
	s := store.New(model.InitialState())
	defer s.Close()

	seeder := NewSeeder(s, stubFetcher{store: s, body: sampleResponse}, nil)
	assert.False(t, seeder.Seed(context.Background()))
	people := s.State().People
	require.Len(t, people, 1)
	assert.Equal(t, "local", people[0].Id)
}

// TestHTTPFetcherTimeout ensures the fetcher respects context deadlines.
func TestHTTPFetcherTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := NewHTTPFetcher(ts.URL, 0, "", 0).Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestHTTPFetcherRejectsScheme enforces HTTP and HTTPS only.
func TestHTTPFetcherRejectsScheme(t *testing.T) {
	_, err := NewHTTPFetcher("ftp://example.com/api", 0, "", 0).Fetch(context.Background())
	assert.ErrorContains(t, err, "unsupported seed url scheme")
}
