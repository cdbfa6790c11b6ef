package integrationtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/peoplehub/internal/command"
	"gitlab.com/dirk.krummacker/peoplehub/internal/config"
	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
	"gitlab.com/dirk.krummacker/peoplehub/internal/persist"
	"gitlab.com/dirk.krummacker/peoplehub/internal/seed"
	"gitlab.com/dirk.krummacker/peoplehub/internal/service"
	"gitlab.com/dirk.krummacker/peoplehub/internal/store"
)

// seedResponse is what the randomuser.me stand-in answers.
const seedResponse = `{"results": [
	{"login": {"uuid": "seed-1"}, "name": {"first": "Léa", "last": "Martin"},
	 "dob": {"date": "1990-04-12T08:15:00.000Z", "age": 36}, "email": "lea.martin@example.com",
	 "phone": "01-23-45-67-89", "location": {"street": {"number": 12, "name": "rue Nationale"}}},
	{"login": {"uuid": "seed-2"}, "name": {"first": "Hugo", "last": "Bernard"},
	 "dob": {"date": "1985-11-30T10:00:00.000Z", "age": 40}, "email": "hugo.bernard@example.com",
	 "phone": "04-56-78-90-12", "location": {"street": {"number": 3, "name": "place du Marché"}}},
	{"login": {"uuid": "seed-3"}, "name": {"first": "Inès", "last": "Petit"},
	 "dob": {"date": "2001-01-05T00:00:00.000Z", "age": 25}, "email": "ines.petit@example.com",
	 "phone": "06-11-22-33-44", "location": {"street": {"number": 7, "name": "avenue Foch"}}}
]}`

// app is a running instance of the service wired the way cmd/service wires it.
type app struct {
	store  *store.Store
	writer *persist.Writer
	router *gin.Engine
	cancel context.CancelFunc
	done   chan error
	slot   persist.Slot
}

// startApp opens the configured slot, loads the persisted people, seeds from seedURL when the list
// is empty, and starts the background writer.
func startApp(t *testing.T, cfg config.Config, seedURL string) *app {
	slot, err := cfg.OpenSlot()
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	adapter := persist.NewAdapter(slot, cfg.SlotName, nil, persist.NewMetrics(reg))
	people, _ := adapter.Load(context.Background())

	s := store.New(model.State{People: people, Theme: cfg.Theme},
		store.WithNotificationTTL(cfg.NotificationTTL),
		store.WithMetrics(store.NewMetrics(reg)),
	)
	writer := persist.NewWriter(adapter)
	s.Subscribe(writer.Observe)

	ctx, cancel := context.WithCancel(context.Background())
	a := &app{store: s, writer: writer, cancel: cancel, done: make(chan error), slot: slot}
	go func() { a.done <- writer.Run(ctx) }()

	seed.NewSeeder(s, seed.NewHTTPFetcher(seedURL, 0, "", time.Second), nil).Seed(ctx)

	gin.SetMode(gin.ReleaseMode)
	a.router = service.New(s, command.New(s, nil),
		service.WithGatherer(reg),
		service.WithRequestLogging(false),
	).SetupHttpRouter()
	return a
}

// stop flushes the writer and closes the slot.
func (a *app) stop(t *testing.T) {
	a.cancel()
	require.NoError(t, <-a.done)
	a.store.Close()
	require.NoError(t, a.slot.Close())
}

// serve executes a request against the router.
func (a *app) serve(method string, url string, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(method, url, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	a.router.ServeHTTP(recorder, request)
	return recorder
}

// seedServer starts a randomuser.me stand-in and counts the requests it receives.
func seedServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(seedResponse))
	}))
	t.Cleanup(ts.Close)
	return ts
}

// configFor returns a configuration storing in a fresh file of the given driver.
func configFor(t *testing.T, driver string) config.Config {
	dir := t.TempDir()
	cfg, err := config.Parse(func(key string) string {
		switch key {
		case "STORE_DRIVER":
			return driver
		case "BOLT_PATH":
			return filepath.Join(dir, "peoplehub.db")
		case "SQLITE_PATH":
			return filepath.Join(dir, "peoplehub.sqlite")
		case "NOTIFICATION_TTL":
			return "1h"
		}
		return ""
	})
	require.NoError(t, err)
	return cfg
}

// TestPersonHappyPath tests a POST, GET, PUT, and DELETE with valid data, followed by a restart
// that must bring back the saved list without seeding again.
func TestPersonHappyPath(t *testing.T) {
	for _, driver := range []string{config.DriverBolt, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			var requests atomic.Int32
			ts := seedServer(t, &requests)
			cfg := configFor(t, driver)
			a := startApp(t, cfg, ts.URL)
			assert.Equal(t, int32(1), requests.Load())
			require.Len(t, a.store.State().People, 3)

			// test the endpoint for creating a person
			postRecorder := a.serve("POST", "/people", `
				{
					"name": "Erika Mustermann",
					"email": "erika@example.com",
					"phone": "01 23 45 67 89"
				}
			`)
			assert.Equal(t, http.StatusCreated, postRecorder.Code)
			var postBody map[string]interface{}
			json.Unmarshal(postRecorder.Body.Bytes(), &postBody)
			assert.Equal(t, "Erika Mustermann", postBody["name"])
			id, _ := postBody["id"].(string)
			require.NotEmpty(t, id)

			// test the endpoint for updating a person
			putRecorder := a.serve("PUT", "/people/"+id, `{"job": "Designer", "birthDate": "1969-03-02"}`)
			assert.Equal(t, http.StatusOK, putRecorder.Code)

			// test if a subsequent lookup of the person returns the updated values
			getRecorder := a.serve("GET", "/people/"+id, "")
			assert.Equal(t, http.StatusOK, getRecorder.Code)
			var getBody map[string]interface{}
			json.Unmarshal(getRecorder.Body.Bytes(), &getBody)
			assert.Equal(t, "Designer", getBody["job"])
			assert.Equal(t, "1969-03-02", getBody["birthDate"])

			// test the endpoint for deleting a seeded person
			deleteRecorder := a.serve("DELETE", "/people/seed-3", "")
			assert.Equal(t, http.StatusOK, deleteRecorder.Code)
			a.stop(t)

			// restart and check that the saved list is loaded instead of seeded
			restarted := startApp(t, cfg, ts.URL)
			defer restarted.stop(t)
			assert.Equal(t, int32(1), requests.Load())
			people := restarted.store.State().People
			require.Len(t, people, 3)
			assert.Equal(t, id, people[0].Id)
			assert.Equal(t, "Designer", people[0].Job)
			_, found := restarted.store.State().FindPerson("seed-3")
			assert.False(t, found)
			assert.Empty(t, restarted.store.State().Notifications)

			getFinalRecorder := restarted.serve("GET", "/people/"+id, "")
			assert.Equal(t, http.StatusOK, getFinalRecorder.Code)
		})
	}
}

// TestFavoritesSurviveRestart checks the favorite ceiling across a restart. The seed marks two
// people as favorites.
func TestFavoritesSurviveRestart(t *testing.T) {
	var requests atomic.Int32
	ts := seedServer(t, &requests)
	cfg := configFor(t, config.DriverBolt)

	a := startApp(t, cfg, ts.URL)
	assert.Equal(t, 2, a.store.State().FavoriteCount())
	postRecorder := a.serve("POST", "/people", `{"name": "Zoé", "email": "zoe@example.com"}`)
	require.Equal(t, http.StatusCreated, postRecorder.Code)
	var person model.Person
	require.NoError(t, json.Unmarshal(postRecorder.Body.Bytes(), &person))
	assert.Equal(t, http.StatusOK, a.serve("POST", "/people/"+person.Id+"/favorite", "").Code)
	a.stop(t)

	restarted := startApp(t, cfg, ts.URL)
	defer restarted.stop(t)
	assert.Equal(t, 3, restarted.store.State().FavoriteCount())
	assert.Equal(t, http.StatusConflict, restarted.serve("POST", "/people/seed-3/favorite", "").Code)
}

// TestCreatePersonInvalidBody tests a POST with different forms of invalid request body data.
func TestCreatePersonInvalidBody(t *testing.T) {
	invalidRequestBodies := []string{
		"",
		"not JSON",
		`{
			"name": "Erika Mustermann"
			"email": "erika@example.com"
		}`, // commas missing
	}

	var requests atomic.Int32
	ts := seedServer(t, &requests)
	a := startApp(t, configFor(t, config.DriverBolt), ts.URL)
	defer a.stop(t)

	for _, body := range invalidRequestBodies {
		recorder := a.serve("POST", "/people", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "request body: "+body)
	}
	assert.Len(t, a.store.State().People, 3)
}
