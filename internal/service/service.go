package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/dirk.krummacker/peoplehub/internal/command"
	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
	"gitlab.com/dirk.krummacker/peoplehub/internal/store"
	"gitlab.com/dirk.krummacker/peoplehub/internal/view"
)

// Service exposes the people store over a REST API.
type Service struct {
	store    *store.Store
	commands *command.Commands
	gatherer prometheus.Gatherer
	now      func() time.Time
	logging  bool
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for birthday and age projections.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithGatherer sets the metrics registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Service) { s.gatherer = g }
}

// WithRequestLogging switches gin's request logging on or off. It is on by default.
func WithRequestLogging(on bool) Option {
	return func(s *Service) { s.logging = on }
}

// New creates the service for the given store and commands.
func New(s *store.Store, commands *command.Commands, opts ...Option) *Service {
	svc := &Service{
		store:    s,
		commands: commands,
		gatherer: prometheus.DefaultGatherer,
		now:      time.Now,
		logging:  true,
		log:      slog.With("component", "service"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func (s *Service) SetupHttpRouter() *gin.Engine {
	var router *gin.Engine
	if !s.logging {
		s.log.Info("Turning off HTTP request logging.")
		router = gin.New()
		router.Use(gin.Recovery())
	} else {
		router = gin.Default()
	}
	router.GET("/state", s.getState)
	router.GET("/people", s.findPeople)
	router.POST("/people", s.createPerson)
	router.GET("/people/favorites", s.findFavorites)
	router.GET("/people/birthdays", s.findBirthdays)
	router.POST("/people/parse", s.parseSignature)
	router.GET("/people/:id", s.findPersonByID)
	router.PUT("/people/:id", s.updatePersonByID)
	router.DELETE("/people/:id", s.deletePersonByID)
	router.POST("/people/:id/favorite", s.toggleFavorite)
	router.PUT("/people/:id/tag", s.setTag)
	router.GET("/dashboard", s.getDashboard)
	router.GET("/notifications", s.findNotifications)
	router.DELETE("/notifications/:id", s.dismissNotification)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	return router
}

// getState responds with the complete state: people, pending notifications and theme.
//
// Example REST API call:
//
//	> curl http://localhost:8080/state
func (s *Service) getState(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.store.State())
}

// findPeople responds with the people that are not favorites, grouped by the first letter of
// their name.
//
// The URL parameter 'search' matches case-insensitively against name, email and company. The URL
// parameter 'tag' restricts the result to one tag; 'none' selects the people without a tag.
//
// REST API calls:
//
//	> curl "http://localhost:8080/people"
//	> curl "http://localhost:8080/people?search=dupont"
//	> curl "http://localhost:8080/people?tag=Travail"
func (s *Service) findPeople(c *gin.Context) {
	tag := model.Tag(c.Query("tag"))
	if tag != view.NoTag && !tag.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid tag parameter"})
		return
	}
	groups := view.Search(s.store.State().People, c.Query("search"), tag)
	if len(groups) == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, groups)
}

// findFavorites responds with the favorites, sorted by name.
//
// Example REST API call:
//
//	> curl http://localhost:8080/people/favorites
func (s *Service) findFavorites(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, view.Favorites(s.store.State().People))
}

// findBirthdays responds with the next birthdays within the coming 30 days.
//
// Example REST API call:
//
//	> curl http://localhost:8080/people/birthdays
func (s *Service) findBirthdays(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, view.UpcomingBirthdays(s.store.State().People, s.now()))
}

// createPerson adds the person specified in the request's JSON. It responds with the full person
// including the newly assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/people --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Jean Dupont", "email": "jean@dupont.fr", "phone": "06 12 34 56 78"}'
func (s *Service) createPerson(c *gin.Context) {
	var input command.NewPerson
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	person, err := s.commands.Create(input)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, person)
}

// parseSignature recognizes a name and an email address in pasted text.
//
// Example REST API call:
//
//	> curl http://localhost:8080/people/parse --request "POST" --header "Content-Type: application/json" --data '{"text": "Nom: Jean Dupont\njean@dupont.fr"}'
func (s *Service) parseSignature(c *gin.Context) {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	c.IndentedJSON(http.StatusOK, command.ParseSignature(input.Text))
}

// findPersonByID locates the person whose ID value matches the id parameter of the request URL,
// then returns that person as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/people/2b1d4c3e-6f0a-4e5b-9c8d-7a6b5c4d3e2f
func (s *Service) findPersonByID(c *gin.Context) {
	person, found := s.store.State().FindPerson(c.Param("id"))
	if !found {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, person)
}

// updatePersonByID updates the values specified in the JSON (and only those) of the person whose
// ID value matches the id parameter of the request URL, and responds with the new version of the
// person. The favorite flag cannot be changed this way.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/people/42 --request "PUT" --include --header "Content-Type: application/json" --data '{"phone": "01 23 45 67 89"}'
//	> curl http://localhost:8080/people/42 --request "PUT" --include --header "Content-Type: application/json" --data '{"birthDate": "1972-06-06"}'
func (s *Service) updatePersonByID(c *gin.Context) {
	var patch model.PersonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}

	// It only makes sense to continue if we have at least one value to update.
	if patch.Empty() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no values to be updated"})
		return
	}

	person, err := s.commands.Update(c.Param("id"), patch)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, person)
}

// deletePersonByID deletes the person whose ID value matches the id parameter of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/people/42 --request "DELETE"
func (s *Service) deletePersonByID(c *gin.Context) {
	if err := s.commands.Delete(c.Param("id")); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

// toggleFavorite flips the favorite flag of a person. Favoriting a fourth person is refused with
// the CONFLICT status code.
//
// Example REST API call:
//
//	> curl http://localhost:8080/people/42/favorite --request "POST"
func (s *Service) toggleFavorite(c *gin.Context) {
	person, err := s.commands.ToggleFavorite(c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, person)
}

// setTag files a person under the tag in the request's JSON. Sending the tag the person already
// has, or an empty tag, removes it.
//
// Example REST API call:
//
//	> curl http://localhost:8080/people/42/tag --request "PUT" --header "Content-Type: application/json" --data '{"tag": "Famille"}'
func (s *Service) setTag(c *gin.Context) {
	var input struct {
		Tag model.Tag `json:"tag"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	person, err := s.commands.SetTag(c.Param("id"), input.Tag)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, person)
}

// getDashboard responds with the key figures of the people list.
//
// Example REST API call:
//
//	> curl http://localhost:8080/dashboard
func (s *Service) getDashboard(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, view.Dashboard(s.store.State().People, s.now()))
}

// findNotifications responds with the notifications that are currently displayed.
//
// Example REST API call:
//
//	> curl http://localhost:8080/notifications
func (s *Service) findNotifications(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.store.State().Notifications)
}

// dismissNotification removes a notification before it expires.
//
// Example REST API call:
//
//	> curl http://localhost:8080/notifications/1767225600000 --request "DELETE"
func (s *Service) dismissNotification(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return
	}
	found := false
	for _, n := range s.store.State().Notifications {
		if n.Id == id {
			found = true
			break
		}
	}
	if !found {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "notification not found"})
		return
	}
	s.commands.DismissNotification(id)
	c.IndentedJSON(http.StatusOK, gin.H{"message": "notification dismissed"})
}

// abortWithError maps a command error to the HTTP status code.
func (s *Service) abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, command.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
	case errors.Is(err, command.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, command.ErrFavoriteLimit):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
