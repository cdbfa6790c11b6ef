package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"gitlab.com/dirk.krummacker/peoplehub/internal/geo"
	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
)

// DefaultKey is the slot the people list is stored under.
const DefaultKey = "contact_app_state"

// snapshot is the stored document. Only the people list is persisted.
type snapshot struct {
	People []model.Person `json:"people"`
}

// Adapter loads and saves the people list.
type Adapter struct {
	slot    Slot
	key     string
	rng     *rand.Rand
	metrics *Metrics
	log     *slog.Logger
}

// NewAdapter creates an adapter storing under key in slot. The random source places people whose
// coordinates need migration; nil uses a randomly seeded source. Metrics may be nil.
func NewAdapter(slot Slot, key string, rng *rand.Rand, metrics *Metrics) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Adapter{
		slot:    slot,
		key:     key,
		rng:     rng,
		metrics: metrics,
		log:     slog.With("component", "persist", "slot", key),
	}
}

// Load returns the persisted people list. The boolean is false when there is no usable persisted
// state: nothing stored yet, an unreadable store or a corrupt document. Such failures are only
// logged.
func (a *Adapter) Load(ctx context.Context) ([]model.Person, bool) {
	data, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, ErrSlotEmpty) {
		a.log.Info("no persisted state")
		return nil, false
	}
	if err != nil {
		a.log.Error("load state failed", "error", err)
		a.metrics.countFailure("load")
		return nil, false
	}
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		a.log.Error("load state failed", "error", err)
		a.metrics.countFailure("load")
		return nil, false
	}
	if s.People == nil {
		return nil, false
	}
	people := a.migrateCoordinates(s.People)
	a.log.Info("state loaded", "people", len(people))
	return people, true
}

// migrateCoordinates moves every person whose coordinates are not those of a known city to a
// random known city. The street part of the address is kept and the city name replaced.
func (a *Adapter) migrateCoordinates(people []model.Person) []model.Person {
	migrated := 0
	for i := range people {
		if geo.KnownCity(people[i].Coordinates) {
			continue
		}
		city := geo.RandomCity(a.rng)
		street, _, _ := strings.Cut(people[i].Address, ",")
		people[i].Address = fmt.Sprintf("%s, %s", street, city.Name)
		coordinates := city.Coordinates()
		people[i].Coordinates = &coordinates
		migrated++
	}
	if migrated > 0 {
		a.log.Info("coordinates migrated", "people", migrated)
	}
	return people
}

// Save stores the people list.
func (a *Adapter) Save(ctx context.Context, people []model.Person) error {
	data, err := json.Marshal(snapshot{People: people})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return a.slot.Put(ctx, a.key, data)
}
