// Package seed fills an empty people list with generated contacts from randomuser.me.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
	"gitlab.com/dirk.krummacker/peoplehub/internal/store"
)

// Seeder loads generated people into the store once, when it holds no people.
type Seeder struct {
	store   *store.Store
	fetcher Fetcher
	rng     *rand.Rand
	log     *slog.Logger
}

// NewSeeder creates a seeder. A nil rng uses a randomly seeded source.
func NewSeeder(s *store.Store, fetcher Fetcher, rng *rand.Rand) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Seeder{
		store:   s,
		fetcher: fetcher,
		rng:     rng,
		log:     slog.With("component", "seed"),
	}
}

// Seed fetches and stores generated people if the list is empty. It returns true when people were
// stored. Failures are logged and leave the list untouched; there is no retry.
func (s *Seeder) Seed(ctx context.Context) bool {
	if len(s.store.State().People) > 0 {
		s.log.Debug("people present, seed skipped")
		return false
	}
	people, err := s.fetch(ctx)
	if err != nil {
		s.log.Error("failed to fetch users", "error", err)
		return false
	}

	seeded := false
	s.store.Transact(func(state model.State) []store.Action {
		// A person may have been created while the request was in flight.
		if len(state.People) > 0 {
			return nil
		}
		seeded = true
		return []store.Action{store.SetPeople{People: people}}
	})
	if seeded {
		s.log.Info("people seeded", "people", len(people))
	}
	return seeded
}

func (s *Seeder) fetch(ctx context.Context) ([]model.Person, error) {
	body, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r response
	if err := json.NewDecoder(body).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode seed response: %w", err)
	}
	people := make([]model.Person, 0, len(r.Results))
	for i, u := range r.Results {
		people = append(people, u.toPerson(i, s.rng))
	}
	return people, nil
}
