// Package command implements the checks that sit between a user request and the store. A command
// validates its preconditions against the current state, reports a rejection to the user as an
// error notification, and only then dispatches the state transition.
package command

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
	"gitlab.com/dirk.krummacker/peoplehub/internal/store"
	"gitlab.com/dirk.krummacker/peoplehub/internal/validation"
)

// MaxFavorites is the largest number of people that can be favorites at the same time.
const MaxFavorites = 3

var (
	// ErrNotFound is returned when no person has the requested id.
	ErrNotFound = errors.New("contact not found")
	// ErrFavoriteLimit is returned when favoriting one more person would exceed MaxFavorites.
	ErrFavoriteLimit = errors.New("favorite limit reached")
	// ErrValidation is returned when user input does not have the expected format.
	ErrValidation = errors.New("invalid format")
)

// User-facing messages.
const (
	msgInvalidFormat  = "Format invalide"
	msgSaved          = "Contact sauvegardé"
	msgFavoriteLimit  = "Nombre maximum de favoris atteint (3)"
	msgFavoriteAdded  = "Ajouté aux favoris"
	msgFavoriteRemove = "Retiré des favoris"
	msgTagUpdated     = "Tag mis à jour"
	msgAdded          = "%s a été ajouté."
	msgDeleted        = "%s a été supprimé"
)

// AvatarColors is the palette new people get their avatar color from.
var AvatarColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8",
	"#F7DC6F", "#BB8FCE", "#F1948A", "#82E0AA", "#85C1E9",
}

// Commands executes policy-checked changes against a store.
type Commands struct {
	store *store.Store
	log   *slog.Logger

	// rng picks avatar colors; *rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand

	newID func() string
}

// New creates the command layer for the given store. A nil rng uses a randomly seeded source.
func New(s *store.Store, rng *rand.Rand) *Commands {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Commands{
		store: s,
		log:   slog.With("component", "command"),
		rng:   rng,
		newID: uuid.NewString,
	}
}

// NewPerson is the input of Create. Notes typically holds text pasted into the form.
type NewPerson struct {
	Name  string     `json:"name"  validate:"required"`
	Email string     `json:"email" validate:"required,contactemail"`
	Phone string     `json:"phone" validate:"frphone"`
	Tag   *model.Tag `json:"tag"   validate:"omitempty,contacttag"`
	Notes string     `json:"notes"`
}

// Create adds a new person in front of the list.
func (c *Commands) Create(input NewPerson) (model.Person, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Struct(input); err != nil {
		return model.Person{}, c.reject(fmt.Errorf("%w: %v", ErrValidation, err))
	}

	person := model.Person{
		Id:          c.newID(),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Notes:       input.Notes,
		AvatarColor: c.avatarColor(),
	}
	if input.Tag != nil && *input.Tag != "" {
		tag := *input.Tag
		person.Tag = &tag
	}
	c.store.Dispatch(
		store.AddPerson{Person: person},
		c.store.NewNotification(fmt.Sprintf(msgAdded, person.Name), model.KindInfo),
	)
	c.log.Info("person created", "id", person.Id)
	return person, nil
}

// avatarColor picks a random color from AvatarColors.
func (c *Commands) avatarColor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return AvatarColors[c.rng.IntN(len(AvatarColors))]
}

// Delete removes the person with the given id.
func (c *Commands) Delete(id string) error {
	var err error
	c.store.Transact(func(state model.State) []store.Action {
		person, found := state.FindPerson(id)
		if !found {
			err = ErrNotFound
			return nil
		}
		return []store.Action{
			store.DeletePerson{Id: id},
			c.store.NewNotification(fmt.Sprintf(msgDeleted, person.Name), model.KindInfo),
		}
	})
	return err
}

// Update merges the patch onto the person with the given id. Email and phone must be valid and
// the tag must be known; otherwise nothing changes and an error notification is shown. A patch
// that does not change anything is accepted silently.
func (c *Commands) Update(id string, patch model.PersonPatch) (model.Person, error) {
	if err := validatePatch(patch); err != nil {
		return model.Person{}, c.reject(err)
	}
	var (
		updated model.Person
		err     error
	)
	c.store.Transact(func(state model.State) []store.Action {
		person, found := state.FindPerson(id)
		if !found {
			err = ErrNotFound
			return nil
		}
		// Favorites go through ToggleFavorite so that the ceiling is enforced.
		patch.IsFavorite = nil
		updated = patch.Apply(person)
		if equalPerson(person, updated) {
			return nil
		}
		return []store.Action{
			store.UpdatePerson{Id: id, Patch: patch},
			c.store.NewNotification(msgSaved, model.KindInfo),
		}
	})
	return updated, err
}

// validatePatch checks the fields of a patch that have a format.
func validatePatch(patch model.PersonPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if patch.Email != nil && !validation.ValidEmail(*patch.Email) {
		return fmt.Errorf("%w: email %q", ErrValidation, *patch.Email)
	}
	if patch.Phone != nil && !validation.ValidPhone(*patch.Phone) {
		return fmt.Errorf("%w: phone %q", ErrValidation, *patch.Phone)
	}
	if patch.Tag != nil && !patch.Tag.Valid() {
		return fmt.Errorf("%w: unknown tag %q", ErrValidation, *patch.Tag)
	}
	if patch.BirthDate != nil && *patch.BirthDate != "" {
		if err := validation.Var(*patch.BirthDate, "datetime=2006-01-02"); err != nil {
			return fmt.Errorf("%w: birth date %q", ErrValidation, *patch.BirthDate)
		}
	}
	if patch.Age != nil && *patch.Age < 0 {
		return fmt.Errorf("%w: age %d", ErrValidation, *patch.Age)
	}
	return nil
}

// ToggleFavorite flips the favorite flag of the person with the given id. Favoriting is refused
// with ErrFavoriteLimit when MaxFavorites people are already favorites.
func (c *Commands) ToggleFavorite(id string) (model.Person, error) {
	var (
		toggled model.Person
		err     error
	)
	c.store.Transact(func(state model.State) []store.Action {
		person, found := state.FindPerson(id)
		if !found {
			err = ErrNotFound
			return nil
		}
		if !person.IsFavorite && state.FavoriteCount() >= MaxFavorites {
			err = ErrFavoriteLimit
			return []store.Action{c.store.NewNotification(msgFavoriteLimit, model.KindError)}
		}
		message := msgFavoriteAdded
		if person.IsFavorite {
			message = msgFavoriteRemove
		}
		toggled = person
		toggled.IsFavorite = !person.IsFavorite
		return []store.Action{
			store.ToggleFavorite{Id: id},
			c.store.NewNotification(message, model.KindInfo),
		}
	})
	return toggled, err
}

// SetTag files the person under tag. Setting the tag the person already has removes it, so that
// the same request toggles the tag on and off. The empty tag removes any tag.
func (c *Commands) SetTag(id string, tag model.Tag) (model.Person, error) {
	if !tag.Valid() {
		return model.Person{}, c.reject(fmt.Errorf("%w: unknown tag %q", ErrValidation, tag))
	}
	var (
		updated model.Person
		err     error
	)
	c.store.Transact(func(state model.State) []store.Action {
		person, found := state.FindPerson(id)
		if !found {
			err = ErrNotFound
			return nil
		}
		newTag := tag
		if person.TagOrEmpty() == tag {
			newTag = ""
		}
		patch := model.PersonPatch{Tag: &newTag}
		updated = patch.Apply(person)
		return []store.Action{
			store.UpdatePerson{Id: id, Patch: patch},
			c.store.NewNotification(msgTagUpdated, model.KindInfo),
		}
	})
	return updated, err
}

// DismissNotification removes a notification before its display window ends.
func (c *Commands) DismissNotification(id int64) {
	c.store.Dispatch(store.RemoveNotification{Id: id})
}

// reject shows the invalid-format notification for validation errors and returns err.
func (c *Commands) reject(err error) error {
	if errors.Is(err, ErrValidation) {
		c.log.Debug("input rejected", "error", err)
		c.store.Notify(msgInvalidFormat, model.KindError)
	}
	return err
}

// equalPerson compares two people field by field, following pointers.
func equalPerson(a, b model.Person) bool {
	return a.Id == b.Id && a.Name == b.Name && a.Email == b.Email && equalPtr(a.Age, b.Age) &&
		a.Phone == b.Phone && a.Job == b.Job && a.Company == b.Company && a.Address == b.Address &&
		equalPtr(a.Coordinates, b.Coordinates) && a.BirthDate == b.BirthDate && a.Notes == b.Notes &&
		a.AvatarColor == b.AvatarColor && a.IsFavorite == b.IsFavorite && equalPtr(a.Tag, b.Tag) &&
		equalPtr(a.Picture, b.Picture)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
