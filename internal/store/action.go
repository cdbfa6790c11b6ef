package store

import "gitlab.com/dirk.krummacker/peoplehub/internal/model"

// Action is an intent to change the state. The set of actions is closed: only the types in this
// file implement it.
type Action interface {
	// Name identifies the action kind in logs and metrics.
	Name() string
	action()
}

// SetPeople replaces the whole people list.
type SetPeople struct {
	People []model.Person
}

// AddPerson puts a new person in front of the list.
type AddPerson struct {
	Person model.Person
}

// DeletePerson removes the person with the given id.
type DeletePerson struct {
	Id string
}

// UpdatePerson merges the patch onto the person with the given id.
type UpdatePerson struct {
	Id    string
	Patch model.PersonPatch
}

// ToggleFavorite flips the favorite flag of the person with the given id.
type ToggleFavorite struct {
	Id string
}

// AddNotification appends a notification. The id is assigned when the action is built so that
// reducing it is deterministic.
type AddNotification struct {
	Notification model.Notification
}

// RemoveNotification removes the notification with the given id.
type RemoveNotification struct {
	Id int64
}

func (SetPeople) Name() string          { return "set_people" }
func (AddPerson) Name() string          { return "add_person" }
func (DeletePerson) Name() string       { return "delete_person" }
func (UpdatePerson) Name() string       { return "update_person" }
func (ToggleFavorite) Name() string     { return "toggle_favorite" }
func (AddNotification) Name() string    { return "add_notification" }
func (RemoveNotification) Name() string { return "remove_notification" }

func (SetPeople) action()          {}
func (AddPerson) action()          {}
func (DeletePerson) action()       {}
func (UpdatePerson) action()       {}
func (ToggleFavorite) action()     {}
func (AddNotification) action()    {}
func (RemoveNotification) action() {}
