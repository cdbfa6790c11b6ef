package store

import "gitlab.com/dirk.krummacker/peoplehub/internal/model"

// Reduce computes the state that results from applying the action to the given state. It never
// modifies its input: whenever a slice changes, a new slice is returned. Actions that do not
// match anything, as well as unknown actions, return the input state unchanged.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetPeople:
		people := make([]model.Person, len(a.People))
		copy(people, a.People)
		state.People = people
	case AddPerson:
		people := make([]model.Person, 0, len(state.People)+1)
		people = append(people, a.Person)
		state.People = append(people, state.People...)
	case DeletePerson:
		index := indexOfPerson(state.People, a.Id)
		if index < 0 {
			return state
		}
		people := make([]model.Person, 0, len(state.People)-1)
		people = append(people, state.People[:index]...)
		state.People = append(people, state.People[index+1:]...)
	case UpdatePerson:
		index := indexOfPerson(state.People, a.Id)
		if index < 0 {
			return state
		}
		people := make([]model.Person, len(state.People))
		copy(people, state.People)
		people[index] = a.Patch.Apply(people[index])
		state.People = people
	case ToggleFavorite:
		index := indexOfPerson(state.People, a.Id)
		if index < 0 {
			return state
		}
		people := make([]model.Person, len(state.People))
		copy(people, state.People)
		people[index].IsFavorite = !people[index].IsFavorite
		state.People = people
	case AddNotification:
		notifications := make([]model.Notification, 0, len(state.Notifications)+1)
		notifications = append(notifications, state.Notifications...)
		state.Notifications = append(notifications, a.Notification)
	case RemoveNotification:
		index := -1
		for i, n := range state.Notifications {
			if n.Id == a.Id {
				index = i
				break
			}
		}
		if index < 0 {
			return state
		}
		notifications := make([]model.Notification, 0, len(state.Notifications)-1)
		notifications = append(notifications, state.Notifications[:index]...)
		state.Notifications = append(notifications, state.Notifications[index+1:]...)
	}
	return state
}

// indexOfPerson returns the position of the first person with the given id, or -1.
func indexOfPerson(people []model.Person, id string) int {
	for i, p := range people {
		if p.Id == id {
			return i
		}
	}
	return -1
}
