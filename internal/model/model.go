package model

// Tag is the single category a person can be filed under. The empty tag means "no tag".
type Tag string

const (
	TagWork      Tag = "Travail"
	TagFamily    Tag = "Famille"
	TagFriends   Tag = "Amis"
	TagImportant Tag = "Important"
)

// AllTags lists the valid tags in display order.
var AllTags = []Tag{TagWork, TagFamily, TagFriends, TagImportant}

// Valid returns true for the empty tag and for every tag in AllTags.
func (t Tag) Valid() bool {
	if t == "" {
		return true
	}
	for _, v := range AllTags {
		if v == t {
			return true
		}
	}
	return false
}

// Picture holds externally sourced avatar URIs. It is never generated locally.
type Picture struct {
	Thumbnail string `json:"thumbnail"`
	Medium    string `json:"medium"`
	Large     string `json:"large"`
}

// Coordinates locate a person's address on a map.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Person is the data structure for a contact that we know. Id and AvatarColor are assigned at
// creation and never change afterwards.
type Person struct {
	Id          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Age         *int         `json:"age"`
	Phone       string       `json:"phone"`
	Job         string       `json:"job"`
	Company     string       `json:"company"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	BirthDate   string       `json:"birthDate,omitempty"`
	Notes       string       `json:"notes"`
	AvatarColor string       `json:"avatarColor"`
	IsFavorite  bool         `json:"isFavorite"`
	Tag         *Tag         `json:"tag"`
	Picture     *Picture     `json:"picture"`
}

// TagOrEmpty returns the person's tag, or the empty tag when none is set.
func (p Person) TagOrEmpty() Tag {
	if p.Tag == nil {
		return ""
	}
	return *p.Tag
}

// PersonPatch carries the fields of a partial update. Only non-nil fields are applied. A pointer
// to an empty value clears Tag, BirthDate and Age (Age uses a zero value to clear).
type PersonPatch struct {
	Name        *string      `json:"name,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Age         *int         `json:"age,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Job         *string      `json:"job,omitempty"`
	Company     *string      `json:"company,omitempty"`
	Address     *string      `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	BirthDate   *string      `json:"birthDate,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	IsFavorite  *bool        `json:"isFavorite,omitempty"`
	Tag         *Tag         `json:"tag,omitempty"`
	Picture     *Picture     `json:"picture,omitempty"`
}

// Empty returns true if the patch does not carry a single field.
func (p PersonPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil && p.Phone == nil && p.Job == nil &&
		p.Company == nil && p.Address == nil && p.Coordinates == nil && p.BirthDate == nil &&
		p.Notes == nil && p.IsFavorite == nil && p.Tag == nil && p.Picture == nil
}

// Apply returns a copy of the person with every non-nil patch field written over it.
func (p PersonPatch) Apply(person Person) Person {
	if p.Name != nil {
		person.Name = *p.Name
	}
	if p.Email != nil {
		person.Email = *p.Email
	}
	if p.Age != nil {
		if *p.Age == 0 {
			person.Age = nil
		} else {
			age := *p.Age
			person.Age = &age
		}
	}
	if p.Phone != nil {
		person.Phone = *p.Phone
	}
	if p.Job != nil {
		person.Job = *p.Job
	}
	if p.Company != nil {
		person.Company = *p.Company
	}
	if p.Address != nil {
		person.Address = *p.Address
	}
	if p.Coordinates != nil {
		coordinates := *p.Coordinates
		person.Coordinates = &coordinates
	}
	if p.BirthDate != nil {
		person.BirthDate = *p.BirthDate
	}
	if p.Notes != nil {
		person.Notes = *p.Notes
	}
	if p.IsFavorite != nil {
		person.IsFavorite = *p.IsFavorite
	}
	if p.Tag != nil {
		if *p.Tag == "" {
			person.Tag = nil
		} else {
			tag := *p.Tag
			person.Tag = &tag
		}
	}
	if p.Picture != nil {
		picture := *p.Picture
		person.Picture = &picture
	}
	return person
}

// Kind distinguishes informational notifications from error notifications.
type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Notification is a transient message for the user. It is never persisted.
type Notification struct {
	Id      int64  `json:"id"`
	Message string `json:"message"`
	Kind    Kind   `json:"type"`
}

// Theme is the colour scheme of the user interface.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// State is the complete application state. Only People is persisted.
type State struct {
	People        []Person       `json:"people"`
	Notifications []Notification `json:"notifications"`
	Theme         Theme          `json:"theme"`
}

// InitialState returns the state used when nothing has been loaded yet.
func InitialState() State {
	return State{
		People:        []Person{},
		Notifications: []Notification{},
		Theme:         ThemeLight,
	}
}

// FindPerson returns the person with the given id.
func (s State) FindPerson(id string) (Person, bool) {
	for _, p := range s.People {
		if p.Id == id {
			return p, true
		}
	}
	return Person{}, false
}

// FavoriteCount returns how many people are currently marked as favorite.
func (s State) FavoriteCount() int {
	count := 0
	for _, p := range s.People {
		if p.IsFavorite {
			count++
		}
	}
	return count
}
