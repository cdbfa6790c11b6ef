package model

// Person is the data structure of a contact as the REST API sends and receives it.
// All fields with the exception of the Id and Name fields are optional.
type Person struct {
	Id          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Email       string  `json:"email,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Job         string  `json:"job,omitempty"`
	Company     string  `json:"company,omitempty"`
	Address     string  `json:"address,omitempty"`
	BirthDate   string  `json:"birthDate,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	AvatarColor string  `json:"avatarColor,omitempty"`
	IsFavorite  bool    `json:"isFavorite,omitempty"`
	Tag         *string `json:"tag,omitempty"`
}
