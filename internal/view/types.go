package view

import "gitlab.com/dirk.krummacker/peoplehub/internal/model"

// Group is a run of people whose names start with the same letter.
type Group struct {
	Letter string         `json:"letter"`
	People []model.Person `json:"people"`
}

// Birthday is a person together with the number of days until their next birthday.
type Birthday struct {
	model.Person
	DaysUntilBirthday int `json:"daysUntilBirthday"`
}

// TagCount is the number of people filed under a tag. The empty tag counts people without one.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// AgeBracket is the number of people whose age falls into [Min, Max). Max is 0 for the open
// bracket at the top.
type AgeBracket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max,omitempty"`
	Count int    `json:"count"`
}

// Dashboard holds the aggregate figures about the people list.
type Dashboard struct {
	Total             int          `json:"total"`
	Favorites         int          `json:"favorites"`
	AverageAge        int          `json:"averageAge"`
	Companies         int          `json:"companies"`
	Tags              []TagCount   `json:"tags"`
	AgeBrackets       []AgeBracket `json:"ageBrackets"`
	UpcomingBirthdays []Birthday   `json:"upcomingBirthdays"`
}
