package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gitlab.com/dirk.krummacker/peoplehub/internal/command"
	"gitlab.com/dirk.krummacker/peoplehub/internal/geo"
	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
)

// Company is the company every seeded person works for.
const Company = "API Corp"

// seededFavorites is the number of leading records marked as favorite.
const seededFavorites = 2

// Jobs are assigned at random to seeded people.
var Jobs = []string{"Développeur", "Designer", "Manager", "Commercial", "Consultant"}

// response is the subset of the randomuser.me payload that is used.
type response struct {
	Results []user `json:"results"`
}

type user struct {
	Login struct {
		UUID string `json:"uuid"`
	} `json:"login"`
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Dob struct {
		Date string `json:"date"`
		Age  int    `json:"age"`
	} `json:"dob"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location struct {
		Street struct {
			Number int    `json:"number"`
			Name   string `json:"name"`
		} `json:"street"`
	} `json:"location"`
	Picture *model.Picture `json:"picture"`
}

// toPerson maps the i-th record to a Person. Job, city, avatar color and tag are drawn from rng.
func (u user) toPerson(i int, rng *rand.Rand) model.Person {
	city := geo.RandomCity(rng)
	coordinates := city.Coordinates()
	age := u.Dob.Age
	p := model.Person{
		Id:          u.Login.UUID,
		Name:        fmt.Sprintf("%s %s", u.Name.First, u.Name.Last),
		Email:       u.Email,
		Age:         &age,
		Phone:       strings.ReplaceAll(u.Phone, "-", " "),
		Job:         Jobs[rng.IntN(len(Jobs))],
		Company:     Company,
		Address:     fmt.Sprintf("%d %s, %s", u.Location.Street.Number, u.Location.Street.Name, city.Name),
		Coordinates: &coordinates,
		AvatarColor: command.AvatarColors[rng.IntN(len(command.AvatarColors))],
		IsFavorite:  i < seededFavorites,
		Picture:     u.Picture,
	}
	if len(u.Dob.Date) >= len("2006-01-02") {
		p.BirthDate = u.Dob.Date[:len("2006-01-02")]
	}
	if rng.Float64() > 0.5 {
		tag := model.AllTags[rng.IntN(len(model.AllTags))]
		p.Tag = &tag
	}
	return p
}
