// Package view computes the read-only projections of the people list: the grouped and filtered
// list, the favorites strip, upcoming birthdays and the dashboard figures. Every function is pure
// and recomputes its result from the list it is given.
package view

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
)

const (
	// MaxFavorites is the number of favorites shown in the strip.
	MaxFavorites = 3
	// BirthdayWindow is how many days ahead upcoming birthdays are looked for.
	BirthdayWindow = 30
	// MaxBirthdays is the number of upcoming birthdays shown.
	MaxBirthdays = 5
	// birthDateLayout is the ISO calendar date format of Person.BirthDate.
	birthDateLayout = "2006-01-02"
)

// sortByName sorts people by name the way a French reader expects: case and accents only break
// ties, so "alice" comes before "Amir".
func sortByName(people []model.Person) {
	// A collator keeps internal buffers and must not be shared between goroutines.
	c := collate.New(language.French)
	sort.SliceStable(people, func(i, j int) bool {
		return c.CompareString(people[i].Name, people[j].Name) < 0
	})
}

// Search returns the people that are not favorites, whose name, email or company contains the
// query (ignoring case) and, if tag is not empty, carry that tag. NoTag selects the people without a
// tag. The result is sorted by name and
// grouped by the upper-cased first letter of the name.
func Search(people []model.Person, query string, tag model.Tag) []Group {
	query = strings.ToLower(query)
	matches := make([]model.Person, 0, len(people))
	for _, p := range people {
		if p.IsFavorite {
			continue
		}
		switch tag {
		case "":
		case NoTag:
			if p.TagOrEmpty() != "" {
				continue
			}
		default:
			if p.TagOrEmpty() != tag {
				continue
			}
		}
		if !strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Email), query) &&
			!strings.Contains(strings.ToLower(p.Company), query) {
			continue
		}
		matches = append(matches, p)
	}
	sortByName(matches)

	groups := []Group{}
	index := make(map[string]int)
	for _, p := range matches {
		letter := firstLetter(p.Name)
		i, ok := index[letter]
		if !ok {
			i = len(groups)
			index[letter] = i
			groups = append(groups, Group{Letter: letter})
		}
		groups[i].People = append(groups[i].People, p)
	}
	return groups
}

// firstLetter returns the upper-cased first character of name.
func firstLetter(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// Favorites returns the favorites sorted by name, at most MaxFavorites of them.
func Favorites(people []model.Person) []model.Person {
	favorites := []model.Person{}
	for _, p := range people {
		if p.IsFavorite {
			favorites = append(favorites, p)
		}
	}
	sortByName(favorites)
	if len(favorites) > MaxFavorites {
		favorites = favorites[:MaxFavorites]
	}
	return favorites
}

// UpcomingBirthdays returns the people whose birthday is at most BirthdayWindow days after
// today, soonest first, at most MaxBirthdays of them. Days are counted on the calendar of now's
// location; a birthday earlier in the year wraps around by 365 days. People without a birth
// date, or with one that cannot be parsed, are skipped.
func UpcomingBirthdays(people []model.Person, now time.Time) []Birthday {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	upcoming := []Birthday{}
	for _, p := range people {
		born, ok := parseBirthDate(p.BirthDate)
		if !ok {
			continue
		}
		// The year of birth does not matter, only month and day.
		birthday := time.Date(today.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
		days := birthday.YearDay() - today.YearDay()
		if days < 0 {
			days += 365
		}
		if days > BirthdayWindow {
			continue
		}
		upcoming = append(upcoming, Birthday{Person: p, DaysUntilBirthday: days})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntilBirthday < upcoming[j].DaysUntilBirthday
	})
	if len(upcoming) > MaxBirthdays {
		upcoming = upcoming[:MaxBirthdays]
	}
	return upcoming
}

// parseBirthDate accepts a calendar date, optionally followed by a time part as produced by
// JavaScript's Date.toISOString.
func parseBirthDate(s string) (time.Time, bool) {
	if len(s) < len(birthDateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(birthDateLayout, s[:len(birthDateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ageBrackets are the dashboard's age ranges. A zero max means no upper bound.
var ageBrackets = []AgeBracket{
	{Label: "20-29", Min: 20, Max: 30},
	{Label: "30-39", Min: 30, Max: 40},
	{Label: "40-49", Min: 40, Max: 50},
	{Label: "50+", Min: 50},
}

// NoTag is the label of the bucket that counts people without a tag. As a search filter it selects
// them.
const NoTag = "none"

// Dashboard computes the aggregate figures of the people list.
func Dashboard(people []model.Person, now time.Time) Dashboard {
	d := Dashboard{Total: len(people)}

	tagCounts := make(map[model.Tag]int)
	companies := make(map[string]struct{})
	brackets := make([]AgeBracket, len(ageBrackets))
	copy(brackets, ageBrackets)
	ageSum, ageCount := 0, 0

	for _, p := range people {
		if p.IsFavorite {
			d.Favorites++
		}
		tagCounts[p.TagOrEmpty()]++
		if company := strings.TrimSpace(p.Company); company != "" {
			companies[company] = struct{}{}
		}
		if p.Age == nil {
			continue
		}
		age := *p.Age
		ageSum += age
		ageCount++
		for i := range brackets {
			if age >= brackets[i].Min && (brackets[i].Max == 0 || age < brackets[i].Max) {
				brackets[i].Count++
				break
			}
		}
	}

	if ageCount > 0 {
		d.AverageAge = int(math.Round(float64(ageSum) / float64(ageCount)))
	}
	d.Companies = len(companies)
	for _, tag := range model.AllTags {
		d.Tags = append(d.Tags, TagCount{Tag: string(tag), Count: tagCounts[tag]})
	}
	d.Tags = append(d.Tags, TagCount{Tag: NoTag, Count: tagCounts[""]})
	d.AgeBrackets = brackets
	d.UpcomingBirthdays = UpcomingBirthdays(people, now)
	return d
}
