package geo

import (
	"math"
	"math/rand/v2"

	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
)

// City is a place that addresses are attached to.
type City struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Coordinates returns the location of the city.
func (c City) Coordinates() model.Coordinates {
	return model.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}

// Cities are the French cities that contacts are placed in.
var Cities = []City{
	{"Paris", 48.8566, 2.3522},
	{"Marseille", 43.2965, 5.3698},
	{"Lyon", 45.7640, 4.8357},
	{"Toulouse", 43.6047, 1.4442},
	{"Nice", 43.7102, 7.2620},
	{"Nantes", 47.2184, -1.5536},
	{"Strasbourg", 48.5734, 7.7521},
	{"Montpellier", 43.6108, 3.8767},
	{"Bordeaux", 44.8378, -0.5792},
	{"Lille", 50.6292, 3.0573},
	{"Rennes", 48.1173, -1.6778},
	{"Reims", 49.2583, 4.0317},
	{"Le Havre", 49.4944, 0.1079},
	{"Saint-Étienne", 45.4397, 4.3872},
	{"Toulon", 43.1242, 5.928},
}

// tolerance is the maximum distance in degrees per axis for coordinates to count as a city.
const tolerance = 0.01

// RandomCity picks a city using the given random source.
func RandomCity(rng *rand.Rand) City {
	return Cities[rng.IntN(len(Cities))]
}

// KnownCity returns true if the coordinates lie at one of the cities.
func KnownCity(c *model.Coordinates) bool {
	if c == nil {
		return false
	}
	for _, city := range Cities {
		if math.Abs(city.Latitude-c.Latitude) < tolerance && math.Abs(city.Longitude-c.Longitude) < tolerance {
			return true
		}
	}
	return false
}
