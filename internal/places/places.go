package places

import (
	"math"
	"math/rand"
)

// Location is a playable city with its center coordinates (degrees).
type Location struct {
	Name   string  `json:"name"`
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Region string  `json:"region"`
}

// Cities is the set of playable round targets.
var Cities = []Location{
	{Name: "Addis Ababa", Lon: 38.7685, Lat: 9.0161, Region: "Central"},
	{Name: "Dire Dawa", Lon: 41.8702, Lat: 9.6889, Region: "Eastern"},
	{Name: "Gondar", Lon: 37.4572, Lat: 12.6081, Region: "Northern"},
	{Name: "Bahir Dar", Lon: 37.3905, Lat: 11.6004, Region: "Northern"},
	{Name: "Mekelle", Lon: 39.4692, Lat: 13.4966, Region: "Northern"},
	{Name: "Hawassa", Lon: 38.5018, Lat: 7.0621, Region: "Southern"},
	{Name: "Jimma", Lon: 36.8200, Lat: 7.6667, Region: "Southwestern"},
	{Name: "Harar", Lon: 42.1186, Lat: 9.3144, Region: "Eastern"},
	{Name: "Jijiga", Lon: 42.8000, Lat: 9.3500, Region: "Eastern"},
	{Name: "Arba Minch", Lon: 37.5500, Lat: 6.0333, Region: "Southern"},
	{Name: "Shashamane", Lon: 38.6000, Lat: 7.2000, Region: "Southern"},
	{Name: "Dessie", Lon: 39.6833, Lat: 11.1333, Region: "Northern"},
	{Name: "Sodo", Lon: 37.7667, Lat: 6.8500, Region: "Southern"},
	{Name: "Debre Markos", Lon: 37.7167, Lat: 10.3333, Region: "Central"},
	{Name: "Adama", Lon: 39.2667, Lat: 8.5500, Region: "Central"},
}

// ByName looks up a city by its exact name.
func ByName(name string) (Location, bool) {
	for _, c := range Cities {
		if c.Name == name {
			return c, true
		}
	}
	return Location{}, false
}

// Random picks a random city, optionally restricted to the given names.
// Unknown names are ignored; an empty effective selection falls back to the
// full list.
func Random(selected []string) Location {
	pool := Cities
	if len(selected) > 0 {
		var filtered []Location
		for _, c := range Cities {
			for _, name := range selected {
				if c.Name == name {
					filtered = append(filtered, c)
					break
				}
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}
	return pool[rand.Intn(len(pool))]
}

// Jitter offsets in degrees: 1 degree is roughly 111 km, so the target lands
// between ~2 km and ~11 km from the city center.
const (
	minJitterDeg = 0.02
	maxJitterDeg = 0.1
)

// JitterAround returns a round target near the city center, offset by a
// random distance and bearing so the exact center is never the answer.
func JitterAround(loc Location) (lon, lat float64) {
	offset := minJitterDeg + rand.Float64()*(maxJitterDeg-minJitterDeg)
	angle := rand.Float64() * 2 * math.Pi
	return loc.Lon + offset*math.Cos(angle), loc.Lat + offset*math.Sin(angle)
}
