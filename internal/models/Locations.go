package models

import "strings"

// DefaultLocations is the allow-list shipped with the service.
var DefaultLocations = Locations{"Delhi", "Moscow", "Paris", "New York", "Sydney", "Riyadh"}

// Locations is an ordered allow-list of city names. Matching is exact and case-sensitive.
type Locations []string

func (l Locations) Contains(name string) bool {
	for _, loc := range l {
		if loc == name {
			return true
		}
	}
	return false
}

func (l Locations) String() string {
	return strings.Join(l, ", ")
}
