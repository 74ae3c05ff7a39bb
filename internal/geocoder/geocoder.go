// Package geocoder defines the address-resolution collaborator used by the
// geocoder convertors.
//
// The engine ships no address dictionary. The embedding application installs
// a backend with SetBackend; the geocoder convertors check for one during
// preprocessing and fail before any record is consumed when none is present.
package geocoder

import (
	"errors"
	"strings"
	"sync"
	"unicode"
)

// ErrNotInstalled is returned when no backend has been installed.
var ErrNotInstalled = errors.New("no geocoding backend installed")

// Node is one resolved address element.
type Node struct {
	// ID is the backend-specific node identifier. IDs are stable only for
	// a fixed dictionary; swapping dictionaries changes them.
	ID int64

	Latitude  float64
	Longitude float64

	// Level is the resolution depth: 1 prefecture, 3 municipality, 4 ward
	// of a designated city, deeper values are block or building level.
	Level int

	// Fullname lists the address elements from prefecture downward.
	Fullname []string

	PrefName    string
	PrefJISCode string // 2 digits
	CityJISCode string // 5 digits

	// Local authority codes are the 6-digit variants with check digit.
	PrefAuthorityCode string
	CityAuthorityCode string

	Postcode string

	// CityName and WardName name the municipality. WardName is empty
	// unless the node lies in a ward of a designated city.
	CityName string
	WardName string
}

// Geocoder resolves address strings to nodes.
type Geocoder interface {
	// NodeByID returns the node with the given backend id, or nil when the
	// id is unknown.
	NodeByID(id int64) (*Node, error)
	// Search resolves an address string to its best candidate node, or nil
	// when nothing matches. A non-empty within list restricts candidates
	// to those prefectures or municipalities.
	Search(address string, within []string) (*Node, error)
}

var (
	mu      sync.RWMutex
	backend Geocoder
)

// SetBackend installs the process-wide geocoding backend.
// Passing nil uninstalls it.
func SetBackend(g Geocoder) {
	mu.Lock()
	backend = g
	mu.Unlock()
}

// Installed reports whether a backend is available.
func Installed() bool {
	mu.RLock()
	defer mu.RUnlock()
	return backend != nil
}

// SearchNode resolves an address string, or a numeric node id, to a node.
// Empty input and failed lookups resolve to nil without error; a missing
// backend is an error.
func SearchNode(value string, within []string) (*Node, error) {
	mu.RLock()
	g := backend
	mu.RUnlock()
	if g == nil {
		return nil, ErrNotInstalled
	}
	if value == "" {
		return nil, nil
	}

	if id, ok := parseNodeID(value); ok {
		return g.NodeByID(id)
	}

	return g.Search(stripSpaces(value), within)
}

func parseNodeID(s string) (int64, bool) {
	var id int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		id = id*10 + int64(r-'0')
	}
	return id, true
}

// stripSpaces removes all whitespace, ideographic space included.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
