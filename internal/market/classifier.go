package market

import "strings"

// Classifier maps an (origin, destination) pair to a haul class using a
// fixed city-name heuristic.
type Classifier struct {
	international []string
	majorHubs     []string
}

// NewClassifier creates a classifier backed by the catalog's city tables
func NewClassifier(catalog *Catalog) *Classifier {
	return &Classifier{
		international: catalog.InternationalCities,
		majorHubs:     catalog.MajorHubs,
	}
}

// Classify buckets the route. Matching is raw substring search against the
// concatenated city names, with no case or whitespace normalization:
//  1. any international city name present => long haul
//  2. else every major hub name present  => medium haul
//  3. otherwise                          => short haul
//
// Rule 2 requires all hubs to match at once and is only reachable for
// degenerate inputs. It is kept as-is for compatibility; switching it to
// any-of matching would reclassify existing routes.
func (c *Classifier) Classify(fromCity, toCity string) HaulClass {
	combined := fromCity + toCity

	for _, city := range c.international {
		if strings.Contains(combined, city) {
			return HaulLong
		}
	}

	allHubs := len(c.majorHubs) > 0
	for _, city := range c.majorHubs {
		if !strings.Contains(combined, city) {
			allHubs = false
			break
		}
	}
	if allHubs {
		return HaulMedium
	}

	return HaulShort
}
