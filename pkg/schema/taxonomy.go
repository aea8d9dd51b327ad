package schema

import "strings"

// Taxonomy is one of the four independent lookup tables used to
// classify items.
type Taxonomy int

const (
	UnknownTaxonomy Taxonomy = iota
	System
	Category
	Region
	Authenticity
)

// Taxonomies lists all valid taxonomies.
var Taxonomies = []Taxonomy{System, Category, Region, Authenticity}

var taxonomyNames = map[Taxonomy]string{
	System:       "system",
	Category:     "category",
	Region:       "region",
	Authenticity: "authenticity",
}

var taxonomyTables = map[Taxonomy]string{
	System:       "Systems",
	Category:     "Categories",
	Region:       "Regions",
	Authenticity: "Authenticities",
}

// String returns the singular lowercase name of the taxonomy.
func (t Taxonomy) String() string {
	if s, ok := taxonomyNames[t]; ok {
		return s
	}
	return "unknown"
}

// Table returns the name of the lookup table. It returns an empty
// string for an unknown taxonomy.
func (t Taxonomy) Table() string {
	return taxonomyTables[t]
}

// Column returns the Items column that refers to this taxonomy.
func (t Taxonomy) Column() string {
	if t == UnknownTaxonomy || t > Authenticity {
		return ""
	}
	return t.String() + "_id"
}

// IsValid reports if the taxonomy is one of the four known ones.
func (t Taxonomy) IsValid() bool {
	_, ok := taxonomyTables[t]
	return ok
}

// ParseTaxonomy converts a name such as "system", "Systems" or
// "authenticities" to a Taxonomy.
func ParseTaxonomy(s string) (Taxonomy, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Taxonomies {
		if s == t.String() || s == strings.ToLower(t.Table()) {
			return t, true
		}
	}
	return UnknownTaxonomy, false
}
