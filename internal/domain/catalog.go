package domain

import "slices"

// CatalogEntry is one selectable option with its score contribution.
type CatalogEntry struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}

// Catalog is a fixed, ordered list of selectable options.
type Catalog []CatalogEntry

// Lookup returns the entry with the given identifier.
func (c Catalog) Lookup(id string) (CatalogEntry, bool) {
	for _, e := range c {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Weight returns the weight for id, or 0 when id does not resolve.
func (c Catalog) Weight(id string) int {
	e, _ := c.Lookup(id)
	return e.Weight
}

// Contains reports whether id resolves to an entry.
func (c Catalog) Contains(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// MaxWeight returns the largest weight in the catalog.
func (c Catalog) MaxWeight() int {
	maxWeight := 0
	for _, e := range c {
		maxWeight = max(maxWeight, e.Weight)
	}
	return maxWeight
}

// TotalWeight returns the sum of all weights in the catalog.
func (c Catalog) TotalWeight() int {
	total := 0
	for _, e := range c {
		total += e.Weight
	}
	return total
}

var symptomCatalog = Catalog{
	{ID: "diarrhea", Label: "Diarrhea", Weight: 3},
	{ID: "vomiting", Label: "Vomiting", Weight: 3},
	{ID: "fever", Label: "Fever", Weight: 2},
	{ID: "dehydration", Label: "Dehydration", Weight: 4},
	{ID: "abdominal_pain", Label: "Abdominal Pain", Weight: 2},
	{ID: "nausea", Label: "Nausea", Weight: 1},
	{ID: "fatigue", Label: "Fatigue / Weakness", Weight: 1},
	{ID: "blood_stool", Label: "Blood in Stool", Weight: 5},
}

var waterSourceCatalog = Catalog{
	{ID: "treated", Label: "Treated / Boiled Water", Weight: 0},
	{ID: "well", Label: "Private Well", Weight: 2},
	{ID: "public_well", Label: "Public / Tube Well", Weight: 3},
	{ID: "river", Label: "River / Stream", Weight: 5},
	{ID: "pond", Label: "Pond / Lake", Weight: 4},
	{ID: "unknown", Label: "Unknown Source", Weight: 3},
}

var rainfallCatalog = Catalog{
	{ID: "none", Label: "No recent rain", Weight: 0},
	{ID: "light", Label: "Light rain (1–7 days ago)", Weight: 1},
	{ID: "moderate", Label: "Moderate rain (1–3 days ago)", Weight: 2},
	{ID: "heavy", Label: "Heavy rain / flooding (last 3 days)", Weight: 4},
}

// Symptoms returns a copy of the symptom catalog.
func Symptoms() Catalog { return slices.Clone(symptomCatalog) }

// WaterSources returns a copy of the water-source catalog.
func WaterSources() Catalog { return slices.Clone(waterSourceCatalog) }

// RainfallLevels returns a copy of the recent-rainfall catalog.
func RainfallLevels() Catalog { return slices.Clone(rainfallCatalog) }

// Catalogs groups the three assessment catalogs for presentation.
type Catalogs struct {
	Symptoms       Catalog `json:"symptoms"`
	WaterSources   Catalog `json:"water_sources"`
	RainfallLevels Catalog `json:"rainfall_levels"`
}

// AllCatalogs returns copies of every assessment catalog.
func AllCatalogs() Catalogs {
	return Catalogs{
		Symptoms:       Symptoms(),
		WaterSources:   WaterSources(),
		RainfallLevels: RainfallLevels(),
	}
}

// MaxScore is the highest total an assessment can reach.
func MaxScore() int {
	return symptomCatalog.TotalWeight() + waterSourceCatalog.MaxWeight() + rainfallCatalog.MaxWeight()
}
