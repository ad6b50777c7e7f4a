package entity

// Place is a point of interest surfaced to the guest, either from a live
// lookup or from the static fallback list. Lat/Lon stay strings because the
// upstream geo services return them that way and the client echoes them back.
type Place struct {
	Name string `json:"name"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
	Type string `json:"type"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PlaceDetails carries the reverse-geocoded profile of a single place.
type PlaceDetails struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address"`
	Amenity string `json:"amenity,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Website string `json:"website,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Hours   string `json:"hours,omitempty"`
}
