package places

import (
	"context"
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/entity"
)

// Area is the resolved search target for a lookup: either a free-form city
// name or exact coordinates. Coordinates win when both are present.
type Area struct {
	City   string
	Coords *entity.Coordinates
}

func (a Area) IsZero() bool {
	return a.City == "" && a.Coords == nil
}

// Result is the outcome of one lookup. Live reports whether the places came
// from the upstream geo services or from the static fallback list.
type Result struct {
	Live   bool
	Places []entity.Place
}

type IPlaces interface {
	Find(ctx context.Context, area Area, category string) (Result, error)
	Details(ctx context.Context, place entity.Place) (*entity.PlaceDetails, error)
}

// defaultFallbackPlaces is served whenever the live services fail or return
// nothing. Overridable via FALLBACK_PLACES_PATH so each property can ship
// its own list.
var defaultFallbackPlaces = []entity.Place{
	{Name: "City Museum", Lat: "0", Lon: "0", Type: "museum"},
	{Name: "Central Park", Lat: "0", Lon: "0", Type: "park"},
	{Name: "Old Town Walking Tour", Lat: "0", Lon: "0", Type: "attraction"},
	{Name: "Riverside Promenade", Lat: "0", Lon: "0", Type: "attraction"},
	{Name: "Market Square", Lat: "0", Lon: "0", Type: "marketplace"},
}

func loadFallbackPlaces(log *logrus.Logger) []entity.Place {
	path := os.Getenv("FALLBACK_PLACES_PATH")
	if path == "" {
		return defaultFallbackPlaces
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.WithFields(logrus.Fields{
			"path":  path,
			"error": err.Error(),
		}).Warn("Failed to read fallback places file, using defaults")
		return defaultFallbackPlaces
	}

	var places []entity.Place
	if err := json.Unmarshal(data, &places); err != nil || len(places) == 0 {
		log.WithFields(logrus.Fields{
			"path": path,
		}).Warn("Fallback places file is invalid, using defaults")
		return defaultFallbackPlaces
	}

	return places
}
