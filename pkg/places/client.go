package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/entity"
)

const (
	nominatimSearchURL  = "https://nominatim.openstreetmap.org/search.php"
	nominatimReverseURL = "https://nominatim.openstreetmap.org/reverse.php"
	overpassURL         = "https://overpass-api.de/api/interpreter"

	// OSM usage policy requires an identifying User-Agent with a contact.
	userAgent = "hotel-concierge/0.1 (mailto:concierge@example.com)"

	coordsRadiusMeters = 1200
	maxPlaces          = 6
)

type placesClient struct {
	http     *retryingClient
	log      *logrus.Logger
	fallback []entity.Place
}

func New(log *logrus.Logger) IPlaces {
	return &placesClient{
		http:     newRetryingClient(4*time.Second, 2, 600*time.Millisecond),
		log:      log,
		fallback: loadFallbackPlaces(log),
	}
}

// Find resolves nearby points of interest for the area. It never fails
// hard: every upstream miss or error degrades to the static fallback list
// with Live=false.
func (p *placesClient) Find(ctx context.Context, area Area, category string) (Result, error) {
	if area.IsZero() {
		return Result{Live: false, Places: p.fallback}, nil
	}

	if area.Coords != nil {
		return p.findByCoords(ctx, *area.Coords, category), nil
	}
	return p.findByCity(ctx, area.City, category), nil
}

func (p *placesClient) findByCoords(ctx context.Context, coords entity.Coordinates, category string) Result {
	found := p.overpassAround(ctx, coords)
	if len(found) > 0 {
		p.log.WithFields(logrus.Fields{
			"count": len(found),
		}).Debug("Overpass returned places for coords")
		return Result{Live: true, Places: found}
	}

	// Overpass had nothing around the point; a coords-phrased Nominatim
	// query is the last live option before the fallback list.
	query := fmt.Sprintf("%s near %f,%f", category, coords.Lat, coords.Lon)
	if found = p.nominatimSearch(ctx, query); len(found) > 0 {
		return Result{Live: true, Places: found}
	}

	p.log.Debug("Coords lookup produced no live results, using fallback places")
	return Result{Live: false, Places: p.fallback}
}

func (p *placesClient) findByCity(ctx context.Context, city, category string) Result {
	queries := []string{
		fmt.Sprintf("%s in %s", category, city),
		fmt.Sprintf("attractions in %s", city),
		fmt.Sprintf("%s tourist attractions", city),
		fmt.Sprintf("%s points of interest", city),
	}

	for _, query := range queries {
		if found := p.nominatimSearch(ctx, query); len(found) > 0 {
			return Result{Live: true, Places: found}
		}
	}

	if found := p.overpassByCity(ctx, city); len(found) > 0 {
		return Result{Live: true, Places: found}
	}

	p.log.WithFields(logrus.Fields{
		"city": city,
	}).Debug("City lookup produced no live results, using fallback places")
	return Result{Live: false, Places: p.fallback}
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}

func (p *placesClient) nominatimSearch(ctx context.Context, query string) []entity.Place {
	searchURL := fmt.Sprintf("%s?q=%s&format=jsonv2&limit=5", nominatimSearchURL, url.QueryEscape(query))

	body, err := p.http.Get(ctx, searchURL, userAgent)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"query": query,
			"error": err.Error(),
		}).Warn("Nominatim search attempt failed")
		return nil
	}

	var results []nominatimPlace
	if err := json.Unmarshal(body, &results); err != nil {
		p.log.WithFields(logrus.Fields{
			"query": query,
			"error": err.Error(),
		}).Warn("Nominatim returned unparseable payload")
		return nil
	}

	places := make([]entity.Place, 0, len(results))
	for _, r := range results {
		places = append(places, entity.Place{
			Name: r.DisplayName,
			Lat:  r.Lat,
			Lon:  r.Lon,
			Type: r.Type,
		})
	}
	return places
}

type overpassResponse struct {
	Elements []struct {
		Lat    float64           `json:"lat"`
		Lon    float64           `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func (p *placesClient) overpassAround(ctx context.Context, coords entity.Coordinates) []entity.Place {
	query := fmt.Sprintf(`[out:json][timeout:25];
(
  node(around:%d,%f,%f)["tourism"];
  way(around:%d,%f,%f)["tourism"];
  relation(around:%d,%f,%f)["tourism"];
  node(around:%d,%f,%f)["amenity"~"museum|theatre|zoo|gallery"];
  way(around:%d,%f,%f)["amenity"~"museum|theatre|zoo|gallery"];
);
out center 10;`,
		coordsRadiusMeters, coords.Lat, coords.Lon,
		coordsRadiusMeters, coords.Lat, coords.Lon,
		coordsRadiusMeters, coords.Lat, coords.Lon,
		coordsRadiusMeters, coords.Lat, coords.Lon,
		coordsRadiusMeters, coords.Lat, coords.Lon)

	return p.overpassQuery(ctx, query)
}

func (p *placesClient) overpassByCity(ctx context.Context, city string) []entity.Place {
	query := fmt.Sprintf(`[out:json][timeout:25];area[name=%q]->.searchArea;(node["tourism"](area.searchArea);way["tourism"](area.searchArea);relation["tourism"](area.searchArea););out center 10;`, city)
	return p.overpassQuery(ctx, query)
}

func (p *placesClient) overpassQuery(ctx context.Context, query string) []entity.Place {
	form := "data=" + url.QueryEscape(query)

	body, err := p.http.PostForm(ctx, overpassURL, userAgent, form)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Overpass query failed")
		return nil
	}

	var ov overpassResponse
	if err := json.Unmarshal(body, &ov); err != nil {
		p.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Overpass returned unparseable payload")
		return nil
	}

	places := make([]entity.Place, 0, maxPlaces)
	for _, e := range ov.Elements {
		if len(places) == maxPlaces {
			break
		}

		name := e.Tags["name"]
		if name == "" {
			name = e.Tags["operator"]
		}
		if name == "" {
			name = "Unnamed"
		}

		lat, lon := e.Lat, e.Lon
		if lat == 0 && lon == 0 && e.Center != nil {
			lat, lon = e.Center.Lat, e.Center.Lon
		}

		typeTag := e.Tags["tourism"]
		if typeTag == "" {
			typeTag = e.Tags["amenity"]
		}
		if typeTag == "" {
			typeTag = e.Tags["leisure"]
		}
		if typeTag == "" {
			typeTag = "poi"
		}

		places = append(places, entity.Place{
			Name: name,
			Lat:  fmt.Sprintf("%v", lat),
			Lon:  fmt.Sprintf("%v", lon),
			Type: typeTag,
		})
	}
	return places
}

type nominatimReverse struct {
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	ExtraTags   map[string]string `json:"extratags"`
}

// Details reverse-geocodes one place for the "tell me more" flow.
func (p *placesClient) Details(ctx context.Context, place entity.Place) (*entity.PlaceDetails, error) {
	reverseURL := fmt.Sprintf("%s?format=jsonv2&lat=%s&lon=%s&zoom=18&addressdetails=1&extratags=1",
		nominatimReverseURL, url.QueryEscape(place.Lat), url.QueryEscape(place.Lon))

	body, err := p.http.Get(ctx, reverseURL, userAgent)
	if err != nil {
		return nil, err
	}

	var rev nominatimReverse
	if err := json.Unmarshal(body, &rev); err != nil {
		return nil, err
	}
	if len(rev.Address) == 0 {
		return nil, fmt.Errorf("no address details for %s", place.Name)
	}

	name := place.Name
	if name == "" {
		name = rev.Name
	}
	if name == "" {
		name = "Unknown Place"
	}

	placeType := rev.Type
	if placeType == "" {
		placeType = "location"
	}

	address := rev.DisplayName
	if address == "" {
		address = place.Name
	}

	amenity := rev.Address["amenity"]
	if amenity == "" {
		amenity = rev.Address["tourist_attraction"]
	}
	if amenity == "" {
		amenity = rev.Address["leisure"]
	}

	city := rev.Address["city"]
	if city == "" {
		city = rev.Address["town"]
	}
	if city == "" {
		city = rev.Address["village"]
	}

	return &entity.PlaceDetails{
		Name:    name,
		Type:    placeType,
		Address: address,
		Amenity: amenity,
		City:    city,
		State:   rev.Address["state"],
		Country: rev.Address["country"],
		Website: rev.ExtraTags["website"],
		Phone:   rev.ExtraTags["phone"],
		Hours:   rev.ExtraTags["opening_hours"],
	}, nil
}
