package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type IEvents interface {
	Search(ctx context.Context, city string, keyword string) ([]Event, error)
}

type Event struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Date  string `json:"date"`
	Venue string `json:"venue"`
}

type eventsClient struct {
	apiKey string
	client *http.Client
	log    *logrus.Logger
}

func New(log *logrus.Logger) (IEvents, error) {
	apiKey := os.Getenv("TICKETMASTER_API_KEY")
	if apiKey == "" {
		return nil, errors.New("Ticketmaster API key is required")
	}

	return &eventsClient{
		apiKey: apiKey,
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}, nil
}

type discoveryResponse struct {
	Embedded struct {
		Events []struct {
			Name  string `json:"name"`
			URL   string `json:"url"`
			Dates struct {
				Start struct {
					LocalDate string `json:"localDate"`
				} `json:"start"`
			} `json:"dates"`
			Embedded struct {
				Venues []struct {
					Name string `json:"name"`
				} `json:"venues"`
			} `json:"_embedded"`
		} `json:"events"`
	} `json:"_embedded"`
}

// Search queries the Ticketmaster Discovery API for upcoming events in a
// city. Empty results are a normal outcome, not an error.
func (e *eventsClient) Search(ctx context.Context, city string, keyword string) ([]Event, error) {
	params := url.Values{}
	params.Set("apikey", e.apiKey)
	params.Set("city", city)
	params.Set("size", "5")
	params.Set("sort", "date,asc")
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	endpoint := "https://app.ticketmaster.com/discovery/v2/events.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"city":  city,
			"error": err.Error(),
		}).Warn("Event search failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("events API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var data discoveryResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(data.Embedded.Events))
	for _, ev := range data.Embedded.Events {
		venue := ""
		if len(ev.Embedded.Venues) > 0 {
			venue = ev.Embedded.Venues[0].Name
		}
		events = append(events, Event{
			Name:  ev.Name,
			URL:   ev.URL,
			Date:  ev.Dates.Start.LocalDate,
			Venue: venue,
		})
	}
	return events, nil
}
