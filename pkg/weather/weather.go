package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type IWeather interface {
	Current(ctx context.Context, lat, lon float64) (*Conditions, error)
}

// Conditions is the digest of an OpenWeather current-conditions response,
// reduced to what the concierge actually tells a guest.
type Conditions struct {
	TempF     float64  `json:"temp_f"`
	FeelsLike float64  `json:"feels_like"`
	Humidity  int      `json:"humidity"`
	WindMph   float64  `json:"wind_mph"`
	Condition string   `json:"condition"`
	Advice    []string `json:"advice"`
}

type weatherClient struct {
	apiKey string
	client *http.Client
	log    *logrus.Logger
}

func New(log *logrus.Logger) (IWeather, error) {
	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	if apiKey == "" || apiKey == "demo" {
		return nil, errors.New("OpenWeather API key is required")
	}

	return &weatherClient{
		apiKey: apiKey,
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}, nil
}

type openWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (w *weatherClient) Current(ctx context.Context, lat, lon float64) (*Conditions, error) {
	endpoint := fmt.Sprintf(
		"https://api.openweathermap.org/data/2.5/weather?lat=%s&lon=%s&appid=%s&units=imperial",
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lon)),
		url.QueryEscape(w.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Weather lookup failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var data openWeatherResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	if len(data.Weather) == 0 {
		return nil, errors.New("weather API returned no conditions")
	}

	return &Conditions{
		TempF:     data.Main.Temp,
		FeelsLike: data.Main.FeelsLike,
		Humidity:  data.Main.Humidity,
		WindMph:   data.Wind.Speed,
		Condition: data.Weather[0].Description,
		Advice:    adviceFor(data.Main.Temp, strings.ToLower(data.Weather[0].Main)),
	}, nil
}

func adviceFor(tempF float64, condition string) []string {
	var advice []string

	switch {
	case tempF >= 85:
		advice = append(advice, "It's hot out, pack water and sunscreen.")
	case tempF <= 45:
		advice = append(advice, "Bundle up, it's cold outside.")
	default:
		advice = append(advice, "Comfortable weather for exploring.")
	}

	if strings.Contains(condition, "rain") || strings.Contains(condition, "drizzle") {
		advice = append(advice, "Bring an umbrella.")
	}
	if strings.Contains(condition, "snow") {
		advice = append(advice, "Watch for slippery sidewalks.")
	}

	return advice
}
