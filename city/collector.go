// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package city

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/go-resty/resty/v2"
	gojson "github.com/goccy/go-json"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

var (
	// ErrNotConfigured means a required API key is absent; the
	// collector refuses to start rather than failing on first use.
	ErrNotConfigured = errors.New("collector api key not configured")

	// ErrNoMatch means the gazetteer returned no city for the query.
	ErrNoMatch = errors.New("no matching city")
)

// Default endpoints; tests point these at a local server.
const (
	defaultGeoBaseURL     = "https://wft-geo-db.p.rapidapi.com/v1/geo"
	defaultUrbanBaseURL   = "https://api.teleport.org/api/urban_areas"
	defaultWeatherBaseURL = "http://api.openweathermap.org/data/2.5"
)

// Collector aggregates one city's metrics from the gazetteer, the
// urban-area score service and the weather service. All calls go
// through a shared rate limiter; gazetteer hits are cached so repeated
// runs within a process do not burn the request quota.
type Collector struct {
	GeoBaseURL     string
	UrbanBaseURL   string
	WeatherBaseURL string

	client  *resty.Client
	limiter *rate.Limiter
	geo     *haxmap.Map[string, *geoCity]

	geoKey     string
	weatherKey string
}

// NewCollector builds a collector from viper configuration. Both API
// keys are required up front.
func NewCollector() (*Collector, error) {
	geoKey := viper.GetString("city.geodb_api_key")
	if geoKey == "" {
		return nil, fmt.Errorf("%w: city.geodb_api_key", ErrNotConfigured)
	}

	weatherKey := viper.GetString("city.openweather_api_key")
	if weatherKey == "" {
		return nil, fmt.Errorf("%w: city.openweather_api_key", ErrNotConfigured)
	}

	client := resty.New().SetTimeout(30 * time.Second)
	client.JSONMarshal = gojson.Marshal
	client.JSONUnmarshal = gojson.Unmarshal

	return &Collector{
		GeoBaseURL:     defaultGeoBaseURL,
		UrbanBaseURL:   defaultUrbanBaseURL,
		WeatherBaseURL: defaultWeatherBaseURL,
		client:         client,
		limiter:        rate.NewLimiter(rate.Every(time.Second), 1),
		geo:            haxmap.New[string, *geoCity](),
		geoKey:         geoKey,
		weatherKey:     weatherKey,
	}, nil
}

type geoCity struct {
	ID          int      `json:"id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Population  *int64   `json:"population"`
	Region      *string  `json:"region"`
	CountryCode string   `json:"countryCode"`
}

type geoCitiesResponse struct {
	Data []geoCity `json:"data"`
}

type geoDetailsResponse struct {
	Data struct {
		Elevation *float64 `json:"elevationMeters"`
		Timezone  *string  `json:"timezone"`
	} `json:"data"`
}

type urbanScoresResponse struct {
	Categories []struct {
		Name  string  `json:"name"`
		Score float64 `json:"score_out_of_10"`
	} `json:"categories"`
}

type urbanDetailsResponse struct {
	Categories []struct {
		ID   string `json:"id"`
		Data []struct {
			ID            string   `json:"id"`
			FloatValue    *float64 `json:"float_value"`
			MedianValue   *float64 `json:"median_value"`
			CurrencyValue *float64 `json:"currency_dollar_value"`
		} `json:"data"`
	} `json:"categories"`
}

type weatherResponse struct {
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

type airQualityResponse struct {
	List []struct {
		Main struct {
			AQI float64 `json:"aqi"`
		} `json:"main"`
	} `json:"list"`
}

// Collect aggregates all available data for one city. The gazetteer
// lookup is mandatory; every other endpoint degrades to nil fields on
// failure.
func (c *Collector) Collect(ctx context.Context, cityName string, country string) (*Metrics, error) {
	base, err := c.basicInfo(ctx, cityName, country)
	if err != nil {
		return nil, err
	}

	metrics := &Metrics{
		CityName:   cityName,
		Country:    country,
		Timestamp:  time.Now().UTC(),
		Population: base.Population,
		Latitude:   base.Latitude,
		Longitude:  base.Longitude,
		Region:     base.Region,
	}

	if base.ID != 0 {
		c.cityDetails(ctx, base.ID, metrics)
	}

	c.qualityOfLife(ctx, cityName, metrics)

	if metrics.Latitude != nil && metrics.Longitude != nil {
		c.environmental(ctx, *metrics.Latitude, *metrics.Longitude, metrics)
	}

	return metrics, nil
}

func (c *Collector) basicInfo(ctx context.Context, cityName string, country string) (*geoCity, error) {
	cacheKey := strings.ToLower(cityName + "|" + country)
	if cached, ok := c.geo.Get(cacheKey); ok {
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var payload geoCitiesResponse
	req := c.client.R().SetContext(ctx).
		SetHeader("X-RapidAPI-Key", c.geoKey).
		SetHeader("X-RapidAPI-Host", "wft-geo-db.p.rapidapi.com").
		SetQueryParam("namePrefix", cityName).
		SetQueryParam("limit", "1").
		SetResult(&payload)

	if code := countryCode(country); code != "" {
		req.SetQueryParam("countryIds", code)
	}

	resp, err := req.Get(c.GeoBaseURL + "/cities")
	if err != nil {
		return nil, fmt.Errorf("gazetteer lookup %s: %w", cityName, err)
	}

	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("gazetteer lookup %s: status %d", cityName, resp.StatusCode())
	}

	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoMatch, cityName, country)
	}

	match := payload.Data[0]
	c.geo.Set(cacheKey, &match)
	return &match, nil
}

func (c *Collector) cityDetails(ctx context.Context, cityID int, metrics *Metrics) {
	if err := c.limiter.Wait(ctx); err != nil {
		return
	}

	var payload geoDetailsResponse
	resp, err := c.client.R().SetContext(ctx).
		SetHeader("X-RapidAPI-Key", c.geoKey).
		SetHeader("X-RapidAPI-Host", "wft-geo-db.p.rapidapi.com").
		SetResult(&payload).
		Get(fmt.Sprintf("%s/cities/%d/details", c.GeoBaseURL, cityID))

	if err != nil || resp.StatusCode() >= 300 {
		log.Warn().Err(err).Int("CityID", cityID).Msg("city details unavailable")
		return
	}

	metrics.Elevation = payload.Data.Elevation
	metrics.Timezone = payload.Data.Timezone
}

// qualityOfLife fills the urban-area score fields. Scores come back on
// a 0-10 scale and are stored on 0-100.
func (c *Collector) qualityOfLife(ctx context.Context, cityName string, metrics *Metrics) {
	if err := c.limiter.Wait(ctx); err != nil {
		return
	}

	citySlug := slug.Make(cityName)

	var scores urbanScoresResponse
	resp, err := c.client.R().SetContext(ctx).
		SetResult(&scores).
		Get(fmt.Sprintf("%s/slug:%s/scores/", c.UrbanBaseURL, citySlug))

	if err != nil || resp.StatusCode() >= 300 {
		log.Warn().Err(err).Str("CitySlug", citySlug).Msg("urban-area scores unavailable")
		return
	}

	byName := make(map[string]float64, len(scores.Categories))
	for _, category := range scores.Categories {
		byName[category.Name] = category.Score
	}

	scaled := func(name string) *float64 {
		if score, ok := byName[name]; ok {
			v := score * 10
			return &v
		}
		return nil
	}

	metrics.HappinessIndex = scaled("Housing")
	metrics.HealthIndex = scaled("Healthcare")
	metrics.EducationLevelScore = scaled("Education")
	metrics.CulturalEventsPerCapita = scaled("Culture")
	metrics.SportsFacilitiesPerCapita = scaled("Outdoors")
	metrics.GreenSpaceRatio = scaled("Environmental Quality")
	metrics.CostOfLivingIndex = scaled("Cost of Living")
	metrics.HousingPriceIndex = scaled("Housing")

	if commute, ok := byName["Commute"]; ok {
		congestion := 100 - commute*10
		metrics.TrafficCongestionScore = &congestion
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return
	}

	var details urbanDetailsResponse
	resp, err = c.client.R().SetContext(ctx).
		SetResult(&details).
		Get(fmt.Sprintf("%s/slug:%s/details/", c.UrbanBaseURL, citySlug))

	if err != nil || resp.StatusCode() >= 300 {
		log.Warn().Err(err).Str("CitySlug", citySlug).Msg("urban-area details unavailable")
		return
	}

	for _, category := range details.Categories {
		for _, item := range category.Data {
			switch {
			case category.ID == "SALARY" && item.ID == "DEVELOPER-SALARY":
				metrics.AverageSalary = item.MedianValue
			case category.ID == "ECONOMY" && item.ID == "GDP-GROWTH-RATE":
				metrics.EconomicGrowthRate = item.FloatValue
			case category.ID == "HOUSING" && item.ID == "APARTMENT-RENT-LARGE":
				metrics.RentPriceIndex = item.CurrencyValue
			}
		}
	}
}

func (c *Collector) environmental(ctx context.Context, lat, lon float64, metrics *Metrics) {
	if err := c.limiter.Wait(ctx); err != nil {
		return
	}

	var weather weatherResponse
	resp, err := c.client.R().SetContext(ctx).
		SetQueryParam("lat", fmt.Sprintf("%f", lat)).
		SetQueryParam("lon", fmt.Sprintf("%f", lon)).
		SetQueryParam("units", "metric").
		SetQueryParam("appid", c.weatherKey).
		SetResult(&weather).
		Get(c.WeatherBaseURL + "/weather")

	if err != nil || resp.StatusCode() >= 300 {
		log.Warn().Err(err).Float64("Lat", lat).Float64("Lon", lon).Msg("weather unavailable")
	} else {
		metrics.Temperature = weather.Main.Temp
		metrics.Humidity = weather.Main.Humidity
		metrics.WindSpeedAvg = weather.Wind.Speed
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return
	}

	var air airQualityResponse
	resp, err = c.client.R().SetContext(ctx).
		SetQueryParam("lat", fmt.Sprintf("%f", lat)).
		SetQueryParam("lon", fmt.Sprintf("%f", lon)).
		SetQueryParam("appid", c.weatherKey).
		SetResult(&air).
		Get(c.WeatherBaseURL + "/air_pollution")

	if err != nil || resp.StatusCode() >= 300 {
		log.Warn().Err(err).Msg("air quality unavailable")
		return
	}

	if len(air.List) > 0 {
		aqi := air.List[0].Main.AQI
		metrics.AirQualityIndex = &aqi
	}
}

// countryCode returns the upper-cased ISO-3166 alpha-2 code when the
// country is already given as one, otherwise empty.
func countryCode(country string) string {
	if len(country) != 2 {
		return ""
	}
	for _, r := range country {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return ""
		}
	}
	return strings.ToUpper(country)
}
