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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/geo/cities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Berlin", r.URL.Query().Get("namePrefix"))
		assert.Equal(t, "DE", r.URL.Query().Get("countryIds"))
		assert.NotEmpty(t, r.Header.Get("X-RapidAPI-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":101,"latitude":52.52,"longitude":13.405,` +
			`"population":3700000,"region":"Berlin","countryCode":"DE"}]}`))
	})

	mux.HandleFunc("/geo/cities/101/details", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"elevationMeters":34,"timezone":"Europe/Berlin"}}`))
	})

	mux.HandleFunc("/urban/slug:berlin/scores/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"categories":[` +
			`{"name":"Housing","score_out_of_10":6.5},` +
			`{"name":"Healthcare","score_out_of_10":8.0},` +
			`{"name":"Commute","score_out_of_10":7.0},` +
			`{"name":"Cost of Living","score_out_of_10":5.0}]}`))
	})

	mux.HandleFunc("/urban/slug:berlin/details/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"categories":[` +
			`{"id":"SALARY","data":[{"id":"DEVELOPER-SALARY","median_value":58000}]},` +
			`{"id":"ECONOMY","data":[{"id":"GDP-GROWTH-RATE","float_value":1.2}]}]}`))
	})

	mux.HandleFunc("/weather/weather", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":18.5,"humidity":65},"wind":{"speed":4.2}}`))
	})

	mux.HandleFunc("/weather/air_pollution", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[{"main":{"aqi":2}}]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestCollector(t *testing.T, baseURL string) *Collector {
	t.Helper()

	viper.Set("city.geodb_api_key", "test-geo-key")
	viper.Set("city.openweather_api_key", "test-weather-key")
	t.Cleanup(func() {
		viper.Set("city.geodb_api_key", "")
		viper.Set("city.openweather_api_key", "")
	})

	collector, err := NewCollector()
	require.NoError(t, err)
	collector.GeoBaseURL = baseURL + "/geo"
	collector.UrbanBaseURL = baseURL + "/urban"
	collector.WeatherBaseURL = baseURL + "/weather"
	collector.limiter = rate.NewLimiter(rate.Inf, 1)
	return collector
}

func TestCollectAggregatesAllSources(t *testing.T) {
	server := testServer(t)
	collector := newTestCollector(t, server.URL)

	metrics, err := collector.Collect(context.Background(), "Berlin", "DE")
	require.NoError(t, err)

	assert.Equal(t, "Berlin", metrics.CityName)
	assert.Equal(t, "DE", metrics.Country)
	assert.False(t, metrics.Timestamp.IsZero())

	require.NotNil(t, metrics.Latitude)
	assert.Equal(t, 52.52, *metrics.Latitude)
	require.NotNil(t, metrics.Population)
	assert.Equal(t, int64(3700000), *metrics.Population)
	require.NotNil(t, metrics.Elevation)
	assert.Equal(t, 34.0, *metrics.Elevation)
	require.NotNil(t, metrics.Timezone)
	assert.Equal(t, "Europe/Berlin", *metrics.Timezone)

	require.NotNil(t, metrics.HealthIndex)
	assert.Equal(t, 80.0, *metrics.HealthIndex)
	require.NotNil(t, metrics.TrafficCongestionScore)
	assert.Equal(t, 30.0, *metrics.TrafficCongestionScore)
	require.NotNil(t, metrics.CostOfLivingIndex)
	assert.Equal(t, 50.0, *metrics.CostOfLivingIndex)

	require.NotNil(t, metrics.AverageSalary)
	assert.Equal(t, 58000.0, *metrics.AverageSalary)
	require.NotNil(t, metrics.EconomicGrowthRate)
	assert.Equal(t, 1.2, *metrics.EconomicGrowthRate)

	require.NotNil(t, metrics.Temperature)
	assert.Equal(t, 18.5, *metrics.Temperature)
	require.NotNil(t, metrics.AirQualityIndex)
	assert.Equal(t, 2.0, *metrics.AirQualityIndex)
}

func TestCollectNoGazetteerMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/cities", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	collector := newTestCollector(t, server.URL)

	_, err := collector.Collect(context.Background(), "Atlantis", "XX")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestCollectPartialEndpointFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/cities", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":7,"latitude":48.8,"longitude":2.35,"population":2100000}]}`))
	})
	// every other endpoint 404s
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	collector := newTestCollector(t, server.URL)

	metrics, err := collector.Collect(context.Background(), "Paris", "FR")
	require.NoError(t, err)
	assert.NotNil(t, metrics.Latitude)
	assert.Nil(t, metrics.HealthIndex)
	assert.Nil(t, metrics.Temperature)
	assert.Nil(t, metrics.Timezone)
}

func TestNewCollectorRequiresKeys(t *testing.T) {
	viper.Set("city.geodb_api_key", "")
	viper.Set("city.openweather_api_key", "")

	_, err := NewCollector()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCountryCode(t *testing.T) {
	assert.Equal(t, "DE", countryCode("de"))
	assert.Equal(t, "", countryCode("Germany"))
	assert.Equal(t, "", countryCode("1X"))
}
