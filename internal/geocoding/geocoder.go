package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// ErrNoResults is returned when the search finds no match.
var ErrNoResults = errors.New("no geocoding results")

type coordinates struct {
	lat, lon float64
}

// Geocoder resolves home addresses through a Nominatim-compatible search
// endpoint and remembers the answers for the life of the process.
type Geocoder struct {
	client   *resty.Client
	logger   *logrus.Logger
	interval time.Duration

	cacheLock sync.RWMutex
	cache     map[string]coordinates

	throttle sync.Mutex
	last     time.Time
}

// NewGeocoder builds a geocoder for baseURL. Nominatim allows one request
// per second, so uncached lookups are spaced by that interval.
func NewGeocoder(baseURL, userAgent string, logger *logrus.Logger) *Geocoder {
	if logger == nil {
		logger = logrus.New()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &Geocoder{
		client:   client,
		logger:   logger,
		interval: time.Second,
		cache:    make(map[string]coordinates),
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func cacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// GeocodeAddress returns latitude and longitude for address.
func (g *Geocoder) GeocodeAddress(ctx context.Context, address string) (float64, float64, error) {
	key := cacheKey(address)
	if key == "" {
		return 0, 0, fmt.Errorf("empty address")
	}

	g.cacheLock.RLock()
	c, ok := g.cache[key]
	g.cacheLock.RUnlock()
	if ok {
		g.logger.WithFields(logrus.Fields{
			"address": address,
			"source":  "cache",
		}).Debug("Found coordinates in cache")
		return c.lat, c.lon, nil
	}

	if err := g.wait(ctx); err != nil {
		return 0, 0, err
	}

	var results []nominatimResult
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      address,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		g.logger.WithError(err).WithField("address", address).Error("Geocoding request failed")
		return 0, 0, fmt.Errorf("geocoding request failed: %w", err)
	}
	if resp.IsError() {
		return 0, 0, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode())
	}
	if len(results) == 0 {
		g.logger.WithField("address", address).Warn("No results found")
		return 0, 0, fmt.Errorf("%w for address: %s", ErrNoResults, address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse longitude: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"address":   address,
		"latitude":  lat,
		"longitude": lon,
		"source":    "nominatim",
	}).Info("Geocoded address")

	g.cacheLock.Lock()
	g.cache[key] = coordinates{lat: lat, lon: lon}
	g.cacheLock.Unlock()

	return lat, lon, nil
}

// wait spaces outgoing requests by g.interval.
func (g *Geocoder) wait(ctx context.Context) error {
	g.throttle.Lock()
	defer g.throttle.Unlock()

	if delay := g.interval - time.Since(g.last); delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	g.last = time.Now()
	return nil
}
