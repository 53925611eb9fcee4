package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"profile_form_go/models"

	"github.com/google/uuid"
	"github.com/oschwald/geoip2-golang"
)

// LocationFetcher определяет местоположение пользователя.
type LocationFetcher interface {
	FetchLocation(ctx context.Context) (models.ProfilePatch, error)
}

// LocationClient запрашивает геолокацию по IP у удаленного API с ключом в query.
type LocationClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func NewLocationClient(httpClient *http.Client, endpoint, apiKey string) *LocationClient {
	return &LocationClient{httpClient: httpClient, endpoint: endpoint, apiKey: apiKey}
}

// FetchLocation возвращает обновление только для поля location в виде "город, страна".
func (c *LocationClient) FetchLocation(ctx context.Context) (models.ProfilePatch, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, Err: fmt.Errorf("bad endpoint: %w", err)}
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return models.ProfilePatch{}, &FetchError{
			Source:     SourceLocation,
			StatusCode: resp.StatusCode,
			Err:        errors.New("failed to fetch location"),
		}
	}

	var body *models.GeoLocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	if body == nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, StatusCode: resp.StatusCode, Err: errNoLocation}
	}

	patch, err := locationPatch(body.City, body.Country)
	if err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, StatusCode: resp.StatusCode, Err: err}
	}
	return patch, nil
}

var errNoLocation = errors.New("response has no city or country")

// locationPatch отклоняет ответ без города и страны, чтобы не затереть location строкой ", ".
func locationPatch(city, country string) (models.ProfilePatch, error) {
	if city == "" && country == "" {
		return models.ProfilePatch{}, errNoLocation
	}
	var patch models.ProfilePatch
	patch.Set(models.FieldLocation, city+", "+country)
	return patch, nil
}

// GeoIPLocator определяет местоположение по локальной базе MaxMind для заданного IP.
type GeoIPLocator struct {
	db *geoip2.Reader
	ip net.IP
}

// NewGeoIPLocator открывает базу MaxMind City.
func NewGeoIPLocator(dbPath, ip string) (*GeoIPLocator, error) {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return nil, fmt.Errorf("invalid IP address %q", ip)
	}
	db, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoIP database: %w", err)
	}
	return &GeoIPLocator{db: db, ip: parsedIP}, nil
}

func (g *GeoIPLocator) FetchLocation(ctx context.Context) (models.ProfilePatch, error) {
	if err := ctx.Err(); err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, Err: err}
	}
	record, err := g.db.City(g.ip)
	if err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, Err: err}
	}
	patch, err := locationPatch(record.City.Names["en"], record.Country.Names["en"])
	if err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceLocation, Err: err}
	}
	return patch, nil
}

func (g *GeoIPLocator) Close() error {
	return g.db.Close()
}
