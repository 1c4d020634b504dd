package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

const (
	resolverLogPrefix = "geo"
	resolverTimeout   = 5 * time.Second
)

var (
	ErrNoGeoInfoFound = fmt.Errorf("no geo information found")
)

// LocationResolver - interface for resolving a readable address of a location
type LocationResolver interface {
	Address(ctx context.Context, loc schema.Location, lang string) (string, error)
}

type MultipleResolverErrors struct {
	errors []error
}

func (e *MultipleResolverErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

func NewMultipleResolverErrors(errors []error) *MultipleResolverErrors {
	return &MultipleResolverErrors{
		errors: errors,
	}
}

// GeocodingLocationResolver resolves addresses by the google maps reverse geocoding
type GeocodingLocationResolver struct {
	client *maps.Client
}

func NewGeocodingLocationResolver(client *maps.Client) *GeocodingLocationResolver {
	return &GeocodingLocationResolver{
		client: client,
	}
}

func (g *GeocodingLocationResolver) Address(ctx context.Context, loc schema.Location, lang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, resolverTimeout)
	defer cancel()

	if lang == "" {
		lang = "en"
	}

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: loc.Latitude,
			Lng: loc.Longitude,
		},
		ResultType: []string{"street_address|route|sublocality|locality"},
		Language:   lang,
	})
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": resolverLogPrefix,
			"lat":    loc.Latitude,
			"lng":    loc.Longitude,
		}).Warnf("reverse geocoding with error: %s", err)
		return "", err
	}

	if len(geos) == 0 || geos[0].FormattedAddress == "" {
		return "", ErrNoGeoInfoFound
	}

	return geos[0].FormattedAddress, nil
}

// MultipleLocationResolver returns the address of the first resolver that succeeds
type MultipleLocationResolver struct {
	resolvers []LocationResolver
}

func NewMultipleLocationResolver(resolvers ...LocationResolver) *MultipleLocationResolver {
	return &MultipleLocationResolver{
		resolvers: resolvers,
	}
}

func (r *MultipleLocationResolver) Address(ctx context.Context, loc schema.Location, lang string) (string, error) {
	var errors []error
	for _, resolver := range r.resolvers {
		address, err := resolver.Address(ctx, loc, lang)
		if err != nil {
			errors = append(errors, err)
		} else {
			return address, nil
		}
	}

	return "", NewMultipleResolverErrors(errors)
}
