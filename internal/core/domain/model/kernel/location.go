package kernel

import (
	"errors"
	"strings"

	"eventrent/internal/pkg/errs"
)

// WildcardCity matches every city of a country in a pricing tier.
const WildcardCity = "*"

// ErrLocationIsNotConstructed is returned when validating a zero-value Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation",
)

// Location is the venue's (country, city) pair used for pricing-tier lookup.
// Names keep the caller's spelling; comparisons ignore case and surrounding
// whitespace.
type Location struct { //nolint:recvcheck //using for validation
	country string
	city    string
}

// NewLocation trims and validates both parts.
func NewLocation(country, city string) (Location, error) {
	var l Location
	if err := errors.Join(
		l.setCountry(country),
		l.setCity(city),
	); err != nil {
		return Location{}, err
	}
	return l, nil
}

// Country returns the trimmed country name as given.
func (l Location) Country() string {
	return l.country
}

// City returns the trimmed city name, or WildcardCity.
func (l Location) City() string {
	return l.city
}

// IsWildcard reports whether the city matches every city of the country.
func (l Location) IsWildcard() bool {
	return l.city == WildcardCity
}

// WithWildcardCity returns the country-wide location used as a pricing fallback.
func (l Location) WithWildcardCity() Location {
	return Location{country: l.country, city: WildcardCity}
}

// IsEqual compares case-insensitively.
func (l Location) IsEqual(other Location) bool {
	return strings.EqualFold(l.country, other.country) && strings.EqualFold(l.city, other.city)
}

// Validate rejects a zero-value Location.
func (l Location) Validate() error {
	if l.country == "" || l.city == "" {
		return ErrLocationIsNotConstructed
	}
	return nil
}

// String renders "City, Country".
func (l Location) String() string {
	return l.city + ", " + l.country
}

func (l *Location) setCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	l.country = country
	return nil
}

func (l *Location) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	l.city = city
	return nil
}
