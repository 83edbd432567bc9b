package presentation

import (
	"fmt"
	"strings"
)

const (
	// DefaultIconBaseURL is where OpenWeatherMap serves its pictograms
	DefaultIconBaseURL = "https://openweathermap.org/img/wn"
	// DefaultIcon is shown for missing or unknown icon codes
	DefaultIcon = "01d"
)

// knownIcons lists the OpenWeatherMap icon codes without their day/night suffix
var knownIcons = map[string]bool{
	"01": true, "02": true, "03": true, "04": true, "09": true,
	"10": true, "11": true, "13": true, "50": true,
}

// IconResolver maps provider icon codes to image URLs
type IconResolver struct {
	BaseURL  string
	Fallback string
}

// NewIconResolver creates a resolver. Empty arguments select the OpenWeatherMap defaults.
func NewIconResolver(baseURL, fallback string) IconResolver {
	if baseURL == "" {
		baseURL = DefaultIconBaseURL
	}
	if fallback == "" {
		fallback = DefaultIcon
	}
	return IconResolver{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Fallback: fallback,
	}
}

// Code returns code when it is a known icon and the fallback icon otherwise
func (r IconResolver) Code(code string) string {
	if isKnownIcon(code) {
		return code
	}
	return r.fallback()
}

// URL returns the image URL for code, using the fallback icon for unknown codes
func (r IconResolver) URL(code string) string {
	return r.urlFor(r.Code(code))
}

// FallbackURL is the image clients switch to when an icon fails to load
func (r IconResolver) FallbackURL() string {
	return r.urlFor(r.fallback())
}

func (r IconResolver) urlFor(code string) string {
	base := r.BaseURL
	if base == "" {
		base = DefaultIconBaseURL
	}
	return fmt.Sprintf("%s/%s@2x.png", base, code)
}

func (r IconResolver) fallback() string {
	if r.Fallback == "" {
		return DefaultIcon
	}
	return r.Fallback
}

func isKnownIcon(code string) bool {
	if len(code) != 3 {
		return false
	}
	if code[2] != 'd' && code[2] != 'n' {
		return false
	}
	return knownIcons[code[:2]]
}
