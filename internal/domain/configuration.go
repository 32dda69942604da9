package domain

import "math"

type Coordinates struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

type AttendanceSettings struct {
	LateBufferMinutes int `validate:"gte=0,lte=720"`
	AllowManualTime   bool
	MaxTimeAdjustment int `validate:"gte=0"`
	RequireApproval   bool
}

type Configuration struct {
	ID                 string
	OfficeLocation     Coordinates
	AllowedRadiusKm    float64 `validate:"gte=0"`
	EnforceGeofence    bool
	AttendanceSettings AttendanceSettings
	GoogleMapsAPIKey   string

	CreatedAt      string
	LastModified   string
	LastModifiedBy string
}

// LateBufferMinutes falls back to the default when the buffer is not configured
func (c Configuration) LateBufferMinutes() int {
	if c.AttendanceSettings.LateBufferMinutes <= 0 {
		return DefaultLateBufferMinutes
	}
	return c.AttendanceSettings.LateBufferMinutes
}

// DistanceKm is the great-circle distance from the office to the point
func (c Configuration) DistanceKm(point Coordinates) float64 {
	return HaversineKm(c.OfficeLocation, point)
}

// Contains reports whether the point is inside the office geofence
func (c Configuration) Contains(point Coordinates) bool {
	return c.DistanceKm(point) <= c.AllowedRadiusKm
}

// ConfigurationUpdate is a partial update. Nil fields keep their current value.
type ConfigurationUpdate struct {
	OfficeLocation     *Coordinates
	AllowedRadiusKm    *float64 `validate:"omitempty,gte=0"`
	EnforceGeofence    *bool
	AttendanceSettings *AttendanceSettings
	GoogleMapsAPIKey   *string
}

// Merge shallow-merges the update into the configuration. Nested objects are
// replaced as a whole, never merged field by field.
func (c Configuration) Merge(update ConfigurationUpdate) Configuration {
	merged := c
	if update.OfficeLocation != nil {
		merged.OfficeLocation = *update.OfficeLocation
	}
	if update.AllowedRadiusKm != nil {
		merged.AllowedRadiusKm = *update.AllowedRadiusKm
	}
	if update.EnforceGeofence != nil {
		merged.EnforceGeofence = *update.EnforceGeofence
	}
	if update.AttendanceSettings != nil {
		merged.AttendanceSettings = *update.AttendanceSettings
	}
	if update.GoogleMapsAPIKey != nil {
		merged.GoogleMapsAPIKey = *update.GoogleMapsAPIKey
	}
	return merged
}

const earthRadiusKm = 6371.0

func HaversineKm(a, b Coordinates) float64 {
	toRadians := func(deg float64) float64 { return deg * math.Pi / 180.0 }

	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
