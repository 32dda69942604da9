package hrapi

import (
	"fmt"

	"github.com/Amund211/rollcall/internal/domain"
)

type coordinatesWire struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type attendanceSettingsWire struct {
	LateBufferMinutes int  `json:"late_buffer_minutes"`
	AllowManualTime   bool `json:"allow_manual_time"`
	MaxTimeAdjustment int  `json:"max_time_adjustment"`
	RequireApproval   bool `json:"require_approval"`
}

// ConfigDocument is the configuration as stored by the backend. Updates send the
// whole document.
type ConfigDocument struct {
	ID                 string                 `json:"id,omitempty"`
	CompanyID          string                 `json:"companyId,omitempty"`
	OfficeLocation     coordinatesWire        `json:"office_location"`
	AllowedRadiusKm    float64                `json:"allowed_radius_km"`
	EnforceGeofence    bool                   `json:"enforce_geofence"`
	AttendanceSettings attendanceSettingsWire `json:"attendance_settings"`
	GoogleMapsAPIKey   string                 `json:"googleMapsApiKey"`
	CreatedAt          string                 `json:"created_at,omitempty"`
	LastModified       string                 `json:"last_modified,omitempty"`
	LastModifiedBy     string                 `json:"last_modified_by,omitempty"`
}

func (d ConfigDocument) toDomain() domain.Configuration {
	return domain.Configuration{
		ID: d.ID,
		OfficeLocation: domain.Coordinates{
			Latitude:  d.OfficeLocation.Latitude,
			Longitude: d.OfficeLocation.Longitude,
		},
		AllowedRadiusKm: d.AllowedRadiusKm,
		EnforceGeofence: d.EnforceGeofence,
		AttendanceSettings: domain.AttendanceSettings{
			LateBufferMinutes: d.AttendanceSettings.LateBufferMinutes,
			AllowManualTime:   d.AttendanceSettings.AllowManualTime,
			MaxTimeAdjustment: d.AttendanceSettings.MaxTimeAdjustment,
			RequireApproval:   d.AttendanceSettings.RequireApproval,
		},
		GoogleMapsAPIKey: d.GoogleMapsAPIKey,
		CreatedAt:        d.CreatedAt,
		LastModified:     d.LastModified,
		LastModifiedBy:   d.LastModifiedBy,
	}
}

func ConfigDocumentFrom(config domain.Configuration, companyID string) ConfigDocument {
	id := config.ID
	if id == "" {
		id = companyID
	}
	return ConfigDocument{
		ID:        id,
		CompanyID: companyID,
		OfficeLocation: coordinatesWire{
			Latitude:  config.OfficeLocation.Latitude,
			Longitude: config.OfficeLocation.Longitude,
		},
		AllowedRadiusKm: config.AllowedRadiusKm,
		EnforceGeofence: config.EnforceGeofence,
		AttendanceSettings: attendanceSettingsWire{
			LateBufferMinutes: config.AttendanceSettings.LateBufferMinutes,
			AllowManualTime:   config.AttendanceSettings.AllowManualTime,
			MaxTimeAdjustment: config.AttendanceSettings.MaxTimeAdjustment,
			RequireApproval:   config.AttendanceSettings.RequireApproval,
		},
		GoogleMapsAPIKey: config.GoogleMapsAPIKey,
		CreatedAt:        config.CreatedAt,
		LastModified:     config.LastModified,
		LastModifiedBy:   config.LastModifiedBy,
	}
}

func DecodeConfiguration(body []byte) (domain.Configuration, error) {
	var document ConfigDocument
	if err := decodeData(body, &document); err != nil {
		return domain.Configuration{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return document.toDomain(), nil
}
