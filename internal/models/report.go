package models

import "time"

// ReportStatus tracks where a report sits in the review workflow.
// The only transition performed by the API is Pending -> Verified;
// Resolved exists in the vocabulary but has no endpoint yet.
type ReportStatus string

const (
	StatusPending  ReportStatus = "Pending"
	StatusVerified ReportStatus = "Verified"
	StatusResolved ReportStatus = "Resolved"
)

// Location is a GeoJSON-style point. Coordinates are [longitude, latitude],
// longitude first; swapping them is a correctness bug.
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Longitude returns the first coordinate.
func (l Location) Longitude() float64 { return l.Coordinates[0] }

// Latitude returns the second coordinate.
func (l Location) Latitude() float64 { return l.Coordinates[1] }

// NewPoint builds a point location from longitude and latitude.
func NewPoint(lng, lat float64) Location {
	return Location{Type: "Point", Coordinates: []float64{lng, lat}}
}

// CrimeReport is a geolocated report submitted by a citizen.
type CrimeReport struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Description string       `json:"description"`
	Location    Location     `json:"location"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}
