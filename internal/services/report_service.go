package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuswatch/campuswatch-be/internal/geo"
	"github.com/campuswatch/campuswatch-be/internal/models"
)

// ReportServiceProvider defines the interface for crime report services.
type ReportServiceProvider interface {
	CreateReport(userID, description string, location models.Location) (models.CrimeReport, error)
	GetReportByID(id string) (models.CrimeReport, error)
	GetAllReports() ([]models.CrimeReport, error)
	FindNearby(lat, lng, radiusMiles float64) ([]models.CrimeReport, error)
	VerifyReport(id string) (models.CrimeReport, error)
	CountsByStatus() (map[models.ReportStatus]int, error)
}

// ReportService provides business logic for crime reports.
type ReportService struct {
	db *sql.DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *sql.DB) *ReportService {
	return &ReportService{db: db}
}

const reportColumns = "id, user_id, description, longitude, latitude, status, created_at"

// CreateReport stores a new report. Status is always Pending here, whatever
// the caller put in the request body.
func (s *ReportService) CreateReport(userID, description string, location models.Location) (models.CrimeReport, error) {
	if userID == "" || strings.TrimSpace(description) == "" {
		return models.CrimeReport{}, fmt.Errorf("%w: userId and description are required", ErrValidation)
	}
	if len(location.Coordinates) != 2 {
		return models.CrimeReport{}, fmt.Errorf("%w: location must have [longitude, latitude] coordinates", ErrValidation)
	}
	lng, lat := location.Longitude(), location.Latitude()
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return models.CrimeReport{}, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}

	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO crime_reports(id, user_id, description, longitude, latitude, status, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		id, userID, description, lng, lat, string(models.StatusPending), time.Now().UTC(),
	)
	if err != nil {
		return models.CrimeReport{}, err
	}

	return s.GetReportByID(id)
}

// GetReportByID retrieves a single report. An id that matches nothing,
// well formed or not, is a not-found.
func (s *ReportService) GetReportByID(id string) (models.CrimeReport, error) {
	row := s.db.QueryRow("SELECT "+reportColumns+" FROM crime_reports WHERE id = ?", id)
	report, err := scanReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.CrimeReport{}, fmt.Errorf("report %s: %w", id, ErrNotFound)
		}
		return models.CrimeReport{}, err
	}
	return report, nil
}

// GetAllReports returns every stored report, empty slice when there are none.
func (s *ReportService) GetAllReports() ([]models.CrimeReport, error) {
	rows, err := s.db.Query("SELECT " + reportColumns + " FROM crime_reports")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

// FindNearby returns all reports within radiusMiles of the center point.
// Candidates come from a bounding-box scan over the lat/lng index; the exact
// spherical-cap membership check runs here. No ordering is guaranteed.
func (s *ReportService) FindNearby(lat, lng, radiusMiles float64) ([]models.CrimeReport, error) {
	minLat, maxLat, minLng, maxLng := geo.BoundingBox(lat, lng, radiusMiles)

	rows, err := s.db.Query(
		"SELECT "+reportColumns+" FROM crime_reports WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?",
		minLat, maxLat, minLng, maxLng,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates, err := collectReports(rows)
	if err != nil {
		return nil, err
	}

	matches := make([]models.CrimeReport, 0, len(candidates))
	for _, report := range candidates {
		if geo.WithinRadius(lat, lng, report.Location.Latitude(), report.Location.Longitude(), radiusMiles) {
			matches = append(matches, report)
		}
	}
	return matches, nil
}

// VerifyReport transitions a report from Pending to Verified. Verifying a
// report in any other status is rejected; concurrent verifies of the same
// pending report are last-write-wins.
func (s *ReportService) VerifyReport(id string) (models.CrimeReport, error) {
	report, err := s.GetReportByID(id)
	if err != nil {
		return models.CrimeReport{}, err
	}
	if report.Status != models.StatusPending {
		return models.CrimeReport{}, fmt.Errorf("report %s has status %s: %w", id, report.Status, ErrNotPending)
	}

	_, err = s.db.Exec("UPDATE crime_reports SET status = ? WHERE id = ?", string(models.StatusVerified), id)
	if err != nil {
		return models.CrimeReport{}, err
	}
	return s.GetReportByID(id)
}

// CountsByStatus returns the number of reports per status. Statuses with no
// reports are present with a zero count.
func (s *ReportService) CountsByStatus() (map[models.ReportStatus]int, error) {
	counts := map[models.ReportStatus]int{
		models.StatusPending:  0,
		models.StatusVerified: 0,
		models.StatusResolved: 0,
	}

	rows, err := s.db.Query("SELECT status, COUNT(1) FROM crime_reports GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[models.ReportStatus(status)] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (models.CrimeReport, error) {
	var report models.CrimeReport
	var lng, lat float64
	var status string
	err := row.Scan(&report.ID, &report.UserID, &report.Description, &lng, &lat, &status, &report.CreatedAt)
	if err != nil {
		return models.CrimeReport{}, err
	}
	report.Location = models.NewPoint(lng, lat)
	report.Status = models.ReportStatus(status)
	return report, nil
}

func collectReports(rows *sql.Rows) ([]models.CrimeReport, error) {
	reports := make([]models.CrimeReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
