package service

import (
	"context"
	"database/sql"
	"fmt"
	"maps"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	features map[string]bool
}

// NewSystemService creates a new SystemService. features lists optional
// capabilities reported by CheckVersion, such as "snapshots".
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		features: maps.Clone(features),
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to check version: %w", err)
	}

	features := maps.Clone(s.features)
	if features == nil {
		features = map[string]bool{}
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  dbVersion,
		Features:   features,
	}, nil
}
