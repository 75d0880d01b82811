package integrity

import (
	"context"
	"errors"

	"broad-babel/core/source"
	"broad-babel/core/storage"
	"broad-babel/feature/integrity/checks"
	"broad-babel/feature/lookup/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by CheckStorage without a storage client.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Service handles integrity checks.
type Service struct {
	db      *gorm.DB
	table   string
	fetcher *source.Fetcher
	client  storage.Client
	bucket  string
	objects []string
	logger  *zap.Logger
}

// NewService creates a new integrity service. fetcher and client may be nil;
// the checks that need them then report an error.
func NewService(db *gorm.DB, table string, fetcher *source.Fetcher, client storage.Client, bucket string, objects []string, logger *zap.Logger) *Service {
	return &Service{
		db:      db,
		table:   table,
		fetcher: fetcher,
		client:  client,
		bucket:  bucket,
		objects: objects,
		logger:  logger,
	}
}

// CheckSchema compares the lookup table with the names model.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	return checks.CheckSchema(ctx, s.db, s.table, models.Name{})
}

// CheckSource verifies the local database file against its known hash.
func (s *Service) CheckSource() (*checks.SourceReport, error) {
	return checks.CheckSource(s.fetcher)
}

// CheckStorage returns the expected objects missing from the bucket.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.objects)
}

// RunAll runs every check and reports whether all of them passed.
func (s *Service) RunAll(ctx context.Context) (map[string]interface{}, bool) {
	report := make(map[string]interface{})
	ok := true

	// Schema
	if schema, err := s.CheckSchema(ctx); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
		ok = false
	} else {
		report["schema"] = schema
		ok = ok && schema.Matched
	}

	// Source only applies to a local database file
	if s.fetcher == nil {
		report["source"] = map[string]interface{}{"status": "skipped"}
	} else if src, err := s.CheckSource(); err != nil {
		report["source"] = map[string]interface{}{"status": "error", "error": err.Error()}
		ok = false
	} else {
		report["source"] = src
		ok = ok && src.Matched
	}

	// Storage is optional
	if missing, err := s.CheckStorage(ctx); errors.Is(err, ErrStorageDisabled) {
		report["storage"] = map[string]interface{}{"status": "skipped"}
	} else if err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
		ok = false
	} else {
		report["storage"] = map[string]interface{}{"status": "ok", "missing": missing}
		ok = ok && len(missing) == 0
	}

	return report, ok
}
