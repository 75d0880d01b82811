package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"broad-babel/core/database"
	"broad-babel/core/storage"
	"broad-babel/core/utils"
	"broad-babel/feature/lookup"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by Upload when no object storage is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Exporter dumps whole tables as CSV.
type Exporter struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// New creates an exporter. client may be nil when uploads are not needed.
func New(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{db: db, client: client, bucket: bucket, logger: logger}
}

// ExportCSV writes table to the file at path, replacing any existing file.
// A failed export removes the partial file.
func (e *Exporter) ExportCSV(ctx context.Context, path, table string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := e.Write(ctx, f, table)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	e.logger.Info("Exported table", zap.String("table", table), zap.String("path", path), zap.Int("records", n))
	return nil
}

// Write streams table to w: a header with the column names in storage order,
// then one line per record. NULL becomes an empty field. It returns the
// number of records written, not counting the header.
func (e *Exporter) Write(ctx context.Context, w io.Writer, table string) (int, error) {
	if !lookup.IsIdentifier(table) {
		return 0, fmt.Errorf("%w: table %q", lookup.ErrInvalidColumn, table)
	}

	cols, err := database.GetTableColumns(ctx, e.db, table)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", lookup.ErrDataAccess, err)
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("%w: table %s not found", lookup.ErrDataAccess, table)
	}
	headers := database.ColumnNames(cols)

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return 0, err
	}

	count := 0
	err = e.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		rows, err := tx.Raw(e.selectAll(table, headers)).Rows()
		if err != nil {
			return fmt.Errorf("%w: %v", lookup.ErrDataAccess, err)
		}
		defer rows.Close()

		vals := make([]any, len(headers))
		ptrs := make([]any, len(headers))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		for rows.Next() {
			clear(vals)
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("%w: %v", lookup.ErrDataAccess, err)
			}
			if err := cw.Write(utils.ToStrings(vals)); err != nil {
				return err
			}
			count++
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %v", lookup.ErrDataAccess, err)
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	cw.Flush()
	return count, cw.Error()
}

// Upload exports table straight into the bucket as objectName.
func (e *Exporter) Upload(ctx context.Context, table, objectName string) (minio.UploadInfo, error) {
	if e.client == nil {
		return minio.UploadInfo{}, ErrStorageDisabled
	}
	if objectName == "" {
		objectName = table + ".csv"
	}

	type result struct {
		n   int
		err error
	}
	pr, pw := io.Pipe()
	done := make(chan result, 1)
	go func() {
		n, err := e.Write(ctx, pw, table)
		pw.CloseWithError(err)
		done <- result{n, err}
	}()

	info, err := e.client.PutObject(ctx, e.bucket, objectName, pr, -1, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	// Unblocks the writer if the upload stopped reading early.
	pr.CloseWithError(err)
	res := <-done
	if res.err != nil {
		return minio.UploadInfo{}, res.err
	}
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	e.logger.Info("Uploaded table",
		zap.String("table", table),
		zap.String("bucket", e.bucket),
		zap.String("object", objectName),
		zap.Int("records", res.n),
	)
	return info, nil
}

func (e *Exporter) selectAll(table string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = e.quote(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), e.quote(table))
}

func (e *Exporter) quote(name string) string {
	var b strings.Builder
	e.db.Dialector.QuoteTo(&b, name)
	return b.String()
}
