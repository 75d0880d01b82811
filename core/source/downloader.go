package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"broad-babel/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
)

// Downloader writes the remote database into w.
type Downloader interface {
	Download(ctx context.Context, w io.Writer) error
	// Location names the remote copy for logs.
	Location() string
}

// ObjectDownloader reads the database from an object storage bucket.
type ObjectDownloader struct {
	Client storage.Client
	Bucket string
	Object string
}

// Download implements Downloader.
func (d *ObjectDownloader) Download(ctx context.Context, w io.Writer) error {
	rc, err := d.Client.GetObject(ctx, d.Bucket, d.Object, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get object %s: %w", d.Location(), err)
	}
	defer rc.Close()

	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("failed to read object %s: %w", d.Location(), err)
	}
	return nil
}

// Location implements Downloader.
func (d *ObjectDownloader) Location() string {
	return "s3://" + d.Bucket + "/" + d.Object
}

// URLDownloader fetches the database over HTTP(S).
type URLDownloader struct {
	URL     string
	Timeout time.Duration
}

// Download implements Downloader. The fiber client has no context support,
// so the configured timeout bounds the request instead.
func (d *URLDownloader) Download(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a := fiber.Get(d.URL)
	if d.Timeout > 0 {
		a.Timeout(d.Timeout)
	}
	a.MaxRedirectsCount(5)

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("failed to download %s: %w", d.URL, errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected status %d", d.URL, code)
	}

	_, err := w.Write(body)
	return err
}

// Location implements Downloader.
func (d *URLDownloader) Location() string {
	return d.URL
}
