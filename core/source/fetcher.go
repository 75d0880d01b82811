package source

import (
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"time"

	"broad-babel/core/storage"

	"go.uber.org/zap"
)

// Fetcher makes sure a verified copy of the lookup database exists locally.
type Fetcher struct {
	downloader Downloader
	checksum   *Checksum
	path       string
	logger     *zap.Logger
}

// NewFetcher builds a Fetcher from configuration. The storage client is only
// required when cfg.Object is set.
func NewFetcher(cfg Config, client storage.Client, bucket string, logger *zap.Logger) (*Fetcher, error) {
	var dl Downloader
	switch {
	case cfg.Object != "":
		if client == nil {
			return nil, errors.New("source object configured without a storage client")
		}
		dl = &ObjectDownloader{Client: client, Bucket: bucket, Object: cfg.Object}
	case cfg.URL != "":
		dl = &URLDownloader{URL: cfg.URL, Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	default:
		return nil, errors.New("no source url or object configured")
	}

	path, err := LocalPath(cfg)
	if err != nil {
		return nil, err
	}
	return New(dl, cfg.KnownHash, path, logger)
}

// New creates a Fetcher around an explicit downloader.
func New(dl Downloader, knownHash, path string, logger *zap.Logger) (*Fetcher, error) {
	f := &Fetcher{downloader: dl, path: path, logger: logger}
	if knownHash != "" {
		c, err := ParseChecksum(knownHash)
		if err != nil {
			return nil, err
		}
		f.checksum = &c
	}
	return f, nil
}

// LocalPath resolves where the cached database lives.
func LocalPath(cfg Config) (string, error) {
	dir := cfg.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve cache dir: %w", err)
		}
		dir = filepath.Join(base, "broad-babel")
	}
	name := cfg.FileName
	if name == "" {
		name = "names.db"
	}
	return filepath.Join(dir, name), nil
}

// Path returns the local file location, whether or not it exists yet.
func (f *Fetcher) Path() string {
	return f.path
}

// Checksum returns the known hash, if one was configured.
func (f *Fetcher) Checksum() (Checksum, bool) {
	if f.checksum == nil {
		return Checksum{}, false
	}
	return *f.checksum, true
}

// Verify checks the local file against the known hash.
// Without a known hash only existence is checked.
func (f *Fetcher) Verify() error {
	if _, err := os.Stat(f.path); err != nil {
		return err
	}
	if f.checksum == nil {
		return nil
	}
	return f.checksum.VerifyFile(f.path)
}

// Ensure returns the path of a verified local copy, downloading it first if
// it is missing or does not match the known hash.
func (f *Fetcher) Ensure(ctx context.Context) (string, error) {
	err := f.Verify()
	if err == nil {
		f.logger.Debug("Using cached lookup database", zap.String("path", f.path))
		return f.path, nil
	}
	if errors.Is(err, ErrChecksumMismatch) {
		f.logger.Warn("Cached lookup database is stale, downloading again", zap.String("path", f.path), zap.Error(err))
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := f.download(ctx); err != nil {
		return "", err
	}
	return f.path, nil
}

func (f *Fetcher) download(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	f.logger.Info("Downloading lookup database", zap.String("from", f.downloader.Location()), zap.String("to", f.path))

	var (
		w io.Writer = tmp
		h hash.Hash
	)
	if f.checksum != nil {
		h, _ = f.checksum.newHash()
		w = io.MultiWriter(tmp, h)
	}

	if err := f.downloader.Download(ctx, w); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}

	if h != nil {
		if err := f.checksum.Verify(h); err != nil {
			return err
		}
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to move database into place: %w", err)
	}
	return nil
}
