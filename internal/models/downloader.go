package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/aipify/aipify-local/internal/observability"
)

// ProgressFunc receives download progress. total is -1 when the remote end
// sends no content length.
type ProgressFunc func(file string, done, total int64)

// Downloader fetches model artifacts into a local directory. A failed or
// interrupted download never leaves a partial file behind.
type Downloader struct {
	dir      string
	client   *http.Client
	progress ProgressFunc
}

func NewDownloader(dir string) *Downloader {
	return &Downloader{
		dir:    dir,
		client: http.DefaultClient,
	}
}

// SetProgress installs a progress callback.
func (d *Downloader) SetProgress(fn ProgressFunc) {
	d.progress = fn
}

// Ensure makes the artifact available locally, downloading it when absent.
func (d *Downloader) Ensure(ctx context.Context, mf ModelFile) error {
	log := observability.Component("downloader").With("model", mf.ID, "file", mf.File)

	if mf.Exists(d.dir) {
		log.Info("model file already present")
		return nil
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating models directory: %w", err)
	}

	log.Info("downloading model file", "url", mf.URL, "size", mf.SizeHint)
	if err := d.download(ctx, mf); err != nil {
		log.Error("download failed", "error", err)
		return fmt.Errorf("downloading %s: %w", mf.File, err)
	}

	log.Info("download complete")
	return nil
}

func (d *Downloader) download(ctx context.Context, mf ModelFile) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mf.URL, nil)
	if err != nil {
		return err
	}

	res, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", res.Status)
	}

	dest := mf.Path(d.dir)
	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if err := d.copyWithProgress(out, res.Body, mf.File, res.ContentLength); err != nil {
		out.Close()
		// clean up the partial file before reporting failure
		os.Remove(dest)
		return err
	}

	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}

	return nil
}

func (d *Downloader) copyWithProgress(dst io.Writer, src io.Reader, file string, total int64) error {
	buf := make([]byte, 1<<20)
	var done int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
			done += int64(n)
			if d.progress != nil {
				d.progress(file, done, total)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
