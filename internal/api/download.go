package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ExportFormat is a whole-dataset serialization produced by the backend.
type ExportFormat string

const (
	ExportJSON  ExportFormat = "json"
	ExportJSONL ExportFormat = "jsonl"
)

// ValidExportFormats are the export formats the backend serves.
var ValidExportFormats = map[ExportFormat]bool{
	ExportJSON:  true,
	ExportJSONL: true,
}

func (f ExportFormat) path() string {
	if f == ExportJSONL {
		return "/download/jsonl"
	}
	return "/download"
}

// Filename is used when the response carries no Content-Disposition name.
func (f ExportFormat) Filename() string {
	if f == ExportJSONL {
		return "llm-dataset.jsonl"
	}
	return "llm-dataset.json"
}

// Download streams the backend export for format into dir and returns the
// written path. The body lands in a temporary .part file that is renamed into
// place once complete and removed on any failure.
func (c *Client) Download(ctx context.Context, format ExportFormat, dir string) (string, error) {
	if !ValidExportFormats[format] {
		return "", fmt.Errorf("unknown export format %q", format)
	}
	op := "download " + string(format)

	req, reqID, err := c.newRequest(ctx, http.MethodGet, format.path(), nil)
	if err != nil {
		return "", err
	}
	log := c.logger.With(zap.String("op", op), zap.String("request_id", reqID))
	log.Info("starting download", zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("api transport failure", zap.Error(err))
		return "", &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &Error{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		log.Error("api error", zap.Int("status", resp.StatusCode), zap.String("body", apiErr.Body))
		return "", apiErr
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".curate-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
		log.Debug("download temp file removed", zap.String("path", tmpPath))
	}

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		cleanup()
		return "", &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	dest := filepath.Join(dir, attachmentName(resp.Header.Get("Content-Disposition"), format.Filename()))
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("move download into place: %w", err)
	}

	log.Info("download complete", zap.String("path", dest), zap.Int64("bytes", n))
	return dest, nil
}

// attachmentName extracts a safe base filename from a Content-Disposition header.
func attachmentName(header, fallback string) string {
	if header == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return fallback
	}
	name := filepath.Base(params["filename"])
	if name == "" || name == "." || name == "/" || name == ".." {
		return fallback
	}
	return name
}
