package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/curate/internal/apitest"
	"github.com/rcliao/curate/internal/model"
)

func newTestClient(t *testing.T) (*Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	return NewClient(srv.URL()+"/", nil), srv
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestClient(t)

	created, err := c.CreateEntry(ctx, model.InstructionRecord{Instruction: "Add", Output: "Sum"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected backend-assigned id")
	}

	entries, err := c.ListEntries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != created.ID || entries[0].Type != model.FormatInstruction {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	rec, err := entries[0].Instruction()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Instruction != "Add" || rec.Input != "" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if srv.Calls(apitest.RouteCreateEntry) != 1 {
		t.Errorf("expected 1 create call, got %d", srv.Calls(apitest.RouteCreateEntry))
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	c, _ := newTestClient(t)
	entries, err := c.ListEntries(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if entries == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestDeleteEntryAndAll(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestClient(t)
	a := apitest.Chat("one", nil)
	b := apitest.Chat("two", nil)
	srv.Seed(a, b)

	if err := c.DeleteEntry(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := srv.Entries(); len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("unexpected entries after delete: %+v", got)
	}

	err := c.DeleteEntry(ctx, "missing")
	if StatusCode(err) != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}

	if err := c.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if len(srv.Entries()) != 0 {
		t.Error("expected empty store")
	}
}

func TestValidate(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SetValidate(func(typ model.FormatMode, _ json.RawMessage) model.ValidationResult {
		return model.ValidationResult{QualityScore: 40, Issues: []string{"missing context"}, Warnings: []string{"short"}}
	})

	res, err := c.Validate(context.Background(), model.ChatRecord{Messages: []model.ChatMessage{{Role: model.RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !res.Blocking() || res.Issues[0] != "missing context" || res.QualityScore != 40 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestErrorCarriesBody(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail(apitest.RouteListEntries, http.StatusInternalServerError)

	_, err := c.ListEntries(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.Status)
	}
	if !strings.Contains(err.Error(), "forced failure") {
		t.Errorf("error should carry body text: %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil)
	err := c.Ping(context.Background())
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if StatusCode(err) != 0 {
		t.Errorf("transport failure should carry no status")
	}
}

func TestRequestID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, nil).Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if len(got) != 26 {
		t.Errorf("expected ULID request id, got %q", got)
	}
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestClient(t)
	srv.Seed(apitest.Chat("one", nil), apitest.Instruction("do", "done", nil))
	dir := t.TempDir()

	path, err := c.Download(ctx, ExportJSONL, dir)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if filepath.Base(path) != "llm-dataset.jsonl" {
		t.Errorf("unexpected filename %q", path)
	}
	b, _ := os.ReadFile(path)
	if lines := strings.Count(string(b), "\n"); lines != 2 {
		t.Errorf("expected 2 lines, got %d: %q", lines, b)
	}

	path, err = c.Download(ctx, ExportJSON, dir)
	if err != nil {
		t.Fatalf("download json: %v", err)
	}
	if filepath.Base(path) != "llm-dataset.json" {
		t.Errorf("unexpected filename %q", path)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".curate-*.part"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestDownloadFailureLeavesNothing(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail(apitest.RouteDownloadJSON, http.StatusServiceUnavailable)
	dir := t.TempDir()

	if _, err := c.Download(context.Background(), ExportJSON, dir); err == nil {
		t.Fatal("expected error")
	}
	files, _ := os.ReadDir(dir)
	if len(files) != 0 {
		t.Errorf("expected empty dir, found %d files", len(files))
	}

	if _, err := c.Download(context.Background(), ExportFormat("csv"), dir); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestAttachmentName(t *testing.T) {
	tests := []struct {
		header, want string
	}{
		{"", "fallback.json"},
		{"attachment; filename=data.json", "data.json"},
		{`attachment; filename="../../etc/passwd"`, "passwd"},
		{"inline", "fallback.json"},
	}
	for _, tt := range tests {
		if got := attachmentName(tt.header, "fallback.json"); got != tt.want {
			t.Errorf("attachmentName(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
