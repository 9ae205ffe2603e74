// Package apitest provides an in-memory curation backend for tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rcliao/curate/internal/model"
)

// Route keys accepted by Fail and Calls.
const (
	RouteRoot          = "GET /api"
	RouteListEntries   = "GET /api/entries"
	RouteCreateEntry   = "POST /api/entries"
	RouteDeleteEntry   = "DELETE /api/entries/:id"
	RouteDeleteAll     = "DELETE /api/entries"
	RouteValidate      = "POST /api/validate"
	RouteDownloadJSON  = "GET /api/download"
	RouteDownloadJSONL = "GET /api/download/jsonl"
)

// ValidateFunc scores a submitted record.
type ValidateFunc func(typ model.FormatMode, data json.RawMessage) model.ValidationResult

// Server is a fake backend honoring the /api contract.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	entries  []model.Entry
	fail     map[string]int
	calls    map[string]int
	validate ValidateFunc
	hold     map[string]chan struct{}
}

// New starts a fake backend that is shut down when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		fail:     make(map[string]int),
		calls:    make(map[string]int),
		hold:     make(map[string]chan struct{}),
		validate: passAll,
	}

	r := gin.New()
	r.Use(s.track)

	api := r.Group("/api")
	api.GET("", s.root)
	api.GET("/entries", s.listEntries)
	api.POST("/entries", s.createEntry)
	api.DELETE("/entries/:id", s.deleteEntry)
	api.DELETE("/entries", s.deleteAll)
	api.POST("/validate", s.validateEntry)
	api.GET("/download", s.downloadJSON)
	api.GET("/download/jsonl", s.downloadJSONL)

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the server root, without the /api prefix.
func (s *Server) URL() string { return s.srv.URL }

// Fail makes route answer with status until Recover is called.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[route] = status
}

// Recover clears a forced failure.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fail, route)
}

// Hold blocks requests on route until the returned release func is called.
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold[route] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.hold, route)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Calls returns how many requests reached route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// SetValidate replaces the scoring function.
func (s *Server) SetValidate(fn ValidateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validate = fn
}

// Seed appends entries directly to the store.
func (s *Server) Seed(entries ...model.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
}

// Entries returns a copy of the stored entries.
func (s *Server) Entries() []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Chat builds a stored chat entry for seeding.
func Chat(content string, score *float64) model.Entry {
	data, _ := json.Marshal(model.ChatRecord{Messages: []model.ChatMessage{{Role: model.RoleUser, Content: content}}})
	return model.Entry{
		ID:           uuid.NewString(),
		Type:         model.FormatChat,
		Data:         data,
		Timestamp:    model.Timestamp{Time: time.Now()},
		QualityScore: score,
	}
}

// Instruction builds a stored instruction entry for seeding.
func Instruction(instruction, output string, score *float64) model.Entry {
	data, _ := json.Marshal(model.InstructionRecord{Instruction: instruction, Output: output})
	return model.Entry{
		ID:           uuid.NewString(),
		Type:         model.FormatInstruction,
		Data:         data,
		Timestamp:    model.Timestamp{Time: time.Now()},
		QualityScore: score,
	}
}

// Score is a helper for building optional quality scores.
func Score(v float64) *float64 { return &v }

func passAll(model.FormatMode, json.RawMessage) model.ValidationResult {
	return model.ValidationResult{QualityScore: 90, Issues: []string{}, Warnings: []string{}, Passes: true}
}

func (s *Server) track(c *gin.Context) {
	key := c.Request.Method + " " + c.FullPath()

	s.mu.Lock()
	s.calls[key]++
	status, failing := s.fail[key]
	hold := s.hold[key]
	s.mu.Unlock()

	if hold != nil {
		<-hold
	}
	if failing {
		c.AbortWithStatusJSON(status, gin.H{"detail": "forced failure"})
		return
	}
	c.Next()
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the LLM Data Curation API"})
}

func (s *Server) listEntries(c *gin.Context) {
	c.JSON(http.StatusOK, s.Entries())
}

type entryBody struct {
	Type model.FormatMode `json:"type"`
	Data json.RawMessage  `json:"data"`
}

func (s *Server) createEntry(c *gin.Context) {
	var body entryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !model.ValidFormats[body.Type] || len(body.Data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "type and data are required"})
		return
	}

	e := model.Entry{
		ID:        uuid.NewString(),
		Type:      body.Type,
		Data:      body.Data,
		Timestamp: model.Timestamp{Time: time.Now()},
	}
	s.mu.Lock()
	res := s.validate(body.Type, body.Data)
	score := res.QualityScore
	e.QualityScore = &score
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"id": e.ID, "message": "Entry added successfully"})
}

func (s *Server) deleteEntry(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Entry not found"})
}

func (s *Server) deleteAll(c *gin.Context) {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "All entries deleted successfully"})
}

func (s *Server) validateEntry(c *gin.Context) {
	var body entryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	fn := s.validate
	s.mu.Unlock()
	c.JSON(http.StatusOK, fn(body.Type, body.Data))
}

func (s *Server) payloads() []json.RawMessage {
	entries := s.Entries()
	out := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Data)
	}
	return out
}

func (s *Server) downloadJSON(c *gin.Context) {
	b, _ := json.MarshalIndent(s.payloads(), "", "  ")
	c.Header("Content-Disposition", "attachment; filename=llm-dataset.json")
	c.Data(http.StatusOK, "application/json", b)
}

func (s *Server) downloadJSONL(c *gin.Context) {
	var buf bytes.Buffer
	for _, p := range s.payloads() {
		compact := new(bytes.Buffer)
		if err := json.Compact(compact, p); err != nil {
			compact.Write(p)
		}
		buf.Write(compact.Bytes())
		buf.WriteByte('\n')
	}
	c.Header("Content-Disposition", "attachment; filename=llm-dataset.jsonl")
	c.Data(http.StatusOK, "application/jsonlines", buf.Bytes())
}
