package editor

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/curate/internal/model"
)

func score(v float64) *float64 { return &v }

func entry(id string, typ model.FormatMode, s *float64) model.Entry {
	return model.Entry{
		ID:           id,
		Type:         typ,
		Data:         json.RawMessage(`{"instruction":"a","output":"b"}`),
		QualityScore: s,
	}
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats([]model.Entry{
		entry("1", model.FormatChat, score(80)),
		entry("2", model.FormatInstruction, score(60)),
		entry("3", model.FormatChat, nil),
	})
	if st.Total != 3 || st.Chat != 2 || st.Instruction != 1 {
		t.Errorf("unexpected counts: %+v", st)
	}
	if st.AverageScore != 70 || st.Scored != 2 {
		t.Errorf("expected average 70 over 2 scored, got %+v", st)
	}

	if got := ComputeStats(nil); got.AverageScore != 0 || got.Total != 0 {
		t.Errorf("empty stats: %+v", got)
	}
	if got := ComputeStats([]model.Entry{entry("a", model.FormatChat, score(70.5)), entry("b", model.FormatChat, score(70))}); got.AverageScore != 70 {
		t.Errorf("expected 70.25 to round to 70, got %d", got.AverageScore)
	}
}

func TestPreview(t *testing.T) {
	short := json.RawMessage(`{ "instruction": "a",  "output": "b" }`)
	if got := Preview(short); got != `{"instruction":"a","output":"b"}` {
		t.Errorf("preview not compacted: %q", got)
	}

	long := json.RawMessage(`{"output":"` + strings.Repeat("x", 200) + `"}`)
	got := Preview(long)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != previewLimit+3 {
		t.Errorf("long preview = %q (%d runes)", got, len([]rune(got)))
	}
}

func TestBuildViewPagination(t *testing.T) {
	s := newState(10)
	for i := 1; i <= 25; i++ {
		s.Dataset = append(s.Dataset, entry(string(rune('a'+i-1)), model.FormatChat, nil))
	}
	s.Page = 4

	vm := BuildView(&s, time.Now())
	if s.Page != 3 {
		t.Errorf("page should be clamped to 3, got %d", s.Page)
	}
	if vm.Pagination.TotalPages != 3 || vm.Pagination.Page != 3 {
		t.Errorf("pagination = %+v", vm.Pagination)
	}
	if len(vm.Cards) != 5 {
		t.Fatalf("expected 5 cards on last page, got %d", len(vm.Cards))
	}
	if vm.Cards[0].ID != s.Dataset[20].ID || vm.Cards[4].ID != s.Dataset[24].ID {
		t.Errorf("last page should show entries 21-25")
	}
	if vm.Pagination.From != 21 || vm.Pagination.To != 25 {
		t.Errorf("from/to = %d/%d", vm.Pagination.From, vm.Pagination.To)
	}
	if !vm.Pagination.HasPrev || vm.Pagination.HasNext {
		t.Errorf("prev/next = %v/%v", vm.Pagination.HasPrev, vm.Pagination.HasNext)
	}
	if vm.EmptyMessage != "" {
		t.Error("non-empty dataset should have no empty message")
	}
}

func TestBuildViewEmpty(t *testing.T) {
	s := newState(10)
	vm := BuildView(&s, time.Now())
	if len(vm.Cards) != 0 || vm.EmptyMessage == "" {
		t.Errorf("expected empty message, got %+v", vm)
	}
	if vm.Pagination.TotalPages != 1 || vm.Pagination.Page != 1 {
		t.Errorf("empty pagination = %+v", vm.Pagination)
	}
}

func TestCard(t *testing.T) {
	e := entry("x", model.FormatInstruction, score(77.6))
	e.Timestamp = model.Timestamp{Time: time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)}

	c := Card(e)
	if c.Title != "Instruction Format" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Timestamp != "2024-05-06 07:08:09" {
		t.Errorf("timestamp = %q", c.Timestamp)
	}
	if c.Score == nil || *c.Score != 78 {
		t.Errorf("score = %v", c.Score)
	}
	if Card(entry("y", model.FormatChat, nil)).Title != "OpenAI Chat Format" {
		t.Error("chat title wrong")
	}
}

func TestValidationPanel(t *testing.T) {
	tests := []struct {
		name    string
		res     *model.ValidationResult
		pending bool
		want    Verdict
	}{
		{"none", nil, false, VerdictNone},
		{"pending", &model.ValidationResult{QualityScore: 50}, true, VerdictPending},
		{"pass", &model.ValidationResult{QualityScore: 95, Passes: true}, false, VerdictPass},
		{"warnings", &model.ValidationResult{QualityScore: 70, Passes: true, Warnings: []string{"short"}}, false, VerdictPartial},
		{"not passing", &model.ValidationResult{QualityScore: 40}, false, VerdictPartial},
		{"issues", &model.ValidationResult{Issues: []string{"missing context"}, Passes: true}, false, VerdictFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validationPanel(tt.res, tt.pending)
			if p.Verdict != tt.want {
				t.Errorf("verdict = %v, want %v", p.Verdict, tt.want)
			}
			if tt.pending && p.Score != 0 {
				t.Errorf("pending panel should show score 0, got %d", p.Score)
			}
		})
	}
}

func TestFlashExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newState(10)
	s.Banner = &Flash{Text: "down", Until: now.Add(10 * time.Second)}

	if vm := BuildView(&s, now.Add(9*time.Second)); vm.Banner != "down" {
		t.Errorf("banner should be visible before expiry")
	}
	if vm := BuildView(&s, now.Add(10*time.Second)); vm.Banner != "" {
		t.Errorf("banner should auto-dismiss, got %q", vm.Banner)
	}
}

func TestDetailView(t *testing.T) {
	d := detailView(entry("x", model.FormatInstruction, nil))
	if !strings.Contains(d.JSON, "\n  \"instruction\": \"a\"") {
		t.Errorf("detail not indented: %q", d.JSON)
	}
}
