package editor

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/rcliao/curate/internal/model"
)

const (
	previewLimit = 100
	timeLayout   = "2006-01-02 15:04:05"

	emptyMessage = "No data entries yet. Add some entries to see them here."
)

// Verdict is the headline state of the validation panel.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictPending
	VerdictPass
	VerdictPartial
	VerdictFail
)

func (v Verdict) String() string {
	switch v {
	case VerdictPending:
		return "Validating…"
	case VerdictPass:
		return "Passes quality checks"
	case VerdictPartial:
		return "Passes with warnings"
	case VerdictFail:
		return "Fails quality checks"
	}
	return ""
}

// EntryCard is one dataset entry as listed on a page.
type EntryCard struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
	Preview   string `json:"preview"`
	Score     *int   `json:"score,omitempty"`
}

// PaginationView describes the page controls.
type PaginationView struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	PerPage    int  `json:"per_page"`
	From       int  `json:"from"`
	To         int  `json:"to"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// ValidationPanel is the rendered state of the last validation.
type ValidationPanel struct {
	Verdict  Verdict  `json:"-"`
	Headline string   `json:"headline"`
	Score    int      `json:"score"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// ConfirmView is an open confirmation dialog.
type ConfirmView struct {
	Kind   PendingKind
	Prompt string
}

// DetailView shows one entry's payload in full.
type DetailView struct {
	ID    string
	Title string
	JSON  string
}

// ViewModel is everything a display surface needs to paint the editor.
type ViewModel struct {
	Format       model.FormatMode
	Phase        Phase
	Form         Form
	Cards        []EntryCard
	EmptyMessage string
	Pagination   PaginationView
	Stats        Stats
	Validation   ValidationPanel
	Confirm      *ConfirmView
	Detail       *DetailView
	Banner       string
	Notice       string
	Alert        string
}

// Busy reports whether a submission is in flight.
func (v ViewModel) Busy() bool {
	return v.Phase == PhaseValidating || v.Phase == PhaseSubmitting
}

// BuildView computes the view model from s at time now. It clamps s.Page.
func BuildView(s *State, now time.Time) ViewModel {
	s.clampPage()

	vm := ViewModel{
		Format:     s.Format,
		Phase:      s.Phase,
		Form:       s.Form.clone(),
		Stats:      ComputeStats(s.Dataset),
		Pagination: paginationView(s),
		Validation: validationPanel(s.Validation, s.Validating),
		Alert:      s.Alert,
	}

	start, end := PageBounds(s.Page, len(s.Dataset), s.PerPage)
	vm.Cards = make([]EntryCard, 0, end-start)
	for _, e := range s.Dataset[start:end] {
		vm.Cards = append(vm.Cards, Card(e))
	}
	if len(s.Dataset) == 0 {
		vm.EmptyMessage = emptyMessage
	}

	if s.Pending != nil {
		vm.Confirm = &ConfirmView{Kind: s.Pending.Kind, Prompt: s.Pending.Prompt}
	}
	if s.Detail != nil {
		vm.Detail = detailView(*s.Detail)
	}
	if s.Banner.live(now) {
		vm.Banner = s.Banner.Text
	}
	if s.Notice.live(now) {
		vm.Notice = s.Notice.Text
	}
	return vm
}

// Card builds the list card for e.
func Card(e model.Entry) EntryCard {
	c := EntryCard{
		ID:      e.ID,
		Type:    string(e.Type),
		Title:   e.Type.Title(),
		Preview: Preview(e.Data),
	}
	if !e.Timestamp.IsZero() {
		c.Timestamp = e.Timestamp.Local().Format(timeLayout)
	}
	if e.QualityScore != nil {
		score := int(math.Round(*e.QualityScore))
		c.Score = &score
	}
	return c
}

// Preview is the compact JSON of data cut to 100 characters, with "..." when cut.
func Preview(data json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		buf.Reset()
		buf.Write(data)
	}
	runes := []rune(buf.String())
	if len(runes) <= previewLimit {
		return string(runes)
	}
	return string(runes[:previewLimit]) + "..."
}

func paginationView(s *State) PaginationView {
	total := len(s.Dataset)
	pages := TotalPages(total, s.PerPage)
	start, end := PageBounds(s.Page, total, s.PerPage)
	pv := PaginationView{
		Page:       s.Page,
		TotalPages: pages,
		PerPage:    s.PerPage,
		Total:      total,
		HasPrev:    s.Page > 1,
		HasNext:    s.Page < pages,
	}
	if end > start {
		pv.From, pv.To = start+1, end
	}
	return pv
}

func validationPanel(res *model.ValidationResult, pending bool) ValidationPanel {
	if pending {
		return ValidationPanel{Verdict: VerdictPending, Headline: VerdictPending.String()}
	}
	if res == nil {
		return ValidationPanel{}
	}

	p := ValidationPanel{
		Score:    int(math.Round(res.QualityScore)),
		Issues:   append([]string(nil), res.Issues...),
		Warnings: append([]string(nil), res.Warnings...),
	}
	switch {
	case len(res.Issues) > 0:
		p.Verdict = VerdictFail
	case res.Passes && len(res.Warnings) == 0:
		p.Verdict = VerdictPass
	default:
		p.Verdict = VerdictPartial
	}
	p.Headline = p.Verdict.String()
	return p
}

func detailView(e model.Entry) *DetailView {
	var buf bytes.Buffer
	if err := json.Indent(&buf, e.Data, "", "  "); err != nil {
		buf.Reset()
		buf.Write(e.Data)
	}
	return &DetailView{ID: e.ID, Title: e.Type.Title(), JSON: buf.String()}
}
