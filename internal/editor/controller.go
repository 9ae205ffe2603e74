package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/curate/internal/api"
	"github.com/rcliao/curate/internal/model"
)

var (
	// ErrIncomplete means the active form is missing required fields. No request is sent.
	ErrIncomplete = errors.New("please fill in the required fields")
	// ErrDeclined means the user rejected a confirmation.
	ErrDeclined = errors.New("declined")
	// ErrBusy means a submission or confirmation is already in progress.
	ErrBusy = errors.New("another operation is in progress")
	// ErrNoPending means there is nothing to confirm or decline.
	ErrNoPending = errors.New("nothing awaiting confirmation")
	// ErrNotFound means the entry is not in the cached dataset.
	ErrNotFound = errors.New("entry not found")
)

const (
	deletePrompt   = "Are you sure you want to delete this entry?"
	clearAllPrompt = "Are you sure you want to clear the entire dataset? This action cannot be undone."
	overridePrompt = "Validation found blocking issues. Add this entry anyway?"
)

// Backend is the slice of the curation API the editor uses.
type Backend interface {
	ListEntries(ctx context.Context) ([]model.Entry, error)
	CreateEntry(ctx context.Context, rec model.Record) (*api.CreateResponse, error)
	DeleteEntry(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Validate(ctx context.Context, rec model.Record) (*model.ValidationResult, error)
	Download(ctx context.Context, format api.ExportFormat, dir string) (string, error)
}

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	PerPage           int
	BannerTTL         time.Duration
	NoticeTTL         time.Duration
	DownloadNoticeTTL time.Duration
	DownloadDir       string
	Now               func() time.Time
	Logger            *zap.Logger
}

// Controller owns the editor state. Every read and write of the state happens
// under mu; backend calls are made with mu released so a slow request never
// blocks unrelated actions. Concurrent reloads are not sequenced: whichever
// response arrives last becomes the cache.
type Controller struct {
	mu      sync.Mutex
	state   State
	backend Backend
	opts    Options
	logger  *zap.Logger
}

// New creates a controller with an empty cache. Dispatch Reload to populate it.
func New(backend Backend, opts Options) *Controller {
	if opts.PerPage <= 0 {
		opts.PerPage = 10
	}
	if opts.BannerTTL <= 0 {
		opts.BannerTTL = 10 * time.Second
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = 3 * time.Second
	}
	if opts.DownloadNoticeTTL <= 0 {
		opts.DownloadNoticeTTL = 2 * time.Second
	}
	if opts.DownloadDir == "" {
		opts.DownloadDir = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		state:   newState(opts.PerPage),
		backend: backend,
		opts:    opts,
		logger:  opts.Logger,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// View computes the current view model.
func (c *Controller) View() ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return BuildView(&c.state, c.opts.Now())
}

// Dispatch applies a to the state, calling the backend when the action needs it.
// It blocks until any backend call completes.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	c.logger.Debug("dispatch", zap.Stringer("action", a.Kind))

	switch a.Kind {
	case ActValidate:
		_, err := c.validate(ctx)
		return err
	case ActSubmit:
		return c.submit(ctx)
	case ActConfirm:
		return c.confirm(ctx)
	case ActReload:
		return c.reload(ctx)
	case ActLoadTemplate:
		return c.loadTemplate(ctx, a.ID)
	case ActDownload:
		return c.download(ctx, a.Export)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocal(a)
}

// applyLocal handles the actions that never touch the network. c.mu must be held.
func (c *Controller) applyLocal(a Action) error {
	s := &c.state
	switch a.Kind {
	case ActSwitchFormat:
		if !model.ValidFormats[a.Format] {
			return fmt.Errorf("invalid format %q", a.Format)
		}
		if s.Format != a.Format {
			s.Format = a.Format
			s.Validation = nil
		}
	case ActAddMessage:
		_, err := s.Form.AddMessage(a.Role)
		return err
	case ActRemoveMessage:
		return s.Form.RemoveMessage(a.Index)
	case ActSetMessage:
		return s.Form.SetMessage(a.Index, a.Text)
	case ActSetRole:
		return s.Form.SetRole(a.Index, a.Role)
	case ActSetField:
		return s.Form.SetField(a.Field, a.Text)
	case ActClearForm:
		s.Form.Clear(s.Format)
	case ActDecline:
		if s.Pending == nil {
			return ErrNoPending
		}
		c.logger.Info("confirmation declined", zap.String("prompt", s.Pending.Prompt))
		s.Pending = nil
		s.Phase = PhaseIdle
	case ActDelete:
		if s.Phase != PhaseIdle {
			return ErrBusy
		}
		s.Phase = PhaseConfirmPending
		s.Pending = &Pending{Kind: PendingDelete, Prompt: deletePrompt, EntryID: a.ID}
	case ActClearAll:
		if s.Phase != PhaseIdle {
			return ErrBusy
		}
		s.Phase = PhaseConfirmPending
		s.Pending = &Pending{Kind: PendingClearAll, Prompt: clearAllPrompt}
	case ActSetPage:
		s.Page = a.Page
		s.clampPage()
	case ActNextPage:
		s.Page++
		s.clampPage()
	case ActPrevPage:
		s.Page--
		s.clampPage()
	case ActSetPerPage:
		if a.Page <= 0 {
			return fmt.Errorf("entries per page must be positive, got %d", a.Page)
		}
		s.PerPage = a.Page
		s.Page = 1
	case ActInspect:
		for _, e := range s.Dataset {
			if e.ID == a.ID {
				detail := e
				s.Detail = &detail
				return nil
			}
		}
		return fmt.Errorf("inspect %s: %w", a.ID, ErrNotFound)
	case ActCloseDetail:
		s.Detail = nil
	case ActDismissAlert:
		s.Alert = ""
	case ActDismissBanner:
		s.Banner = nil
	default:
		return fmt.Errorf("unknown action %d", a.Kind)
	}
	return nil
}

// reload replaces the cache with the backend's entry list. On failure the old
// cache stays and a banner is raised.
func (c *Controller) reload(ctx context.Context) error {
	entries, err := c.backend.ListEntries(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Error("error loading entries", zap.Error(err))
		c.state.Banner = &Flash{
			Text:  fmt.Sprintf("Error loading data: %v. Check that the API server is running.", err),
			Until: c.opts.Now().Add(c.opts.BannerTTL),
		}
		return err
	}

	c.logger.Debug("entries loaded", zap.Int("count", len(entries)))
	c.state.Dataset = entries
	c.state.clampPage()
	if c.state.Detail != nil && !containsEntry(entries, c.state.Detail.ID) {
		c.state.Detail = nil
	}
	return nil
}

// validate runs a validation round-trip for the active draft. A transport
// failure is recorded as a failing result whose issues carry the error text.
func (c *Controller) validate(ctx context.Context) (*model.ValidationResult, error) {
	c.mu.Lock()
	rec, ok := c.state.Form.Extract(c.state.Format)
	if !ok {
		c.state.Alert = "Please fill in the required fields"
		c.mu.Unlock()
		return nil, ErrIncomplete
	}
	c.state.Validating = true
	c.state.Validation = &model.ValidationResult{}
	c.mu.Unlock()

	res, err := c.runValidation(ctx, rec)

	c.mu.Lock()
	c.state.Validating = false
	c.state.Validation = res
	c.mu.Unlock()
	return res, err
}

func (c *Controller) runValidation(ctx context.Context, rec model.Record) (*model.ValidationResult, error) {
	res, err := c.backend.Validate(ctx, rec)
	if err != nil {
		c.logger.Error("validation failed", zap.Error(err))
		return &model.ValidationResult{
			Issues:   []string{fmt.Sprintf("Validation failed: %v", err)},
			Warnings: []string{},
		}, err
	}
	c.logger.Debug("validation complete",
		zap.Float64("score", res.QualityScore),
		zap.Int("issues", len(res.Issues)),
		zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

// submit validates the draft and either creates the entry or, when validation
// reports blocking issues, waits for the user to confirm an override.
func (c *Controller) submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase != PhaseIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	rec, ok := c.state.Form.Extract(c.state.Format)
	if !ok {
		c.state.Alert = "Please fill in the required fields"
		c.mu.Unlock()
		return ErrIncomplete
	}
	c.state.Phase = PhaseValidating
	c.state.Validating = true
	c.state.Validation = &model.ValidationResult{}
	c.mu.Unlock()

	res, _ := c.runValidation(ctx, rec)

	c.mu.Lock()
	c.state.Validating = false
	c.state.Validation = res
	if res.Blocking() {
		c.state.Phase = PhaseConfirmPending
		c.state.Pending = &Pending{Kind: PendingSubmit, Prompt: overridePrompt, Record: rec}
		c.mu.Unlock()
		return nil
	}
	c.state.Phase = PhaseSubmitting
	c.mu.Unlock()

	return c.create(ctx, rec)
}

func (c *Controller) confirm(ctx context.Context) error {
	c.mu.Lock()
	p := c.state.Pending
	if p == nil {
		c.mu.Unlock()
		return ErrNoPending
	}
	c.state.Pending = nil
	if p.Kind == PendingSubmit {
		c.state.Phase = PhaseSubmitting
	} else {
		c.state.Phase = PhaseIdle
	}
	c.mu.Unlock()

	switch p.Kind {
	case PendingSubmit:
		c.logger.Info("submitting despite blocking issues")
		return c.create(ctx, p.Record)
	case PendingDelete:
		return c.deleteEntry(ctx, p.EntryID)
	default:
		return c.clearAll(ctx)
	}
}

// create posts rec. Success clears the form and reloads; failure raises a
// blocking alert and leaves the form as it was.
func (c *Controller) create(ctx context.Context, rec model.Record) error {
	resp, err := c.backend.CreateEntry(ctx, rec)

	c.mu.Lock()
	c.state.Phase = PhaseIdle
	if err != nil {
		c.logger.Error("error adding entry to dataset", zap.Error(err))
		c.state.Alert = "Failed to add entry to dataset: " + err.Error()
		c.mu.Unlock()
		return err
	}
	c.logger.Info("entry added", zap.String("id", resp.ID), zap.String("type", string(rec.Format())))
	c.state.Form.Clear(rec.Format())
	c.state.Validation = nil
	c.state.Notice = c.flash("Entry added to dataset successfully", c.opts.NoticeTTL)
	c.mu.Unlock()

	c.reload(ctx)
	return nil
}

func (c *Controller) deleteEntry(ctx context.Context, id string) error {
	if err := c.backend.DeleteEntry(ctx, id); err != nil {
		c.logger.Error("error deleting entry", zap.String("id", id), zap.Error(err))
		c.setAlert("Failed to delete entry: " + err.Error())
		return err
	}
	c.logger.Info("entry deleted", zap.String("id", id))
	c.reload(ctx)
	return nil
}

func (c *Controller) clearAll(ctx context.Context) error {
	if err := c.backend.DeleteAll(ctx); err != nil {
		c.logger.Error("error clearing dataset", zap.Error(err))
		c.setAlert("Failed to clear dataset: " + err.Error())
		return err
	}
	c.logger.Info("dataset cleared")

	c.mu.Lock()
	c.state.Notice = c.flash("Dataset cleared successfully", c.opts.NoticeTTL)
	c.mu.Unlock()

	c.reload(ctx)
	return nil
}

// loadTemplate replaces the draft with a canned example and validates it.
func (c *Controller) loadTemplate(ctx context.Context, id string) error {
	t, ok := LookupTemplate(id)
	if !ok {
		return fmt.Errorf("unknown template %q", id)
	}

	c.mu.Lock()
	c.state.Format = t.Format
	t.apply(&c.state.Form)
	c.mu.Unlock()

	_, err := c.validate(ctx)
	return err
}

func (c *Controller) download(ctx context.Context, format api.ExportFormat) error {
	c.logger.Info("starting download", zap.String("format", string(format)))
	path, err := c.backend.Download(ctx, format, c.opts.DownloadDir)
	if err != nil {
		c.setAlert("Failed to download dataset: " + err.Error())
		return err
	}

	c.mu.Lock()
	c.state.Notice = c.flash("Dataset saved to "+path, c.opts.DownloadNoticeTTL)
	c.mu.Unlock()
	return nil
}

func (c *Controller) setAlert(msg string) {
	c.mu.Lock()
	c.state.Alert = msg
	c.mu.Unlock()
}

func (c *Controller) flash(text string, ttl time.Duration) *Flash {
	return &Flash{Text: text, Until: c.opts.Now().Add(ttl)}
}

func containsEntry(entries []model.Entry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
