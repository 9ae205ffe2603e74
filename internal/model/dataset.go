// Package model defines the dataset record and entry types exchanged with the curation API.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FormatMode selects which record shape is being edited.
type FormatMode string

const (
	FormatChat        FormatMode = "chat"
	FormatInstruction FormatMode = "instruction"
)

// Role is the speaker of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ValidFormats are the allowed format modes.
var ValidFormats = map[FormatMode]bool{
	FormatChat:        true,
	FormatInstruction: true,
}

// ValidRoles are the allowed chat roles.
var ValidRoles = map[Role]bool{
	RoleSystem:    true,
	RoleUser:      true,
	RoleAssistant: true,
}

// Title is the human label shown on entry cards.
func (f FormatMode) Title() string {
	if f == FormatChat {
		return "OpenAI Chat Format"
	}
	return "Instruction Format"
}

// Record is the raw payload inside an entry: a ChatRecord or an InstructionRecord.
type Record interface {
	Format() FormatMode
	Valid() bool
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRecord is an ordered conversation.
type ChatRecord struct {
	Messages []ChatMessage `json:"messages"`
}

func (ChatRecord) Format() FormatMode { return FormatChat }

// Valid reports whether at least one message has non-blank content.
func (r ChatRecord) Valid() bool {
	for _, m := range r.Messages {
		if strings.TrimSpace(m.Content) != "" {
			return true
		}
	}
	return false
}

// InstructionRecord is an instruction/output pair with optional input.
type InstructionRecord struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input,omitempty"`
	Output      string `json:"output"`
}

func (InstructionRecord) Format() FormatMode { return FormatInstruction }

// Valid reports whether both instruction and output are non-blank.
func (r InstructionRecord) Valid() bool {
	return strings.TrimSpace(r.Instruction) != "" && strings.TrimSpace(r.Output) != ""
}

// Entry is one persisted dataset record plus backend-assigned metadata.
type Entry struct {
	ID           string          `json:"id"`
	Type         FormatMode      `json:"type"`
	Data         json.RawMessage `json:"data"`
	Timestamp    Timestamp       `json:"timestamp"`
	QualityScore *float64        `json:"quality_score,omitempty"`
}

// Chat decodes the entry payload as a chat record.
func (e Entry) Chat() (ChatRecord, error) {
	var r ChatRecord
	if e.Type != FormatChat {
		return r, fmt.Errorf("entry %s is %s, not chat", e.ID, e.Type)
	}
	if err := json.Unmarshal(e.Data, &r); err != nil {
		return r, fmt.Errorf("decode chat entry %s: %w", e.ID, err)
	}
	return r, nil
}

// Instruction decodes the entry payload as an instruction record.
func (e Entry) Instruction() (InstructionRecord, error) {
	var r InstructionRecord
	if e.Type != FormatInstruction {
		return r, fmt.Errorf("entry %s is %s, not instruction", e.ID, e.Type)
	}
	if err := json.Unmarshal(e.Data, &r); err != nil {
		return r, fmt.Errorf("decode instruction entry %s: %w", e.ID, err)
	}
	return r, nil
}

// NewEntryRequest is the body of a create or validate call.
type NewEntryRequest struct {
	Type FormatMode `json:"type"`
	Data Record     `json:"data"`
}

// ValidationResult is the backend's quality assessment of a draft record.
type ValidationResult struct {
	QualityScore float64  `json:"quality_score"`
	Issues       []string `json:"issues"`
	Warnings     []string `json:"warnings"`
	Passes       bool     `json:"passes"`
}

// Blocking reports whether the result carries issues that should stop a submission.
func (v ValidationResult) Blocking() bool {
	return len(v.Issues) > 0
}

// Timestamp accepts RFC 3339 with or without a zone offset, since the
// backend serializes naive ISO-8601 datetimes.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
