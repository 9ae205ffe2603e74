package editor

import (
	"fmt"
	"strings"

	"github.com/rcliao/curate/internal/model"
)

// Field names an instruction editor input.
type Field string

const (
	FieldInstruction Field = "instruction"
	FieldInput       Field = "input"
	FieldOutput      Field = "output"
)

// MessageRow is one row of the chat editor, in display order.
type MessageRow struct {
	Role    model.Role
	Content string
}

// Form is the draft being edited. Both editors keep their values while the
// other one is active.
type Form struct {
	Messages    []MessageRow
	Instruction string
	Input       string
	Output      string
}

// NewForm returns the initial editor: one empty system message and blank
// instruction fields.
func NewForm() Form {
	return Form{Messages: []MessageRow{{Role: model.RoleSystem}}}
}

// ExtractChat returns the non-blank messages in order, trimmed. ok is false
// when no message survives.
func (f Form) ExtractChat() (rec model.ChatRecord, ok bool) {
	for _, row := range f.Messages {
		content := strings.TrimSpace(row.Content)
		if content == "" {
			continue
		}
		rec.Messages = append(rec.Messages, model.ChatMessage{Role: row.Role, Content: content})
	}
	return rec, len(rec.Messages) > 0
}

// ExtractInstruction returns the trimmed instruction record. ok is false unless
// both instruction and output are present; input is kept only when non-blank.
func (f Form) ExtractInstruction() (rec model.InstructionRecord, ok bool) {
	rec = model.InstructionRecord{
		Instruction: strings.TrimSpace(f.Instruction),
		Input:       strings.TrimSpace(f.Input),
		Output:      strings.TrimSpace(f.Output),
	}
	if rec.Instruction == "" || rec.Output == "" {
		return model.InstructionRecord{}, false
	}
	return rec, true
}

// Extract dispatches to the extractor for format.
func (f Form) Extract(format model.FormatMode) (model.Record, bool) {
	if format == model.FormatChat {
		rec, ok := f.ExtractChat()
		if !ok {
			return nil, false
		}
		return rec, true
	}
	rec, ok := f.ExtractInstruction()
	if !ok {
		return nil, false
	}
	return rec, true
}

// AddMessage appends an empty row and returns its index.
func (f *Form) AddMessage(role model.Role) (int, error) {
	if !model.ValidRoles[role] {
		return 0, fmt.Errorf("invalid role %q", role)
	}
	f.Messages = append(f.Messages, MessageRow{Role: role})
	return len(f.Messages) - 1, nil
}

// RemoveMessage deletes row i.
func (f *Form) RemoveMessage(i int) error {
	if i < 0 || i >= len(f.Messages) {
		return fmt.Errorf("message %d out of range", i)
	}
	f.Messages = append(f.Messages[:i], f.Messages[i+1:]...)
	return nil
}

// SetMessage replaces the content of row i.
func (f *Form) SetMessage(i int, content string) error {
	if i < 0 || i >= len(f.Messages) {
		return fmt.Errorf("message %d out of range", i)
	}
	f.Messages[i].Content = content
	return nil
}

// SetRole changes the role of row i.
func (f *Form) SetRole(i int, role model.Role) error {
	if i < 0 || i >= len(f.Messages) {
		return fmt.Errorf("message %d out of range", i)
	}
	if !model.ValidRoles[role] {
		return fmt.Errorf("invalid role %q", role)
	}
	f.Messages[i].Role = role
	return nil
}

// SetField sets one instruction editor input.
func (f *Form) SetField(field Field, value string) error {
	switch field {
	case FieldInstruction:
		f.Instruction = value
	case FieldInput:
		f.Input = value
	case FieldOutput:
		f.Output = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Clear resets the editor for format. The chat editor keeps only its first
// row, emptied when it is the system message and untouched otherwise.
func (f *Form) Clear(format model.FormatMode) {
	if format == model.FormatChat {
		if len(f.Messages) == 0 {
			return
		}
		first := f.Messages[0]
		if first.Role == model.RoleSystem {
			first.Content = ""
		}
		f.Messages = []MessageRow{first}
		return
	}
	f.Instruction, f.Input, f.Output = "", "", ""
}

func (f Form) clone() Form {
	out := f
	out.Messages = append([]MessageRow(nil), f.Messages...)
	return out
}
