package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestChatRecordValid(t *testing.T) {
	tests := []struct {
		name string
		r    ChatRecord
		want bool
	}{
		{"empty", ChatRecord{}, false},
		{"whitespace only", ChatRecord{Messages: []ChatMessage{
			{Role: RoleSystem, Content: "  "},
			{Role: RoleUser, Content: "\n\t"},
			{Role: RoleAssistant, Content: " "},
		}}, false},
		{"one filled", ChatRecord{Messages: []ChatMessage{
			{Role: RoleSystem, Content: ""},
			{Role: RoleUser, Content: "hi"},
		}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstructionRecordValid(t *testing.T) {
	if (InstructionRecord{Instruction: "do", Input: "x"}).Valid() {
		t.Error("expected record without output to be invalid")
	}
	if (InstructionRecord{Instruction: " ", Output: "y"}).Valid() {
		t.Error("expected blank instruction to be invalid")
	}
	if !(InstructionRecord{Instruction: "do", Output: "done"}).Valid() {
		t.Error("expected instruction+output to be valid")
	}
}

func TestEntryDecode(t *testing.T) {
	raw := `{
		"id": "abc",
		"type": "chat",
		"data": {"messages": [{"role": "user", "content": "hello"}]},
		"timestamp": "2024-03-01T10:20:30.123456",
		"quality_score": 80
	}`

	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.QualityScore == nil || *e.QualityScore != 80 {
		t.Errorf("expected score 80, got %v", e.QualityScore)
	}
	want := time.Date(2024, 3, 1, 10, 20, 30, 123456000, time.Local)
	if !e.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", e.Timestamp.Time, want)
	}

	chat, err := e.Chat()
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(chat.Messages) != 1 || chat.Messages[0].Content != "hello" {
		t.Errorf("unexpected messages: %+v", chat.Messages)
	}

	if _, err := e.Instruction(); err == nil {
		t.Error("expected error decoding chat entry as instruction")
	}
}

func TestTimestampZoned(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-03-01T10:20:30Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ts.UTC().Hour() != 10 {
		t.Errorf("expected hour 10 UTC, got %d", ts.UTC().Hour())
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestNewEntryRequestOmitsEmptyInput(t *testing.T) {
	b, err := json.Marshal(NewEntryRequest{
		Type: FormatInstruction,
		Data: InstructionRecord{Instruction: "a", Output: "b"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"instruction","data":{"instruction":"a","output":"b"}}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
