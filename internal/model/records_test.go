package model

import (
	"strings"
	"testing"
)

func TestReadRecords(t *testing.T) {
	array := `[
  {"messages": [{"role": "user", "content": "hi"}, {"role": "assistant", "content": "hello"}]},
  {"instruction": "Translate", "input": "cat", "output": "chat"}
]`
	jsonl := `{"messages": [{"role": "user", "content": "hi"}]}
{"instruction": "Sum", "output": "2"}
`

	tests := []struct {
		name    string
		in      string
		formats []FormatMode
	}{
		{"json array", array, []FormatMode{FormatChat, FormatInstruction}},
		{"jsonl", jsonl, []FormatMode{FormatChat, FormatInstruction}},
		{"empty", "  \n", nil},
		{"empty array", "[]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ReadRecords(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("ReadRecords: %v", err)
			}
			if len(recs) != len(tt.formats) {
				t.Fatalf("got %d records, want %d", len(recs), len(tt.formats))
			}
			for i, rec := range recs {
				if rec.Format() != tt.formats[i] {
					t.Errorf("record %d format = %s, want %s", i, rec.Format(), tt.formats[i])
				}
			}
		})
	}
}

func TestReadRecordsKeepsFields(t *testing.T) {
	recs, err := ReadRecords(strings.NewReader(`{"instruction": "Translate", "input": "cat", "output": "chat"}`))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	got, ok := recs[0].(InstructionRecord)
	if !ok {
		t.Fatalf("got %T, want InstructionRecord", recs[0])
	}
	if got.Instruction != "Translate" || got.Input != "cat" || got.Output != "chat" {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestReadRecordsRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown shape", `{"prompt": "x"}`},
		{"bad role", `{"messages": [{"role": "narrator", "content": "x"}]}`},
		{"broken jsonl", "{\"instruction\": \"a\", \"output\": \"b\"}\n{oops"},
		{"not an object", `["a"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadRecords(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
