package model

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeRecord detects the shape of a raw record payload. Payloads carrying
// "messages" are chat records; those carrying "instruction" are instruction
// records.
func DecodeRecord(data json.RawMessage) (Record, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	switch {
	case probe["messages"] != nil:
		var rec ChatRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode chat record: %w", err)
		}
		for _, m := range rec.Messages {
			if !ValidRoles[m.Role] {
				return nil, fmt.Errorf("decode chat record: unknown role %q", m.Role)
			}
		}
		return rec, nil
	case probe["instruction"] != nil:
		var rec InstructionRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode instruction record: %w", err)
		}
		return rec, nil
	}
	return nil, fmt.Errorf("decode record: neither messages nor instruction present")
}

// ReadRecords reads a dataset export back into records. It accepts both the
// JSON array and the one-object-per-line JSONL forms.
func ReadRecords(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if first == '[' {
		if err := json.NewDecoder(br).Decode(&raws); err != nil {
			return nil, fmt.Errorf("decode json array: %w", err)
		}
	} else {
		dec := json.NewDecoder(br)
		for {
			var raw json.RawMessage
			err := dec.Decode(&raw)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("decode jsonl record %d: %w", len(raws)+1, err)
			}
			raws = append(raws, raw)
		}
	}

	recs := make([]Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := DecodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
