package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ParseLeadingInt reads an optionally signed run of digits from the start of
// s and ignores whatever follows, so "12kg" is 12 and "kg12" fails.
func ParseLeadingInt(s string) (int64, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseStock turns free-form stock input into a level. Anything unreadable or
// negative becomes 0.
func ParseStock(s string) int {
	n, ok := ParseLeadingInt(strings.TrimSpace(s))
	if !ok || n < 0 {
		return 0
	}
	return int(n)
}

// UnmarshalJSON accepts stock levels as numbers or strings, the way the
// edit form submits them. "abc" and 3.5 become 0 and 3.
func (p *ItemPatch) UnmarshalJSON(data []byte) error {
	type plain ItemPatch
	aux := struct {
		*plain
		TargetStock  json.RawMessage `json:"targetStock,omitempty"`
		CurrentStock json.RawMessage `json:"currentStock,omitempty"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.TargetStock = lenientStock(aux.TargetStock)
	p.CurrentStock = lenientStock(aux.CurrentStock)
	return nil
}

func lenientStock(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			text = ""
		}
	}
	n := ParseStock(text)
	return &n
}
