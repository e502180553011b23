// Package extract recovers structured records from free-form
// completion output. Models asked for JSON frequently wrap it in
// prose or code fences; the chain here tries progressively looser
// parses and never fails.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Record is a loosely-typed JSON object recovered from text.
type Record map[string]any

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// JSON recovers the best-effort record from text. The chain is, first
// success wins: whole-text parse, fenced code block parse, balanced
// brace scan. Returns (nil, false) when nothing parses; callers apply
// their own keyword heuristics beyond that.
func JSON(text string) (Record, bool) {
	if rec, ok := parseObject(text); ok {
		return rec, true
	}

	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		if rec, ok := parseObject(strings.TrimSpace(m[1])); ok {
			return rec, true
		}
	}

	for start := 0; start < len(text); {
		open := strings.IndexByte(text[start:], '{')
		if open < 0 {
			break
		}
		open += start
		candidate, ok := balancedObject(text, open)
		if ok {
			if rec, ok := parseObject(candidate); ok {
				return rec, true
			}
		}
		start = open + 1
	}

	return nil, false
}

func parseObject(text string) (Record, bool) {
	var rec Record
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &rec); err != nil {
		return nil, false
	}
	if rec == nil {
		return nil, false
	}
	return rec, true
}

// balancedObject returns the brace-delimited substring starting at
// open, tracking nesting and string literals.
func balancedObject(text string, open int) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := open; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open : i+1], true
			}
		}
	}
	return "", false
}
