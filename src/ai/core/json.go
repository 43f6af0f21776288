package core

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("ai: no JSON object in model output")

// ExtractJSON pulls the first balanced {...} object out of a model reply.
// Models routinely wrap their JSON in prose or markdown code fences, so the
// raw reply can never be fed straight into a decoder.
func ExtractJSON(reply string) (json.RawMessage, error) {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return nil, errNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(reply); i++ {
		c := reply[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					candidate := reply[start : i+1]
					if !json.Valid([]byte(candidate)) {
						return nil, errors.New("ai: extracted JSON object does not parse")
					}
					return json.RawMessage(candidate), nil
				}
			}
		}
	}
	return nil, errors.New("ai: unbalanced JSON object in model output")
}
