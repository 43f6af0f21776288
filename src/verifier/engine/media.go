package engine

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/truthlenz/truthlenz/src/ai/core"
)

// ErrBadMedia marks an unusable media payload; callers map it to a client error.
var ErrBadMedia = errors.New("engine: media payload is not decodable base64")

// DecodeMedia turns a base64 payload (with or without a data-URL prefix) into
// an inline blob. The MIME type comes from the data-URL header when present,
// otherwise from sniffing the decoded bytes.
func DecodeMedia(payload string) (core.Blob, error) {
	declared := ""
	if strings.HasPrefix(payload, "data:") {
		rest := payload[len("data:"):]
		semi := strings.IndexByte(rest, ';')
		comma := strings.IndexByte(rest, ',')
		if semi > 0 && comma > semi {
			declared = rest[:semi]
			payload = rest[comma+1:]
		} else if comma >= 0 {
			payload = rest[comma+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return core.Blob{}, fmt.Errorf("%w: %v", ErrBadMedia, err)
	}
	if len(data) == 0 {
		return core.Blob{}, ErrBadMedia
	}

	mime := declared
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}
	return core.Blob{MIMEType: mime, Data: data}, nil
}
