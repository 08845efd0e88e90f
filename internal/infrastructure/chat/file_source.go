package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/ports"
)

// FileSource reads an exported channel history from disk. Both a bare JSON
// array of messages and a history response object with a "messages" field
// are accepted.
type FileSource struct {
	path string
}

var _ ports.MessageSource = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Messages re-reads the file on every call so a watcher picks up new exports.
func (f *FileSource) Messages(ctx context.Context) ([]domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}
	msgs, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return msgs, nil
}

// Decode parses an export payload.
func Decode(raw []byte) ([]domain.ChatMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []domain.ChatMessage{}, nil
	}

	if trimmed[0] == '[' {
		var msgs []domain.ChatMessage
		if err := json.Unmarshal(trimmed, &msgs); err != nil {
			return nil, err
		}
		return msgs, nil
	}

	var history struct {
		Messages []domain.ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(trimmed, &history); err != nil {
		return nil, err
	}
	if history.Messages == nil {
		return []domain.ChatMessage{}, nil
	}
	return history.Messages, nil
}
