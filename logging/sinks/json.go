package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"barrage/server/logging"
)

// JSONSink appends one JSON document per event to a file.
type JSONSink struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

func NewJSONSink(cfg logging.JSONConfig) (*JSONSink, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("sinks: json sink requires a file path")
	}
	if dir := filepath.Dir(cfg.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sinks: create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sinks: open log file: %w", err)
	}
	return &JSONSink{file: file, encoder: json.NewEncoder(file)}, nil
}

func (s *JSONSink) Write(event logging.Event) error {
	if s == nil || s.encoder == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encoder.Encode(event)
}

func (s *JSONSink) Close(context.Context) error {
	if s == nil || s.file == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.file.Close()
	s.file = nil
	s.encoder = nil
	return err
}
