package store

import (
	"context"
	"testing"

	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/graph"
)

// Validation runs before any backend call, so these paths are testable
// without a running MongoDB.

func TestSave_RejectsBadName(t *testing.T) {
	s := &Store{}
	err := s.Save(context.Background(), "../escape", graph.Graph{})
	if !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("Save() error = %v, want INVALID_NAME", err)
	}
}

func TestLoad_RejectsBadName(t *testing.T) {
	s := &Store{}
	_, err := s.Load(context.Background(), "")
	if !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("Load() error = %v, want INVALID_NAME", err)
	}
}

func TestDelete_RejectsBadName(t *testing.T) {
	s := &Store{}
	err := s.Delete(context.Background(), "a/b")
	if !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("Delete() error = %v, want INVALID_NAME", err)
	}
}
