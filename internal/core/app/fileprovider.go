package app

import (
	"context"
	"encoding/json"
	"os"

	"depcycle/internal/core/errors"
	"depcycle/internal/core/ports"
	"depcycle/internal/engine/graph"
)

// FileProvider reads a graph snapshot from a JSON document shaped as
// {"nodes": [...], "edges": [...]}. Used by the CLI one-shot mode and tests.
type FileProvider struct {
	Path string
}

var _ ports.GraphProvider = (*FileProvider)(nil)

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (p *FileProvider) Name() string {
	return "file"
}

func (p *FileProvider) Discover(ctx context.Context) (graph.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return graph.Snapshot{}, err
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return graph.Snapshot{}, errors.Wrap(err, errors.CodeNotFound, "graph file unreadable")
	}

	var snapshot graph.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return graph.Snapshot{}, errors.Wrap(err, errors.CodeValidationError, "graph file is not valid JSON")
	}
	return snapshot, nil
}

// SnapshotProvider serves a fixed in-memory snapshot. Used in tests and when
// a graph is passed inline.
type SnapshotProvider struct {
	Snapshot graph.Snapshot
	Err      error
}

var _ ports.GraphProvider = (*SnapshotProvider)(nil)

func (p *SnapshotProvider) Name() string {
	return "static"
}

func (p *SnapshotProvider) Discover(ctx context.Context) (graph.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return graph.Snapshot{}, err
	}
	if p.Err != nil {
		return graph.Snapshot{}, p.Err
	}
	return p.Snapshot, nil
}
