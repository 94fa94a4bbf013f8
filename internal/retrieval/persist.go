package retrieval

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// Artifact filenames. The fitted model and the document matrix are opaque
// binary blobs keyed by these fixed names under the artifact directory.
const (
	VectorizerArtifact = "vectorizer.gob"
	MatrixArtifact     = "matrix.gob"
	EmbeddingArtifact  = "embeddings.gob"
)

// ErrArtifactsMissing reports that a fitted index has never been persisted
// at the configured location. Fatal at service start: retrieval must not
// silently serve empty results.
var ErrArtifactsMissing = errors.New("retrieval: index artifacts missing, run the pipeline first")

// SaveArtifacts persists the current snapshot under dir.
func (e *Engine) SaveArtifacts(dir string) error {
	snap := e.snapshot.Load()
	if snap == nil {
		return errors.New("retrieval: nothing to save, index not built")
	}

	if err := writeGob(filepath.Join(dir, VectorizerArtifact), snap.Vectorizer); err != nil {
		return fmt.Errorf("retrieval: save vectorizer: %w", err)
	}
	matrix := matrixArtifact{Events: snap.Events, Vectors: snap.Vectors}
	if err := writeGob(filepath.Join(dir, MatrixArtifact), matrix); err != nil {
		return fmt.Errorf("retrieval: save matrix: %w", err)
	}
	return nil
}

// LoadArtifacts restores a previously persisted snapshot from dir and
// publishes it. Returns ErrArtifactsMissing when either artifact is absent.
func (e *Engine) LoadArtifacts(dir string) error {
	var vec Vectorizer
	if err := readGob(filepath.Join(dir, VectorizerArtifact), &vec); err != nil {
		if os.IsNotExist(err) {
			return ErrArtifactsMissing
		}
		return fmt.Errorf("retrieval: load vectorizer: %w", err)
	}

	var matrix matrixArtifact
	if err := readGob(filepath.Join(dir, MatrixArtifact), &matrix); err != nil {
		if os.IsNotExist(err) {
			return ErrArtifactsMissing
		}
		return fmt.Errorf("retrieval: load matrix: %w", err)
	}

	e.snapshot.Store(&index{Events: matrix.Events, Vectorizer: &vec, Vectors: matrix.Vectors})
	return nil
}

// matrixArtifact couples the event set with its document vectors so a loaded
// index is self-contained.
type matrixArtifact struct {
	Events  []model.Event
	Vectors []SparseVec
}

// SaveArtifacts persists the embedded event set under dir. Embedding a corpus
// is the expensive part of the dense backend, so the vectors are written once
// and reused across invocations.
func (d *DenseEngine) SaveArtifacts(dir string) error {
	if len(d.events) == 0 {
		return errors.New("retrieval: nothing to save, embeddings not built")
	}
	artifact := denseArtifact{Events: d.events, Vectors: d.vectors}
	if err := writeGob(filepath.Join(dir, EmbeddingArtifact), artifact); err != nil {
		return fmt.Errorf("retrieval: save embeddings: %w", err)
	}
	return nil
}

// LoadArtifacts restores previously persisted embeddings from dir. Returns
// ErrArtifactsMissing when the artifact is absent.
func (d *DenseEngine) LoadArtifacts(dir string) error {
	var artifact denseArtifact
	if err := readGob(filepath.Join(dir, EmbeddingArtifact), &artifact); err != nil {
		if os.IsNotExist(err) {
			return ErrArtifactsMissing
		}
		return fmt.Errorf("retrieval: load embeddings: %w", err)
	}
	d.events = artifact.Events
	d.vectors = artifact.Vectors
	return nil
}

// Stale reports whether the loaded embeddings were built from a different
// event set than the given one. Callers re-embed when it returns true.
func (d *DenseEngine) Stale(events []model.Event) bool {
	return !reflect.DeepEqual(d.events, events)
}

type denseArtifact struct {
	Events  []model.Event
	Vectors [][]float64
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}
