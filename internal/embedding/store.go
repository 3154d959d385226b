// Package embedding provides read-only access to the category
// embedding table: a dense matrix indexed by category id, with row 0
// reserved as the null/padding vector, plus the id↔name mappings.
// The table is produced offline; this package only loads and serves it.
package embedding

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Store is an immutable category embedding table. Safe for concurrent
// readers; never mutated after Load.
type Store struct {
	nameToID map[string]int
	idToName map[int]string
	matrix   [][]float64
	dim      int
}

// NewStore builds a store from an explicit mapping and matrix.
// Row 0 of the matrix is the reserved padding vector.
func NewStore(nameToID map[string]int, matrix [][]float64) (*Store, error) {
	if len(matrix) == 0 {
		return nil, errors.New("embedding: empty matrix")
	}
	dim := len(matrix[0])
	if dim == 0 {
		return nil, errors.New("embedding: zero-dimension matrix")
	}
	for i, row := range matrix {
		if len(row) != dim {
			return nil, fmt.Errorf("embedding: row %d has dimension %d, want %d", i, len(row), dim)
		}
	}
	idToName := make(map[int]string, len(nameToID))
	for name, id := range nameToID {
		if id < 0 || id >= len(matrix) {
			return nil, fmt.Errorf("embedding: id %d for %q outside matrix with %d rows", id, name, len(matrix))
		}
		idToName[id] = name
	}
	return &Store{nameToID: nameToID, idToName: idToName, matrix: matrix, dim: dim}, nil
}

// Load reads the id mappings from mappingsDir (small2id.json and
// id2small.json) and the embedding matrix from artifactPath. The
// artifact may be a numpy .npy file or a JSON array of float rows.
// Any failure here is a configuration error and should be treated as
// fatal by the caller.
func Load(mappingsDir, artifactPath string) (*Store, error) {
	nameToID, err := loadNameToID(filepath.Join(mappingsDir, "small2id.json"))
	if err != nil {
		return nil, err
	}
	matrix, err := loadMatrix(artifactPath)
	if err != nil {
		return nil, err
	}
	s, err := NewStore(nameToID, matrix)
	if err != nil {
		return nil, err
	}
	// id2small.json is authoritative for reverse names when present.
	reverse := filepath.Join(mappingsDir, "id2small.json")
	if _, statErr := os.Stat(reverse); statErr == nil {
		idToName, err := loadIDToName(reverse)
		if err != nil {
			return nil, err
		}
		for id, name := range idToName {
			if id < 0 || id >= len(matrix) {
				return nil, fmt.Errorf("embedding: id %d for %q outside matrix with %d rows", id, name, len(matrix))
			}
		}
		s.idToName = idToName
	}
	return s, nil
}

// Dim returns the embedding dimension.
func (s *Store) Dim() int { return s.dim }

// Rows returns the number of rows in the matrix, padding row included.
func (s *Store) Rows() int { return len(s.matrix) }

// ID resolves a canonical category name to its embedding id.
func (s *Store) ID(name string) (int, bool) {
	id, ok := s.nameToID[name]
	return id, ok
}

// Vector returns the embedding for id. The padding id 0 and ids
// outside the matrix report false.
func (s *Store) Vector(id int) ([]float64, bool) {
	if id <= 0 || id >= len(s.matrix) {
		return nil, false
	}
	return s.matrix[id], true
}

// VectorByName resolves name to an id and returns its embedding.
func (s *Store) VectorByName(name string) ([]float64, bool) {
	id, ok := s.nameToID[name]
	if !ok {
		return nil, false
	}
	return s.Vector(id)
}

// Names returns every known category name except the padding row,
// sorted for deterministic iteration.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.idToName))
	for id, name := range s.idToName {
		if id == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loadNameToID(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("embedding: read mappings: %w", err)
	}
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("embedding: parse %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

func loadIDToName(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("embedding: read mappings: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("embedding: parse %s: %w", filepath.Base(path), err)
	}
	m := make(map[int]string, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("embedding: non-numeric id %q in %s", k, filepath.Base(path))
		}
		m[id] = v
	}
	return m, nil
}

func loadMatrix(path string) ([][]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		return readNpy(path)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("embedding: read artifact: %w", err)
		}
		var matrix [][]float64
		if err := json.Unmarshal(data, &matrix); err != nil {
			return nil, fmt.Errorf("embedding: parse artifact: %w", err)
		}
		return matrix, nil
	default:
		return nil, fmt.Errorf("embedding: unsupported artifact format %q", filepath.Ext(path))
	}
}
