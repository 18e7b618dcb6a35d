// Package localstore implementa la persistencia local del cliente: un archivo JSON
// clave/valor con escritura atómica, más los repositorios de favoritos y sesión.
package localstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrKeyNotFound = errors.New("clave no encontrada en el almacenamiento local")
	ErrCorrupt     = errors.New("almacenamiento local corrupto")
	ErrInvalidPath = errors.New("ruta de almacenamiento inválida")
	ErrWrite       = errors.New("no se pudo escribir el almacenamiento local")
)

// FileStore almacén clave/valor persistido como un único objeto JSON.
// Cada valor es JSON crudo; la interpretación queda a cargo de los repositorios.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

// NewFileStore resuelve la ruta absoluta y crea el directorio si no existe.
// El archivo se crea en la primera escritura.
func NewFileStore(path string, log zerolog.Logger) (*FileStore, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, logAndWrapError(log, err, ErrInvalidPath, "ruta absoluta")
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, logAndWrapError(log, err, ErrInvalidPath, "crear directorio")
	}
	return &FileStore{path: absPath, log: log}, nil
}

// Path ruta absoluta del archivo.
func (s *FileStore) Path() string {
	return s.path
}

// Get devuelve el valor crudo de key o ErrKeyNotFound.
func (s *FileStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readAll()
	if err != nil {
		return nil, err
	}
	raw, ok := data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return raw, nil
}

// Put escribe key. Si el archivo estaba corrupto se reinicia con solo esta clave.
func (s *FileStore) Put(_ context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("localstore: valor no es JSON válido para %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readAll()
	if errors.Is(err, ErrCorrupt) {
		s.log.Warn().Err(err).Str("path", s.path).Msg("almacenamiento corrupto, se reinicia")
		data = map[string]json.RawMessage{}
	} else if err != nil {
		return err
	}
	data[key] = value
	return s.writeAll(data)
}

// Delete elimina key; no es error si no existía.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readAll()
	if errors.Is(err, ErrCorrupt) {
		data = map[string]json.RawMessage{}
	} else if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.writeAll(data)
}

// Keys claves presentes, ordenadas.
func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readAll()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) readAll() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("localstore: leer %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if data == nil {
		data = map[string]json.RawMessage{}
	}
	return data, nil
}

// writeAll escritura atómica: archivo temporal en el mismo directorio + rename.
func (s *FileStore) writeAll(data map[string]json.RawMessage) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return logAndWrapError(s.log, err, ErrWrite, "serializar")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".localstore-*.tmp")
	if err != nil {
		return logAndWrapError(s.log, err, ErrWrite, "crear temporal")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return logAndWrapError(s.log, err, ErrWrite, "escribir temporal")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return logAndWrapError(s.log, err, ErrWrite, "sync temporal")
	}
	if err := tmp.Close(); err != nil {
		return logAndWrapError(s.log, err, ErrWrite, "cerrar temporal")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return logAndWrapError(s.log, err, ErrWrite, "rename")
	}
	return nil
}

func logAndWrapError(log zerolog.Logger, err error, wrapErr error, context string) error {
	log.Error().Err(err).Str("context", context).Msg(wrapErr.Error())
	return fmt.Errorf("%w: %v", wrapErr, err)
}
