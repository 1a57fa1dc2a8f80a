package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// FileProvider persiste l'état de chaque visiteur dans un document JSON
// <dir>/<visitorID>.json. Les écritures passent par un fichier temporaire
// puis un rename pour ne jamais laisser de document tronqué.
type FileProvider struct {
	dir string
	mu  sync.Mutex
}

func NewFileProvider(dir string) (*FileProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("création du répertoire %s: %w", dir, err)
	}
	return &FileProvider{dir: dir}, nil
}

func (fp *FileProvider) Namespace(visitorID string) Storage {
	return &FileStorage{
		provider: fp,
		path:     filepath.Join(fp.dir, url.PathEscape(visitorID)+".json"),
	}
}

func (fp *FileProvider) Close() error {
	return nil
}

type FileStorage struct {
	provider *FileProvider
	path     string
}

func (s *FileStorage) Get(key string) (string, error) {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStorage) Set(key, value string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStorage) Remove(keys ...string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(values, key)
	}
	return s.write(values)
}

// read retourne un document vide si le fichier n'existe pas encore.
// Un document illisible est traité comme absent : le contenu suivant l'écrasera.
func (s *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture %s: %w", s.path, err)
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return make(map[string]string), nil
	}
	return values, nil
}

func (s *FileStorage) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".visitor-*")
	if err != nil {
		return fmt.Errorf("fichier temporaire: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("écriture %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

