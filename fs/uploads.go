package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ghostpen/ghostpen"
)

// UploadStore saves uploaded files under a single directory so they can be
// handed to the ingestion pipeline by path.
type UploadStore struct {
	Dir string
}

// NewUploadStore creates the upload directory if needed.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &UploadStore{Dir: dir}, nil
}

// Save writes the upload to disk under its original filename and returns
// the saved path. The filename is flattened to its base so a crafted name
// cannot escape the upload directory.
func (s *UploadStore) Save(filename string, r io.Reader) (string, error) {
	name := filepath.Base(filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", ghostpen.Errorf(ghostpen.EINVALID, "empty filename")
	}

	path := filepath.Join(s.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
