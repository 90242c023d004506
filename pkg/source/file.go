package source

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads one proxy per line from a local file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string {
	return "file"
}

func (f *FileSource) Load(ctx context.Context) ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	proxies, err := readLines(file)
	if err != nil {
		return nil, fmt.Errorf("scan input file: %w", err)
	}
	return proxies, nil
}
