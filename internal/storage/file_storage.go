package storage

import (
	"context"
	"os"
	"path/filepath"

	"bastion/internal/types"
)

type fileStorage struct {
}

func NewFileStorage() Storage {
	return &fileStorage{}
}

func (f fileStorage) Save(ctx context.Context, location string, file types.File) error {
	dir := filepath.Dir(location)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	fi, err := os.Create(location)
	if err != nil {
		return err
	}
	defer fi.Close()

	_, err = fi.ReadFrom(file.Content)
	return err
}

func (f fileStorage) Get(ctx context.Context, location string) (*types.File, error) {
	fi, err := os.Open(location)
	if err != nil {
		return nil, err
	}

	stat, err := fi.Stat()
	if err != nil {
		_ = fi.Close()
		return nil, err
	}

	return &types.File{
		Content: fi,
		Stat: types.FileStat{
			Size: stat.Size(),
			Name: stat.Name(),
			Mode: stat.Mode(),
		},
	}, nil
}

func (f fileStorage) Ping(ctx context.Context) error {
	return nil
}
