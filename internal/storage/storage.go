package storage

import (
	"context"

	"bastion/internal/types"
)

type (
	Type string

	// Storage persists backup archives. The filesystem implementation is
	// always available; the S3 implementation is used when object storage
	// credentials are configured.
	Storage interface {
		Save(ctx context.Context, location string, f types.File) error
		Get(ctx context.Context, location string) (*types.File, error)
		Ping(ctx context.Context) error
	}
)

const (
	TypeFS Type = "File"
	TypeS3 Type = "S3"
)

func (t Type) String() string {
	return string(t)
}
