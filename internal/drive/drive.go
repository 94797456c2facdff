package drive

// Package drive contains the remote object-drive client and the background
// relay that mirrors locally staged uploads to it. The drive speaks a
// Graph-style REST protocol: session creation returns a pre-authenticated
// upload URL, and file content is PUT to it in sequential byte-range chunks.

import (
	"context"
	"time"
)

// DefaultChunkSize is the relay chunk size per PUT (10 MiB).
const DefaultChunkSize = 10 * 1024 * 1024

// TokenSource provides bearer tokens for drive API calls.
// Defined at the consumer per Go convention "accept interfaces, return structs".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// UploadSession is a resumable upload session on the remote drive.
// The upload URL is pre-authenticated; chunk PUTs carry no bearer token.
type UploadSession struct {
	UploadURL string `json:"uploadUrl"`
}

// Item is a file or folder entry on the remote drive.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Folder *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder,omitempty"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
}

// Uploader is the boundary the relay consumes: mirror a local file to a
// remote name, replacing any existing remote copy.
type Uploader interface {
	UploadFile(ctx context.Context, localPath, remoteName string) error
}
