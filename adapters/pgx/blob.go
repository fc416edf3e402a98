package pgx

import (
	"context"
	"strings"
)

// UploadBlob stores raw bytes under path and returns the public URL
// the stored file is served from. Re-uploading a path overwrites it.
func (a *Adapter) UploadBlob(ctx context.Context, path string, data []byte) (string, error) {
	path = strings.TrimPrefix(path, "/")

	_, err := a.pool.Exec(ctx,
		`INSERT INTO blobs (path, data) VALUES ($1, $2)
		 ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data`,
		path, data)
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(a.blobBaseURL, "/") + "/" + path, nil
}

// GetBlob reads stored bytes back. Used by the HTTP adapter to serve
// uploaded files.
func (a *Adapter) GetBlob(ctx context.Context, path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "/")

	var data []byte
	err := a.pool.QueryRow(ctx, `SELECT data FROM blobs WHERE path = $1`, path).Scan(&data)
	if err != nil {
		return nil, err
	}
	return data, nil
}
