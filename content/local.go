// Package content keeps a remote object-storage container in sync with a
// local directory tree. It enumerates both sides, computes a
// content-addressed diff, and applies the minimal set of uploads and deletes
// with bounded concurrency. The remote side is authoritative for "what
// exists now"; running the sync twice with unchanged local content performs
// zero mutations the second time.
package content

import (
	"crypto/md5" //nolint:gosec // G501: MD5 matches the remote store's content ETag, not used for security
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// LocalFile is one file under the configured content directory.
type LocalFile struct {
	// Key is the object key derived from the file's slash-separated path
	// relative to the content root.
	Key string

	// ETag is the hex MD5 of the file content. Uploads are always
	// single-part, so this matches the remote object's ETag exactly.
	ETag string

	// Size is the file size in bytes.
	Size int64

	// Path is the absolute path on disk, used when uploading.
	Path string

	// ContentType is the MIME type derived from the file extension.
	ContentType string
}

// ListLocal enumerates all regular files under dir recursively.
func ListLocal(dir string) ([]LocalFile, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve content directory %q: %w", dir, err)
	}

	var files []LocalFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		etag, size, err := hashFile(path)
		if err != nil {
			return err
		}

		files = append(files, LocalFile{
			Key:         filepath.ToSlash(rel),
			ETag:        etag,
			Size:        size,
			Path:        path,
			ContentType: contentType(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content directory %q: %w", dir, err)
	}

	return files, nil
}

// hashFile returns the hex MD5 and size of the file at path.
func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	h := md5.New() //nolint:gosec // G401: content addressing, not cryptography
	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hash %q: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), size, nil
}

// contentType derives a MIME type from the file extension, defaulting to
// binary when the extension is unknown.
func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
