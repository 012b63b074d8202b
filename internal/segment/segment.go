// Package segment manages the append-only log's on-disk segment files: it
// discovers, orders, opens, creates, and deletes the numbered <id>.log files
// that live in an engine's data directory.
//
// Segments only roll over when the engine decides to compact, never
// because a segment grew past a size limit, and filenames are plain
// "<id>.log" rather than carrying a prefix or timestamp — discovery is a
// glob, a decimal parse of the stem, and a sort.
package segment

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/LuisBarroso37/kvs/internal/posio"
	kvserrors "github.com/LuisBarroso37/kvs/pkg/errors"
	"github.com/LuisBarroso37/kvs/pkg/filesys"
	"go.uber.org/zap"
)

const extension = ".log"

// Directory owns the numbered segment files living under one path.
type Directory struct {
	path string
	log  *zap.SugaredLogger
}

// New returns a Directory rooted at path.
func New(path string, log *zap.SugaredLogger) *Directory {
	return &Directory{path: path, log: log}
}

// Ensure creates the directory if it does not already exist.
func (d *Directory) Ensure() error {
	if err := filesys.CreateDir(d.path, 0755, true); err != nil {
		return kvserrors.ClassifyDirectoryCreationError(err, d.path)
	}
	return nil
}

// Path returns the filesystem path of segment id.
func (d *Directory) Path(id uint64) string {
	return filepath.Join(d.path, strconv.FormatUint(id, 10)+extension)
}

// Discover lists every existing segment id, ascending. Entries that are not
// regular files, do not end in ".log", or whose stem does not parse as a
// decimal uint64 are silently ignored.
func (d *Directory) Discover() ([]uint64, error) {
	matches, err := filesys.ReadDir(filepath.Join(d.path, "*"+extension))
	if err != nil {
		return nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to enumerate segment directory").
			WithPath(d.path)
	}

	ids := make([]uint64, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(match), extension)
		id, err := strconv.ParseUint(stem, 10, 64)
		if err != nil {
			d.log.Debugw("ignoring non-segment file in data directory", "file", match)
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// OpenReader opens segment id for reading and wraps it with a position-
// tracking reader.
func (d *Directory) OpenReader(id uint64) (*posio.Reader, error) {
	path := d.Path(id)
	file, err := os.Open(path)
	if err != nil {
		return nil, kvserrors.ClassifyFileOpenError(err, path, filepath.Base(path))
	}
	return posio.NewReader(file), nil
}

// Create opens (creating if necessary) segment id in append mode and
// returns a position-tracking writer over it, along with a fresh reader
// over the same file so later reads can be served without reopening it.
func (d *Directory) Create(id uint64) (*posio.Writer, *posio.Reader, error) {
	path := d.Path(id)

	writerFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, kvserrors.ClassifyFileOpenError(err, path, filepath.Base(path))
	}

	writer, err := posio.NewWriter(writerFile)
	if err != nil {
		writerFile.Close()
		return nil, nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to position segment writer").
			WithPath(path)
	}

	readerFile, err := os.Open(path)
	if err != nil {
		writer.Close()
		return nil, nil, kvserrors.ClassifyFileOpenError(err, path, filepath.Base(path))
	}

	return writer, posio.NewReader(readerFile), nil
}

// Delete removes segment id's file from disk. The caller is responsible for
// having already released any reader held over it.
func (d *Directory) Delete(id uint64) error {
	path := d.Path(id)
	if err := filesys.DeleteFile(path); err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to delete segment file").
			WithPath(path)
	}
	return nil
}
