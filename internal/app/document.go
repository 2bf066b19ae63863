package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/logging"
)

// Document is an open file: the text engine, its undo history and the
// file it is saved to.
type Document struct {
	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	Engine  *engine.Document
	History *history.History

	// ReadOnly indicates the document cannot be saved.
	ReadOnly bool

	modified atomic.Bool
	version  atomic.Int64
}

// OpenDocument loads path. A file that does not exist yet opens empty and
// is created on the first save.
func OpenDocument(path string, cfg *config.Config, logger *logging.Logger) (*Document, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = nil
	case err != nil:
		return nil, &FileError{Op: "open", Path: path, Err: err}
	case !utf8.Valid(data):
		return nil, &FileError{Op: "open", Path: path, Err: errors.New("not valid UTF-8")}
	}
	return newDocument(path, string(data), cfg, logger), nil
}

// NewScratchDocument creates a document with no file.
func NewScratchDocument(cfg *config.Config, logger *logging.Logger) *Document {
	return newDocument("", "", cfg, logger)
}

func newDocument(path, content string, cfg *config.Config, logger *logging.Logger) *Document {
	opts := append(cfg.DocumentOptions(),
		engine.WithContent(content),
		engine.WithLogger(logger),
	)
	doc := engine.New(opts...)

	name := "Untitled"
	if path != "" {
		name = filepath.Base(path)
	}
	return &Document{
		Path:    path,
		Name:    name,
		Engine:  doc,
		History: history.New(doc, append(cfg.HistoryOptions(), history.WithLogger(logger))...),
	}
}

// IsScratch returns true if the document has no file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// SetModified sets the modified flag.
func (d *Document) SetModified(modified bool) {
	d.modified.Store(modified)
}

// Version returns the number of edits made since the document opened.
func (d *Document) Version() int64 {
	return d.version.Load()
}

// Touch records an edit.
func (d *Document) Touch() {
	d.version.Add(1)
	d.modified.Store(true)
}

// Content returns the full text.
func (d *Document) Content() string {
	return d.Engine.Text()
}

// Save writes the document to its path.
func (d *Document) Save() error {
	if d.IsScratch() {
		return ErrNoFilePath
	}
	return d.SaveAs(d.Path)
}

// SaveAs writes the document to path and makes path its file.
func (d *Document) SaveAs(path string) error {
	if d.ReadOnly {
		return &FileError{Op: "save", Path: path, Err: ErrReadOnly}
	}
	if err := os.WriteFile(path, []byte(d.Content()), 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	d.Path = path
	d.Name = filepath.Base(path)
	d.SetModified(false)
	return nil
}
