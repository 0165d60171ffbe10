package lsp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/ddoc/design"
	"github.com/dhamidi/ddoc/document"
	"github.com/dhamidi/ddoc/profile"
	"github.com/dhamidi/ddoc/source"
)

// File is the latest known state of an open document.
type File struct {
	Path     string
	Content  []byte
	Doc      *document.Document
	ParseErr *source.ParseError
}

// Workspace tracks open files and their design documents. Parsed
// documents are cached by path and content so that reverting an edit
// does not reparse.
type Workspace struct {
	mu    sync.RWMutex
	prof  *profile.Profile
	files map[string]*File
	cache *lru.Cache[string, *document.Document]
	log   commonlog.Logger
}

func NewWorkspace(prof *profile.Profile, cacheSize int) (*Workspace, error) {
	if prof == nil {
		prof = profile.Java()
	}
	cache, err := lru.New[string, *document.Document](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		prof:  prof,
		files: make(map[string]*File),
		cache: cache,
		log:   commonlog.GetLogger("ddoc.lsp"),
	}, nil
}

func cacheKey(path string, content []byte) string {
	sum := sha256.Sum256(content)
	return path + "\x00" + hex.EncodeToString(sum[:])
}

func (w *Workspace) ScanFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile records new content for path and returns its parsed state.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	f := &File{Path: path, Content: content}

	key := cacheKey(path, content)
	if doc, ok := w.cache.Get(key); ok {
		f.Doc = doc
	} else {
		doc, err := design.Parse(content, w.prof, design.WithFile(path), design.WithLogger(w.log))
		var perr *source.ParseError
		switch {
		case errors.As(err, &perr):
			f.ParseErr = perr
		case err != nil:
			f.ParseErr = &source.ParseError{Cause: err.Error()}
		default:
			f.Doc = doc
			w.cache.Add(key, doc)
		}
	}

	w.mu.Lock()
	w.files[path] = f
	w.mu.Unlock()
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}
