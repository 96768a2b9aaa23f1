package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. Unlike afero's
// MemMapFs it keeps real symlinks (Stat follows them, Lstat does not) and
// can inject errors per operation and path, which makes it the filesystem
// of choice for failure-path tests.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// Error injection: op -> path -> error. Op "*" matches every operation.
	errorPaths map[string]map[string]error

	// Statistics
	readCount  int
	writeCount int
}

// fileNode represents a file or directory in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		errorPaths: make(map[string]map[string]error),
	}
}

// WithError makes every operation on path fail with err.
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	return m.FailOn("*", path, err)
}

// FailOn makes operation op ("mkdir", "remove", "removeall", "rename",
// "write", "read", "stat", "lstat", "readdir") on path fail with err.
func (m *MemoryFS) FailOn(op, path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.errorPaths[op] == nil {
		m.errorPaths[op] = make(map[string]error)
	}
	m.errorPaths[op][clean(path)] = err
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (reads, writes int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readCount, m.writeCount
}

func clean(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

func (m *MemoryFS) injected(op, path string) error {
	if err, ok := m.errorPaths[op][path]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	if err, ok := m.errorPaths["*"][path]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

// lookup finds the node at path without following a final symlink.
// Intermediate symlinks are followed.
func (m *MemoryFS) lookup(op, path string) (*fileNode, string, error) {
	path = clean(path)
	if err := m.injected(op, path); err != nil {
		return nil, path, err
	}

	node := m.files["/"]
	current := "/"
	for _, part := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if part == "" {
			continue
		}
		if node.isLink {
			target, resolved, err := m.follow(op, current, node)
			if err != nil {
				return nil, path, err
			}
			node, current = target, resolved
		}
		if !node.isDir {
			return nil, path, &fs.PathError{Op: op, Path: path, Err: errors.New("not a directory")}
		}
		child, ok := node.children[part]
		if !ok {
			return nil, path, &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
		}
		node = child
		current = filepath.Join(current, part)
	}
	return node, current, nil
}

func (m *MemoryFS) follow(op, at string, link *fileNode) (*fileNode, string, error) {
	for hops := 0; link.isLink; hops++ {
		if hops > 32 {
			return nil, at, &fs.PathError{Op: op, Path: at, Err: errors.New("too many links")}
		}
		target := link.linkDest
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(at), target)
		}
		next, resolved, err := m.lookup(op, target)
		if err != nil {
			return nil, at, err
		}
		link, at = next, resolved
	}
	return link, at, nil
}

func (m *MemoryFS) parentOf(op, path string) (*fileNode, string, error) {
	path = clean(path)
	parent, _, err := m.lookup(op, filepath.Dir(path))
	if err != nil {
		return nil, "", err
	}
	if parent.isLink {
		if parent, _, err = m.follow(op, filepath.Dir(path), parent); err != nil {
			return nil, "", err
		}
	}
	if !parent.isDir {
		return nil, "", &fs.PathError{Op: op, Path: path, Err: errors.New("not a directory")}
	}
	return parent, filepath.Base(path), nil
}

// ReadFile reads the entire file content
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	node, at, err := m.lookup("read", name)
	if err != nil {
		return nil, err
	}
	if node, _, err = m.follow("read", at, node); err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file. The parent directory must exist.
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	path := clean(name)
	if err := m.injected("write", path); err != nil {
		return err
	}
	parent, filename, err := m.parentOf("write", path)
	if err != nil {
		return err
	}
	if existing, ok := parent.children[filename]; ok && existing.isDir {
		return &fs.PathError{Op: "write", Path: name, Err: errors.New("is a directory")}
	}

	node := &fileNode{
		name:    filename,
		mode:    perm.Perm(),
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)

	parent.children[filename] = node
	m.files[path] = node
	return nil
}

// Stat returns file info, following symlinks
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, at, err := m.lookup("stat", name)
	if err != nil {
		return nil, err
	}
	if node, _, err = m.follow("stat", at, node); err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(clean(name))}, nil
}

// Lstat returns file info without following a final symlink
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.lookup("lstat", name)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(clean(name))}, nil
}

// ReadDir reads a directory and returns its entries sorted by name
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, at, err := m.lookup("readdir", name)
	if err != nil {
		return nil, err
	}
	if node, _, err = m.follow("readdir", at, node); err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{info: &fileInfo{node: child, name: childName}})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Mkdir creates a single directory
func (m *MemoryFS) Mkdir(name string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	if err := m.injected("mkdir", path); err != nil {
		return err
	}
	parent, dirname, err := m.parentOf("mkdir", path)
	if err != nil {
		return err
	}
	if _, ok := parent.children[dirname]; ok {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}

	node := &fileNode{
		name:     dirname,
		mode:     perm.Perm() | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}
	parent.children[dirname] = node
	m.files[path] = node
	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(name string, perm os.FileMode) error {
	path := clean(name)
	if path == "/" {
		return nil
	}

	if err := m.MkdirAll(filepath.Dir(path), perm); err != nil {
		return err
	}

	m.mu.Lock()
	node, at, err := m.lookup("mkdir", path)
	if err == nil {
		node, _, err = m.follow("mkdir", at, node)
	}
	m.mu.Unlock()

	if err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: name, Err: errors.New("not a directory")}
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return m.Mkdir(path, perm)
}

// Symlink creates a symbolic link
func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(link)
	parent, filename, err := m.parentOf("symlink", path)
	if err != nil {
		return err
	}
	if _, ok := parent.children[filename]; ok {
		return &fs.PathError{Op: "symlink", Path: link, Err: fs.ErrExist}
	}

	node := &fileNode{
		name:     filename,
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}
	parent.children[filename] = node
	m.files[path] = node
	return nil
}

// Readlink returns the destination of a symbolic link
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.lookup("readlink", name)
	if err != nil {
		return "", err
	}
	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.New("not a symbolic link")}
	}
	return node.linkDest, nil
}

// Remove removes a file or empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	node, _, err := m.lookup("remove", path)
	if err != nil {
		return err
	}
	if node.isDir && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	parent, filename, err := m.parentOf("remove", path)
	if err != nil {
		return err
	}
	delete(parent.children, filename)
	m.forget(path)
	return nil
}

// RemoveAll removes a path and everything below it. A missing path is not
// an error.
func (m *MemoryFS) RemoveAll(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	if err := m.injected("removeall", path); err != nil {
		return err
	}
	parent, filename, err := m.parentOf("removeall", path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	delete(parent.children, filename)
	m.forget(path)
	return nil
}

// Rename moves oldpath to newpath, replacing a file at newpath
func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, to := clean(oldpath), clean(newpath)
	if err := m.injected("rename", from); err != nil {
		return err
	}
	if err := m.injected("rename", to); err != nil {
		return err
	}

	node, _, err := m.lookup("rename", from)
	if err != nil {
		return err
	}
	oldParent, oldName, err := m.parentOf("rename", from)
	if err != nil {
		return err
	}
	newParent, newName, err := m.parentOf("rename", to)
	if err != nil {
		return err
	}
	if existing, ok := newParent.children[newName]; ok && existing.isDir && len(existing.children) > 0 {
		return &fs.PathError{Op: "rename", Path: newpath, Err: errors.New("directory not empty")}
	}

	delete(oldParent.children, oldName)
	m.forget(from)
	m.forget(to)

	node.name = newName
	newParent.children[newName] = node
	m.index(to, node)
	return nil
}

// forget drops path and its descendants from the flat index
func (m *MemoryFS) forget(path string) {
	for p := range m.files {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(m.files, p)
		}
	}
}

func (m *MemoryFS) index(path string, node *fileNode) {
	m.files[path] = node
	for name, child := range node.children {
		m.index(filepath.Join(path, name), child)
	}
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	info *fileInfo
}

func (de *dirEntry) Name() string               { return de.info.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
