package reconcile

import (
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/logging"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/scanner"
	"github.com/arthur-debert/das/pkg/types"
	"github.com/rs/zerolog"
)

// Executor applies copy, move, remove and touch to a set of root-relative
// paths. Every call runs Plan, Scaffold, Apply and Prune from scratch; the
// Executor keeps no state between calls. Nothing is transactional: a
// failure leaves the steps before it in place.
type Executor struct {
	fs      types.FS
	scanner *scanner.Scanner
	policy  Policy
	dryRun  bool
	logger  zerolog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithPolicy sets how unusable paths are handled. Default Lenient.
func WithPolicy(p Policy) Option {
	return func(e *Executor) {
		e.policy = p
	}
}

// WithDryRun stops every call after Plan.
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

// WithScanner sets the scanner used to expand selected directories, so
// its ignore rules apply to their contents.
func WithScanner(s *scanner.Scanner) Option {
	return func(e *Executor) {
		e.scanner = s
	}
}

// New creates an Executor over fsys.
func New(fsys types.FS, opts ...Option) *Executor {
	e := &Executor{
		fs:     fsys,
		logger: logging.GetLogger("reconcile"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scanner == nil {
		e.scanner = scanner.New(fsys)
	}
	return e
}

// Policy returns the configured policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// Copy copies the selected paths from src to dst. Whatever is in the way
// at dst is replaced.
func (e *Executor) Copy(set pathset.PathSet, src, dst types.Directory) (*Result, error) {
	return e.transfer(OpCopy, set, src, dst)
}

// Move moves the selected paths from src to dst, then prunes the source
// directories the move left empty.
func (e *Executor) Move(set pathset.PathSet, src, dst types.Directory) (*Result, error) {
	return e.transfer(OpMove, set, src, dst)
}

func (e *Executor) transfer(op Operation, set pathset.PathSet, src, dst types.Directory) (res *Result, err error) {
	if err := requireDir(src); err != nil {
		return nil, err
	}
	if err := requireDir(dst); err != nil {
		return nil, err
	}
	e, done := e.operation(op)
	defer done(&err)

	res = &Result{Operation: op, Source: src.Path, Root: dst.Path, DryRun: e.dryRun}
	p, err := e.planExisting(res, set, src)
	if err != nil {
		return res, err
	}
	p.fill(res)
	if e.dryRun || res.Empty() {
		return res, nil
	}

	if err := e.scaffold(dst, res.Dirs); err != nil {
		return res, err
	}
	for _, rel := range res.Files {
		if op == OpMove {
			err = e.moveFile(src, dst, rel)
		} else {
			err = e.copyFile(src, dst, rel)
		}
		if err != nil {
			return res, err
		}
	}
	if op == OpMove {
		if err := e.prune(src, res.Dirs); err != nil {
			return res, err
		}
	}

	e.logResult(res)
	return res, nil
}

// Remove deletes the selected paths under target, deepest first, then
// prunes directories left empty. Directories that still hold unselected
// entries survive.
func (e *Executor) Remove(set pathset.PathSet, target types.Directory) (res *Result, err error) {
	if err := requireDir(target); err != nil {
		return nil, err
	}
	e, done := e.operation(OpRemove)
	defer done(&err)

	res = &Result{Operation: OpRemove, Root: target.Path, DryRun: e.dryRun}
	p, err := e.planExisting(res, set, target)
	if err != nil {
		return res, err
	}
	p.fill(res)
	if e.dryRun || res.Empty() {
		return res, nil
	}

	for i := len(res.Files) - 1; i >= 0; i-- {
		abs := target.Join(res.Files[i])
		if err := e.fs.Remove(abs); err != nil {
			return res, fsError(err, "remove", abs)
		}
	}
	if err := e.prune(target, res.Dirs); err != nil {
		return res, err
	}

	e.logResult(res)
	return res, nil
}

// Touch creates an empty file for every selected path missing under
// target, with the directories it needs. Existing paths are left alone,
// so touching twice is the same as touching once.
func (e *Executor) Touch(set pathset.PathSet, target types.Directory) (res *Result, err error) {
	if err := requireDir(target); err != nil {
		return nil, err
	}
	e, done := e.operation(OpTouch)
	defer done(&err)

	res = &Result{Operation: OpTouch, Root: target.Path, DryRun: e.dryRun}
	p, err := e.planMissing(res, set, target)
	if err != nil {
		return res, err
	}
	p.fill(res)
	if e.dryRun || res.Empty() {
		return res, nil
	}

	if err := e.scaffold(target, res.Dirs); err != nil {
		return res, err
	}
	for _, rel := range res.Files {
		abs := target.Join(rel)
		if err := e.fs.WriteFile(abs, nil, 0644); err != nil {
			return res, fsError(err, "touch", abs)
		}
	}

	e.logResult(res)
	return res, nil
}

// operation returns a copy of e whose logger carries the operation name,
// plus the completion hook from logging.Operation.
func (e *Executor) operation(op Operation) (*Executor, func(*error)) {
	scoped := *e
	var done func(*error)
	scoped.logger, done = logging.Operation(e.logger, string(op))
	return &scoped, done
}

func (e *Executor) logResult(res *Result) {
	e.logger.Info().
		Str("operation", string(res.Operation)).
		Str("root", res.Root).
		Int("dirs", len(res.Dirs)).
		Int("files", len(res.Files)).
		Int("skipped", len(res.Skipped)).
		Msg("reconciled")
}

func requireDir(d types.Directory) error {
	if d.IsZero() {
		name := d.Name
		if name == "" {
			name = "directory"
		}
		return errors.Newf(errors.ErrNoDirectory, "%s is not set", name)
	}
	return nil
}

func fsError(err error, op, path string) error {
	return errors.Wrapf(err, errors.ErrFilesystem, "%s %s", op, path).
		WithDetail("op", op).
		WithDetail("path", path)
}
