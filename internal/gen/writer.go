package gen

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// rename is os.Rename; tests replace it to fail a commit midway.
var rename = os.Rename

// staged is an output waiting in a temporary file next to its destination.
type staged struct {
	path   string
	tmp    string
	backup string
}

// writeFilesAtomic replaces every file of files under dir, or none of them.
//
// All contents go to temporary files first. Only then are the destinations
// swapped in, each original moved aside so that a failed swap can put every
// already replaced file back. It returns the names actually written; files
// whose content is unchanged are skipped.
func writeFilesAtomic(dir string, files []File) (written []string, err error) {
	var batch []*staged

	defer func() {
		for _, s := range batch {
			if s.tmp != "" {
				os.Remove(s.tmp)
			}
		}
	}()

	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if old, rerr := os.ReadFile(path); rerr == nil && bytes.Equal(old, f.Content) {
			continue
		}

		tmp, serr := stageFile(path, f.Content)
		if serr != nil {
			return nil, serr
		}

		batch = append(batch, &staged{path: path, tmp: tmp})
		written = append(written, f.Name)
	}

	var committed []*staged

	for _, s := range batch {
		if cerr := commit(s); cerr != nil {
			return nil, multierr.Append(cerr, rollback(committed))
		}

		committed = append(committed, s)
	}

	for _, s := range committed {
		if s.backup != "" {
			os.Remove(s.backup)
		}
	}

	return written, nil
}

func stageFile(path string, content []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "creating temporary file")
	}

	name := tmp.Name()

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Chmod(filePerm)
	}

	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		os.Remove(name)
		return "", errors.Wrapf(err, "writing %s", name)
	}

	return name, nil
}

// commit moves the current file at s.path aside, if any, and renames s.tmp into place.
func commit(s *staged) error {
	if _, err := os.Lstat(s.path); err == nil {
		s.backup = s.tmp + ".orig"
		if err := rename(s.path, s.backup); err != nil {
			s.backup = ""
			return errors.Wrapf(err, "moving aside %s", s.path)
		}
	}

	if err := rename(s.tmp, s.path); err != nil {
		if s.backup != "" {
			if rerr := rename(s.backup, s.path); rerr == nil {
				s.backup = ""
			}
		}

		return errors.Wrapf(err, "renaming into %s", s.path)
	}

	s.tmp = ""

	return nil
}

// rollback restores the files committed before a failure, newest first.
func rollback(committed []*staged) error {
	var errs error

	for i := len(committed) - 1; i >= 0; i-- {
		s := committed[i]

		var err error
		if s.backup != "" {
			err = rename(s.backup, s.path)
		} else {
			err = os.Remove(s.path)
		}

		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "restoring %s", s.path))
		}
	}

	return errs
}
