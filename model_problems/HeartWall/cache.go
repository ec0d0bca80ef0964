package HeartWall

import (
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/notargets/ibtargets/geometry2D"
	"github.com/notargets/ibtargets/readfiles"
	"github.com/notargets/ibtargets/types"
)

// referenceCache keeps the last parsed reference file, keyed by path,
// modification time and size. A change in any of them forces a re-read.
type referenceCache struct {
	mu             sync.Mutex
	path           string
	modTime        time.Time
	size           int64
	phase1, phase2 geometry2D.PointSet
}

func (rc *referenceCache) load(path string) (phase1, phase2 geometry2D.PointSet, err error) {
	var (
		fi os.FileInfo
	)
	if fi, err = os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = types.NewFileError(types.ErrFileNotFound, path, 0, "")
		}
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.phase1 != nil && rc.path == path && rc.modTime.Equal(fi.ModTime()) && rc.size == fi.Size() {
		return rc.phase1, rc.phase2, nil
	}
	if phase1, phase2, err = readfiles.ReadReferencePositions(path); err != nil {
		return
	}
	rc.path, rc.modTime, rc.size = path, fi.ModTime(), fi.Size()
	rc.phase1, rc.phase2 = phase1, phase2
	return
}
