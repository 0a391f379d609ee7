package runs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"glottisdale/internal/textutil"
)

// LockFile is the lock held on the output root while allocating a run.
const LockFile = ".glottisdale.lock"

const maxCollisions = 1000

// Run is an allocated run directory.
type Run struct {
	Name string
	Dir  string
}

// MixPath is the final collage, <dir>/<name>.wav.
func (r Run) MixPath() string { return filepath.Join(r.Dir, r.Name+".wav") }

// ManifestPath is <dir>/manifest.json.
func (r Run) ManifestPath() string { return filepath.Join(r.Dir, "manifest.json") }

// ClipsDir holds the per-word clips.
func (r Run) ClipsDir() string { return filepath.Join(r.Dir, "clips") }

// ArchivePath is the zip of the word clips.
func (r Run) ArchivePath() string { return filepath.Join(r.Dir, "clips.zip") }

// ClipName returns the file name of the index'th word clip.
func ClipName(index int, source string, wordIndex, syllableIndex int) string {
	return fmt.Sprintf("%03d_%s_w%03d_s%02d.wav", index, textutil.TruncateToken(textutil.SanitizeToken(source), 40), wordIndex, syllableIndex)
}

// Allocate creates a fresh run directory under outputDir named
// <date>-<label>, appending -2, -3, ... when the name is taken. An empty
// label falls back to Name(seed).
func Allocate(outputDir, label string, seed int64, now time.Time) (Run, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Run{}, fmt.Errorf("create output root: %w", err)
	}
	lock := flock.New(filepath.Join(outputDir, LockFile))
	if err := lock.Lock(); err != nil {
		return Run{}, fmt.Errorf("lock output root: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if label == "" {
		label = Name(seed)
	} else {
		label = textutil.SanitizeToken(label)
	}
	base := now.Format("2006-01-02") + "-" + label
	for i := 1; i <= maxCollisions; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s-%d", base, i)
		}
		dir := filepath.Join(outputDir, name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return Run{Name: name, Dir: dir}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return Run{}, fmt.Errorf("create run directory: %w", err)
		}
	}
	return Run{}, fmt.Errorf("no free run directory for %s after %d attempts", base, maxCollisions)
}
