package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"benchscope/internal/util"
	"benchscope/internal/util/logx"
)

// Cached bodies are zstd-compressed; catalogue CSVs shrink several times.
// EncodeAll and DecodeAll are safe for concurrent use.
var (
	zenc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zdec, _ = zstd.NewReader(nil)
)

// cacheDir returns the directory holding downloaded copies of remote
// sources, under the OS temp dir unless overridden.
func cacheDir(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(os.TempDir(), "benchscope-source-cache")
}

// cacheKey derives a stable file name from the source URL.
func cacheKey(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", errors.New("empty source")
	}
	h := sha1.Sum([]byte(src))
	return hex.EncodeToString(h[:]), nil
}

func cachePath(dir, src string) (string, error) {
	key, err := cacheKey(src)
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir(dir), fmt.Sprintf("source_%s.zst", key)), nil
}

// loadFromCache returns the cached body of a remote source.
func loadFromCache(dir, src string) ([]byte, bool) {
	p, err := cachePath(dir, src)
	if err != nil {
		return nil, false
	}
	z, err := os.ReadFile(p)
	if err != nil || len(z) == 0 {
		return nil, false
	}
	b, err := zdec.DecodeAll(z, nil)
	if err != nil || len(b) == 0 {
		logx.Warnf("ingest: ignoring unreadable cache entry %s: %v", p, err)
		return nil, false
	}
	logx.Debugf("ingest: cache hit for %s", util.RedactURL(src))
	return b, true
}

// saveToCache compresses body and writes it atomically via a temp file
// and rename.
func saveToCache(dir, src string, body []byte) error {
	p, err := cachePath(dir, src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, zenc.EncodeAll(body, nil), 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	logx.Infof("ingest: cached %s to %s", util.RedactURL(src), p)
	return nil
}
