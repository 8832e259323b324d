package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"benchscope/internal/detect"
	"benchscope/internal/model"
	"benchscope/internal/parse"
	"benchscope/internal/util"
	"benchscope/internal/util/logx"
)

// DefaultCandidates are tried in order when no source is configured.
var DefaultCandidates = []string{
	"data/paperswithcode_datasets.csv",
	"./data/paperswithcode_datasets.csv",
	"../csv/paperswithcode_datasets.csv",
}

const DefaultTimeout = 15 * time.Second

var (
	// ErrSourceUnavailable is matched by the error Load returns when every
	// candidate failed.
	ErrSourceUnavailable = errors.New("no data source could be loaded")
	ErrNoRecords         = errors.New("source contains no records")
	ErrOffline           = errors.New("remote source skipped in offline mode")
)

type Options struct {
	// Candidates are local paths, http(s) URLs, or "-" for stdin.
	Candidates []string
	// Timeout bounds each attempt; zero means DefaultTimeout.
	Timeout time.Duration
	// Offline serves remote candidates from the cache only.
	Offline bool
	NoCache bool
	// CacheDir overrides the download cache location.
	CacheDir   string
	HTTPClient *http.Client
	Stdin      io.Reader
}

// Attempt records the outcome of one candidate.
type Attempt struct {
	Source  string
	Records int
	Elapsed time.Duration
	Err     error
}

type Result struct {
	Store    *model.Store
	Format   parse.Format
	Attempts []Attempt
	// FromCache is set when a remote candidate was served from the cache.
	FromCache bool
}

// UnavailableError is returned when all candidates are exhausted. It
// matches both ErrSourceUnavailable and the last underlying cause.
type UnavailableError struct {
	Attempts []Attempt
	Last     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%v (tried %d locations): %v", ErrSourceUnavailable, len(e.Attempts), e.Last)
}

func (e *UnavailableError) Unwrap() []error { return []error{ErrSourceUnavailable, e.Last} }

// Load tries each candidate in order under its own timeout and returns the
// first one that yields at least one record. If ctx ends first, ctx's error
// is returned as is so callers can tell a superseded load from a failure.
func Load(ctx context.Context, opt Options) (*Result, error) {
	cands := opt.Candidates
	if len(cands) == 0 {
		cands = DefaultCandidates
	}
	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	res := &Result{}
	var last error
	for _, src := range cands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		recs, format, cached, err := loadOne(ctx, src, timeout, opt)
		a := Attempt{Source: src, Records: len(recs), Elapsed: time.Since(start), Err: err}
		res.Attempts = append(res.Attempts, a)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil && len(recs) == 0 {
			err = ErrNoRecords
			a.Err, res.Attempts[len(res.Attempts)-1].Err = err, err
		}
		if err != nil {
			logx.Warnf("ingest: %s failed after %s: %v", util.RedactURL(src), a.Elapsed, err)
			last = err
			continue
		}
		logx.Infof("ingest: loaded %d records from %s (%s) in %s", len(recs), util.RedactURL(src), format, a.Elapsed)
		res.Store = model.NewStore(recs, src)
		res.Format = format
		res.FromCache = cached
		return res, nil
	}
	if last == nil {
		last = ErrNoRecords
	}
	return nil, &UnavailableError{Attempts: res.Attempts, Last: last}
}

func loadOne(parent context.Context, src string, timeout time.Duration, opt Options) ([]model.Record, parse.Format, bool, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	body, cached, err := fetch(ctx, src, opt)
	if err != nil {
		return nil, "", false, err
	}
	g := detect.Sniff(src, head(body, 2048))
	logx.Debugf("ingest: %s sniffed as %s (%s, conf=%.2f)", util.RedactURL(src), g.Format, g.Reason, g.Confidence)
	recs, err := parse.Decode(&ctxReader{ctx: ctx, r: bytes.NewReader(body)}, g.Format)
	if err != nil {
		return nil, g.Format, cached, fmt.Errorf("decode %s: %w", src, err)
	}
	return recs, g.Format, cached, nil
}

func fetch(ctx context.Context, src string, opt Options) ([]byte, bool, error) {
	switch {
	case src == "-":
		in := opt.Stdin
		if in == nil {
			in = os.Stdin
		}
		b, err := io.ReadAll(&ctxReader{ctx: ctx, r: in})
		return b, false, err
	case isRemote(src):
		return fetchRemote(ctx, src, opt)
	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, false, err
		}
		defer f.Close()
		b, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
		return b, false, err
	}
}

func fetchRemote(ctx context.Context, src string, opt Options) ([]byte, bool, error) {
	useCache := !opt.NoCache
	if opt.Offline {
		if !useCache {
			return nil, false, ErrOffline
		}
		b, ok := loadFromCache(opt.CacheDir, src)
		if !ok {
			return nil, false, ErrOffline
		}
		return b, true, nil
	}
	b, err := httpGet(ctx, opt.HTTPClient, src)
	if err != nil {
		if useCache && ctx.Err() == nil {
			if cb, ok := loadFromCache(opt.CacheDir, src); ok {
				logx.Warnf("ingest: %s unreachable (%v); using cached copy", util.RedactURL(src), err)
				return cb, true, nil
			}
		}
		return nil, false, err
	}
	if useCache {
		if err := saveToCache(opt.CacheDir, src, b); err != nil {
			logx.Warnf("ingest: failed to cache %s: %v", util.RedactURL(src), err)
		}
	}
	return b, false, nil
}

func httpGet(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func isRemote(src string) bool {
	s := strings.ToLower(src)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsLocal reports whether src names a file on disk.
func IsLocal(src string) bool { return src != "-" && !isRemote(src) }

func head(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
