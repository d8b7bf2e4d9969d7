package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sharpc/internal/analyzer"
	"sharpc/internal/backend/c"
	"sharpc/internal/diag"
	"sharpc/internal/project"
	"sharpc/internal/source"
)

// loadUnit decodes one input. JSON dumps go through the disk cache keyed by
// content; msgpack dumps decode faster than a cache lookup.
func (b *build) loadUnit(in Input) (*analyzer.Unit, error) {
	if in.Unit != nil {
		if in.Unit.Path == "" {
			in.Unit.Path = in.Path
		}
		return in.Unit, nil
	}
	format, err := analyzer.FormatForPath(in.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Path, err)
	}
	content, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, err
	}
	useCache := b.opts.Cache != nil && format == analyzer.FormatJSON
	key := project.DigestBytes(content)
	if useCache {
		if u, ok, err := b.opts.Cache.GetUnit(key); err == nil && ok {
			b.timer.Add("units.cached", 1)
			return u, nil
		}
	}
	u, err := analyzer.Decode(bytes.NewReader(content), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Path, err)
	}
	if u.Path == "" {
		u.Path = filepath.ToSlash(in.Path)
	}
	if useCache {
		// a failed cache write only costs the next run a decode
		_ = b.opts.Cache.PutUnit(key, in.Path, u)
	}
	return u, nil
}

// write stores every output file. Each file is replaced atomically; files
// written before a failure stay in place.
func (b *build) write(ctx context.Context, out *c.Output) []string {
	_, end := b.phase(ctx, "write")
	if err := os.MkdirAll(b.req.OutDir, 0o755); err != nil {
		diag.ReportError(b.rep, diag.IOWriteOutputError, source.NoSpan, "failed to create output directory: "+err.Error()).Emit()
		end("failed")
		return nil
	}
	var written []string
	for _, f := range out.Files() {
		path := filepath.Join(b.req.OutDir, f.Name)
		if err := writeFileAtomic(path, []byte(f.Content)); err != nil {
			diag.ReportError(b.rep, diag.IOWriteOutputError, source.NoSpan, fmt.Sprintf("failed to write %s: %v", path, err)).Emit()
			continue
		}
		written = append(written, path)
	}
	var zero project.Digest
	if b.opts.Cache != nil && b.req.Hash != zero && len(written) == len(out.Files()) {
		_ = b.opts.Cache.PutProject(&ProjectPayload{Name: b.req.Name, Hash: b.req.Hash, Files: written})
	}
	end(fmt.Sprintf("%d files", len(written)))
	return written
}

func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".sharpc-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
