package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sharpc/internal/diag"
	"sharpc/internal/source"
)

type palette struct {
	err, warn, info, code, path, caret, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		caret:  color.New(color.FgGreen, color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.caret, p.gutter} {
		// глобальный color.NoColor не должен влиять на явный выбор
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if d.Severity == diag.SevInfo && !opts.ShowInfo {
			continue
		}
		loc := location(d.Primary, fs, opts.PathMode)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprint(loc),
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message)
		writeContext(w, d.Primary, fs, int(opts.Context), pal)
		if !opts.ShowNotes && d.Code != diag.ObsTimings {
			continue
		}
		for _, n := range d.Notes {
			if f := fileOf(fs, n.Span); f != nil {
				fmt.Fprintf(w, "  note: %s: %s\n", location(n.Span, fs, opts.PathMode), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
		}
	}
}

func fileOf(fs *source.FileSet, span source.Span) *source.File {
	if fs == nil || span.File == source.NoFile {
		return nil
	}
	return fs.Get(span.File)
}

// location renders "path:line:col", or the tool name for spans without a unit.
func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fileOf(fs, span)
	if f == nil {
		return "sharpc"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		rel := f.FormatPath("relative", fs.BaseDir())
		if strings.HasPrefix(rel, "..") {
			return f.Path
		}
		return rel
	}
}

func writeContext(w io.Writer, span source.Span, fs *source.FileSet, extra int, pal palette) {
	f := fileOf(fs, span)
	if f == nil || f.Flags&source.FileNoText != 0 {
		return
	}
	start, end := fs.Resolve(span)
	first := max(1, int(start.Line)-extra)
	last := int(start.Line) + extra
	gutter := len(fmt.Sprint(last))
	for n := first; n <= last; n++ {
		line := f.GetLine(uint32(n))
		if line == "" && n != int(start.Line) {
			continue
		}
		line = strings.TrimRight(line, "\r")
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutter, n), line)
		if n != int(start.Line) {
			continue
		}
		from := int(start.Col) - 1
		to := len(line)
		if end.Line == start.Line {
			to = int(end.Col) - 1
		}
		from = min(max(from, 0), len(line))
		to = min(max(to, from+1), max(len(line), from+1))
		fmt.Fprintf(w, " %s %s%s\n",
			pal.gutter.Sprintf("%*s |", gutter, ""),
			padding(line[:from]),
			pal.caret.Sprint(underline(line, from, to)))
	}
}

// padding reproduces the visual width of prefix, keeping tabs.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func underline(line string, from, to int) string {
	width := 1
	if to <= len(line) && from < to {
		width = max(1, runewidth.StringWidth(line[from:to]))
	}
	return "^" + strings.Repeat("~", width-1)
}
