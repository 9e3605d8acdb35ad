package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/lu4/hashislife/clog"
	"github.com/lu4/hashislife/pattern"
)

const (
	flagLoad       = "load"
	flagLoadFormat = "load_format"
	flagDump       = "dump"
	flagDumpFormat = "dump_format"
)

func registerLoadFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagLoad, "i", "", `pattern file to load (".gz" supported, "-" for stdin)`)
	cmd.Flags().String(flagLoadFormat, "", `pattern format to use for loading instead of auto-detection ("`+strings.Join(formatNames(readable), `", "`)+`")`)
}

func registerDumpFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagDump, "o", "", `pattern file to dump to (".gz" supported, "-" for stdout)`)
	cmd.Flags().String(flagDumpFormat, "", `pattern format to use instead of auto-detection ("`+strings.Join(formatNames(writable), `", "`)+`")`)
}

const (
	readable = iota
	writable
)

func formatNames(dir int) []string {
	var names []string
	for _, f := range pattern.Formats() {
		if dir == readable && f.Reader != nil || dir == writable && f.Writer != nil {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return names
}

// formatFor resolves a format from an explicit name or a file path,
// looking through a trailing ".gz".
func formatFor(path, typ string) (*pattern.Format, error) {
	if typ != "" {
		if f := pattern.FormatByName(typ); f != nil {
			return f, nil
		}
		return nil, fmt.Errorf("unsupported format: %q", typ)
	}
	ext := filepath.Ext(path)
	if ext == ".gz" {
		ext = filepath.Ext(strings.TrimSuffix(path, ext))
	}
	if f := pattern.FormatByExt(ext); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("unknown pattern extension %q", ext)
}

func loadGrid(path, typ string) (*pattern.Grid, error) {
	format, err := formatFor(path, typ)
	if err != nil {
		return nil, err
	}
	var r io.Reader
	if path == "-" {
		r = os.Stdin
		if clog.V(0) {
			clog.Infof("reading pattern from stdin")
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open file %q: %v", path, err)
		}
		defer f.Close()
		r = f
	}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	rd := format.Reader(r)
	defer rd.Close()
	return rd.ReadGrid()
}

func dumpGrid(path, typ string, g *pattern.Grid) error {
	format, err := formatFor(path, typ)
	if err != nil {
		return err
	}
	if format.Writer == nil {
		return fmt.Errorf("encoding in %s format is not supported", format.Name)
	}
	var f *os.File
	if path == "-" {
		f = os.Stdout
	} else {
		f, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create file %q: %v", path, err)
		}
		defer f.Close()
	}
	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}
	pw := format.Writer(w)
	if err := pw.WriteGrid(g); err != nil {
		pw.Close()
		return err
	}
	return pw.Close()
}
