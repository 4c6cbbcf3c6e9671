package mesh

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/notargets/kmesh/InputParameters"
	"github.com/notargets/kmesh/luatable"
)

const (
	DefaultSuffix = "_out"
	ImageExt      = ".ps"
)

type ExportOptions struct {
	EmitTable    bool
	EmitImage    bool
	OverridePath string // Replaces the derived path head, extensions are still appended
	Suffix       string // Appended to the stripped source path, DefaultSuffix when empty
	Params       *InputParameters.RenderParameters
}

// OutputHead strips the last extension from source and appends suffix,
// unless override is given, in which case override is the head.
func OutputHead(source, suffix, override string) (head string, err error) {
	if override != "" {
		return override, nil
	}
	ext := filepath.Ext(source)
	if ext == "" {
		return "", fmt.Errorf("%w: cannot derive output names from %q, it has no extension", ErrExtension, source)
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return strings.TrimSuffix(source, ext) + suffix, nil
}

// ExportPaths returns the table and image file names an export writes
func ExportPaths(m *Model, opts ExportOptions) (tablePath, imagePath string, err error) {
	var head string
	if head, err = OutputHead(m.SourcePath, opts.Suffix, opts.OverridePath); err != nil {
		return
	}
	return head + luatable.Extension, head + ImageExt, nil
}

// ExportAll writes the table and or the PostScript picture of m next to its source file
func ExportAll(fsys afero.Fs, m *Model, opts ExportOptions) (written []string, err error) {
	var tablePath, imagePath string
	if tablePath, imagePath, err = ExportPaths(m, opts); err != nil {
		return
	}
	if opts.EmitTable {
		if err = WriteTable(fsys, m, tablePath); err != nil {
			return
		}
		written = append(written, tablePath)
	}
	if opts.EmitImage {
		if err = RenderPS(fsys, m, imagePath, opts.Params); err != nil {
			return
		}
		written = append(written, imagePath)
	}
	return
}
