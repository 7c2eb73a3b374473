package geometry

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rmoreno/cadet/internal/util"
)

// Format is an exchange file format for built geometry.
type Format string

const (
	FormatSTL Format = "stl"
	FormatOBJ Format = "obj"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatSTL:
		return FormatSTL, nil
	case FormatOBJ:
		return FormatOBJ, nil
	}
	return "", fmt.Errorf("unsupported export format: %q", s)
}

// Exporter writes meshes into an outputs directory with unique filenames.
type Exporter struct {
	dir    string
	logger *zap.Logger
}

// NewExporter creates an exporter rooted at dir.
func NewExporter(dir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{dir: dir, logger: logger}
}

// Dir returns the outputs directory.
func (e *Exporter) Dir() string { return e.dir }

// Export writes mesh to a new file and returns the filename (relative to
// the outputs directory). Filenames are prefix_timestamp_shortid.ext so
// repeated exports never collide.
func (e *Exporter) Export(mesh *Mesh, format Format, prefix string) (string, error) {
	if mesh == nil || len(mesh.Triangles) == 0 {
		return "", fmt.Errorf("nothing to export: empty mesh")
	}
	if prefix == "" {
		prefix = "model"
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create outputs directory: %w", err)
	}

	id, err := util.GenerateShortID()
	if err != nil {
		return "", fmt.Errorf("failed to generate file id: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s.%s", prefix, time.Now().Format("20060102_150405"), id, format)
	path := filepath.Join(e.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	switch format {
	case FormatOBJ:
		err = writeOBJ(w, mesh)
	default:
		err = writeSTL(w, mesh)
	}
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	e.logger.Info("exported model",
		zap.String("file", name),
		zap.String("format", string(format)),
		zap.Int("triangles", len(mesh.Triangles)))
	return name, nil
}

// OutputFile describes one exported file.
type OutputFile struct {
	Name      string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	Modified  time.Time `json:"modified"`
	Type      string    `json:"type"`
}

// ListOutputs returns exported files, newest first. A missing outputs
// directory lists as empty rather than failing.
func (e *Exporter) ListOutputs() ([]OutputFile, error) {
	entries, err := os.ReadDir(e.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read outputs directory: %w", err)
	}

	var files []OutputFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, OutputFile{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			Modified:  info.ModTime(),
			Type:      strings.TrimPrefix(filepath.Ext(entry.Name()), "."),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// CleanupOutputs deletes the oldest files beyond keep, returning how many
// were removed.
func (e *Exporter) CleanupOutputs(keep int) (int, error) {
	files, err := e.ListOutputs()
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(files) <= keep {
		return 0, nil
	}

	deleted := 0
	for _, f := range files[keep:] {
		if err := os.Remove(filepath.Join(e.dir, f.Name)); err != nil {
			e.logger.Warn("failed to delete old output", zap.String("file", f.Name), zap.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}

// writeSTL writes an ASCII STL solid.
func writeSTL(w *bufio.Writer, mesh *Mesh) error {
	name := mesh.Name
	if name == "" {
		name = "model"
	}
	if _, err := fmt.Fprintf(w, "solid %s\n", name); err != nil {
		return err
	}
	for _, t := range mesh.Triangles {
		n := t.Normal()
		if _, err := fmt.Fprintf(w, "  facet normal %g %g %g\n    outer loop\n", n.X, n.Y, n.Z); err != nil {
			return err
		}
		for _, v := range [3]Vec3{t.A, t.B, t.C} {
			if _, err := fmt.Fprintf(w, "      vertex %g %g %g\n", v.X, v.Y, v.Z); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "    endloop\n  endfacet\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "endsolid %s\n", name)
	return err
}

// writeOBJ writes a Wavefront OBJ with one vertex triple per facet.
func writeOBJ(w *bufio.Writer, mesh *Mesh) error {
	if _, err := fmt.Fprintf(w, "o %s\n", mesh.Name); err != nil {
		return err
	}
	for _, t := range mesh.Triangles {
		for _, v := range [3]Vec3{t.A, t.B, t.C} {
			if _, err := fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z); err != nil {
				return err
			}
		}
	}
	for i := range mesh.Triangles {
		base := i * 3
		if _, err := fmt.Fprintf(w, "f %d %d %d\n", base+1, base+2, base+3); err != nil {
			return err
		}
	}
	return nil
}
