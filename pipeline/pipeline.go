// Package pipeline runs DataFrame scripts written in YAML: a source, followed by a series of
// named steps, each of which is displayed as a grid once applied.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasink"
	"github.com/go-sif/frames/session"
	"gopkg.in/yaml.v3"
)

// DefaultShow is the number of Rows displayed after each Step, unless configured otherwise
const DefaultShow = 20

// Source describes files read by a Pipeline
type Source struct {
	Path         string `yaml:"path"`
	Format       string `yaml:"format,omitempty"` // csv (default) or json
	Header       bool   `yaml:"header,omitempty"`
	InferSchema  bool   `yaml:"inferSchema,omitempty"`
	MultiLine    bool   `yaml:"multiLine,omitempty"`
	Schema       string `yaml:"schema,omitempty"` // DDL, such as "id string, weight double"
	Delimiter    string `yaml:"delimiter,omitempty"`
	NullValue    string `yaml:"nullValue,omitempty"`
	SamplingRows int    `yaml:"samplingRows,omitempty"`
}

// Sink describes where a Pipeline writes its final DataFrame
type Sink struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format,omitempty"` // csv (default), json or parquet
	Header      bool   `yaml:"header,omitempty"`
	Compression string `yaml:"compression,omitempty"`
}

// A Pipeline reads a Source, applies a series of Steps and optionally writes the result to a Sink
type Pipeline struct {
	Name     string `yaml:"name,omitempty"`
	Source   Source `yaml:"source"`
	Steps    []Step `yaml:"steps,omitempty"`
	Show     *int   `yaml:"show,omitempty"`     // Rows displayed after each Step. Defaults to 20, and 0 disables display.
	Truncate *int   `yaml:"truncate,omitempty"` // characters at which cells are truncated. Defaults to 20.
	Sink     *Sink  `yaml:"sink,omitempty"`

	baseDir string // relative paths are resolved against this directory
}

// Load decodes a Pipeline. Unknown fields are rejected.
func Load(r io.Reader) (*Pipeline, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	p := &Pipeline{}
	if err := decoder.Decode(p); err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}
	if len(p.Source.Path) == 0 {
		return nil, fmt.Errorf("parse pipeline: source.path is required")
	}
	return p, nil
}

// LoadFile decodes a Pipeline from a file. Relative paths within the Pipeline are
// resolved against the directory containing the file.
func LoadFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	p, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.baseDir = filepath.Dir(path)
	return p, nil
}

// Marshal encodes a Pipeline as YAML
func (p *Pipeline) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

func (p *Pipeline) resolve(path string) string {
	if filepath.IsAbs(path) || len(p.baseDir) == 0 {
		return path
	}
	return filepath.Join(p.baseDir, path)
}

func (p *Pipeline) read(sess *session.Session, src *Source) (frames.DataFrame, error) {
	opts := &session.ReadOptions{
		Format:       src.Format,
		Header:       src.Header,
		InferSchema:  src.InferSchema,
		MultiLine:    src.MultiLine,
		SchemaDDL:    src.Schema,
		NullValue:    src.NullValue,
		SamplingRows: src.SamplingRows,
	}
	if len(src.Delimiter) > 0 {
		d, size := utf8.DecodeRuneInString(src.Delimiter)
		if size != len(src.Delimiter) {
			return nil, fmt.Errorf("delimiter %q must be a single character", src.Delimiter)
		}
		opts.Delimiter = d
	}
	return sess.Read(p.resolve(src.Path), opts)
}

func showCount(p *Pipeline, s *Step) int {
	switch {
	case s != nil && s.Show != nil:
		return *s.Show
	case p.Show != nil:
		return *p.Show
	}
	return DefaultShow
}

// Build reads the Source and applies every Step, without executing anything. It returns
// the DataFrame produced by each Step, in order, following the DataFrame of the Source.
func (p *Pipeline) Build(sess *session.Session) ([]frames.DataFrame, error) {
	df, err := p.read(sess, &p.Source)
	if err != nil {
		return nil, err
	}
	read := func(src *Source) (frames.DataFrame, error) {
		return p.read(sess, src)
	}
	results := []frames.DataFrame{df}
	for i := range p.Steps {
		op, err := p.Steps[i].Operation(read)
		if err != nil {
			return nil, err
		}
		if df, err = df.To(op); err != nil {
			return nil, fmt.Errorf("step %q: %w", p.Steps[i].Title(), err)
		}
		results = append(results, df)
	}
	return results, nil
}

// Run builds the Pipeline, displays the result of each Step on w and writes the final
// DataFrame to the Sink, if one is configured. The final DataFrame is returned.
func (p *Pipeline) Run(ctx context.Context, sess *session.Session, w io.Writer) (frames.DataFrame, error) {
	dfs, err := p.Build(sess)
	if err != nil {
		return nil, err
	}
	truncate := session.DefaultTruncate
	if p.Truncate != nil {
		truncate = *p.Truncate
	}
	for i := range p.Steps {
		step := &p.Steps[i]
		n := showCount(p, step)
		if n <= 0 {
			continue
		}
		sess.Logger().Debug("showing step", slog.String("step", step.Title()))
		if _, err := fmt.Fprintf(w, "== %s ==\n", step.Title()); err != nil {
			return nil, err
		}
		if err := sess.ShowTruncated(ctx, dfs[i+1], n, truncate, w); err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Title(), err)
		}
	}
	final := dfs[len(dfs)-1]
	if len(p.Steps) == 0 && showCount(p, nil) > 0 {
		if err := sess.ShowTruncated(ctx, final, showCount(p, nil), truncate, w); err != nil {
			return nil, err
		}
	}
	if p.Sink != nil {
		if err := p.write(ctx, sess, final); err != nil {
			return nil, err
		}
	}
	return final, nil
}

func (p *Pipeline) write(ctx context.Context, sess *session.Session, df frames.DataFrame) error {
	path := p.resolve(p.Sink.Path)
	opts := &datasink.Options{Header: p.Sink.Header, Compression: p.Sink.Compression}
	switch p.Sink.Format {
	case "parquet":
		return datasink.WriteParquet(ctx, sess, df, path, opts)
	case "", session.FormatCSV, session.FormatJSON:
	default:
		return fmt.Errorf("Unsupported sink format %q", p.Sink.Format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if p.Sink.Format == session.FormatJSON {
		err = datasink.WriteJSONLines(ctx, sess, df, f)
	} else {
		err = datasink.WriteCSV(ctx, sess, df, f, opts)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
