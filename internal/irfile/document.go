package irfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/nvfuse/internal/ir"
)

//go:embed schema.cue
var schemaCUE string

// Document is the decoded form of a fixture file.
type Document struct {
	Name    string      `yaml:"name" json:"name"`
	Kernel  bool        `yaml:"kernel,omitempty" json:"kernel,omitempty"`
	Values  []ValueSpec `yaml:"values" json:"values"`
	Ops     []OpSpec    `yaml:"ops,omitempty" json:"ops,omitempty"`
	Outputs []string    `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// ValueSpec declares one value. Which fields apply depends on Type.
type ValueSpec struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`

	// Value is the constant of a bool, double or int; absent means symbolic.
	Value any `yaml:"value,omitempty" json:"value,omitempty"`

	Label     string   `yaml:"label,omitempty" json:"label,omitempty"`
	Start     string   `yaml:"start,omitempty" json:"start,omitempty"`
	Extent    string   `yaml:"extent,omitempty" json:"extent,omitempty"`
	Axes      []string `yaml:"axes,omitempty" json:"axes,omitempty"`
	Domain    string   `yaml:"domain,omitempty" json:"domain,omitempty"`
	View      string   `yaml:"view,omitempty" json:"view,omitempty"`
	Indices   []string `yaml:"indices,omitempty" json:"indices,omitempty"`
	Cond      string   `yaml:"cond,omitempty" json:"cond,omitempty"`
	Kind      string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Parallel  string   `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	Reduction bool     `yaml:"reduction,omitempty" json:"reduction,omitempty"`
	Memory    string   `yaml:"memory,omitempty" json:"memory,omitempty"`
}

// OpSpec declares one operation. Op is the OpType name, e.g. "BinaryOp".
type OpSpec struct {
	Op       string   `yaml:"op" json:"op"`
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Kind     string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Out      []string `yaml:"out,omitempty" json:"out,omitempty"`
	In       []string `yaml:"in,omitempty" json:"in,omitempty"`
	Ints     []int    `yaml:"ints,omitempty" json:"ints,omitempty"`
	Flags    []bool   `yaml:"flags,omitempty" json:"flags,omitempty"`
	Pad      [][]int  `yaml:"pad,omitempty" json:"pad,omitempty"`
	Memory   string   `yaml:"memory,omitempty" json:"memory,omitempty"`
	ZeroInit bool     `yaml:"zero_init,omitempty" json:"zero_init,omitempty"`

	// Buffers names the Allocate ops a grid op uses.
	Buffers []string `yaml:"buffers,omitempty" json:"buffers,omitempty"`

	Body []OpSpec `yaml:"body,omitempty" json:"body,omitempty"`
	Then []OpSpec `yaml:"then,omitempty" json:"then,omitempty"`
	Else []OpSpec `yaml:"else,omitempty" json:"else,omitempty"`
}

// Load reads the fixture at path and builds it.
func Load(path string) (*Document, *ir.Container, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	c, err := Build(doc)
	if err != nil {
		return doc, nil, err
	}
	return doc, c, nil
}

// ReadFile decodes the fixture at path, choosing the format by extension.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading fixture: %v", err)}
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, path)
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported fixture extension %q", ext)}
	}
}

// ParseYAML decodes a YAML document. Unknown fields are rejected.
func ParseYAML(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("decoding YAML: %v", err)}
	}
	return &doc, nil
}

// ParseCUE compiles a CUE document, unifies it with the fixture schema and
// decodes it. filename is used only for positions.
func ParseCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling fixture schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueLoadError("compiling CUE", err)
	}

	v = schema.LookupPath(cue.ParsePath("#Fusion")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError("validating CUE", err)
	}

	var doc Document
	if err := v.Decode(&doc); err != nil {
		return nil, cueLoadError("decoding CUE", err)
	}
	return &doc, nil
}

func cueLoadError(what string, err error) *LoadError {
	le := &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("%s: %v", what, err)}
	var cerr cueerrors.Error
	if errors.As(err, &cerr) {
		le.Pos = cerr.Position()
		le.Message = fmt.Sprintf("%s: %s", what, cueerrors.Details(cerr, nil))
	}
	return le
}
