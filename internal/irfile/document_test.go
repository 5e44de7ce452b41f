package irfile

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nvfuse/internal/ir"
	"github.com/roach88/nvfuse/internal/passes"
)

const addMulListing = `inputs: i0, i1, i2
i3 = i1 * i2
i4 = i0 + i3
outputs: i4
`

func listing(t *testing.T, c *ir.Container) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, passes.NewPrinter(&buf).Container(c))
	return buf.String()
}

func loadErr(t *testing.T, err error) *LoadError {
	t.Helper()
	require.Error(t, err)
	var le *LoadError
	require.True(t, errors.As(err, &le), "want *LoadError, got %T: %v", err, err)
	return le
}

func TestLoad_YAML(t *testing.T) {
	doc, c, err := Load(filepath.Join("testdata", "addmul.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "add_mul", doc.Name)
	assert.False(t, c.IsKernel())
	assert.Len(t, c.Values(), 5)
	assert.Len(t, c.Operations(), 2)
	assert.Equal(t, addMulListing, listing(t, c))
}

func TestLoad_CUE(t *testing.T) {
	doc, c, err := Load(filepath.Join("testdata", "addmul.cue"))
	require.NoError(t, err)

	assert.Equal(t, "add_mul", doc.Name)
	assert.Equal(t, addMulListing, listing(t, c))
}

func TestLoad_YAMLAndCUEAgree(t *testing.T) {
	y, err := ReadFile(filepath.Join("testdata", "addmul.yaml"))
	require.NoError(t, err)
	c, err := ReadFile(filepath.Join("testdata", "addmul.cue"))
	require.NoError(t, err)
	assert.Equal(t, y, c)
}

func TestLoad_Kernel(t *testing.T) {
	_, c, err := Load(filepath.Join("testdata", "kernel.yaml"))
	require.NoError(t, err)

	require.True(t, c.IsKernel())
	var tags []ir.OpType
	for _, op := range c.TopLevel() {
		tags = append(tags, op.OpType())
	}
	assert.Equal(t, []ir.OpType{
		ir.OpTypeAllocate, ir.OpTypeInitMagicZero, ir.OpTypeForLoop, ir.OpTypeUpdateMagicZero,
	}, tags)

	// Nested statements are registered too.
	assert.Len(t, c.Operations(), 8)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "kernel", []byte(listing(t, c)))
}

func TestReadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", "testdata/nope.yaml", ErrCodeNotFound},
		{"unsupported extension", "testdata/addmul.txt", ErrCodeUnsupported},
		{"schema violation", "testdata/bad_schema.cue", ErrCodeDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			assert.Equal(t, tt.code, loadErr(t, err).Code)
		})
	}
}

func TestParseCUE_SchemaViolation(t *testing.T) {
	_, err := ParseCUE([]byte(`name: "x"
values: [{name: "a", type: "quaternion"}]
`), "inline.cue")
	le := loadErr(t, err)
	assert.Equal(t, ErrCodeDecode, le.Code)
	assert.Contains(t, le.Message, "validating CUE")
}

func TestParseYAML_UnknownField(t *testing.T) {
	_, err := ParseYAML([]byte("name: x\nvalues: []\nbogus: 1\n"))
	le := loadErr(t, err)
	assert.Equal(t, ErrCodeDecode, le.Code)
	assert.Contains(t, le.Message, "bogus")
}

func TestLoadError_Format(t *testing.T) {
	le := &LoadError{Code: ErrCodeUnknownRef, Path: "ops[0].in[1]", Message: `unknown value "q"`}
	assert.Equal(t, `E201: ops[0].in[1]: unknown value "q"`, le.Error())

	le = &LoadError{Code: ErrCodeNotFound, Message: "reading fixture: gone"}
	assert.Equal(t, "E005: reading fixture: gone", le.Error())
}
