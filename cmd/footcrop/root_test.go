package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"footcrop/cropper"
	"footcrop/internal/testpdf"
	"footcrop/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func firstBox(t *testing.T, path string) types.Rect {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := cropper.Read(bytes.NewReader(data), types.MediaBox)
	require.NoError(t, err)
	r, err := doc.Box(1)
	require.NoError(t, err)
	return r
}

func TestCropCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(in, testpdf.Build(testpdf.Pages(2)...), 0644))

	stdout, stderr, err := execute(t, in, out, "72")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Processed page 1/2\n")
	assert.Contains(t, stdout, "Processed page 2/2\n")
	assert.Contains(t, stdout, "Success! Footer removed from 2 pages.")
	assert.Contains(t, stdout, "Output saved to: "+out)
	assert.NotContains(t, stdout, "PDF Footer Remover")

	assert.Equal(t, types.Rect{LLX: 0, LLY: 72, URX: 612, URY: 792}, firstBox(t, out))
}

func TestCropCommandDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.WriteFile(defaultInput, testpdf.Build(testpdf.Pages(1)...), 0644))

	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "PDF Footer Remover")
	assert.Contains(t, stdout, "Footer height to remove: 50 points")

	assert.Equal(t, types.Rect{LLX: 0, LLY: 50, URX: 612, URY: 792}, firstBox(t, filepath.Join(dir, defaultOutput)))
}

func TestCropCommandMissingInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "missing.pdf")
	out := filepath.Join(dir, "out.pdf")

	_, stderr, err := execute(t, in, out)
	require.ErrorIs(t, err, errReported)
	assert.Equal(t, "Error: Input file '"+in+"' not found.\n", stderr)
	assert.NoFileExists(t, out)
}

func TestCropCommandBadHeight(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	require.NoError(t, os.WriteFile(in, testpdf.Build(testpdf.Pages(1)...), 0644))

	_, stderr, err := execute(t, in, filepath.Join(dir, "out.pdf"), "tall")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Error processing PDF:")
}

func TestCropCommandUnreadableInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(in, []byte("plain text"), 0644))

	_, stderr, err := execute(t, in, out)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Error processing PDF:")
	assert.NoFileExists(t, out)
}

func TestCropCommandStrict(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(in, testpdf.Build(testpdf.Pages(1)...), 0644))

	_, stderr, err := execute(t, "--strict", in, out, "1000")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "no visible area")
	assert.NoFileExists(t, out)
}

func TestCropCommandTooManyArgs(t *testing.T) {
	_, _, err := execute(t, "a", "b", "1", "extra")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}
