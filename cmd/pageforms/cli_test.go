package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-pageforms/pkg/render"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(formsDirEnv, "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListCmd(t *testing.T) {
	out, _, err := execute(t, "", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Citation"))
	assert.True(t, strings.HasPrefix(lines[1], "Person"))
}

func TestValidateCmd(t *testing.T) {
	out, _, err := execute(t, "", "validate")
	require.NoError(t, err)
	assert.Equal(t, "2 forms are valid\n", out)

	dir := t.TempDir()
	bad := "forms:\n  Broken:\n    items:\n      - template: {name: T, fields: [{name: a, input: slider}]}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(bad), 0o644))

	_, stderr, err := execute(t, "", "validate", "--forms", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, stderr, "Broken")
}

func TestRenderCmd_Stdin(t *testing.T) {
	values := "templates:\n  Cite:\n    \"1\": Menabrea\n    \"3\": \"1843\"\n"

	out, stderr, err := execute(t, values, "render", "--form", "Citation", "--values", "-")
	require.NoError(t, err)
	assert.Equal(t, "{{Cite|Menabrea||1843}}\n<onlyinclude></onlyinclude>\n", out)
	assert.Contains(t, stderr, "Page: Citations/Menabrea")
}

func TestRenderCmd_JSONToFile(t *testing.T) {
	dir := t.TempDir()
	valuesPath := filepath.Join(dir, "values.json")
	outputPath := filepath.Join(dir, "page.json")
	require.NoError(t, os.WriteFile(valuesPath, []byte(`{"templates": {"Person": {"Name": "Ada"}}}`), 0o644))

	_, stderr, err := execute(t, "",
		"render",
		"--form", "Person",
		"--values", valuesPath,
		"--format", "json",
		"--page-name", "Ada",
		"--output", outputPath,
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Page written to "+outputPath)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var page render.Page
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, "Person", page.Form)
	assert.Equal(t, "Ada", page.Title)
	assert.True(t, strings.HasPrefix(page.Text, "{{Person\n|Name=Ada\n}}\n"))
}

func TestRenderCmd_Preset(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.yaml")
	require.NoError(t, os.WriteFile(presetPath, []byte("templates:\n  Person: {Status: Living}\n"), 0o644))

	out, _, err := execute(t, "templates:\n  Person: {Name: Ada}\n",
		"render", "--form", "Person", "--values", "-", "--preset", presetPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{{Person\n|Name=Ada\n|Status=Living\n}}\n"), out)
}

func TestRenderCmd_TranslatableTemplates(t *testing.T) {
	out, _, err := execute(t, "templates:\n  Cite: {\"1\": Menabrea}\n",
		"render", "--form", "Citation", "--values", "-", "--translatable-templates")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{{ {{tntn|Cite}}|Menabrea}}\n"), out)
}

func TestRenderCmd_MandatoryField(t *testing.T) {
	_, _, err := execute(t, "templates:\n  Person: {Born: 1815}\n", "render", "--form", "Person", "--values", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Person[0][Name] is mandatory")
}

func TestRenderCmd_RequiresForm(t *testing.T) {
	_, _, err := execute(t, "", "render", "--values", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "form" not set`)
}

func TestFillCmd_UnknownForm(t *testing.T) {
	_, _, err := execute(t, "", "fill", "--form", "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "form not found")
}
