package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `toml:"name"`
	Count int    `toml:"count"`
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	require.NoError(t, SaveTOMLFile(sample{Name: "pe̍h-ōe-jī", Count: 3}, path))
	assert.True(t, FileExists(path))

	var got sample
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, sample{Name: "pe̍h-ōe-jī", Count: 3}, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is renamed away")
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nn = 4\nb = true\ns = \"x\"\n"), 0o644))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	section, ok := ExtractSection(data, "a")
	require.True(t, ok)

	n, ok := ExtractInt64(section, "n")
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	b, ok := ExtractBool(section, "b")
	assert.True(t, ok)
	assert.True(t, b)
	s, ok := ExtractString(section, "s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = ExtractString(section, "n")
	assert.False(t, ok)
	_, ok = ExtractSection(data, "missing")
	assert.False(t, ok)
}

func TestCheckDirStatusCreates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	res := CheckDirStatus(dir)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)
	assert.NoError(t, res.Error)
}

func TestResolveDataset(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(configDir, "data"), 0o755))
	target := filepath.Join(configDir, "data", "PH-test.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	pr := NewPathResolver(configDir)
	assert.Equal(t, target, pr.ResolveDataset("PH-test.json"))
	assert.Equal(t, "https://example.com/PH.json", pr.ResolveDataset("https://example.com/PH.json"))
	assert.Equal(t, "/abs/PH.json", pr.ResolveDataset("/abs/PH.json"))
	assert.Equal(t, "nope-missing.json", pr.ResolveDataset("nope-missing.json"))
}

func TestFormatWithCommas(t *testing.T) {
	cases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		12408:    "12,408",
		123456:   "123,456",
		1234567:  "1,234,567",
		-9876543: "-9,876,543",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatWithCommas(in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "good", Truncate("good", 10))
	assert.Equal(t, "goo…", Truncate("good person", 4))
	assert.Equal(t, "hó…", Truncate("hó-lâng", 3))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestGetRuntimeInfo(t *testing.T) {
	dir := t.TempDir()
	info := NewPathResolver(dir).GetRuntimeInfo()
	assert.Equal(t, dir, info["config_dir"])
	assert.NotEmpty(t, info["os"])
	assert.NotEmpty(t, info["arch"])
	assert.Contains(t, info, "current_dir")
}
