package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcprof/internal/testutil"
	"github.com/hpcprof/pkg/compression"
)

// resetFlags restores flag variables, which persist across Execute calls.
func resetFlags() {
	configPath, verbose = "", false
	inspectEndian, inspectCharset, inspectOutput, inspectRows, inspectOutFile = "", "", outputText, false, ""
	importEndian, importPrefix, importWorkers = "", "", 4
	listLimit, listOutput = 50, outputText
	showOutput, showDelete = outputText, false
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeConfig points storage and database at temporary directories.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "profiles")
	require.NoError(t, os.MkdirAll(root, 0755))

	content := fmt.Sprintf(`
database:
  type: sqlite
  path: %s
storage:
  type: local
  local_path: %s
import:
  work_dir: %s
log:
  level: error
`, filepath.Join(dir, "hpcprof.db"), root, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path, root
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version dev")
	assert.Contains(t, out, "DPRF, EPRF")
}

func TestInspect(t *testing.T) {
	path := testutil.TempProfile(t, "run.eprf", testutil.NewEProfFixture().Encode(binary.LittleEndian))

	t.Run("Text", func(t *testing.T) {
		out, err := run(t, "inspect", path)
		require.NoError(t, err)
		assert.Contains(t, out, "EPRF")
		assert.Contains(t, out, "0x0402")
		assert.Contains(t, out, "2024/01/02 03:04:05")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := run(t, "inspect", path, "--output", "json")
		require.NoError(t, err)

		var summary map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &summary))
		assert.Equal(t, "EPRF", summary["file_type"])
		assert.Equal(t, "little", summary["endian"])
	})

	t.Run("Rows", func(t *testing.T) {
		dprof := testutil.TempProfile(t, "run.dprf", testutil.NewDProfFixture().Encode(binary.BigEndian))
		out, err := run(t, "inspect", dprof, "--endian", "auto", "--rows")
		require.NoError(t, err)
		assert.Contains(t, out, "Procedures")
		assert.Contains(t, out, "Call graph")
		assert.Contains(t, out, "<root>")
		assert.Contains(t, out, "src/main.f90")
	})

	t.Run("OutFile", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "report.json.zst")
		_, err := run(t, "inspect", path, "--out", target)
		require.NoError(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, compression.TypeZstd, compression.DetectType(data))
	})

	t.Run("BadEndian", func(t *testing.T) {
		_, err := run(t, "inspect", path, "--endian", "middle")
		assert.Error(t, err)
	})

	t.Run("BadOutput", func(t *testing.T) {
		_, err := run(t, "inspect", path, "--output", "xml")
		assert.Error(t, err)
	})

	t.Run("BadCharset", func(t *testing.T) {
		_, err := run(t, "inspect", path, "--charset", "klingon")
		assert.Error(t, err)
	})

	t.Run("WrongEndian", func(t *testing.T) {
		_, err := run(t, "inspect", path, "--endian", "big")
		assert.Error(t, err)
	})
}

func TestImportListShow(t *testing.T) {
	cfgPath, root := writeConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "runs"), 0755))
	testutil.WriteProfile(t, filepath.Join(root, "runs"), "a.eprf", testutil.NewEProfFixture().Encode(binary.LittleEndian))
	testutil.WriteProfile(t, filepath.Join(root, "runs"), "b.dprf", testutil.NewDProfFixture().Encode(binary.LittleEndian))

	out, err := run(t, "import", "-c", cfgPath, "--prefix", "runs/")
	require.NoError(t, err)
	assert.Contains(t, out, "OK\truns/a.eprf")
	assert.Contains(t, out, "OK\truns/b.dprf")

	out, err = run(t, "list", "-c", cfgPath, "-o", "json")
	require.NoError(t, err)
	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 2)

	id := fmt.Sprintf("%.0f", summaries[0]["id"])
	out, err = run(t, "show", "-c", cfgPath, id)
	require.NoError(t, err)
	assert.Contains(t, out, "runs/")

	_, err = run(t, "show", "-c", cfgPath, id, "--delete")
	require.NoError(t, err)
	_, err = run(t, "show", "-c", cfgPath, id)
	assert.Error(t, err)

	_, err = run(t, "show", "-c", cfgPath, "abc")
	assert.Error(t, err)
}

func TestImport_Failures(t *testing.T) {
	cfgPath, root := writeConfig(t)
	testutil.WriteProfile(t, root, "good.eprf", testutil.NewEProfFixture().Encode(binary.LittleEndian))

	out, err := run(t, "import", "-c", cfgPath, "good.eprf", "missing.eprf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 imports failed")
	assert.Contains(t, out, "OK\tgood.eprf")
	assert.Contains(t, out, "FAIL\tmissing.eprf\tNOT_FOUND")

	_, err = run(t, "import", "-c", cfgPath)
	assert.Error(t, err)
}
