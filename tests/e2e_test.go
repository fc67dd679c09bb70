package tests

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Beastly713/hashira/cmd"
	"github.com/Beastly713/hashira/pkg/format"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testcase1 = `{
  "keys": { "n": 4, "k": 3 },
  "1": { "base": "10", "value": "4" },
  "2": { "base": "2", "value": "111" },
  "3": { "base": "10", "value": "12" },
  "6": { "base": "4", "value": "213" }
}`

// resetFlags puts every flag back to its default so one run's flags
// do not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cmd.GetRootCmd()
	resetFlags(root)
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// writeLargeCase samples a degree-9 polynomial with a 200-bit secret at
// x = 1..12 and writes every y in base 36.
func writeLargeCase(t *testing.T, path string) *big.Int {
	t.Helper()

	secret := new(big.Int).Lsh(big.NewInt(0xdeadbeef), 168)
	coeffs := []*big.Int{secret}
	for i := 1; i < 10; i++ {
		coeffs = append(coeffs, new(big.Int).Lsh(big.NewInt(int64(i*1000003)), uint(i*13)))
	}

	doc := map[string]any{"keys": map[string]int{"n": 12, "k": 10}}
	for x := 1; x <= 12; x++ {
		bx := big.NewInt(int64(x))
		y := new(big.Int)
		for i := len(coeffs) - 1; i >= 0; i-- {
			y.Mul(y, bx)
			y.Add(y, coeffs[i])
		}
		doc[fmt.Sprint(x)] = map[string]string{"base": "36", "value": strings.ToUpper(y.Text(36))}
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return secret
}

// TestFullSolve solves the two stock test cases in one batch.
func TestFullSolve(t *testing.T) {
	tmpDir := t.TempDir()

	first := filepath.Join(tmpDir, "testcase1.json")
	require.NoError(t, os.WriteFile(first, []byte(testcase1), 0644))

	second := filepath.Join(tmpDir, "testcase2.json")
	secret := writeLargeCase(t, second)

	out, err := execute(t, "solve", first, second, "-o", "json", "-w", "2", "--verify=false", "--max-subsets", "100", "--log-level", "error")
	require.NoError(t, err, "Solve command failed")

	dec := json.NewDecoder(strings.NewReader(out))
	var reports []format.Report
	for dec.More() {
		var r format.Report
		require.NoError(t, dec.Decode(&r))
		reports = append(reports, r)
	}

	require.Len(t, reports, 2)
	assert.Equal(t, "3", reports[0].Secret)
	assert.Equal(t, secret.String(), reports[1].Secret)
	assert.Len(t, reports[1].Shares, 10)
}

func TestSolve_TextOutputAndVerify(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "testcase1.json.gz")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(testcase1))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	out, err := execute(t, "solve", path, "-o", "text", "-w", "1", "--verify", "--max-subsets", "0", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Constant C = 3")
	assert.Contains(t, out, "(3, 12)")
	// All four shares lie on y = x^2 + 3, so every subset agrees.
	assert.Contains(t, out, "Agreement: 4/4 subsets (0 failed, 1 distinct)")
}

func TestSolve_FailuresAreReportedButDoNotStopSiblings(t *testing.T) {
	tmpDir := t.TempDir()

	good := filepath.Join(tmpDir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(testcase1), 0644))

	badKeys := filepath.Join(tmpDir, "bad_keys.yaml")
	require.NoError(t, os.WriteFile(badKeys, []byte("keys: {n: 2, k: 3}\n"), 0644))

	missing := filepath.Join(tmpDir, "missing.json")

	out, err := execute(t, "solve", good, badKeys, missing, "-o", "text", "-w", "4", "--verify=false", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 share documents failed")

	assert.Contains(t, out, "Constant C = 3")
	assert.Contains(t, out, "invalid threshold k=3 for n=2")
	assert.Contains(t, out, "file not found")
}

func TestDecodeCommand(t *testing.T) {
	out, err := execute(t, "decode", "ff", "16", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "255\n", out)

	_, err = execute(t, "decode", "g", "16", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestSolve_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "testcase1.json")
	require.NoError(t, os.WriteFile(path, []byte(testcase1), 0644))

	cfgPath := filepath.Join(tmpDir, "hashira.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("output: yaml\nfiles:\n  - %s\n", path)), 0644))

	out, err := execute(t, "solve", "--config", cfgPath, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "secret: \"3\"")
}
