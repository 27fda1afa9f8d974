package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const irisPath = "../../../pkg/data/testdata/iris.tbl"

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// interleavedIris rewrites the iris file so that consecutive rows cycle
// through the three species.
func interleavedIris(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile(irisPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	header, rows := lines[0], lines[1:]
	require.Len(t, rows, 150)

	var sb strings.Builder
	sb.WriteString(header + "\n")
	for i := range 50 {
		for c := range 3 {
			sb.WriteString(rows[c*50+i] + "\n")
		}
	}
	return writeFile(t, "iris.tbl", sb.String())
}

func TestInspect(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "inspect", "--input", irisPath,
		"--label-column", "species", "--labels", "setosa,versicolor,virginica",
		"--batch-size", "11")
	require.NoError(t, err)
	require.Contains(t, out, "sepal_length, sepal_width, petal_length, petal_width (4)")
	require.Contains(t, out, "0=setosa 1=versicolor 2=virginica")
	require.Contains(t, out, "150")
	require.Contains(t, out, "14 [11 11 11 11 11 11 11 11 11 11 11 11 11 7]")
}

func TestInspect_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "inspect", "--input", irisPath, "--labels", "setosa,versicolor")
	require.Error(t, err, "virginica is not a known label")

	_, _, err = execute(t, "inspect", "--input", irisPath)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, _, err = execute(t, "inspect", "--input", irisPath, "--labels", "a", "--label-column", "genus")
	require.Error(t, err)
}

func TestTrain(t *testing.T) {
	t.Parallel()

	input := interleavedIris(t)
	plotPath := filepath.Join(t.TempDir(), "loss.png")
	cfgPath := writeFile(t, "run.yaml", fmt.Sprintf(`
input: %s
label_column: species
labels: [setosa, versicolor, virginica]
batch_size: 30
iterations: 50
log_every: 100
`, input))

	out, logs, err := execute(t, "train", "--config", cfgPath, "--plot", plotPath, "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, out, "Evaluation")
	require.Contains(t, out, "30 rows")
	require.Contains(t, out, "4 batches, 200 updates")
	require.Contains(t, out, "Confusion matrix")
	require.Contains(t, logs, "run=")
	require.Contains(t, logs, "level=DEBUG")
	require.Contains(t, logs, "step=200")

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestTrain_HeldOutOnly(t *testing.T) {
	t.Parallel()

	out, logs, err := execute(t, "train", "--input", irisPath, "--labels", "setosa,versicolor,virginica",
		"--batch-size", "150", "--normalizer", "none")
	require.NoError(t, err)
	require.Contains(t, out, "150 rows")
	require.Contains(t, out, "0 batches, 0 updates")
	require.Contains(t, logs, "no training batches")
}

func TestTrain_EmptyInput(t *testing.T) {
	t.Parallel()

	input := writeFile(t, "empty.tbl", "a\tb\tlabel\n")
	_, _, err := execute(t, "train", "--input", input, "--labels", "x,y")
	require.ErrorContains(t, err, "no data rows")
}
