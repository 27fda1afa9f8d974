package tabular_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tabtrain/pkg/tabular"
)

const irisHead = "sepal_length\tsepal_width\tpetal_length\tpetal_width\tspecies\n" +
	"5.1\t3.5\t1.4\t0.2\tsetosa\n" +
	"7.0\t3.2\t4.7\t1.4\tversicolor\n" +
	"6.3\t3.3\t6.0\t2.5\tvirginica\n"

func newSource(t *testing.T, text string, opts ...tabular.Option) *tabular.Source {
	t.Helper()
	src, err := tabular.NewSource(strings.NewReader(text), opts...)
	require.NoError(t, err)
	return src
}

func TestSource_HeaderAndRows(t *testing.T) {
	t.Parallel()

	src := newSource(t, irisHead)
	require.Equal(t, 5, src.Size())
	require.Equal(t, []string{"sepal_length", "sepal_width", "petal_length", "petal_width", "species"}, src.Columns())

	var species []string
	var lines []int
	for src.HasNext() {
		row, err := src.Next()
		require.NoError(t, err)
		require.Equal(t, 5, row.Len())
		s, err := row.Get(4)
		require.NoError(t, err)
		species = append(species, s)
		lines = append(lines, row.Line())
	}
	require.Equal(t, []string{"setosa", "versicolor", "virginica"}, species)
	require.Equal(t, []int{2, 3, 4}, lines)

	_, err := src.Next()
	require.ErrorIs(t, err, tabular.ErrNoMoreRows)
}

func TestSource_Float64(t *testing.T) {
	t.Parallel()

	src := newSource(t, "a\tb\tc\n 5.1 \t-2e3\tx\n")
	row, err := src.Next()
	require.NoError(t, err)

	v, err := row.Float64(0)
	require.NoError(t, err)
	require.InDelta(t, 5.1, v, 1e-12)

	v, err = row.Float64(1)
	require.NoError(t, err)
	require.Equal(t, -2000.0, v)

	_, err = row.Float64(2)
	require.ErrorIs(t, err, tabular.ErrNumericParse)
	require.ErrorContains(t, err, `"c"`)

	_, err = row.Get(3)
	require.ErrorIs(t, err, tabular.ErrUnknownColumn)
	_, err = row.Float64(-1)
	require.ErrorIs(t, err, tabular.ErrUnknownColumn)
}

func TestSource_FieldIndex(t *testing.T) {
	t.Parallel()

	src := newSource(t, irisHead)
	cases := []struct {
		name string
		ref  tabular.ColumnRef
		want int
		err  error
	}{
		{"by name", tabular.ByName("species"), 4, nil},
		{"by name first", tabular.ByName("sepal_length"), 0, nil},
		{"zero is last", tabular.ByOrdinal(0), 4, nil},
		{"LastColumn", tabular.LastColumn, 4, nil},
		{"one based first", tabular.ByOrdinal(1), 0, nil},
		{"one based last", tabular.ByOrdinal(5), 4, nil},
		{"ordinal past end", tabular.ByOrdinal(6), -1, tabular.ErrUnknownColumn},
		{"negative ordinal", tabular.ByOrdinal(-1), -1, tabular.ErrUnknownColumn},
		{"unknown name", tabular.ByName("genus"), -1, tabular.ErrUnknownColumn},
		{"case sensitive", tabular.ByName("Species"), -1, tabular.ErrUnknownColumn},
		{"empty name", tabular.ByName(""), -1, tabular.ErrUnknownColumn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := src.FieldIndex(tc.ref)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseColumnRef(t *testing.T) {
	t.Parallel()

	require.Equal(t, tabular.ByOrdinal(0), tabular.ParseColumnRef("0"))
	require.Equal(t, tabular.ByOrdinal(3), tabular.ParseColumnRef(" 3 "))
	require.Equal(t, tabular.ByName("species"), tabular.ParseColumnRef("species"))
	require.True(t, tabular.ParseColumnRef("species").IsName())
	require.False(t, tabular.ParseColumnRef("2").IsName())
	require.Equal(t, `"species"`, tabular.ByName("species").String())
	require.Equal(t, "#0", tabular.LastColumn.String())
}

func TestSource_Empty(t *testing.T) {
	t.Parallel()

	_, err := tabular.NewSource(strings.NewReader(""))
	require.ErrorIs(t, err, tabular.ErrMalformedInput)

	_, err = tabular.NewSource(strings.NewReader("\n\n"))
	require.ErrorIs(t, err, tabular.ErrMalformedInput)
}

func TestSource_HeaderOnly(t *testing.T) {
	t.Parallel()

	src := newSource(t, "a\tb\n")
	require.Equal(t, 2, src.Size())
	require.False(t, src.HasNext())
	_, err := src.Next()
	require.ErrorIs(t, err, tabular.ErrNoMoreRows)
}

func TestSource_RowWidthMismatch(t *testing.T) {
	t.Parallel()

	src := newSource(t, "a\tb\tc\n1\t2\t3\n1\t2\n4\t5\t6\n")

	_, err := src.Next()
	require.NoError(t, err)

	require.True(t, src.HasNext())
	_, err = src.Next()
	require.ErrorIs(t, err, tabular.ErrMalformedInput)
	require.ErrorContains(t, err, "line 3")

	row, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, 4, row.Line())
	require.False(t, src.HasNext())
}

func TestSource_Delimiter(t *testing.T) {
	t.Parallel()

	src := newSource(t, "x,y,label\n1,2,a\n", tabular.WithDelimiter(','))
	require.Equal(t, 3, src.Size())
	row, err := src.Next()
	require.NoError(t, err)
	v, err := row.Float64(1)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
}

func TestSource_SkipsBlankLinesAndCRLF(t *testing.T) {
	t.Parallel()

	src := newSource(t, "a\tb\r\n1\tx\r\n\r\n2\ty\r\n")
	var got []string
	for src.HasNext() {
		row, err := src.Next()
		require.NoError(t, err)
		s, err := row.Get(1)
		require.NoError(t, err)
		got = append(got, s)
	}
	require.Equal(t, []string{"x", "y"}, got)
}

func TestSource_QuotesAreLiteral(t *testing.T) {
	t.Parallel()

	src := newSource(t, "x\tlabel\n1\t\"a\n2\tb\n3\t\"c\"\n4\tsay \"hi\"\n")
	var cells []string
	var lines []int
	for src.HasNext() {
		row, err := src.Next()
		require.NoError(t, err)
		require.Equal(t, 2, row.Len())
		c, err := row.Get(1)
		require.NoError(t, err)
		cells = append(cells, c)
		lines = append(lines, row.Line())
	}
	require.Equal(t, []string{`"a`, "b", `"c"`, `say "hi"`}, cells)
	require.Equal(t, []int{2, 3, 4, 5}, lines)
}

func TestSource_LineTooLong(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("9", 17<<20)
	src := newSource(t, "a\tb\n1\t2\n"+long+"\t3\n5\t6\n")
	_, err := src.Next()
	require.NoError(t, err)
	require.True(t, src.HasNext())
	_, err = src.Next()
	require.ErrorIs(t, err, tabular.ErrMalformedInput)
	require.ErrorContains(t, err, "line 3")
	require.False(t, src.HasNext())
}

func TestOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "in.tbl")
	require.NoError(t, os.WriteFile(path, []byte(irisHead), 0o644))

	src, err := tabular.Open(path)
	require.NoError(t, err)
	require.True(t, src.HasNext())
	require.NoError(t, src.Close())
	require.False(t, src.HasNext())
	require.NoError(t, src.Close())

	_, err = tabular.Open(filepath.Join(t.TempDir(), "missing.tbl"))
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(t.TempDir(), "empty.tbl")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = tabular.Open(empty)
	require.ErrorIs(t, err, tabular.ErrMalformedInput)
}
