package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, script string) (string, int) {
	t.Helper()

	var out strings.Builder
	in := interp{out: &out, seed: 1}
	require.NoError(t, in.Run(strings.NewReader(script)))
	errs := in.Finish()
	return out.String(), errs
}

func TestInterpScenario(t *testing.T) {
	out, errs := run(t, `
# FIFO and LIFO mixed.
new
it a
it b
ih c
size 3
rh c
reverse
show
rh b
rh a
size 0
free
`)
	require.Zero(t, errs, out)
	require.Contains(t, out, "q = [c a b]\n")
	require.Contains(t, out, "q = [b a]\n")
	require.Contains(t, out, "Removed c from queue\n")
	require.Contains(t, out, "q = NULL\n")
}

func TestInterpRepeat(t *testing.T) {
	out, errs := run(t, "new\nih x 3\nit y 2\nsize 5\nrhq\nsize 4\n")
	require.Zero(t, errs, out)
	require.Contains(t, out, "q = [x x x y y]\n")
	require.Contains(t, out, "q = [x x y y]\n")
}

func TestInterpMismatch(t *testing.T) {
	tests := []struct {
		name   string
		script string
		errs   int
	}{
		{"Value", "new\nit a\nrh b\n", 1},
		{"Size", "new\nit a\nsize 2\n", 1},
		{"EmptyExpected", "new\nrh a\n", 1},
		{"EmptyQuiet", "new\nrh\nrhq\n", 0},
		{"Unknown", "bogus\n", 1},
		{"BadArgs", "new\nih\nit a b\nsize x\noption fail 2\n", 4},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, errs := run(t, test.script)
			require.Equal(t, test.errs, errs, out)
		})
	}
}

func TestInterpNullQueue(t *testing.T) {
	out, errs := run(t, "ih a\nit a\nrh\nsize 0\nreverse\nfree\n")
	require.Zero(t, errs, out)
	require.Contains(t, out, "Warning: Calling insert on null queue\n")
}

func TestInterpQuit(t *testing.T) {
	out, errs := run(t, "new\nquit\nrh nothing\n")
	require.Zero(t, errs, out)
	require.NotContains(t, out, "Removal")
}

func TestInterpFailures(t *testing.T) {
	var script strings.Builder
	script.WriteString("option fail 0.3\nnew\nnew\nnew\n")
	for range 200 {
		script.WriteString("ih head\nit tail\nrhq\nreverse\n")
	}
	script.WriteString("free\n")

	out, errs := run(t, script.String())
	require.Zero(t, errs, out)
	require.Contains(t, out, "Warning: Insertion of")
}

func TestInterpHelp(t *testing.T) {
	out, errs := run(t, "help\n")
	require.Zero(t, errs)
	for name := range commands {
		require.Contains(t, out, "\t"+name)
	}
	require.Contains(t, out, "\tquit")
}
