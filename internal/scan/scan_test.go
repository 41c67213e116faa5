package scan_test

import (
	"testing"

	"github.com/kvark/obj/internal/scan"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty line", "", nil},
		{"only whitespace", " \t  \r\n", nil},
		{"single field", "v", []string{"v"}},
		{"simple command", "v 1 2 3", []string{"v", "1", "2", "3"}},
		{"run of spaces", "f  1   2\t3", []string{"f", "1", "2", "3"}},
		{"leading and trailing", "  usemtl red  ", []string{"usemtl", "red"}},
		{"carriage return", "vn 0 1 0\r", []string{"vn", "0", "1", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := scan.Fields(tt.input)
			var got []string
			for {
				field, ok := w.Next()
				if !ok {
					break
				}
				got = append(got, field)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRest(t *testing.T) {
	w := scan.Fields("mtllib  my material   lib.mtl ")
	cmd, ok := w.Next()
	require.True(t, ok)
	require.Equal(t, "mtllib", cmd)
	require.Equal(t, "my material lib.mtl", w.Rest())

	// Rest after exhaustion is empty.
	require.Equal(t, "", w.Rest())
}

func TestRestartable(t *testing.T) {
	const line = "f 1/2/3 4/5/6 7/8/9"
	first := scan.Fields(line)
	second := scan.Fields(line)
	for {
		a, okA := first.Next()
		b, okB := second.Next()
		require.Equal(t, okA, okB)
		require.Equal(t, a, b)
		if !okA {
			break
		}
	}
}
