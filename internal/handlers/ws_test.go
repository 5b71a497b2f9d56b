package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		want    wsCommand
		wantErr bool
	}{
		{line: "g", want: wsCommand{op: "g"}},
		{line: "o 3 4", want: wsCommand{op: "o", x: 3, y: 4}},
		{line: "f 0 0", want: wsCommand{op: "f"}},
		{line: "c 12 7", want: wsCommand{op: "c", x: 12, y: 7}},
		{line: "  o   3  4 ", want: wsCommand{op: "o", x: 3, y: 4}},
		{line: "", wantErr: true},
		{line: "g 1", wantErr: true},
		{line: "o 3", wantErr: true},
		{line: "o 3 4 5", wantErr: true},
		{line: "o three four", wantErr: true},
		{line: "q 1 2", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			t.Parallel()
			cmd, err := parseWsCommand(test.line)
			if test.wantErr {
				assert.Error(t, err, "line %q", test.line)
				return
			}
			require.NoError(t, err, "line %q", test.line)
			assert.Equal(t, test.want, *cmd)
		})
	}
}

func TestWsCommandMove(t *testing.T) {
	t.Parallel()

	cmd := wsCommand{op: "c", x: 2, y: 5}
	move, pos := cmd.move()
	assert.Equal(t, Chord, move)
	assert.Equal(t, Position{X: 2, Y: 5}, pos)
}
