package lps

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/endorses/kmpcat/internal/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(&out, []string{"ABABCABAB", "AAAA"}, output.FormatTable))

	assert.Equal(t,
		"Pattern: ABABCABAB\nLPS Array: [0, 0, 1, 2, 0, 1, 2, 3, 4]\n\n"+
			"Pattern: AAAA\nLPS Array: [0, 1, 2, 3]\n\n",
		out.String())
}

func TestRun_Structured(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(&out, []string{"AABAACAABAA", ""}, output.FormatJSON))

	var tables []Table
	require.NoError(t, json.Unmarshal(out.Bytes(), &tables))
	assert.Equal(t, []Table{
		{Pattern: "AABAACAABAA", LPS: []int{0, 1, 0, 1, 2, 0, 1, 2, 3, 4, 5}},
		{Pattern: "", LPS: []int{}},
	}, tables)

	out.Reset()
	require.NoError(t, Run(&out, []string{"ABAB"}, output.FormatYAML))
	assert.Contains(t, out.String(), "pattern: ABAB")
	assert.Contains(t, out.String(), "lps:")

	assert.Error(t, Run(&bytes.Buffer{}, []string{"A"}, "xml"))
}

func TestLPSCommand(t *testing.T) {
	cmd := newLPSCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json", "AAAB"})
	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `[{"pattern":"AAAB","lps":[0,1,2,0]}]`, out.String())

	cmd = newLPSCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
