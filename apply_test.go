package conlang

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRuleVoicing(t *testing.T) {
	ph := stopsPhonology(t)
	id, err := ph.AddRule(RuleSpec{Source: []string{"voiceless"}, Target: []string{"voiced"}, Environment: "V_V"})
	require.NoError(t, err)

	tests := []struct {
		in, want []string
	}{
		{[]string{"a", "t", "a"}, []string{"a", "d", "a"}},
		{[]string{"t", "a", "t"}, []string{"t", "a", "t"}},
		{[]string{"a", "t", "a", "k", "a"}, []string{"a", "d", "a", "k", "a"}},
		{[]string{"a", "t", "a", "t", "a"}, []string{"a", "d", "a", "d", "a"}},
		{[]string{"a", "?", "a"}, []string{"a", "?", "a"}},
		{nil, nil},
	}
	for _, tt := range tests {
		got, err := ph.ApplyRule(tt.in, id)
		require.NoError(t, err)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ApplyRule(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
		assert.Len(t, got, len(tt.in))
	}

	_, err = ph.ApplyRule([]string{"a"}, "missing")
	assert.ErrorIs(t, err, ErrUnknownName)
}

func TestApplyRulesFeeding(t *testing.T) {
	ph := stopsPhonology(t)
	_, err := ph.AddRule(RuleSpec{ID: "A", Source: []string{"stop"}, Target: []string{"fricative"}, Environment: "V_V"})
	require.NoError(t, err)
	_, err = ph.AddRule(RuleSpec{ID: "B", Source: []string{"voiceless"}, Target: []string{"voiced"}, Environment: "V_V"})
	require.NoError(t, err)

	got := ph.ApplyRules([]string{"k", "a", "k", "a"})
	assert.Equal(t, []string{"k", "a", "ɣ", "a"}, got)

	require.NoError(t, ph.Rules.OrderSwap("A", "B"))
	got = ph.ApplyRules([]string{"k", "a", "k", "a"})
	assert.Equal(t, []string{"k", "a", "x", "a"}, got, "k has no voiced stop to land on before spirantizing")

	// Spirantizing d has no dental fricative to land on.
	got, changes := ph.Trace([]string{"a", "t", "a"})
	assert.Equal(t, []string{"a", "d", "a"}, got)
	require.Len(t, changes, 2)
	assert.Equal(t, Change{Rule: "B", Index: 1, From: "t", To: "d"}, changes[0])
	assert.Equal(t, "A", changes[1].Rule)
	assert.ErrorIs(t, changes[1].Err, ErrSoft)
	assert.Equal(t, "d", changes[1].To)
}

func TestApplyRuleBoundaries(t *testing.T) {
	ph := stopsPhonology(t)
	final, err := ph.AddRule(RuleSpec{Source: []string{"voiced"}, Target: []string{"voiceless"}, Environment: "_#"})
	require.NoError(t, err)
	initial, err := ph.AddRule(RuleSpec{Source: []string{"stop"}, Target: []string{"fricative"}, Environment: "#_"})
	require.NoError(t, err)

	tests := []struct {
		rule     string
		in, want []string
	}{
		{final, []string{"a", "d"}, []string{"a", "t"}},
		{final, []string{"d", "a"}, []string{"d", "a"}},
		{final, []string{"d"}, []string{"t"}},
		{initial, []string{"k", "a", "k"}, []string{"x", "a", "k"}},
		{initial, []string{"a", "k"}, []string{"a", "k"}},
	}
	for _, tt := range tests {
		got, err := ph.ApplyRule(tt.in, tt.rule)
		require.NoError(t, err)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ApplyRule(%q, %s) mismatch (-want +got):\n%s", tt.in, ph.Rules.rules[tt.rule], diff)
		}
	}
}

func TestApplyRuleSoftFailure(t *testing.T) {
	ph := stopsPhonology(t)
	id, err := ph.AddRule(RuleSpec{Source: []string{"stop"}, Target: []string{"fricative"}, Environment: "_"})
	require.NoError(t, err)

	got, err := ph.ApplyRule([]string{"t", "a", "k"}, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "a", "x"}, got)
}
