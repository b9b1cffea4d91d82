package treeio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treesim/treesim/sim"
)

func TestWriteSummary_PlainModel(t *testing.T) {
	model, err := sim.NewBirthDeathModel(0.6, 0.2, 0.5, sim.SingleRecipient{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, model, sim.Summary{Tips: 10, Unsampled: 3, Time: 12.5}))

	want := "lambda,psi,p,upsilon,phi,tips,unsampled,time\n" +
		"0.6,0.2,0.5,0,0,10,3,12.5\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSummary_ContactModel(t *testing.T) {
	base, err := sim.NewBirthDeathModel(0.5, 0.25, 0.5, sim.SingleRecipient{})
	require.NoError(t, err)
	model, err := sim.NewContactModel(base, 0.2, 0.125)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, model, sim.Summary{Tips: 200, Unsampled: 57, Time: 5}))

	want := "lambda,psi,p,upsilon,phi,tips,unsampled,time\n" +
		"0.5,0.25,0.5,0.2,0.125,200,57,5\n"
	assert.Equal(t, want, buf.String())
}
