package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"flag"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diceproto/fairdice/pkg/dice"
	"github.com/diceproto/fairdice/pkg/transcript"
)

func TestParseConfig(t *testing.T) {
	fs := flag.NewFlagSet("fairdice", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-v", "-receipt", "-workers", "2", "1,2,3", "4,5,6", "7,8,9"})
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Receipt)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []string{"1,2,3", "4,5,6", "7,8,9"}, cfg.Dice)
}

func newTestRunner(t *testing.T, input string) (*runner, *bytes.Buffer) {
	t.Helper()
	ds, err := dice.Parse([]string{"2,2,4,4,9,9", "1,1,6,6,8,8", "3,3,5,5,7,7"})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &runner{
		in:   bufio.NewScanner(strings.NewReader(input)),
		out:  out,
		log:  zerolog.Nop(),
		dice: ds,
		tr:   transcript.New(ds),
	}, out
}

func TestRunner_FullGame(t *testing.T) {
	// "0" is a valid selection at every prompt regardless of who moves
	// first: toss contribution, die choice, and both roll contributions.
	r, out := newTestRunner(t, "0\n0\n0\n0\n")
	require.NoError(t, r.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "HMAC=")
	assert.Contains(t, text, "KEY=")
	assert.Contains(t, text, "fair number generation result")

	// toss + two rolls
	require.Len(t, r.tr.Receipts, 3)
	assert.NoError(t, transcript.Verify(context.Background(), r.tr))
}

func TestRunner_DigestShownBeforeContribution(t *testing.T) {
	r, out := newTestRunner(t, "0\n0\n0\n0\n")
	require.NoError(t, r.run(context.Background()))

	text := out.String()
	assert.Less(t, strings.Index(text, "HMAC="), strings.Index(text, "Your selection:"),
		"digest must be printed before the user's number is requested")
	assert.Less(t, strings.Index(text, "Your selection:"), strings.Index(text, "KEY="),
		"the key must only be revealed after the contribution")
}

func TestRunner_ExitAndHelp(t *testing.T) {
	r, out := newTestRunner(t, "?\nX\n")
	err := r.run(context.Background())
	assert.ErrorIs(t, err, errExit)
	assert.Contains(t, out.String(), "Probability of the win")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunner_RepromptsOnInvalidInput(t *testing.T) {
	r, out := newTestRunner(t, "7\nbanana\n0\n0\n0\n0\n")
	require.NoError(t, r.run(context.Background()))
	assert.Contains(t, out.String(), `Invalid selection "7"`)
	assert.Contains(t, out.String(), `Invalid selection "banana"`)
}

func TestRunVerify(t *testing.T) {
	r, _ := newTestRunner(t, "0\n0\n0\n0\n")
	require.NoError(t, r.run(context.Background()))

	data, err := r.tr.MarshalBinary()
	require.NoError(t, err)

	out := &bytes.Buffer{}
	require.NoError(t, runVerify(context.Background(), hex.EncodeToString(data), out))
	assert.Contains(t, out.String(), "transcript OK: 3 exchanges")

	// tampering must fail verification
	var tampered transcript.Transcript
	require.NoError(t, tampered.UnmarshalBinary(data))
	tampered.Receipts[0].Secret = (tampered.Receipts[0].Secret + 1) % 2
	bad, err := tampered.MarshalBinary()
	require.NoError(t, err)
	assert.Error(t, runVerify(context.Background(), hex.EncodeToString(bad), out))
}

func TestRunVerify_BadInput(t *testing.T) {
	out := &bytes.Buffer{}
	assert.Error(t, runVerify(context.Background(), "not hex", out))
	assert.Error(t, runVerify(context.Background(), "deadbeef", out))
}
