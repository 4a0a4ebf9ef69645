package engine

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rotorgraph/internal/metrics"
)

func TestChannel_HiThere(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "hi", lowercase, 3)

	res, err := e.Channel(ctx, m, "hi there")
	require.NoError(t, err)

	assert.Equal(t, "hi there", res.Original)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "hi", res.Messages[0].Original)
	assert.Equal(t, "there", res.Messages[1].Original)
	assert.Equal(t, res.Messages[0].Scrambled+" "+res.Messages[1].Scrambled, res.Scrambled)
	assert.Len(t, res.Messages[0].Code, 2)
	assert.Len(t, res.Messages[1].Code, 5)

	for _, msg := range res.Messages {
		for _, code := range msg.Code {
			assert.NotEqual(t, code.PlainText, code.Encrypted)
			assert.NotEqual(t, Unreachable, code.Encrypted)
			assert.NotEqual(t, Malformed, code.Encrypted)
		}
	}
}

func TestChannel_EntropyIsPreviousLetter(t *testing.T) {
	ctx := context.Background()
	ticker := &recordingTicker{}
	e := newTestEngine(t, WithTicker(ticker))
	m := newReadyMachine(t, e, "entropy", lowercase, 1)

	res, err := e.Channel(ctx, m, "abc de")
	require.NoError(t, err)

	first, second := res.Messages[0].Code, res.Messages[1].Code
	require.Len(t, ticker.ticks, 4)
	assert.Equal(t, tick{1, 2, first[0].Encrypted}, ticker.ticks[0])
	assert.Equal(t, tick{1, 3, first[1].Encrypted}, ticker.ticks[1])
	assert.Equal(t, tick{2, 1, ""}, ticker.ticks[2], "entropy resets per stream")
	assert.Equal(t, tick{2, 2, second[0].Encrypted}, ticker.ticks[3])
}

func TestChannel_RoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "isTrav", lowercase, 4)

	msg := "hello world from austin texas"
	enc, err := e.Channel(ctx, m, msg)
	require.NoError(t, err)
	assert.NotEqual(t, msg, enc.Scrambled)
	assert.Len(t, enc.Scrambled, len(msg))

	dec, err := e.DecryptChannel(ctx, m, enc.Scrambled)
	require.NoError(t, err)
	assert.Equal(t, msg, dec.Scrambled)

	again, err := e.Channel(ctx, m, msg)
	require.NoError(t, err)
	assert.Equal(t, enc.Scrambled, again.Scrambled, "each message starts from the same scramble")
}

func TestChannel_UnknownLettersDropOut(t *testing.T) {
	ctx := context.Background()
	met := metrics.New()
	e := newTestEngine(t, WithMetrics(met))
	m := newReadyMachine(t, e, "k", "abcd", 1)

	res, err := e.Channel(ctx, m, "aXb cd")
	require.NoError(t, err)
	require.Len(t, res.Messages[0].Code, 3)
	assert.Equal(t, "", res.Messages[0].Code[1].Encrypted)
	assert.Len(t, res.Messages[0].Scrambled, 2)

	summary, err := met.Summary()
	require.NoError(t, err)
	assert.Equal(t, "1", summary[metrics.OutcomeMissing])
	assert.Equal(t, "4", summary[metrics.OutcomeOK])
}

func TestChannel_EmptySeparator(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "k", "abcd", 1)
	m.LayerBy = ""

	res, err := e.Channel(ctx, m, "abcd")
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Len(t, res.Scrambled, 4)
}

func TestDecryptChannel_CustomSeparator(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "dash", "abcd", 2)
	m.LayerBy = "-"

	msg := "ab-cd-dab"
	enc, err := e.Channel(ctx, m, msg)
	require.NoError(t, err)
	require.Len(t, enc.Messages, 3)
	assert.Equal(t, strings.Join([]string{
		enc.Messages[0].Scrambled, enc.Messages[1].Scrambled, enc.Messages[2].Scrambled,
	}, " "), enc.Scrambled)

	dec, err := e.DecryptChannel(ctx, m, enc.Scrambled)
	require.NoError(t, err)
	require.Len(t, dec.Messages, 3)
	assert.Equal(t, msg, dec.Scrambled)
}

func TestDecryptChannel_EmptySeparator(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "k", "abcd", 1)
	m.LayerBy = ""

	enc, err := e.Channel(ctx, m, "abcd")
	require.NoError(t, err)
	dec, err := e.DecryptChannel(ctx, m, enc.Scrambled)
	require.NoError(t, err)
	assert.Equal(t, "abcd", dec.Scrambled)
}

func TestChannelResult_JSON(t *testing.T) {
	res := ChannelResult{
		Original:  "ab",
		Scrambled: "cd",
		Messages: []StreamResult{{
			Original: "ab", Scrambled: "cd",
			Code: []Code{{PlainText: "a", Encrypted: "c"}, {PlainText: "b", Encrypted: "d"}},
		}},
	}
	data, err := json.Marshal(res)
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.Contains(s, `"plainText":"a"`), s)
	assert.Contains(t, s, `"messages":[`)
}
