package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

func TestQueryCmd_Use(t *testing.T) {
	assert.Equal(t, "query [question]", queryCmd.Use)
}

func TestQueryCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestQueryCmd_HasTopKFlag(t *testing.T) {
	flag := queryCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag, "top-k flag should exist")
	assert.Equal(t, "k", flag.Shorthand)
}

func TestQueryCmd_PrintsAnswer(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "what is the termination clause?"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stub answer")
}

func TestQueryCmd_TopKFlagPassedThrough(t *testing.T) {
	_, _, answer, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "-k", "7", "question"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 7, answer.gotOpts.TopK)
}

func TestQueryCmd_TemperatureFlag(t *testing.T) {
	_, _, answer, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "--temperature", "0", "question"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, answer.gotOpts.Temperature)
	assert.Zero(t, *answer.gotOpts.Temperature)
}

func TestQueryCmd_NoTemperatureFlagLeavesDefault(t *testing.T) {
	_, _, answer, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "question"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Nil(t, answer.gotOpts.Temperature)
}

func TestQueryCmd_Raw(t *testing.T) {
	_, retrieve, _, _, cleanup := setupTestServices()
	defer cleanup()
	retrieve.results = []domain.ScoredChunk{
		{Text: "the termination clause text", Source: "contract", Score: 0.87},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "--raw", "termination"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "score 0.87")
	assert.Contains(t, buf.String(), "contract")
	assert.Contains(t, buf.String(), "termination clause text")
}

func TestQueryCmd_RawEmpty(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "--raw", "anything"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No matching chunks found.")
}

func TestQueryCmd_JSON(t *testing.T) {
	_, _, answer, _, cleanup := setupTestServices()
	defer cleanup()
	answer.answer = domain.Answer{
		Text:      "json answer",
		Retrieved: []domain.ScoredChunk{{Text: "chunk", Score: 0.5}},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"query", "--json", "question"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"json answer"`)
}

func TestQueryCmd_ServiceError(t *testing.T) {
	_, _, answer, _, cleanup := setupTestServices()
	defer cleanup()
	answer.err = domain.ErrProviderFailure

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query", "question"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrProviderFailure)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "a b", snippet("a\n\n  b", 10))

	long := snippet("aaaaaaaaaaaaaaa", 10)
	assert.Equal(t, "aaaaaaaaaa...", long)
}
