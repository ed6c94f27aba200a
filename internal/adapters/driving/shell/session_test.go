package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meow/internal/core/domain"
)

func TestNewSession_Validates(t *testing.T) {
	_, err := NewSession(nil)
	assert.Error(t, err)

	_, err = NewSession(&Ports{Search: &fakeSearch{}})
	assert.ErrorContains(t, err, "interpreter")

	_, err = NewSession(&Ports{Interpreter: &fakeInterpreter{}})
	assert.ErrorContains(t, err, "search")
}

func TestSession_Search(t *testing.T) {
	f := newFixture()

	res, err := f.session.Execute(context.Background(), "hostel fees")

	require.NoError(t, err)
	require.NotNil(t, res.Intent)
	assert.Equal(t, "hostel fees", res.Intent.Query)
	assert.Same(t, f.search.outcome, res.Outcome)
	assert.Same(t, f.search.outcome, f.session.Last())
}

func TestSession_OpenAndCopyFollowDisplayOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.session.Execute(ctx, "fees")
	require.NoError(t, err)

	res, err := f.session.Execute(ctx, "open 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"/d/fees_2024.pdf"}, f.actions.opened)
	assert.Equal(t, "Opening /d/fees_2024.pdf", res.Message)

	_, err = f.session.Execute(ctx, "copy 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"/d/fees_2023.pdf"}, f.actions.copied)
}

func TestSession_OpenErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.session.Execute(ctx, "open 1")
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = f.session.Execute(ctx, "fees")
	require.NoError(t, err)

	_, err = f.session.Execute(ctx, "open 3")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.session.Execute(ctx, "copy 0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.actions.err = errors.New("no display")
	_, err = f.session.Execute(ctx, "open 1")
	assert.ErrorContains(t, err, "no display")
}

func TestSession_OpenIntentOpensTopResult(t *testing.T) {
	f := newFixture()
	f.interp.intents["open my hostel fees"] = domain.Intent{Intent: domain.IntentOpen, Query: "hostel fees"}

	res, err := f.session.Execute(context.Background(), "open my hostel fees")

	require.NoError(t, err)
	assert.Equal(t, []string{"/d/fees_2024.pdf"}, f.actions.opened)
	assert.NotNil(t, res.Outcome)
}

func TestSession_UnsupportedIntent(t *testing.T) {
	f := newFixture()
	f.interp.intents["delete old invoices"] = domain.Intent{Intent: domain.IntentDelete, Query: "old invoices"}

	res, err := f.session.Execute(context.Background(), "delete old invoices")

	require.NoError(t, err)
	assert.Contains(t, res.Message, "not supported")
	assert.Empty(t, f.search.got)
}

func TestSession_EmptyOutcome(t *testing.T) {
	f := newFixture()
	f.search.outcome = &domain.SearchOutcome{}

	res, err := f.session.Execute(context.Background(), "nothing")

	require.NoError(t, err)
	assert.Equal(t, "No matches.", res.Message)
}

func TestSession_SearchError(t *testing.T) {
	f := newFixture()
	f.search.err = domain.ErrEmbeddingUnavailable

	_, err := f.session.Execute(context.Background(), "fees")

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Nil(t, f.session.Last())
}

func TestSession_Index(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.session.Execute(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, 1, f.index.runs)
	assert.Equal(t, "Indexed 3 files, skipped 1.", res.Message)

	_, err = f.session.Execute(ctx, "index /tmp/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"/tmp/a.pdf"}}, f.index.partial)

	f.index.err = context.Canceled
	res, err = f.session.Execute(ctx, "index")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, res.Report)
}

func TestSession_OptionalPortsMissing(t *testing.T) {
	s, err := NewSession(&Ports{Interpreter: &fakeInterpreter{}, Search: &fakeSearch{outcome: twoResults()}})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Execute(ctx, "index")
	assert.ErrorContains(t, err, "not available")

	_, err = s.Execute(ctx, "fees")
	require.NoError(t, err)
	_, err = s.Execute(ctx, "open 1")
	assert.ErrorContains(t, err, "not available")
}

func TestSession_ClearAndHelp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.session.Execute(ctx, "fees")
	require.NoError(t, err)

	res, err := f.session.Execute(ctx, "help")
	require.NoError(t, err)
	assert.Equal(t, HelpText, res.Message)

	_, err = f.session.Execute(ctx, "clear")
	require.NoError(t, err)
	assert.Nil(t, f.session.Last())
}
