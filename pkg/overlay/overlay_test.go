package overlay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/dtnitsch/smart-reader/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	got string
	err error
}

func (f *fakeClipboard) Copy(_ context.Context, text string) error {
	f.got = text
	return f.err
}

func TestCopyBody(t *testing.T) {
	p := SummaryPanel("Page", "the summary")

	cb := &fakeClipboard{}
	out := CopyBody(context.Background(), cb, p)
	assert.True(t, out.Copied)
	assert.Equal(t, CopiedMessage, out.Message)
	assert.Equal(t, "the summary", cb.got)

	out = CopyBody(context.Background(), &fakeClipboard{err: errors.New("no display")}, p)
	assert.False(t, out.Copied)
	assert.Equal(t, ManualCopyMessage, out.Message)
	assert.ErrorIs(t, out.Err, models.ErrClipboardFailed)

	out = CopyBody(context.Background(), nil, p)
	assert.ErrorIs(t, out.Err, models.ErrClipboardFailed)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"extraction", models.ErrExtractionFailed, "Could not find readable text on this page."},
		{"too short", fmt.Errorf("wrap: %w", models.ErrTooShortToSummarize), "Not enough text on this page to summarize."},
		{"backend", &models.BackendError{Status: 502, Body: "bad gateway"}, (&models.BackendError{Status: 502, Body: "bad gateway"}).Error()},
		{"malformed", models.ErrMalformedResponse, "The summarization service returned an unexpected response."},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
			assert.Equal(t, KindError, ErrorPanel(tt.err).Kind)
		})
	}
}

func TestTerminal_ShowVerbatim(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	body := "**not markdown**\n- keep as is"
	require.NoError(t, term.Show(context.Background(), SummaryPanel("Story", body)))

	assert.Contains(t, buf.String(), "Summary: Story\n")
	assert.Contains(t, buf.String(), body+"\n")
	cur, ok := term.Current()
	require.True(t, ok)
	assert.Equal(t, body, cur.Body)

	require.NoError(t, term.Dismiss(context.Background()))
	_, ok = term.Current()
	assert.False(t, ok)
}

func TestSystemClipboard_Command(t *testing.T) {
	found := func(names ...string) func(string) (string, error) {
		return func(n string) (string, error) {
			for _, m := range names {
				if m == n {
					return "/usr/bin/" + n, nil
				}
			}
			return "", exec.ErrNotFound
		}
	}

	c := &SystemClipboard{GOOS: "darwin"}
	name, _, err := c.command()
	require.NoError(t, err)
	assert.Equal(t, "pbcopy", name)

	c = &SystemClipboard{GOOS: "linux", LookPath: found("xsel", "xclip")}
	name, args, err := c.command()
	require.NoError(t, err)
	assert.Equal(t, "xclip", name)
	assert.Equal(t, []string{"-selection", "clipboard"}, args)

	c = &SystemClipboard{GOOS: "linux", LookPath: found()}
	_, _, err = c.command()
	assert.Error(t, err)

	c = &SystemClipboard{GOOS: "plan9"}
	_, _, err = c.command()
	assert.Error(t, err)
}
