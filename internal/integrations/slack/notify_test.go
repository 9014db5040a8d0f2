package slackbot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onetexplorer/internal/domain"
)

func sampleRuns() []domain.RunRecord {
	return []domain.RunRecord{{
		ID: "r1", Code: "15-1252.00", Title: "Software Developers", Score: 61.4, Band: "high",
		TaskCount: 17, AgentCount: 6, ReviewNotes: 2, AnalyzedAt: time.Now(),
	}}
}

func TestRefreshBlocks(t *testing.T) {
	blocks := RefreshBlocks(sampleRuns(), []Failure{{Code: "29-1141.00", Err: errors.New("not found")}})
	require.Len(t, blocks, 4)

	header, ok := blocks[0].(*slack.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "AI impact refresh: 1 rebuilt, 1 failed", header.Text.Text)

	section, ok := blocks[1].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "*Software Developers* (`15-1252.00`)")
	assert.Contains(t, section.Text.Text, "Score *61* (high)")
	assert.Contains(t, section.Text.Text, "from 17 tasks, 6 agents")
	assert.Contains(t, section.Text.Text, "2 review notes")

	failed := blocks[3].(*slack.SectionBlock)
	assert.Contains(t, failed.Text.Text, "`29-1141.00`: not found")
}

func TestRefreshBlocksWithoutFailures(t *testing.T) {
	blocks := RefreshBlocks(sampleRuns(), nil)
	assert.Len(t, blocks, 2)
}

func TestPostRefresh(t *testing.T) {
	var gotChannel, gotBlocks string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat.postMessage") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.NoError(t, r.ParseForm())
		gotChannel = r.FormValue("channel")
		gotBlocks = r.FormValue("blocks")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
	}))
	t.Cleanup(server.Close)

	n := NewNotifier("xoxb-test", "C123", nil, slack.OptionAPIURL(server.URL+"/"))
	require.NoError(t, n.PostRefresh(context.Background(), sampleRuns(), nil))
	assert.Equal(t, "C123", gotChannel)
	assert.Contains(t, gotBlocks, "Software Developers")
}

func TestPostRefreshError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	t.Cleanup(server.Close)

	n := NewNotifier("xoxb-test", "C404", nil, slack.OptionAPIURL(server.URL+"/"))
	err := n.PostRefresh(context.Background(), sampleRuns(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
