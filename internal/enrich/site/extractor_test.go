package site

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venturescout/dealflow/internal/enrich"
)

const landingPage = `<html><head>
	<title>Acme Robotics</title>
	<meta name="description" content="Robots for everyone">
	<meta property="og:title" content="Acme Robotics">
</head><body>
	<div class="main-content"><p>We build robots on AWS with Docker.</p></div>
	<section class="team">
		<div class="member"><h3>Jane Smith</h3><p class="role">CEO</p></div>
	</section>
	<a href="https://github.com/acme">code</a>
	<p>hello@acme.io</p>
</body></html>`

func TestExtractRunsFullRuleBattery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, landingPage)
	}))
	defer srv.Close()

	e := NewExtractor(Config{UserAgent: "test-agent", Timeout: 5 * time.Second}, zap.NewNop())
	res := e.Extract(context.Background(), srv.URL, "resp-1")

	require.Equal(t, enrich.StatusFound, res.Status)
	require.NotNil(t, res.Value)
	facts := res.Value

	assert.Equal(t, "Acme Robotics", facts.Title)
	assert.Equal(t, "Robots for everyone", facts.Description)
	assert.Contains(t, facts.Technologies, "aws")
	assert.Contains(t, facts.Technologies, "docker")
	require.Len(t, facts.TeamMembers, 1)
	assert.Equal(t, "Jane Smith", facts.TeamMembers[0].Name)
	assert.Equal(t, "CEO", facts.TeamMembers[0].Title)
	assert.Equal(t, []string{"hello@acme.io"}, facts.Contact.Emails)
	assert.Equal(t, "https://github.com/acme", facts.SocialLinks["github"])
	assert.Equal(t, "Acme Robotics", facts.OGTags["og:title"])
	assert.Contains(t, facts.RawHTML, "<title>Acme Robotics</title>")
}

func TestExtractEmptyPageYieldsEmptyFacts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>Coming soon</h1></body></html>`)
	}))
	defer srv.Close()

	e := NewExtractor(Config{}, zap.NewNop())
	res := e.Extract(context.Background(), srv.URL, "resp-2")

	// a page with nothing to find is still a successful extraction
	require.Equal(t, enrich.StatusFound, res.Status)
	require.NotNil(t, res.Value)
	assert.Empty(t, res.Value.TeamMembers)
	assert.Empty(t, res.Value.Technologies)
	assert.Empty(t, res.Value.Contact.Emails)
}

func TestExtractHTTPErrorIsFailed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewExtractor(Config{}, zap.NewNop())
	res := e.Extract(context.Background(), srv.URL, "resp-3")

	assert.Equal(t, enrich.StatusFailed, res.Status)
	assert.Nil(t, res.Value)
	require.Error(t, res.Err)
}

func TestExtractUnreachableHostIsFailed(t *testing.T) {
	t.Parallel()

	e := NewExtractor(Config{Timeout: time.Second}, zap.NewNop())
	res := e.Extract(context.Background(), "http://127.0.0.1:1", "resp-4")

	assert.Equal(t, enrich.StatusFailed, res.Status)
	require.Error(t, res.Err)
}

func TestExtractCanceledContext(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewExtractor(Config{Timeout: 30 * time.Second}, zap.NewNop())
	res := e.Extract(ctx, srv.URL, "resp-5")

	assert.Equal(t, enrich.StatusFailed, res.Status)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, context.Canceled)
}
