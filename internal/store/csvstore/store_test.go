package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
)

func reportFor(text string, at time.Time) domain.Report {
	sub := domain.Submission{Text: text, Source: "test", ReceivedAt: at}
	r := domain.NewReport(sub, domain.NewAnalyzer().Analyze(text))
	r.ProcessedAt = at.Add(time.Second)
	return r
}

func TestStore_AppendAndAll(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "reports.csv")
	s, err := New(path)
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := reportFor("Kadıköy'de Bahariye Caddesi'nde yangın çıktı", base)
	second := reportFor("Beşiktaş Akat Sokağı'nda gaz kaçağı var", base.Add(time.Minute))

	require.NoError(t, s.Append(ctx, first))
	require.NoError(t, s.Append(ctx, second))

	got, err := s.All(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]domain.Report{first, second}, got); diff != "" {
		t.Errorf("reports mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,received_at,text,"))
}

func TestStore_AllMissingFile(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "none.csv"))
	require.NoError(t, err)

	got, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "reports.csv"))
	require.NoError(t, err)

	r := reportFor("Maltepe'de su baskını", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.Append(ctx, r))

	r.GeoSource = domain.GeoSourceGeocoded
	r.GeoLabel = "Maltepe, İstanbul"
	require.NoError(t, s.Append(ctx, r))

	got, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.GeoSourceGeocoded, got[0].GeoSource)
	assert.Equal(t, "Maltepe, İstanbul", got[0].GeoLabel)
}

func TestStore_QuotesCommasAndNewlines(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "reports.csv"))
	require.NoError(t, err)

	r := reportFor("Acil, \"çok acil\"\nŞişli'de patlama", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.Append(ctx, r))

	got, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r.Text, got[0].Text)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "reports.csv"))
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	done := make(chan error, 20)
	for i := range 20 {
		go func() {
			done <- s.Append(ctx, reportFor("Fatih'te trafik kazası", base.Add(time.Duration(i)*time.Second)))
		}()
	}
	for range 20 {
		require.NoError(t, <-done)
	}

	got, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}
