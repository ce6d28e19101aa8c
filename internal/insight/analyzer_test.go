package insight

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docinsight/internal/config"
	"docinsight/internal/model"
)

func TestLoadFixtures(t *testing.T) {
	f, err := loadFixtures()
	require.NoError(t, err)

	assert.Len(t, f.Profiles, 2)
	assert.NotEmpty(t, f.Seeds)
	for _, p := range f.Profiles {
		assert.NotEmpty(t, p.Summary)
		assert.NotEmpty(t, p.KeySkills)
	}
}

func TestCanned_Analyze(t *testing.T) {
	c, err := NewCanned(config.AnalyzerConfig{Seed: 1})
	require.NoError(t, err)

	ins, err := c.Analyze(context.Background(), "resume.pdf", 1024)
	require.NoError(t, err)

	assert.NotEmpty(t, ins.Summary)
	assert.NotEmpty(t, ins.KeySkills)
	assert.Equal(t, ProcessingMethodMock, ins.ProcessingMethod)
}

func TestCanned_Analyze_PicksBothProfiles(t *testing.T) {
	c, err := NewCanned(config.AnalyzerConfig{Seed: 42})
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ins, err := c.Analyze(context.Background(), "resume.pdf", 1024)
		require.NoError(t, err)
		seen[ins.Summary] = true
	}
	assert.Len(t, seen, 2, "both canned profiles should appear over many runs")
}

func TestCanned_Analyze_Deterministic(t *testing.T) {
	run := func() []string {
		c, err := NewCanned(config.AnalyzerConfig{Seed: 7})
		require.NoError(t, err)
		var out []string
		for i := 0; i < 10; i++ {
			ins, err := c.Analyze(context.Background(), "resume.pdf", 1)
			require.NoError(t, err)
			out = append(out, ins.Summary)
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestCanned_Analyze_FailureRate(t *testing.T) {
	c, err := NewCanned(config.AnalyzerConfig{Seed: 3, FailureRate: 1})
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), "resume.pdf", 1024)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCanned_Analyze_ContextCancelled(t *testing.T) {
	c, err := NewCanned(config.AnalyzerConfig{Seed: 1, UploadDelayMs: 5000})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = c.Analyze(ctx, "resume.pdf", 1024)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCanned_Analyze_CopiesSlices(t *testing.T) {
	c, err := NewCanned(config.AnalyzerConfig{Seed: 1})
	require.NoError(t, err)

	a, err := c.Analyze(context.Background(), "resume.pdf", 1)
	require.NoError(t, err)
	a.KeySkills[0] = "mutated"

	// A later result with the same profile must not observe the mutation.
	for i := 0; i < 20; i++ {
		b, err := c.Analyze(context.Background(), "resume.pdf", 1)
		require.NoError(t, err)
		if b.Summary == a.Summary {
			assert.NotEqual(t, "mutated", b.KeySkills[0])
			return
		}
	}
	t.Fatal("never saw the same profile twice")
}

func TestSeedHistory(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	docs, err := SeedHistory(now, func() string {
		n++
		return fmt.Sprintf("seed-%d", n)
	})
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	for i, d := range docs {
		assert.Equal(t, fmt.Sprintf("seed-%d", i+1), d.ID)
		assert.Equal(t, "application/pdf", d.ContentType)
		assert.Equal(t, model.StatusCompleted, d.ProcessingStatus)
		assert.NotEmpty(t, d.SizeLabel)
		assert.True(t, d.UploadedAt.Before(now))
		if i > 0 {
			assert.True(t, d.UploadedAt.Before(docs[i-1].UploadedAt), "seeds should be staggered backwards")
		}
	}
}
