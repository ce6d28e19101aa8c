// Package insight implements the mock document analysis step: instead of
// calling an AI service, it waits out two fixed delays and returns one of
// the canned insight profiles embedded with the binary.
package insight

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"docinsight/internal/config"
	"docinsight/internal/model"
)

// ErrUnavailable is returned when the (simulated) analysis step rejects.
var ErrUnavailable = errors.New("analysis unavailable")

// ProcessingMethodMock tags insights produced by the canned analyzer.
const ProcessingMethodMock = "mock"

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtureProfile struct {
	Summary         string   `yaml:"summary"`
	KeySkills       []string `yaml:"key_skills"`
	ExperienceLevel string   `yaml:"experience_level"`
	Education       string   `yaml:"education"`
	Highlights      []string `yaml:"highlights"`
}

type fixtureSeed struct {
	Filename string `yaml:"filename"`
	FileSize int64  `yaml:"file_size"`
	Profile  int    `yaml:"profile"`
}

type fixtures struct {
	Profiles []fixtureProfile `yaml:"profiles"`
	Seeds    []fixtureSeed    `yaml:"seeds"`
}

func loadFixtures() (*fixtures, error) {
	var f fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if len(f.Profiles) == 0 {
		return nil, errors.New("fixtures contain no insight profiles")
	}
	for i, s := range f.Seeds {
		if s.Profile < 0 || s.Profile >= len(f.Profiles) {
			return nil, fmt.Errorf("seed %d references unknown profile %d", i, s.Profile)
		}
	}
	return &f, nil
}

func (p fixtureProfile) insights() model.Insights {
	return model.Insights{
		Summary:          p.Summary,
		KeySkills:        append([]string(nil), p.KeySkills...),
		ExperienceLevel:  p.ExperienceLevel,
		Education:        p.Education,
		Highlights:       append([]string(nil), p.Highlights...),
		ProcessingMethod: ProcessingMethodMock,
	}
}

// Analyzer produces insights for an uploaded document.
type Analyzer interface {
	// Analyze returns the insights for the named upload. Implementations
	// must honor ctx cancellation while waiting.
	Analyze(ctx context.Context, filename string, size int64) (model.Insights, error)
}

// Canned is the mock Analyzer. It sleeps through the configured upload and
// processing delays, then either fails (per the failure rate) or returns a
// randomly chosen embedded profile. Safe for concurrent use.
type Canned struct {
	profiles        []fixtureProfile
	uploadDelay     time.Duration
	processingDelay time.Duration
	failureRate     float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCanned builds the mock analyzer from config. A zero Seed picks a
// time-based seed; any other value makes profile selection deterministic.
func NewCanned(cfg config.AnalyzerConfig) (*Canned, error) {
	f, err := loadFixtures()
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Canned{
		profiles:        f.Profiles,
		uploadDelay:     time.Duration(cfg.UploadDelayMs) * time.Millisecond,
		processingDelay: time.Duration(cfg.ProcessingDelayMs) * time.Millisecond,
		failureRate:     cfg.FailureRate,
		rng:             rand.New(rand.NewSource(seed)),
	}, nil
}

var _ Analyzer = (*Canned)(nil)

// Analyze waits out the simulated upload and processing latency, then
// returns one of the canned profiles. The filename and size are accepted
// for interface symmetry only; the content was already discarded upstream.
func (c *Canned) Analyze(ctx context.Context, filename string, size int64) (model.Insights, error) {
	if err := wait(ctx, c.uploadDelay); err != nil {
		return model.Insights{}, err
	}
	if err := wait(ctx, c.processingDelay); err != nil {
		return model.Insights{}, err
	}

	c.mu.Lock()
	fail := c.failureRate > 0 && c.rng.Float64() < c.failureRate
	pick := c.rng.Intn(len(c.profiles))
	c.mu.Unlock()

	if fail {
		return model.Insights{}, ErrUnavailable
	}
	return c.profiles[pick].insights(), nil
}

// SeedHistory builds the static records the history list starts with.
// Timestamps are staggered backwards from now so the newest-first order
// is visible immediately.
func SeedHistory(now time.Time, newID func() string) ([]model.Document, error) {
	f, err := loadFixtures()
	if err != nil {
		return nil, err
	}
	docs := make([]model.Document, 0, len(f.Seeds))
	for i, s := range f.Seeds {
		docs = append(docs, model.Document{
			ID:               newID(),
			Filename:         s.Filename,
			ContentType:      "application/pdf",
			Size:             s.FileSize,
			SizeLabel:        model.HumanSize(s.FileSize),
			UploadedAt:       now.Add(-time.Duration(i+1) * 24 * time.Hour),
			ProcessingStatus: model.StatusCompleted,
			Insights:         f.Profiles[s.Profile].insights(),
		})
	}
	return docs, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
