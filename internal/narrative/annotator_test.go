package narrative

import (
	"context"
	"errors"
	"testing"
	"time"

	"psfinder_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func testTeam() TeamContext {
	return TeamContext{
		Size:       3,
		Experience: "Intermediate",
		Skills:     []string{"python", "react"},
	}
}

func testProblem() ProblemContext {
	return ProblemContext{
		Description:    "Build a telemedicine platform",
		RequiredSkills: []string{"python", "react", "webrtc"},
		MissingSkills:  []string{"webrtc"},
		Score:          0.72,
	}
}

func TestRecommendationSuccess(t *testing.T) {
	gen := &stubGenerator{text: "Strong fit for this team."}
	a := NewAnnotator(gen, NewBreaker(5, time.Minute), time.Second)

	text, err := a.Recommendation(context.Background(), testTeam(), testProblem())
	require.NoError(t, err)
	assert.Equal(t, "Strong fit for this team.", text)
	assert.Equal(t, 1, gen.calls)
}

func TestGeneratorFailureMapsToNarrativeError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("backend down")}
	a := NewAnnotator(gen, NewBreaker(5, time.Minute), time.Second)

	_, err := a.SkillGap(context.Background(), testTeam(), testProblem())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNarrativeUnavailable, appErr.Code)
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	gen := &stubGenerator{err: errors.New("backend down")}
	a := NewAnnotator(gen, NewBreaker(3, time.Minute), time.Second)

	for i := 0; i < 3; i++ {
		_, err := a.Recommendation(context.Background(), testTeam(), testProblem())
		require.Error(t, err)
	}
	assert.Equal(t, 3, gen.calls)

	// Breaker is open now, the backend is no longer called.
	_, err := a.Recommendation(context.Background(), testTeam(), testProblem())
	require.Error(t, err)
	assert.Equal(t, 3, gen.calls)
}

func TestBreakerClosesAfterTrialSuccess(t *testing.T) {
	breaker := NewBreaker(1, 10*time.Millisecond)
	gen := &stubGenerator{err: errors.New("backend down")}
	a := NewAnnotator(gen, breaker, time.Second)

	_, err := a.Recommendation(context.Background(), testTeam(), testProblem())
	require.Error(t, err)
	assert.False(t, breaker.Allow())

	time.Sleep(15 * time.Millisecond)

	gen.err = nil
	gen.text = "Recovered."
	text, err := a.Recommendation(context.Background(), testTeam(), testProblem())
	require.NoError(t, err)
	assert.Equal(t, "Recovered.", text)
	assert.True(t, breaker.Allow())
}

func TestDisabledAnnotator(t *testing.T) {
	a := NewAnnotator(nil, nil, 0)

	_, err := a.Recommendation(context.Background(), testTeam(), testProblem())
	assert.ErrorIs(t, err, ErrDisabled)
}
