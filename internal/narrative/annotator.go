package narrative

import (
	"context"
	"errors"
	"time"

	"psfinder_backend/pkg/apperrors"
)

// ContentGenerator is the capability the annotator needs from a text
// backend.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ErrDisabled is returned when no generator is configured at all.
var ErrDisabled = errors.New("narrative generation is disabled")

// Annotator turns scored matches into recommendation and skill-gap text.
// Every call goes through the circuit breaker and a per-call timeout so a
// slow or failing backend never holds up the numeric results.
type Annotator struct {
	generator ContentGenerator
	breaker   *Breaker
	timeout   time.Duration
}

func NewAnnotator(generator ContentGenerator, breaker *Breaker, timeout time.Duration) *Annotator {
	return &Annotator{
		generator: generator,
		breaker:   breaker,
		timeout:   timeout,
	}
}

func (a *Annotator) Enabled() bool {
	return a != nil && a.generator != nil
}

// Recommendation explains why the problem suits the team.
func (a *Annotator) Recommendation(ctx context.Context, team TeamContext, problem ProblemContext) (string, error) {
	return a.generate(ctx, recommendationPrompt(team, problem))
}

// SkillGap analyzes the skills the team is missing for the problem.
func (a *Annotator) SkillGap(ctx context.Context, team TeamContext, problem ProblemContext) (string, error) {
	return a.generate(ctx, skillGapPrompt(team, problem))
}

func (a *Annotator) generate(ctx context.Context, prompt string) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}

	if a.breaker != nil && !a.breaker.Allow() {
		return "", apperrors.ErrNarrativeUnavailable(errors.New("circuit breaker is open"))
	}

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		if a.breaker != nil {
			a.breaker.RecordFailure()
		}
		return "", apperrors.ErrNarrativeUnavailable(err)
	}

	if a.breaker != nil {
		a.breaker.RecordSuccess()
	}
	return text, nil
}
