package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/alttab/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestComposeHooks(t *testing.T) {
	var calls []string

	first := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { calls = append(calls, "first-step") },
	}
	second := domain.LifecycleHooks{
		OnStep:  func(ctx context.Context, e *domain.StepEvent) { calls = append(calls, "second-step") },
		OnPrune: func(ctx context.Context, e *domain.PruneEvent) { calls = append(calls, "second-prune") },
	}

	hooks := domain.ComposeHooks(first, domain.LifecycleHooks{}, second)

	hooks.OnStep(context.Background(), &domain.StepEvent{})
	hooks.OnPrune(context.Background(), &domain.PruneEvent{})

	assert.Equal(t, []string{"first-step", "second-step", "second-prune"}, calls)
	assert.Nil(t, hooks.OnFocus, "unset callbacks stay nil")
}
