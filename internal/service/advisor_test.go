package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalmaster/internal/llm"
	"github.com/templui/goalmaster/internal/metrics"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
)

func halfwayGoal(t *testing.T, env *testEnv, userID string) *model.Goal {
	t.Helper()

	in := run5k()
	in.CurrentValue = ptr(2.5)
	return env.createGoal(t, userID, in)
}

func TestAnalyzeFallsBackToCategoryTemplate(t *testing.T) {
	env := newTestEnv(t, llm.NewFailingClient(errors.New("upstream down")))
	ctx := context.Background()
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	result, err := env.advisor.Analyze(ctx, user.ID, goal.ID)
	require.NoError(t, err)

	assert.InDelta(t, 7.5, result.Analysis.DifficultyScore, 1e-9)
	assert.Equal(t, 40, result.Analysis.EstimatedDuration)
	assert.InDelta(t, 1.0, result.Analysis.SuccessProbability, 1e-9)
	assert.Contains(t, result.Suggestions, "50.0%")

	stored, err := env.goals.ByID(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AIAnalysis)
	assert.Equal(t, result.Analysis, *stored.AIAnalysis)

	calls, err := env.calls.ForGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, model.InteractionAnalysis, calls[0].InteractionType)
	assert.Equal(t, 0, calls[0].TokensUsed)
	assert.Equal(t, result.Response, calls[0].AIResponse)
	assert.Contains(t, calls[0].UserInput, "Run 5k")

	assert.Equal(t, 1.0, env.completions(t, model.InteractionAnalysis, metrics.SourceTemplate))
}

func TestAnalyzeUsesModelAnswer(t *testing.T) {
	client := llm.NewScriptedClient(llm.Completion{
		Text:       "Here you go:\n```json\n{\"difficulty_score\": 12, \"estimated_duration\": 21, \"success_probability\": 0.6, \"suggestions\": \"Run three times a week.\"}\n```",
		TokensUsed: 321,
	})
	env := newTestEnv(t, client)
	ctx := context.Background()
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	result, err := env.advisor.Analyze(ctx, user.ID, goal.ID)
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.Analysis.DifficultyScore, "clamped into range")
	assert.Equal(t, 21, result.Analysis.EstimatedDuration)
	assert.Equal(t, 0.6, result.Analysis.SuccessProbability)
	assert.Equal(t, "Run three times a week.", result.Suggestions)

	calls, err := env.calls.ForGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, 321, calls[0].TokensUsed)

	require.Len(t, client.Calls(), 1)
	assert.Contains(t, client.Calls()[0].User, "Run 5k")
}

func TestAnalyzeUnparseableAnswerUsesTemplate(t *testing.T) {
	env := newTestEnv(t, llm.NewScriptedClient(llm.Completion{Text: "I cannot help with that.", TokensUsed: 9}))
	ctx := context.Background()
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	result, err := env.advisor.Analyze(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, result.Analysis.EstimatedDuration)
	assert.Contains(t, result.Suggestions, "50.0%")

	assert.Equal(t, 1.0, env.completions(t, model.InteractionAnalysis, metrics.SourceTemplate))

	calls, err := env.calls.ForGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, 9, calls[0].TokensUsed)
	assert.Equal(t, "I cannot help with that.", calls[0].AIResponse)
}

func TestAnalyzeAcceptsQuotedNumbers(t *testing.T) {
	env := newTestEnv(t, llm.NewScriptedClient(llm.Completion{
		Text: `{"difficulty_score": "3", "estimated_duration": "12", "success_probability": " 0.5 "}`,
	}))
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	result, err := env.advisor.Analyze(context.Background(), user.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Analysis.DifficultyScore)
	assert.Equal(t, 12, result.Analysis.EstimatedDuration)
	assert.Equal(t, 0.5, result.Analysis.SuccessProbability)
	assert.Equal(t, 1.0, env.completions(t, model.InteractionAnalysis, metrics.SourceModel))
}

func TestParseAnalysisRejectsNonNumericScore(t *testing.T) {
	_, ok := parseAnalysis(`{"difficulty_score": "hard"}`)
	assert.False(t, ok)
}

func TestAnalyzeDefaultsMissingFields(t *testing.T) {
	env := newTestEnv(t, llm.NewScriptedClient(llm.Completion{Text: `{"difficulty_score": 4}`}))
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	result, err := env.advisor.Analyze(context.Background(), user.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, result.Analysis.DifficultyScore)
	assert.Equal(t, defaultDuration, result.Analysis.EstimatedDuration)
	assert.Equal(t, defaultProbability, result.Analysis.SuccessProbability)
	assert.Equal(t, defaultSuggestions, result.Suggestions)
}

func TestAnalyzeForeignGoal(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")
	goal := halfwayGoal(t, env, owner.ID)

	_, err := env.advisor.Analyze(ctx, other.ID, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	calls, err := env.calls.ForGoal(ctx, other.ID, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestGeneratePlanStoresPlan(t *testing.T) {
	env := newTestEnv(t, llm.Disabled())
	ctx := context.Background()
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	result, err := env.advisor.GeneratePlan(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Plan, "Baseline fitness check")

	plans, err := env.advisor.Plans(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, result.PlanID, plans[0].ID)
	assert.Equal(t, "Run 5k action plan", plans[0].Title)
	assert.True(t, plans[0].AIGenerated)
	assert.Empty(t, plans[0].Steps)

	calls, err := env.calls.ForGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, model.InteractionPlanning, calls[0].InteractionType)
	assert.Equal(t, result.Plan, calls[0].AIResponse)
}

func TestGeneratePlanUsesModelText(t *testing.T) {
	env := newTestEnv(t, llm.NewScriptedClient(llm.Completion{Text: "1. Jog. 2. Run.", TokensUsed: 50}))
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	result, err := env.advisor.GeneratePlan(context.Background(), user.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "1. Jog. 2. Run.", result.Plan)
	assert.Equal(t, 1.0, env.completions(t, model.InteractionPlanning, metrics.SourceModel))
}

func TestCoachMentionsProgressRate(t *testing.T) {
	client := llm.NewScriptedClient(llm.Completion{Text: "unused"})
	env := newTestEnv(t, client)
	ctx := context.Background()
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	for i := range len(coachingTemplates(goal)) {
		env.advisor.pick = func(int) int { return i }

		result, err := env.advisor.Coach(ctx, user.ID, goal.ID, "")
		require.NoError(t, err)
		assert.Contains(t, result.Message, "50.0%")
		assert.Equal(t, "daily", result.Type)
	}

	assert.Empty(t, client.Calls(), "coaching never calls the model")

	calls, err := env.calls.ForGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	assert.Len(t, calls, len(coachingTemplates(goal)))
	for _, c := range calls {
		assert.Equal(t, model.InteractionCoaching, c.InteractionType)
		assert.Equal(t, 0, c.TokensUsed)
	}
}

func TestCoachPromptIncludesRecentActivity(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	user := env.register(t, "ada@example.com")
	goal := halfwayGoal(t, env, user.ID)

	_, err := env.progress.Create(ctx, user.ID, model.ProgressLogCreate{
		GoalID:      goal.ID,
		LogType:     model.LogTypeMilestone,
		Description: "first 2k without stopping",
	})
	require.NoError(t, err)

	result, err := env.advisor.Coach(ctx, user.ID, goal.ID, "weekly")
	require.NoError(t, err)
	assert.Equal(t, "weekly", result.Type)

	calls, err := env.calls.ForGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.True(t, strings.Contains(calls[0].UserInput, "first 2k without stopping"))
	assert.Contains(t, calls[0].UserInput, "weekly")
}

func TestFallbackAnalysisByPriority(t *testing.T) {
	g := &model.Goal{Category: model.CategoryCareer, TargetValue: 10, Priority: model.PriorityHigh}

	a := fallbackAnalysis(g)
	assert.InDelta(t, 9.0, a.DifficultyScore, 1e-9)
	assert.Equal(t, 83, a.EstimatedDuration)
	assert.InDelta(t, 0.8, a.SuccessProbability, 1e-9)

	g.Priority = model.PriorityLow
	a = fallbackAnalysis(g)
	assert.InDelta(t, 6.0, a.DifficultyScore, 1e-9)
	assert.Equal(t, 125, a.EstimatedDuration)
}

func TestFallbackAnalysisUnknownCategory(t *testing.T) {
	g := &model.Goal{Category: model.CategoryFinance, Priority: model.PriorityMedium}

	a := fallbackAnalysis(g)
	assert.Equal(t, 7.0, a.DifficultyScore)
	assert.Equal(t, 60, a.EstimatedDuration)
	assert.Equal(t, 0.75, a.SuccessProbability)
	assert.Contains(t, a.Suggestions, "0.0%")
}

func TestFallbackPlanPerCategory(t *testing.T) {
	for category, title := range map[string]string{
		model.CategoryHealth:    "Baseline fitness check",
		model.CategoryEducation: "Organize study materials",
		model.CategoryCareer:    "Analyze tasks and set priorities",
		model.CategoryPersonal:  "Prepare your setup",
		model.CategoryFinance:   "Assess where you are",
	} {
		p := fallbackPlan(&model.Goal{Title: "Goal", Category: category, TargetValue: 1})
		require.Len(t, p.Steps, 3, category)
		assert.Equal(t, title, p.Steps[0].Title, category)
		assert.Equal(t, 1, p.Steps[0].StepNumber)
	}
}
