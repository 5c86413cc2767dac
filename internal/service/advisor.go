package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/templui/goalmaster/internal/llm"
	"github.com/templui/goalmaster/internal/logger"
	"github.com/templui/goalmaster/internal/metrics"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	recentProgressLimit = 5
	defaultMessageType  = "daily"
)

// Analysis defaults applied when the model leaves a field out.
const (
	defaultDifficulty  = 7.0
	defaultDuration    = 30
	defaultProbability = 0.75
	defaultSuggestions = "Keep working at it steadily!"
)

const (
	analysisSystemPrompt = "You are an expert coach who helps people reach their personal goals. Respond with JSON only."
	planSystemPrompt     = "You are an expert at turning goals into concrete action plans."
)

type AnalysisResult struct {
	Analysis    model.AIAnalysis `json:"analysis"`
	Suggestions string           `json:"suggestions"`
	// Response is the raw text the estimate was parsed from.
	Response string `json:"response"`
}

type PlanResult struct {
	PlanID string `json:"plan_id"`
	Plan   string `json:"plan"`
}

type CoachingResult struct {
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// AdvisorService produces goal analyses, action plans and coaching messages.
// Every call leaves an AIInteraction behind, whether the text came from the
// model or from a category template. Model failures are never returned.
type AdvisorService struct {
	goals        *GoalService
	progress     *ProgressService
	plans        repository.ActionPlanRepository
	interactions repository.AIInteractionRepository
	client       llm.Client
	metrics      *metrics.Metrics
	pick         func(n int) int
	now          func() time.Time
}

func NewAdvisorService(
	goals *GoalService,
	progress *ProgressService,
	plans repository.ActionPlanRepository,
	interactions repository.AIInteractionRepository,
	client llm.Client,
	m *metrics.Metrics,
) *AdvisorService {
	if client == nil {
		client = llm.Disabled()
	}

	return &AdvisorService{
		goals:        goals,
		progress:     progress,
		plans:        plans,
		interactions: interactions,
		client:       client,
		metrics:      m,
		pick:         rand.IntN,
		now:          now,
	}
}

func (s *AdvisorService) Analyze(ctx context.Context, userID, goalID string) (*AnalysisResult, error) {
	goal, err := s.goals.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	prompt := analysisPrompt(goal)
	fallback := func() llm.Completion { return analysisTemplate(goal) }

	completion, source := s.complete(ctx, model.InteractionAnalysis, analysisSystemPrompt, prompt, fallback)

	// The interaction keeps what the model actually said, even when the
	// estimate itself comes from the template.
	result, ok := parseAnalysis(completion.Text)
	result.Response = completion.Text
	if !ok {
		logger.FromContext(ctx).Warn("unparseable analysis, using template", "goal_id", goal.ID)
		template := fallback()
		source = metrics.SourceTemplate
		result, _ = parseAnalysis(template.Text)
		result.Response = template.Text
	}

	err = s.goals.MergeAIAnalysis(ctx, goal.ID, result.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	err = s.record(ctx, userID, goal.ID, model.InteractionAnalysis, prompt, completion)
	if err != nil {
		return nil, err
	}

	s.metrics.IncCompletion(model.InteractionAnalysis, source)
	return &result, nil
}

// GeneratePlan stores a new AI-generated ActionPlan. The plan text is
// returned as is; its steps are not decomposed, so the stored plan has none.
func (s *AdvisorService) GeneratePlan(ctx context.Context, userID, goalID string) (*PlanResult, error) {
	goal, err := s.goals.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	prompt := planPrompt(goal)
	completion, source := s.complete(ctx, model.InteractionPlanning, planSystemPrompt, prompt, func() llm.Completion {
		return planTemplate(goal)
	})

	ts := s.now()
	plan := &model.ActionPlan{
		ID:          newID(),
		GoalID:      goal.ID,
		UserID:      userID,
		Title:       goal.Title + " action plan",
		Description: "AI-generated tailored action plan",
		Steps:       model.ActionSteps{},
		AIGenerated: true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	err = s.plans.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to store action plan: %w", err)
	}

	err = s.record(ctx, userID, goal.ID, model.InteractionPlanning, prompt, completion)
	if err != nil {
		return nil, err
	}

	s.metrics.IncCompletion(model.InteractionPlanning, source)
	return &PlanResult{PlanID: plan.ID, Plan: completion.Text}, nil
}

// Coach picks an encouragement message for the goal. It never calls the model.
func (s *AdvisorService) Coach(ctx context.Context, userID, goalID, messageType string) (*CoachingResult, error) {
	goal, err := s.goals.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if messageType == "" {
		messageType = defaultMessageType
	}

	recent, err := s.progress.ForGoal(ctx, userID, goal.ID, recentProgressLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent progress: %w", err)
	}

	messages := coachingTemplates(goal)
	completion := llm.Completion{Text: messages[s.pick(len(messages))]}

	err = s.record(ctx, userID, goal.ID, model.InteractionCoaching, coachingPrompt(goal, recent, messageType), completion)
	if err != nil {
		return nil, err
	}

	s.metrics.IncCompletion(model.InteractionCoaching, metrics.SourceTemplate)
	return &CoachingResult{
		Message:   completion.Text,
		Type:      messageType,
		CreatedAt: s.now(),
	}, nil
}

func (s *AdvisorService) Plans(ctx context.Context, userID, goalID string) ([]*model.ActionPlan, error) {
	id, err := parseID(goalID, repository.ErrGoalNotFound)
	if err != nil {
		return nil, err
	}

	return s.plans.ForGoal(ctx, userID, id)
}

// complete asks the model and degrades to the template on any failure.
func (s *AdvisorService) complete(ctx context.Context, operation, system, prompt string, fallback func() llm.Completion) (llm.Completion, string) {
	completion, err := s.client.Complete(ctx, system, prompt)
	if err != nil {
		logger.FromContext(ctx).Warn("text generation failed, using template", "operation", operation, "error", err)
		return fallback(), metrics.SourceTemplate
	}

	return completion, metrics.SourceModel
}

func (s *AdvisorService) record(ctx context.Context, userID, goalID, kind, prompt string, completion llm.Completion) error {
	err := s.interactions.Create(ctx, &model.AIInteraction{
		ID:              newID(),
		UserID:          userID,
		GoalID:          goalID,
		InteractionType: kind,
		UserInput:       prompt,
		AIResponse:      completion.Text,
		TokensUsed:      max(completion.TokensUsed, 0),
		CreatedAt:       s.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to record %s interaction: %w", kind, err)
	}
	return nil
}

type rawAnalysis struct {
	DifficultyScore    *looseNumber `json:"difficulty_score"`
	EstimatedDuration  *looseNumber `json:"estimated_duration"`
	SuccessProbability *looseNumber `json:"success_probability"`
	Suggestions        any          `json:"suggestions"`
}

// looseNumber accepts 3, 3.5 and "3.5" alike; models quote numbers often.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	*n = looseNumber(v)
	return nil
}

// parseAnalysis reads an estimate out of model text, filling gaps with
// defaults and clamping every field into range.
func parseAnalysis(text string) (AnalysisResult, bool) {
	var raw rawAnalysis
	if !llm.ExtractJSON(text, &raw) {
		return AnalysisResult{}, false
	}

	a := model.AIAnalysis{
		DifficultyScore:    defaultDifficulty,
		EstimatedDuration:  defaultDuration,
		SuccessProbability: defaultProbability,
	}
	if raw.DifficultyScore != nil {
		a.DifficultyScore = float64(*raw.DifficultyScore)
	}
	if raw.EstimatedDuration != nil {
		a.EstimatedDuration = int(float64(*raw.EstimatedDuration))
	}
	if raw.SuccessProbability != nil {
		a.SuccessProbability = float64(*raw.SuccessProbability)
	}

	a.DifficultyScore = clamp(a.DifficultyScore, 1, 10)
	a.SuccessProbability = clamp(a.SuccessProbability, 0, 1)
	a.EstimatedDuration = max(a.EstimatedDuration, 1)

	return AnalysisResult{Analysis: a, Suggestions: suggestionsText(raw.Suggestions)}, true
}

func suggestionsText(v any) string {
	switch s := v.(type) {
	case nil:
		return defaultSuggestions
	case string:
		if strings.TrimSpace(s) == "" {
			return defaultSuggestions
		}
		return s
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return defaultSuggestions
		}
		return string(b)
	}
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// categoryLabel builds a fresh Caser per call; Casers are stateful.
func categoryLabel(category string) string {
	return cases.Title(language.English).String(category)
}

func analysisPrompt(g *model.Goal) string {
	return fmt.Sprintf(`Analyze the following goal:

Title: %s
Description: %s
Category: %s
Target: %g %s
Current: %g %s
Deadline: %s
Priority: %s

Assess it from these angles and answer in JSON:
1. How specific and achievable it is (difficulty, 1-10)
2. Expected duration in days
3. Probability of success (0-1)
4. Suggestions for improvement

Response format:
{
    "difficulty_score": number,
    "estimated_duration": number,
    "success_probability": number,
    "suggestions": "text"
}`,
		g.Title, g.Description, categoryLabel(g.Category),
		g.TargetValue, g.Unit, g.CurrentValue, g.Unit,
		g.Deadline.Format(time.DateOnly), g.Priority,
	)
}

func planPrompt(g *model.Goal) string {
	return fmt.Sprintf(`Write a detailed step-by-step action plan for this goal:

Goal: %s
Description: %s
Category: %s
Target: %g %s
Deadline: %s

For each step give a title, a description and the estimated time in minutes.

Answer in JSON:
{
    "title": "plan title",
    "description": "plan description",
    "steps": [
        {
            "step_number": 1,
            "title": "step title",
            "description": "step description",
            "estimated_time": minutes
        }
    ]
}`,
		g.Title, g.Description, categoryLabel(g.Category),
		g.TargetValue, g.Unit, g.Deadline.Format(time.DateOnly),
	)
}

func coachingPrompt(g *model.Goal, recent []*model.ProgressLog, messageType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s coaching message for this user.\n\n", messageType)
	fmt.Fprintf(&b, "Goal: %s\n", g.Title)
	fmt.Fprintf(&b, "Progress: %.1f%%\n", g.ProgressRate()*100)
	fmt.Fprintf(&b, "Current: %g %s\n", g.CurrentValue, g.Unit)
	fmt.Fprintf(&b, "Target: %g %s\n", g.TargetValue, g.Unit)
	fmt.Fprintf(&b, "Deadline: %s\n", g.Deadline.Format(time.DateOnly))

	if len(recent) > 0 {
		b.WriteString("\nRecent activity:\n")
		for _, l := range recent {
			fmt.Fprintf(&b, "- %s %s: %s\n", l.CreatedAt.Format(time.DateOnly), l.LogType, l.Description)
		}
	}

	b.WriteString("\nEncourage them based on their recent activity and suggest a concrete next step. Keep the tone warm and motivating.")
	return b.String()
}
