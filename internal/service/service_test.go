package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalmaster/internal/db"
	"github.com/templui/goalmaster/internal/llm"
	"github.com/templui/goalmaster/internal/metrics"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
)

const testPassword = "correct horse battery staple"

type testEnv struct {
	users     repository.UserRepository
	auth      *AuthService
	user      *UserService
	goals     *GoalService
	progress  *ProgressService
	advisor   *AdvisorService
	community *CommunityService
	plans     repository.ActionPlanRepository
	calls     repository.AIInteractionRepository
	registry  *prometheus.Registry
}

// steppingClock returns a clock that advances one second per reading.
func steppingClock() func() time.Time {
	t := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestEnv(t *testing.T, client llm.Client) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	database, err := db.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	clock := steppingClock()

	users := repository.NewUserRepository(database)
	plans := repository.NewActionPlanRepository(database)
	calls := repository.NewAIInteractionRepository(database)
	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg, reg)

	auth := NewAuthService(users, NewEmailService("", "noreply@example.com", "GoalMaster", true), "test-secret", time.Hour)
	auth.now = clock

	userService := NewUserService(users, nil)
	userService.now = clock

	goals := NewGoalService(repository.NewGoalRepository(database))
	goals.now = clock

	progress := NewProgressService(repository.NewProgressLogRepository(database), goals)
	progress.now = clock

	advisor := NewAdvisorService(goals, progress, plans, calls, client, m)
	advisor.now = clock
	advisor.pick = func(int) int { return 0 }

	return &testEnv{
		users:     users,
		auth:      auth,
		user:      userService,
		goals:     goals,
		progress:  progress,
		advisor:   advisor,
		community: NewCommunityService(repository.NewCommunityRepository(database)),
		plans:     plans,
		calls:     calls,
		registry:  reg,
	}
}

func (e *testEnv) register(t *testing.T, email string) *model.User {
	t.Helper()

	user, err := e.auth.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: testPassword,
		Profile:  model.Profile{Name: "Test User"},
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createGoal(t *testing.T, userID string, in model.GoalCreate) *model.Goal {
	t.Helper()

	goal, err := e.goals.Create(context.Background(), userID, in)
	require.NoError(t, err)
	return goal
}

func run5k() model.GoalCreate {
	return model.GoalCreate{
		Title:       "Run 5k",
		Category:    model.CategoryHealth,
		TargetValue: 5,
		Unit:        "km",
		Deadline:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func ptr[T any](v T) *T {
	return &v
}

// completions reads the advisor counter for one operation and source.
func (e *testEnv) completions(t *testing.T, operation, source string) float64 {
	t.Helper()

	families, err := e.registry.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "goalmaster_advisor_completions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["operation"] == operation && labels["source"] == source {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
