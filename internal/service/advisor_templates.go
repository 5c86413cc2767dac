package service

import (
	"encoding/json"
	"fmt"

	"github.com/templui/goalmaster/internal/llm"
	"github.com/templui/goalmaster/internal/model"
)

type categoryEstimate struct {
	difficulty  func(rate float64) float64
	duration    func(rate float64) int
	probability func(rate float64) float64
	suggestions string // %.1f receives the progress rate in percent
}

// analysisTable keys on goal category. Rates are percentages (0-100).
var analysisTable = map[string]categoryEstimate{
	model.CategoryHealth: {
		difficulty:  func(r float64) float64 { return 6.5 + r/100*2 },
		duration:    func(r float64) int { return max(30, int(90-r)) },
		probability: func(r float64) float64 { return 0.75 + r/200 },
		suggestions: "Consistency is everything for health goals. You are %.1f%% of the way there! Start with small habits and build up the intensity gradually.",
	},
	model.CategoryEducation: {
		difficulty:  func(r float64) float64 { return 7.0 + r/100*1.5 },
		duration:    func(r float64) int { return max(60, int(120-r)) },
		probability: func(r float64) float64 { return 0.70 + r/250 },
		suggestions: "Learning sticks through repetition and understanding. You are %.1f%% in. Study a little every day and set aside time to review.",
	},
	model.CategoryCareer: {
		difficulty:  func(r float64) float64 { return 7.5 + r/100*1 },
		duration:    func(r float64) int { return max(45, int(100-r)) },
		probability: func(r float64) float64 { return 0.80 + r/300 },
		suggestions: "Career goals reward a systematic plan. You have reached %.1f%%. Set priorities and tackle them one stage at a time.",
	},
	model.CategoryPersonal: {
		difficulty:  func(r float64) float64 { return 5.5 + r/100*2 },
		duration:    func(r float64) int { return max(30, int(80-r)) },
		probability: func(r float64) float64 { return 0.85 + r/400 },
		suggestions: "Personal projects should be fun first! You are %.1f%% along. Take the pressure off and enjoy the process.",
	},
}

var defaultEstimate = categoryEstimate{
	difficulty:  func(float64) float64 { return 7.0 },
	duration:    func(float64) int { return 60 },
	probability: func(float64) float64 { return 0.75 },
	suggestions: "You are %.1f%% of the way there. Break the goal into small pieces and keep moving.",
}

var priorityMultiplier = map[string]float64{
	model.PriorityHigh:   1.2,
	model.PriorityMedium: 1.0,
	model.PriorityLow:    0.8,
}

type analysisPayload struct {
	DifficultyScore    float64 `json:"difficulty_score"`
	EstimatedDuration  int     `json:"estimated_duration"`
	SuccessProbability float64 `json:"success_probability"`
	Suggestions        string  `json:"suggestions"`
}

// fallbackAnalysis estimates from category, progress and priority alone.
// Higher priority raises difficulty and shortens the duration.
func fallbackAnalysis(g *model.Goal) analysisPayload {
	rate := g.ProgressRate() * 100

	est, ok := analysisTable[g.Category]
	if !ok {
		est = defaultEstimate
	}

	m, ok := priorityMultiplier[g.Priority]
	if !ok {
		m = 1.0
	}

	return analysisPayload{
		DifficultyScore:    clamp(est.difficulty(rate)*m, 1, 10),
		EstimatedDuration:  int(float64(est.duration(rate)) / m),
		SuccessProbability: clamp(est.probability(rate), 0.1, 1),
		Suggestions:        fmt.Sprintf(est.suggestions, rate),
	}
}

func analysisTemplate(g *model.Goal) llm.Completion {
	return jsonCompletion(fallbackAnalysis(g))
}

type planPayload struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Steps       []model.ActionStep `json:"steps"`
}

func step(n int, title, description string, minutes int) model.ActionStep {
	return model.ActionStep{StepNumber: n, Title: title, Description: description, EstimatedTime: minutes}
}

// fallbackPlan picks a three-step plan by category. Personal goals get the hobby plan.
func fallbackPlan(g *model.Goal) planPayload {
	switch g.Category {
	case model.CategoryHealth:
		return planPayload{
			Title:       g.Title + " health plan",
			Description: "A step-by-step plan for building healthy habits",
			Steps: []model.ActionStep{
				step(1, "Baseline fitness check", fmt.Sprintf("Measure where you stand today against the %g %s target.", g.TargetValue, g.Unit), 30),
				step(2, "Increase intensity gradually", "Raise the load slowly so the habit sticks without straining your body.", 45),
				step(3, "Track and adjust", "Check progress weekly and adapt the plan to how your body responds.", 20),
			},
		}
	case model.CategoryEducation:
		return planPayload{
			Title:       g.Title + " study plan",
			Description: "A structured approach to effective learning",
			Steps: []model.ActionStep{
				step(1, "Organize study materials", fmt.Sprintf("Gather the materials and curriculum needed for %s.", g.Title), 60),
				step(2, "Daily study routine", "Set a fixed time each day for focused study.", 90),
				step(3, "Review and practice", "Review what you learned and make time to apply it.", 60),
			},
		}
	case model.CategoryCareer:
		return planPayload{
			Title:       g.Title + " work plan",
			Description: "A strategic plan for getting the most out of your work",
			Steps: []model.ActionStep{
				step(1, "Analyze tasks and set priorities", fmt.Sprintf("List the work %s requires and rank it.", g.Title), 45),
				step(2, "Time management system", "Build a system for allocating time and protecting focus.", 30),
				step(3, "Measure and improve", "Review results regularly and apply what you learn.", 40),
			},
		}
	case model.CategoryPersonal:
		return planPayload{
			Title:       g.Title + " hobby plan",
			Description: "A relaxed, step-by-step way into your hobby",
			Steps: []model.ActionStep{
				step(1, "Prepare your setup", fmt.Sprintf("Get the tools and space ready for %s.", g.Title), 30),
				step(2, "Learn the basics", "Pick up the fundamentals without pressure and find what you enjoy.", 60),
				step(3, "Improve and take on challenges", "Build skill step by step and try something new.", 90),
			},
		}
	default:
		return planPayload{
			Title:       g.Title + " action plan",
			Description: "A systematic approach to reaching your goal",
			Steps: []model.ActionStep{
				step(1, "Assess where you are", fmt.Sprintf("Review your current %.1f%% progress and list what remains.", g.ProgressRate()*100), 45),
				step(2, "Execute step by step", "Split the goal into small units and work through them in order.", 60),
				step(3, "Keep it going", "Check progress regularly and stay motivated until you finish.", 30),
			},
		}
	}
}

func planTemplate(g *model.Goal) llm.Completion {
	return jsonCompletion(fallbackPlan(g))
}

// coachingTemplates all mention the progress rate.
func coachingTemplates(g *model.Goal) []string {
	rate := g.ProgressRate() * 100
	return []string{
		fmt.Sprintf("Hi! You are at %.1f%% on '%s'. Your steady effort is showing!", rate, g.Title),
		fmt.Sprintf("One step at a time! You are %.1f%% done with %s and %.1f %s remain.", rate, g.Title, g.Remaining(), g.Unit),
		fmt.Sprintf("Great work! You have reached %.1f%% so far. At this pace the goal is well within reach!", rate),
		fmt.Sprintf("A little progress every day is what counts. You are %.1f%% of the way to %s, keep it up!", rate, g.Title),
	}
}

// jsonCompletion renders a template the same way a model answer would arrive.
func jsonCompletion(v any) llm.Completion {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Payloads are plain structs; this cannot fail.
		panic(err)
	}
	return llm.Completion{Text: string(b)}
}
