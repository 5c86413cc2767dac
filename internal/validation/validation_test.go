package validation

import (
	"bytes"
	"errors"
	"math"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalmaster/internal/model"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()

	var verr *Error
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	return verr.Field
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ada@example.com"))
	assert.Equal(t, "email", fieldOf(t, ValidateEmail("")))
	assert.Equal(t, "email", fieldOf(t, ValidateEmail("Ada <ada@example.com>")))
	assert.Equal(t, "email", fieldOf(t, ValidateEmail(strings.Repeat("a", 250)+"@example.com")))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct horse battery staple"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
	assert.Error(t, ValidatePassword("MyQwertyKeyboard!"))
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("Asia/Seoul"))
	assert.Equal(t, "timezone", fieldOf(t, ValidateTimezone("")))
	assert.Equal(t, "timezone", fieldOf(t, ValidateTimezone("Mars/Olympus")))
}

func validGoal() model.GoalCreate {
	return model.GoalCreate{
		Title:       "Read 12 books",
		Category:    model.CategoryEducation,
		TargetValue: 12,
		Unit:        "books",
		Deadline:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateGoalCreate(t *testing.T) {
	assert.NoError(t, ValidateGoalCreate(validGoal()))

	tests := map[string]func(*model.GoalCreate){
		"title":         func(g *model.GoalCreate) { g.Title = strings.Repeat("t", 201) },
		"category":      func(g *model.GoalCreate) { g.Category = "travel" },
		"priority":      func(g *model.GoalCreate) { g.Priority = "urgent" },
		"target_value":  func(g *model.GoalCreate) { g.TargetValue = math.NaN() },
		"current_value": func(g *model.GoalCreate) { v := math.Inf(1); g.CurrentValue = &v },
		"deadline":      func(g *model.GoalCreate) { g.Deadline = time.Time{} },
	}
	for field, mutate := range tests {
		g := validGoal()
		mutate(&g)
		assert.Equal(t, field, fieldOf(t, ValidateGoalCreate(g)), field)
	}
}

func TestValidateGoalUpdateOnlyChecksSuppliedFields(t *testing.T) {
	assert.NoError(t, ValidateGoalUpdate(model.GoalUpdate{}))

	completed := model.GoalStatusCompleted
	assert.NoError(t, ValidateGoalUpdate(model.GoalUpdate{Status: &completed}))

	bad := "done"
	assert.Equal(t, "status", fieldOf(t, ValidateGoalUpdate(model.GoalUpdate{Status: &bad})))

	blank := " "
	assert.Equal(t, "title", fieldOf(t, ValidateGoalUpdate(model.GoalUpdate{Title: &blank})))
}

func TestValidateProgressLog(t *testing.T) {
	mood := 5
	assert.NoError(t, ValidateProgressLogCreate(model.ProgressLogCreate{GoalID: "g", LogType: model.LogTypeSetback, MoodScore: &mood}))
	assert.Equal(t, "goal_id", fieldOf(t, ValidateProgressLogCreate(model.ProgressLogCreate{LogType: model.LogTypeNote})))

	mood = 0
	assert.Equal(t, "mood_score", fieldOf(t, ValidateProgressLogUpdate(model.ProgressLogUpdate{MoodScore: &mood})))
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["avatar"][0]
}

func TestAvatar(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	contentType, err := Avatar(fileHeader(t, "me.PNG", png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	_, err = Avatar(fileHeader(t, "me.txt", png))
	assert.Equal(t, "avatar", fieldOf(t, err))

	_, err = Avatar(fileHeader(t, "me.jpg", png))
	assert.Equal(t, "avatar", fieldOf(t, err), "extension must match the bytes")

	_, err = Avatar(fileHeader(t, "me.png", []byte("plain text")))
	assert.Equal(t, "avatar", fieldOf(t, err))
}
