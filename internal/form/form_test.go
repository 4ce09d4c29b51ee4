package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/pedagogy"
)

func TestValidateTopic(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantMsg string
	}{
		{"empty", "", "", "Topic is required."},
		{"whitespace", "   \t", "", "Topic is required."},
		{"too short", " ab ", "", "Enter at least 3 characters."},
		{"exactly three", "abc", "abc", ""},
		{"trimmed", "  Photosynthesis ", "Photosynthesis", ""},
		{"multibyte counts runes", "日本語", "日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTopic(tt.input)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "topic", verr.Field)
			assert.Equal(t, tt.wantMsg, domain.UserMessage(err))
		})
	}
}

func TestValidateTopicForGeneration(t *testing.T) {
	_, err := ValidateTopicForGeneration(" x ")
	require.Error(t, err)
	assert.Equal(t, "Please provide a valid topic (at least 3 characters) on the home page and try again.", domain.UserMessage(err))

	_, err = ValidateTopicForGeneration("")
	require.Error(t, err)

	got, err := ValidateTopicForGeneration(" Volcanoes ")
	require.NoError(t, err)
	assert.Equal(t, "Volcanoes", got)
}

func TestBuild_FromSchema(t *testing.T) {
	f := Build(pedagogy.BloomsTaxonomy, []pedagogy.Parameter{
		{Name: "target_level", Hint: "Cognitive level to focus on"},
		{Name: "grade_level", Hint: "Target grade level"},
	})

	assert.Equal(t, "Configure Blooms Taxonomy Parameters", f.Title)
	assert.Equal(t, "Generate Blooms Taxonomy", f.SubmitLabel)
	assert.Equal(t, "Generating...", f.BusyLabel)
	require.Len(t, f.Fields, 2)

	target := f.Fields[0]
	assert.Equal(t, "target_level", target.Name)
	assert.Equal(t, "Target Level", target.Label)
	assert.Equal(t, "Select Target Level", target.Placeholder)
	assert.Equal(t, "Cognitive level to focus on", target.Hint)
	assert.Equal(t, "Intermediate", target.Value)
	assert.Equal(t, []string{"Beginner", "Intermediate", "Advanced", "Expert"}, target.Options)

	assert.Equal(t, "High School", f.Fields[1].Value)
}

func TestBuild_EmptySchemaUsesDefaults(t *testing.T) {
	f := Build(pedagogy.FlippedClassroom, nil)

	names := make([]string, 0, len(f.Fields))
	for _, fld := range f.Fields {
		names = append(names, fld.Name)
		assert.NotEmpty(t, fld.Value)
	}
	assert.Equal(t, []string{"class_duration", "prep_time", "technology_level"}, names)
}

func TestBuild_UnknownParameter(t *testing.T) {
	f := Build("microlearning", []pedagogy.Parameter{{Name: "chunk_size"}})

	require.Len(t, f.Fields, 1)
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, f.Fields[0].Options)
	assert.Empty(t, f.Fields[0].Value)
	assert.Equal(t, "Generate Microlearning", f.SubmitLabel)
}

func TestMerge(t *testing.T) {
	got := Merge(pedagogy.ProjectBasedLearning, map[string]string{
		"team_size":      "5-6 students",
		"industry_focus": "",
		"extra":          "kept",
	})

	assert.Equal(t, map[string]string{
		"project_duration": "4-6 weeks",
		"team_size":        "5-6 students",
		"industry_focus":   "General",
		"extra":            "kept",
	}, got)
}

func TestMerge_DoesNotAliasDefaults(t *testing.T) {
	first := Merge(pedagogy.Gamification, map[string]string{"competition_level": "High"})
	second := Merge(pedagogy.Gamification, nil)

	assert.Equal(t, "High", first["competition_level"])
	assert.Equal(t, "Moderate", second["competition_level"])
}
