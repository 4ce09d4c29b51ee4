package pedagogy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		id   string
		want Kind
	}{
		{"project_based_learning", KindProjectBased},
		{"socratic_questioning", KindSocratic},
		{"blooms_taxonomy", KindBlooms},
		{"peer_learning", KindPeer},
		{"constructivist", KindConstructivist},
		{"gamification", KindGamification},
		{"flipped_classroom", KindFlipped},
		{"inquiry_based_learning", KindInquiry},
		{"unknown_style", KindGeneric},
		{"Blooms_Taxonomy", KindGeneric},
		{" blooms_taxonomy", KindGeneric},
		{"", KindGeneric},
		{"experiential_learning", KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.id))
		})
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		assert.Equal(t, k, ParseKind(k.ID()), "kind %s", k)
		assert.True(t, IsKnown(k.ID()))
	}
	assert.Equal(t, "", KindGeneric.ID())
	assert.Equal(t, "generic", KindGeneric.String())
	assert.Len(t, Kinds(), 8)
}

func TestThemeFor(t *testing.T) {
	t.Run("known identifiers have their own theme", func(t *testing.T) {
		assert.Equal(t, "🎓", ThemeFor(BloomsTaxonomy).Icon)
		assert.Equal(t, "🧠", ThemeFor(SocraticQuestioning).Icon)
		assert.NotEqual(t, DefaultTheme, ThemeFor(Gamification))
	})

	t.Run("generic-rendered identifiers keep a theme", func(t *testing.T) {
		assert.Equal(t, "🧪", ThemeFor("experiential_learning").Icon)
		assert.Equal(t, KindGeneric, ParseKind("experiential_learning"))
	})

	t.Run("unknown identifiers share the default", func(t *testing.T) {
		assert.Equal(t, DefaultTheme, ThemeFor("unknown_style"))
		assert.Equal(t, DefaultTheme, ThemeFor(""))
		assert.Equal(t, ThemeFor("a"), ThemeFor("b"))
	})

	t.Run("generic kind uses the default", func(t *testing.T) {
		assert.Equal(t, DefaultTheme, KindGeneric.Theme())
		assert.Equal(t, ThemeFor(PeerLearning), KindPeer.Theme())
	})
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "❓", Icon(SocraticQuestioning))
	assert.Equal(t, "📚", Icon("something_else"))
}

func TestBuiltinCatalog(t *testing.T) {
	catalog := BuiltinCatalog()
	require.Len(t, catalog, 8)

	for _, k := range Kinds() {
		info, ok := catalog.Lookup(k.ID())
		require.True(t, ok, "missing %s", k)
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.Parameters)
	}

	_, ok := catalog.Lookup("unknown_style")
	assert.False(t, ok)
}

func TestDefaultParams(t *testing.T) {
	got := DefaultParams(BloomsTaxonomy)
	assert.Equal(t, map[string]string{
		"grade_level":  "High School",
		"target_level": "Intermediate",
	}, got)

	got["grade_level"] = "College"
	assert.Equal(t, "High School", DefaultParams(BloomsTaxonomy)["grade_level"], "callers get a copy")

	assert.Empty(t, DefaultParams("unknown_style"))
	assert.Equal(t, []string{"project_duration", "team_size", "industry_focus"}, DefaultParamNames(ProjectBasedLearning))
}

func TestOptions(t *testing.T) {
	assert.Contains(t, Options("grade_level"), "High School")
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, Options("no_such_param"))

	// every default is selectable
	for _, k := range Kinds() {
		for name, value := range DefaultParams(k.ID()) {
			assert.Contains(t, Options(name), value, "%s.%s", k, name)
		}
	}
}
