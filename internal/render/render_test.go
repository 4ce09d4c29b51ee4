package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedagogy-studio/internal/payload"
	"github.com/pedagogy-studio/internal/pedagogy"
)

func doc(t *testing.T, s string) payload.Value {
	t.Helper()
	v, err := payload.ParseString(s)
	require.NoError(t, err)
	return v
}

func cardTitles(t *testing.T, s Section) []string {
	t.Helper()
	require.NotEmpty(t, s.Blocks)
	require.Equal(t, BlockCards, s.Blocks[0].Kind)
	var titles []string
	for _, c := range s.Blocks[0].Cards {
		titles = append(titles, c.Title)
	}
	return titles
}

func itemTexts(b Block) []string {
	var out []string
	for _, item := range b.Items {
		out = append(out, item.Text)
	}
	return out
}

func TestRender_FalsyPayloadRendersNothing(t *testing.T) {
	ids := append([]string{"unknown_style", ""}, pedagogy.BloomsTaxonomy, pedagogy.PeerLearning)
	payloads := []payload.Value{
		{},
		payload.NullValue(),
		payload.BoolValue(false),
		payload.StringValue(""),
		payload.NumberValue(0),
	}

	for _, id := range ids {
		for _, p := range payloads {
			assert.Nil(t, Render(id, p), "id=%q payload=%s", id, p.Compact())
		}
	}
}

func TestRender_DispatchByExactIdentifier(t *testing.T) {
	content := doc(t, `{"topic": "Cells"}`)

	tests := []struct {
		id     string
		layout string
	}{
		{"project_based_learning", "project_based_learning"},
		{"socratic_questioning", "socratic_questioning"},
		{"blooms_taxonomy", "blooms_taxonomy"},
		{"peer_learning", "peer_learning"},
		{"constructivist", "constructivist"},
		{"gamification", "gamification"},
		{"flipped_classroom", "flipped_classroom"},
		{"inquiry_based_learning", "inquiry_based_learning"},
		{"Blooms_Taxonomy", "generic"},
		{"unknown_style", "generic"},
		{"experiential_learning", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			v := Render(tt.id, content)
			require.NotNil(t, v)
			assert.Equal(t, tt.layout, v.Layout)
			assert.Equal(t, tt.id, v.Pedagogy)
		})
	}
}

func TestRender_PlaceholderStates(t *testing.T) {
	tests := []struct {
		id    string
		field string
		items string
	}{
		{pedagogy.ProjectBasedLearning, "project_phases", "project phases"},
		{pedagogy.SocraticQuestioning, "question_sequences", "question sequences"},
		{pedagogy.BloomsTaxonomy, "cognitive_levels", "cognitive levels"},
		{pedagogy.PeerLearning, "collaboration_structures", "collaboration structures"},
		{pedagogy.Constructivist, "experiential_activities", "activities"},
		{pedagogy.Gamification, "game_mechanics", "game mechanics"},
		{pedagogy.FlippedClassroom, "in_class_activities", "class activities"},
		{pedagogy.InquiryBasedLearning, "investigation_phases", "investigation phases"},
	}

	for _, tt := range tests {
		t.Run(tt.id+" absent", func(t *testing.T) {
			v := Render(tt.id, doc(t, `{"topic": "Photosynthesis"}`))
			require.NotNil(t, v)
			require.NotNil(t, v.Placeholder)
			assert.Equal(t, StatePending, v.Placeholder.State)
			assert.Equal(t, "Content is being generated...", v.Placeholder.Message)
			assert.Empty(t, v.Sections)
		})

		t.Run(tt.id+" empty", func(t *testing.T) {
			v := Render(tt.id, doc(t, `{"topic": "Photosynthesis", "`+tt.field+`": []}`))
			require.NotNil(t, v)
			require.NotNil(t, v.Placeholder)
			assert.Equal(t, StateEmpty, v.Placeholder.State)
			assert.Equal(t, "No "+tt.items+" generated yet. Please try again with different parameters.", v.Placeholder.Message)
			assert.Empty(t, v.Sections)
		})

		t.Run(tt.id+" wrong type", func(t *testing.T) {
			v := Render(tt.id, doc(t, `{"`+tt.field+`": "not a list"}`))
			require.NotNil(t, v)
			require.NotNil(t, v.Placeholder)
			assert.Equal(t, StatePending, v.Placeholder.State)
		})
	}
}

func TestRender_BloomsEmptyLevelsScenario(t *testing.T) {
	v := Render("blooms_taxonomy", doc(t, `{"cognitive_levels": []}`))
	require.NotNil(t, v)
	require.NotNil(t, v.Placeholder)
	assert.Equal(t, "Blooms Taxonomy Content", v.Placeholder.Title)
	assert.Equal(t, "No cognitive levels generated yet. Please try again with different parameters.", v.Placeholder.Message)
	assert.Equal(t, "🎓", v.Header.Icon)
}

func TestRender_GenericScenario(t *testing.T) {
	v := Render("unknown_style", doc(t, `{"summary": "X", "objectives": ["a", "b"]}`))
	require.NotNil(t, v)

	assert.Equal(t, []string{"Summary", "Objectives", "Full Details"}, v.SectionTitles())
	assert.Equal(t, pedagogy.DefaultTheme, v.Theme)

	summary, _ := v.Section("Summary")
	require.Len(t, summary.Blocks, 1)
	assert.Equal(t, Block{Kind: BlockParagraph, Text: "X"}, summary.Blocks[0])

	objectives, _ := v.Section("Objectives")
	require.Len(t, objectives.Blocks, 1)
	assert.Equal(t, BlockList, objectives.Blocks[0].Kind)
	assert.Equal(t, []string{"a", "b"}, itemTexts(objectives.Blocks[0]))

	raw, _ := v.Section("Full Details")
	require.Len(t, raw.Blocks, 1)
	assert.Equal(t, BlockCode, raw.Blocks[0].Kind)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw.Blocks[0].Text), &decoded))
	assert.Equal(t, map[string]any{"summary": "X", "objectives": []any{"a", "b"}}, decoded)
}

func TestRender_GenericKeepsEverythingInRawBlock(t *testing.T) {
	content := doc(t, `{"weird_field": {"deep": [1, {"x": null}]}, "other": false}`)
	v := Render("station_rotation", content)
	require.NotNil(t, v)

	assert.Equal(t, []string{"Full Details"}, v.SectionTitles())
	raw, _ := v.Section(RawSectionTitle)
	assert.Equal(t, content.Pretty(), raw.Blocks[0].Text)
	assert.Equal(t, pedagogy.ThemeFor("station_rotation"), v.Theme)
}

func TestRender_GenericSynonymPriority(t *testing.T) {
	v := Render("x", doc(t, `{"summary": "S", "overview": "O", "tasks": ["t"], "stations": ["s"], "plan": "", "schedule": "weekly"}`))
	require.NotNil(t, v)
	assert.Equal(t, []string{"Overview", "Tasks", "Schedule", "Full Details"}, v.SectionTitles())
}

func TestRender_HeaderTitleSynonyms(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"driving question beats hook", `{"driving_question": "Q1", "hook": "Q2"}`, "Q1"},
		{"title wins", `{"hook": "H", "title": "T"}`, "T"},
		{"empty title skipped", `{"title": "", "essential_question": "E"}`, "E"},
		{"falls back to identifier", `{"other": 1}`, "some_style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Render("some_style", doc(t, tt.content))
			require.NotNil(t, v)
			assert.Equal(t, tt.want, v.Header.Title)
			assert.Equal(t, "some_style", v.Header.Badge)
		})
	}
}

func TestRender_ProjectBased(t *testing.T) {
	content := doc(t, `{
		"driving_question": "How can we cut school energy use?",
		"project_overview": "Audit and redesign.",
		"learning_objectives": ["measure", "model"],
		"project_phases": [
			{"phase_name": "Launch", "duration": "1 week", "activities": [{"title": "Kickoff"}, {"kind": "survey"}, "Journal"]},
			{"content_description": "Collect data"},
			{"phase_name": "Present"}
		],
		"timeline": "6 weeks",
		"resources": null
	}`)

	v := Render(pedagogy.ProjectBasedLearning, content)
	require.NotNil(t, v)
	assert.Nil(t, v.Placeholder)
	assert.Equal(t, "How can we cut school energy use?", v.Header.Title)
	assert.Equal(t, "Audit and redesign.", v.Header.Subtitle)
	assert.Equal(t, []string{"Learning Objectives", "Project Phases", "Timeline"}, v.SectionTitles())

	phases, _ := v.Section("Project Phases")
	assert.Equal(t, []string{"Launch", "Phase 2", "Present"}, cardTitles(t, phases))

	launch := phases.Blocks[0].Cards[0]
	assert.Equal(t, 1, launch.Index)
	assert.Equal(t, "1 week", launch.Badge)
	require.Len(t, launch.Blocks, 1)
	assert.Equal(t, "Activities", launch.Blocks[0].Label)
	assert.Equal(t, []string{"Kickoff", `{"kind":"survey"}`, "Journal"}, itemTexts(launch.Blocks[0].Items[0]))
}

func TestRender_SequencesKeepPayloadOrder(t *testing.T) {
	v := Render(pedagogy.ProjectBasedLearning, doc(t, `{"project_phases": ["C", "A", "B", "A"]}`))
	require.NotNil(t, v)
	phases, ok := v.Section("Project Phases")
	require.True(t, ok)
	assert.Equal(t, []string{"C", "A", "B", "A"}, cardTitles(t, phases))
}

func TestRender_Blooms(t *testing.T) {
	content := doc(t, `{
		"topic": "Photosynthesis",
		"grade_level": "High School",
		"cognitive_levels": [
			{
				"level_name": "Remember",
				"description": "Recall facts",
				"content": "Chlorophyll absorbs light.",
				"learning_objectives": ["List inputs"],
				"activities": [],
				"key_concepts": ["chlorophyll", "glucose"]
			},
			{"description": "no name"}
		],
		"assessment_strategy": "Quizzes"
	}`)

	v := Render(pedagogy.BloomsTaxonomy, content)
	require.NotNil(t, v)
	assert.Equal(t, "Blooms Taxonomy: Photosynthesis", v.Header.Title)
	assert.Equal(t, []string{"Grade: High School", "Level: Not specified"}, v.Header.Chips)
	assert.Equal(t, []string{"Cognitive Levels", "Assessment Strategy"}, v.SectionTitles())
	require.NotNil(t, v.Footer)
	assert.Equal(t, "Blooms Taxonomy Framework", v.Footer.Title)

	levels, _ := v.Section("Cognitive Levels")
	assert.Equal(t, []string{"Remember", "Level 2"}, cardTitles(t, levels))

	remember := levels.Blocks[0].Cards[0]
	assert.Equal(t, "Recall facts", remember.Subtitle)
	assert.Equal(t, "Level 1", remember.Badge)

	var labels []string
	for _, b := range remember.Blocks {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"Content", "Learning Objectives", "Key Concepts"}, labels, "empty lists are skipped")
	assert.Equal(t, BlockChips, remember.Blocks[2].Items[0].Kind)
}

func TestRender_BloomsTopicFallback(t *testing.T) {
	v := Render(pedagogy.BloomsTaxonomy, doc(t, `{"cognitive_levels": [{"level_name": "Apply"}]}`))
	require.NotNil(t, v)
	assert.Equal(t, "Blooms Taxonomy: Topic", v.Header.Title)
	assert.Equal(t, []string{"Grade: Not specified", "Level: Not specified"}, v.Header.Chips)
}

func TestRender_Socratic(t *testing.T) {
	v := Render(pedagogy.SocraticQuestioning, doc(t, `{
		"topic": "Justice",
		"depth_level": "Advanced",
		"question_sequences": [
			{"title": "Opening", "questions": ["What is fair?", "Who decides?"]},
			{"description": "Probe assumptions"}
		],
		"discussion_guidelines": "Listen first."
	}`))
	require.NotNil(t, v)
	assert.Equal(t, "Socratic Questioning: Justice", v.Header.Title)
	assert.Equal(t, []string{"Depth: Advanced", "Level: Not specified"}, v.Header.Chips)
	assert.Equal(t, []string{"Strategic Question Sequences", "Discussion Guidelines"}, v.SectionTitles())

	seqs, _ := v.Section("Strategic Question Sequences")
	assert.Equal(t, []string{"Opening", "Sequence 2"}, cardTitles(t, seqs))

	questions := seqs.Blocks[0].Cards[0].Blocks[0]
	assert.Equal(t, "Questions", questions.Label)
	assert.True(t, questions.Items[0].Ordered)
	assert.Equal(t, []string{"What is fair?", "Who decides?"}, itemTexts(questions.Items[0]))
}

func TestRender_Peer(t *testing.T) {
	v := Render(pedagogy.PeerLearning, doc(t, `{
		"collaboration_structures": [
			{"structure_name": "Jigsaw", "roles_and_responsibilities": ["expert"], "step_by_step_process": ["split", "share"], "assessment_method": "peer review"}
		],
		"accountability_measures": ["logs"],
		"communication_protocols": [],
		"group_formation_strategy": "Mixed ability"
	}`))
	require.NotNil(t, v)
	assert.Equal(t, "Peer Learning: Topic", v.Header.Title)
	assert.Empty(t, v.Header.Chips)
	assert.Equal(t, []string{"Collaboration Structures", "Accountability Measures", "Group Formation Strategy"}, v.SectionTitles())

	structures, _ := v.Section("Collaboration Structures")
	card := structures.Blocks[0].Cards[0]
	require.Len(t, card.Blocks, 3)
	assert.Equal(t, "Roles & Responsibilities", card.Blocks[0].Label)
	assert.Equal(t, "Steps", card.Blocks[1].Label)
	assert.Equal(t, Block{Kind: BlockNote, Label: "Assessment", Text: "peer review"}, card.Blocks[2])
	assert.Equal(t, "Collaborative Learning Framework", v.Footer.Title)
	assert.Empty(t, v.Footer.Description)
}

func TestRender_Constructivist(t *testing.T) {
	v := Render(pedagogy.Constructivist, doc(t, `{
		"topic": "Fractions",
		"prior_knowledge_activities": [],
		"reflection_activities": [
			{"activity_name": "Journal", "type": "individual", "learning_outcome": "metacognition", "facilitation_notes": "prompt gently"},
			{}
		],
		"assessment_approach": "Portfolio"
	}`))
	require.NotNil(t, v)
	assert.Nil(t, v.Placeholder)
	assert.Equal(t, "Constructivist Learning: Fractions", v.Header.Title)
	assert.Equal(t, []string{"Reflection Activities", "Assessment Approach"}, v.SectionTitles())

	reflection, _ := v.Section("Reflection Activities")
	assert.Equal(t, []string{"Journal", "Activity 2"}, cardTitles(t, reflection))
	journal := reflection.Blocks[0].Cards[0]
	assert.Equal(t, "individual", journal.Badge)
	assert.Equal(t, []Block{
		{Kind: BlockNote, Label: "Outcome", Text: "metacognition"},
		{Kind: BlockNote, Label: "Facilitation Notes", Text: "prompt gently"},
	}, journal.Blocks)
}

func TestRender_ConstructivistAllEmpty(t *testing.T) {
	v := Render(pedagogy.Constructivist, doc(t, `{"prior_knowledge_activities": [], "reflection_activities": []}`))
	require.NotNil(t, v)
	require.NotNil(t, v.Placeholder)
	assert.Equal(t, StateEmpty, v.Placeholder.State)
}

func TestRender_Gamification(t *testing.T) {
	v := Render(pedagogy.Gamification, doc(t, `{
		"game_mechanics": [{"mechanic_name": "Badges", "detailed_implementation": "Award on completion", "implementation_notes": "keep visible"}],
		"motivation_strategy": "Intrinsic first",
		"technology_requirements": ["LMS"]
	}`))
	require.NotNil(t, v)
	assert.Equal(t, []string{"Game Mechanics", "Motivation Strategy", "Technology Requirements"}, v.SectionTitles())

	mechanics, _ := v.Section("Game Mechanics")
	card := mechanics.Blocks[0].Cards[0]
	assert.Equal(t, "Badges", card.Title)
	require.Len(t, card.Blocks, 2)
	assert.Equal(t, "Implementation", card.Blocks[0].Label)
	assert.Equal(t, "Notes", card.Blocks[1].Label)
}

func TestRender_Flipped(t *testing.T) {
	v := Render(pedagogy.FlippedClassroom, doc(t, `{
		"title": "Forces",
		"pre_class_content": [{"content_type": "Video", "estimated_time": "10 min", "key_points": ["F=ma"]}],
		"in_class_activities": [{"materials_needed": ["carts"], "assessment_method": "exit ticket"}],
		"post_class_reinforcement": ["worksheet"],
		"technology_tools": []
	}`))
	require.NotNil(t, v)
	assert.Equal(t, "Forces", v.Header.Title)
	assert.Equal(t, []string{"Pre-class Content", "In-class Activities", "Post-class Reinforcement"}, v.SectionTitles())

	pre, _ := v.Section("Pre-class Content")
	assert.Equal(t, []string{"Video"}, cardTitles(t, pre))
	assert.Equal(t, "10 min", pre.Blocks[0].Cards[0].Badge)

	in, _ := v.Section("In-class Activities")
	assert.Equal(t, []string{"Activity 1"}, cardTitles(t, in))
}

func TestRender_FlippedOneListIsEnough(t *testing.T) {
	v := Render(pedagogy.FlippedClassroom, doc(t, `{"pre_class_content": [], "in_class_activities": [{"activity_name": "Lab"}]}`))
	require.NotNil(t, v)
	assert.Nil(t, v.Placeholder)
}

func TestRender_Inquiry(t *testing.T) {
	v := Render(pedagogy.InquiryBasedLearning, doc(t, `{
		"essential_question": "Why do seasons change?",
		"essential_questions": ["Why?", "How?"],
		"investigation_phases": [{"phase_name": "Wonder", "research_methods": ["observe"]}],
		"assessment_rubric": {"criteria": "evidence", "levels": 4}
	}`))
	require.NotNil(t, v)
	assert.Equal(t, "Why do seasons change?", v.Header.Title)
	assert.Equal(t, []string{"Essential Questions", "Investigation Phases", "Assessment Rubric"}, v.SectionTitles())

	rubric, _ := v.Section("Assessment Rubric")
	require.Len(t, rubric.Blocks, 1)
	fields := rubric.Blocks[0].Items
	require.Len(t, fields, 2)
	assert.Equal(t, "Criteria", fields[0].Label)
	assert.Equal(t, "Levels", fields[1].Label)
	assert.Equal(t, "4", fields[1].Items[0].Text)
}

func TestRender_NestedValuesRenderRecursively(t *testing.T) {
	v := Render("x", doc(t, `{"activities": [{"task_name": "Sort", "materials": {"cards_needed": 20}}, "plain"]}`))
	require.NotNil(t, v)

	activities, ok := v.Section("Activities")
	require.True(t, ok)
	listBlock := activities.Blocks[0]
	require.Equal(t, BlockList, listBlock.Kind)
	require.Len(t, listBlock.Items, 2)

	first := listBlock.Items[0]
	require.Equal(t, BlockField, first.Kind)
	assert.Equal(t, "Task Name", first.Items[0].Label)
	assert.Equal(t, "Materials", first.Items[1].Label)
	assert.Equal(t, "Cards Needed", first.Items[1].Items[0].Items[0].Label)

	assert.Equal(t, Block{Kind: BlockParagraph, Text: "plain"}, listBlock.Items[1])
}

func TestRender_TypeMismatchesDegrade(t *testing.T) {
	content := doc(t, `{
		"cognitive_levels": [
			"just a string",
			42,
			null,
			["nested", "list"],
			{"level_name": {"odd": true}, "learning_objectives": "single objective", "key_concepts": 7}
		],
		"topic": ["not", "a", "string"],
		"grade_level": {"x": 1}
	}`)

	var v *View
	require.NotPanics(t, func() { v = Render(pedagogy.BloomsTaxonomy, content) })
	require.NotNil(t, v)

	levels, _ := v.Section("Cognitive Levels")
	assert.Equal(t, []string{"just a string", "42", "Level 3", "Level 4", `{"odd":true}`}, cardTitles(t, levels))
	assert.Equal(t, `Blooms Taxonomy: ["not","a","string"]`, v.Header.Title)
}

func TestRender_IsDeterministic(t *testing.T) {
	inputs := map[string]string{
		pedagogy.ProjectBasedLearning: `{"title":"T","project_phases":[{"phase_name":"A"},{"phase_name":"B"}],"assessment":{"rubric":"r"}}`,
		pedagogy.BloomsTaxonomy:       `{"cognitive_levels":[{"level_name":"Remember","activities":["a"]}]}`,
		"unknown_style":               `{"summary":"X","objectives":["a","b"],"extra":{"k":[1,2]}}`,
	}

	for id, raw := range inputs {
		t.Run(id, func(t *testing.T) {
			first := Render(id, doc(t, raw))
			second := Render(id, doc(t, raw))
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Render not deterministic (-first +second):\n%s", diff)
			}
		})
	}
}

func TestRender_ViewSerializes(t *testing.T) {
	v := Render(pedagogy.SocraticQuestioning, doc(t, `{"question_sequences":[{"title":"Q"}]}`))
	require.NotNil(t, v)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), `"layout":"socratic_questioning"`))
	assert.True(t, strings.Contains(string(out), `"title":"Q"`))
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"learning_objectives", "Learning Objectives"},
		{"project_overview", "Project Overview"},
		{"summary", "Summary"},
		{"roles_and_responsibilities", "Roles And Responsibilities"},
		{"already Human", "Already Human"},
		{"__leading", "  Leading"},
		{"step_2_review", "Step 2 Review"},
		{"camelCase_key", "CamelCase Key"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Humanize(tt.in))
		})
	}
}

func TestHumanize_Idempotent(t *testing.T) {
	inputs := []string{"a_b_c", "learning_objectives", "X1_y2", "___", "abc", "key_concepts_2"}
	for _, in := range inputs {
		once := Humanize(in)
		assert.Equal(t, once, Humanize(once), "input %q", in)
	}
}
