package render

import (
	"fmt"

	"github.com/pedagogy-studio/internal/payload"
)

func (r *resolver) projectBased() *View {
	c := r.content
	state, ok := r.primaryState("project_phases")
	if !ok {
		return r.placeholderView(state, "Project Based Learning Content", "project phases")
	}

	v := r.newView()
	v.Header = r.standardHeader("project_based_learning")
	section(v, "Learning Objectives", text(c.Get("learning_objectives")))
	section(v, "Project Phases", cards(c.Get("project_phases"), func(i int, phase payload.Value) Card {
		return Card{
			Title: cardTitle(phase, i, "Phase", "phase_name"),
			Badge: badge(phase.Get("duration")),
			Blocks: concat(
				arrayBody(phase),
				text(phase.Get("content_description")),
				labeled("Activities", phaseActivities(phase.Get("activities"))),
			),
		}
	}))
	for _, key := range []string{"resources", "assessment", "timeline"} {
		section(v, Humanize(key), text(c.Get(key)))
	}
	return v
}

// phaseActivities lists project activities; structured entries show their
// title, or their JSON when they have none.
func phaseActivities(v payload.Value) []Block {
	if v.Type() != payload.Array {
		return text(v)
	}
	var items []Block
	for _, a := range v.List() {
		if !a.Present() {
			continue
		}
		t := a.Text()
		if a.Type() == payload.Object {
			t = a.Get("title").TextOr(a.Compact())
		}
		items = append(items, Block{Kind: BlockParagraph, Text: t})
	}
	if len(items) == 0 {
		return nil
	}
	return []Block{{Kind: BlockList, Items: items}}
}

func (r *resolver) socratic() *View {
	c := r.content
	state, ok := r.primaryState("question_sequences")
	if !ok {
		return r.placeholderView(state, "Socratic Questioning Content", "question sequences")
	}

	v := r.newView()
	v.Header = r.topicHeader("Socratic Questioning",
		r.chip("Depth", "depth_level"),
		r.chip("Level", "student_level"),
	)
	section(v, "Strategic Question Sequences", cards(c.Get("question_sequences"), func(i int, seq payload.Value) Card {
		return Card{
			Title: cardTitle(seq, i, "Sequence", "title"),
			Blocks: concat(
				arrayBody(seq),
				text(seq.Get("description")),
				labeled("Questions", list(seq.Get("questions"), true)),
			),
		}
	}))
	section(v, "Discussion Guidelines", text(c.Get("discussion_guidelines")))
	section(v, "Assessment Approach", text(c.Get("assessment_approach")))
	v.Footer = &Footer{
		Title:       "Socratic Questioning Framework",
		Description: "Guiding learning through strategic questioning and critical thinking",
	}
	return v
}

func (r *resolver) blooms() *View {
	c := r.content
	state, ok := r.primaryState("cognitive_levels")
	if !ok {
		return r.placeholderView(state, "Blooms Taxonomy Content", "cognitive levels")
	}

	v := r.newView()
	v.Header = r.topicHeader("Blooms Taxonomy",
		r.chip("Grade", "grade_level"),
		r.chip("Level", "target_level"),
	)
	section(v, "Cognitive Levels", cards(c.Get("cognitive_levels"), func(i int, level payload.Value) Card {
		return Card{
			Title:    cardTitle(level, i, "Level", "level_name"),
			Subtitle: badge(level.Get("description")),
			Badge:    fmt.Sprintf("Level %d", i+1),
			Blocks: concat(
				arrayBody(level),
				labeled("Content", text(level.Get("content"))),
				labeled("Learning Objectives", list(level.Get("learning_objectives"), false)),
				labeled("Activities", list(level.Get("activities"), false)),
				labeled("Assessment Questions", list(level.Get("assessment_questions"), false)),
				labeled("Real World Examples", list(level.Get("real_world_examples"), false)),
				labeled("Key Concepts", chips(level.Get("key_concepts"))),
			),
		}
	}))
	section(v, "Learning Progression", text(c.Get("learning_progression")))
	section(v, "Assessment Strategy", text(c.Get("assessment_strategy")))
	v.Footer = &Footer{
		Title:       "Blooms Taxonomy Framework",
		Description: "Progressive cognitive development from basic recall to advanced evaluation",
	}
	return v
}

func (r *resolver) peer() *View {
	c := r.content
	state, ok := r.primaryState("collaboration_structures")
	if !ok {
		return r.placeholderView(state, "Peer Learning Content", "collaboration structures")
	}

	v := r.newView()
	v.Header = r.topicHeader("Peer Learning")
	section(v, "Collaboration Structures", cards(c.Get("collaboration_structures"), func(i int, s payload.Value) Card {
		return Card{
			Title: cardTitle(s, i, "Structure", "structure_name"),
			Blocks: concat(
				arrayBody(s),
				text(s.Get("process_description")),
				text(s.Get("detailed_content")),
				labeled("Roles & Responsibilities", list(s.Get("roles_and_responsibilities"), false)),
				labeled("Steps", list(s.Get("step_by_step_process"), true)),
				note("Assessment", s.Get("assessment_method")),
			),
		}
	}))
	section(v, "Accountability Measures", list(c.Get("accountability_measures"), false))
	section(v, "Communication Protocols", list(c.Get("communication_protocols"), false))
	section(v, "Facilitation Guidelines", text(c.Get("facilitation_guidelines")))
	section(v, "Group Formation Strategy", text(c.Get("group_formation_strategy")))
	v.Footer = &Footer{Title: "Collaborative Learning Framework"}
	return v
}

var constructivistLists = []struct {
	key   string
	title string
}{
	{"prior_knowledge_activities", "Prior Knowledge Activities"},
	{"experiential_activities", "Experiential Activities"},
	{"social_construction_activities", "Social Construction Activities"},
	{"reflection_activities", "Reflection Activities"},
}

func (r *resolver) constructivist() *View {
	c := r.content
	keys := make([]string, len(constructivistLists))
	for i, l := range constructivistLists {
		keys[i] = l.key
	}
	state, ok := r.primaryState(keys...)
	if !ok {
		return r.placeholderView(state, "Constructivist Learning Content", "activities")
	}

	v := r.newView()
	v.Header = r.topicHeader("Constructivist Learning")
	for _, l := range constructivistLists {
		section(v, l.title, cards(c.Get(l.key), func(i int, a payload.Value) Card {
			return Card{
				Title: cardTitle(a, i, "Activity", "activity_name"),
				Badge: badge(a.Get("type")),
				Blocks: concat(
					arrayBody(a),
					text(a.Get("description")),
					text(a.Get("detailed_content")),
					labeled("Steps", list(a.Get("step_by_step_guide"), true)),
					note("Outcome", a.Get("learning_outcome")),
					note("Facilitation Notes", a.Get("facilitation_notes")),
				),
			}
		}))
	}
	section(v, "Assessment Approach", text(c.Get("assessment_approach")))
	v.Footer = &Footer{
		Title:       "Constructivist Learning Framework",
		Description: "Building knowledge through active experience, reflection, and social interaction",
	}
	return v
}

func (r *resolver) gamification() *View {
	c := r.content
	state, ok := r.primaryState("game_mechanics")
	if !ok {
		return r.placeholderView(state, "Gamification Content", "game mechanics")
	}

	v := r.newView()
	v.Header = r.topicHeader("Gamification")
	section(v, "Game Mechanics", cards(c.Get("game_mechanics"), func(i int, m payload.Value) Card {
		return Card{
			Title: cardTitle(m, i, "Mechanic", "mechanic_name"),
			Blocks: concat(
				arrayBody(m),
				text(m.Get("description")),
				labeled("Implementation", text(m.Get("detailed_implementation"))),
				labeled("Learning Connection", text(m.Get("learning_connection"))),
				labeled("Content Integration", text(m.Get("content_integration"))),
				labeled("Notes", text(m.Get("implementation_notes"))),
			),
		}
	}))
	section(v, "Progression System", text(c.Get("progression_system")))
	section(v, "Assessment Integration", text(c.Get("assessment_integration")))
	section(v, "Motivation Strategy", text(c.Get("motivation_strategy")))
	section(v, "Technology Requirements", list(c.Get("technology_requirements"), false))
	v.Footer = &Footer{
		Title:       "Gamification Framework",
		Description: "Engaging learning through game mechanics, rewards, and interactive elements",
	}
	return v
}

func (r *resolver) flipped() *View {
	c := r.content
	state, ok := r.primaryState("pre_class_content", "in_class_activities")
	if !ok {
		return r.placeholderView(state, "Flipped Classroom", "class activities")
	}

	v := r.newView()
	v.Header = r.standardHeader("flipped_classroom")
	section(v, "Pre-class Content", cards(c.Get("pre_class_content"), func(i int, item payload.Value) Card {
		return Card{
			Title: cardTitle(item, i, "Item", "title", "content_type"),
			Badge: badge(item.Get("estimated_time")),
			Blocks: concat(
				arrayBody(item),
				text(item.Get("description")),
				text(item.Get("full_content")),
				labeled("Learning Objectives", list(item.Get("learning_objectives"), false)),
				labeled("Key Points", list(item.Get("key_points"), false)),
			),
		}
	}))
	section(v, "In-class Activities", cards(c.Get("in_class_activities"), func(i int, act payload.Value) Card {
		return Card{
			Title: cardTitle(act, i, "Activity", "activity_name"),
			Badge: badge(act.Get("duration")),
			Blocks: concat(
				arrayBody(act),
				text(act.Get("description")),
				text(act.Get("detailed_instructions")),
				labeled("Materials", list(act.Get("materials_needed"), false)),
				note("Assessment", act.Get("assessment_method")),
			),
		}
	}))
	section(v, "Post-class Reinforcement", text(c.Get("post_class_reinforcement")))
	section(v, "Assessment Strategy", text(c.Get("assessment_strategy")))
	section(v, "Technology Tools", list(c.Get("technology_tools"), false))
	v.Footer = &Footer{
		Title:       "Flipped Classroom Framework",
		Description: "Learn basics at home, apply in class through active learning",
	}
	return v
}

func (r *resolver) inquiry() *View {
	c := r.content
	state, ok := r.primaryState("investigation_phases")
	if !ok {
		return r.placeholderView(state, "Inquiry Based Learning", "investigation phases")
	}

	v := r.newView()
	v.Header = r.standardHeader("inquiry_based_learning")
	section(v, "Essential Questions", text(c.Get("essential_questions")))
	section(v, "Investigation Phases", cards(c.Get("investigation_phases"), func(i int, phase payload.Value) Card {
		return Card{
			Title: cardTitle(phase, i, "Phase", "phase_name"),
			Blocks: concat(
				arrayBody(phase),
				text(phase.Get("content_guide")),
				labeled("Objectives", list(phase.Get("objectives"), false)),
				labeled("Activities", list(phase.Get("activities"), false)),
				labeled("Research Methods", list(phase.Get("research_methods"), false)),
				labeled("Support Materials", list(phase.Get("support_materials"), false)),
				labeled("Example Investigations", list(phase.Get("example_investigations"), false)),
			),
		}
	}))
	section(v, "Research Skills", text(c.Get("research_skills")))
	section(v, "Presentation Formats", text(c.Get("presentation_formats")))
	section(v, "Assessment Rubric", text(c.Get("assessment_rubric")))
	v.Footer = &Footer{
		Title:       "Inquiry Based Learning Framework",
		Description: "Students investigate questions through research, analysis, and presentation",
	}
	return v
}
