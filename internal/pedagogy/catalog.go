package pedagogy

// Parameter is one entry of a pedagogy's parameter schema: a name and the
// descriptive hint shown beneath its input.
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Hint string `json:"hint" yaml:"hint"`
}

// Info describes one pedagogy as published by the catalog provider.
// Parameters keep the provider's order.
type Info struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Parameters  []Parameter `json:"parameters" yaml:"parameters"`
}

// Catalog is the ordered list of pedagogies offered on the landing page.
type Catalog []Info

// Lookup returns the entry named id.
func (c Catalog) Lookup(id string) (Info, bool) {
	for _, info := range c {
		if info.Name == id {
			return info, true
		}
	}
	return Info{}, false
}

// BuiltinCatalog mirrors what the generation backend publishes. It is served
// when the backend catalog cannot be fetched.
func BuiltinCatalog() Catalog {
	return Catalog{
		{
			Name:        BloomsTaxonomy,
			Description: "Structures learning through six cognitive levels - Remember, Understand, Apply, Analyze, Evaluate, and Create.",
			Parameters: []Parameter{
				{Name: "target_level", Hint: "Cognitive level to focus on (default: 'All levels')"},
				{Name: "grade_level", Hint: "Target grade level (default: 'General')"},
			},
		},
		{
			Name:        SocraticQuestioning,
			Description: "Guides learning through strategic questioning that promotes critical thinking and self-discovery.",
			Parameters: []Parameter{
				{Name: "depth_level", Hint: "Depth of inquiry (default: 'Intermediate')"},
				{Name: "student_level", Hint: "Student level (default: 'High School')"},
			},
		},
		{
			Name:        ProjectBasedLearning,
			Description: "Engages students in complex, real-world projects that develop deep understanding and practical skills.",
			Parameters: []Parameter{
				{Name: "project_duration", Hint: "Project duration (default: '4-6 weeks')"},
				{Name: "team_size", Hint: "Team size (default: '3-4 students')"},
				{Name: "industry_focus", Hint: "Industry focus (default: 'General')"},
			},
		},
		{
			Name:        FlippedClassroom,
			Description: "Students learn foundational content at home and engage in active learning during class time.",
			Parameters: []Parameter{
				{Name: "class_duration", Hint: "Class duration (default: '50 minutes')"},
				{Name: "prep_time", Hint: "Preparation time (default: '30-45 minutes')"},
				{Name: "technology_level", Hint: "Technology level (default: 'Moderate')"},
			},
		},
		{
			Name:        InquiryBasedLearning,
			Description: "Students develop understanding through questioning, investigation, and discovery.",
			Parameters: []Parameter{
				{Name: "inquiry_type", Hint: "Type of inquiry (default: 'Guided')"},
				{Name: "investigation_scope", Hint: "Investigation scope (default: 'Moderate')"},
				{Name: "student_autonomy", Hint: "Student autonomy level (default: 'Balanced')"},
			},
		},
		{
			Name:        Constructivist,
			Description: "Students actively build understanding through experience, reflection, and social interaction.",
			Parameters: []Parameter{
				{Name: "prior_knowledge_level", Hint: "Prior knowledge level (default: 'Mixed')"},
				{Name: "social_interaction_focus", Hint: "Social interaction focus (default: 'High')"},
				{Name: "reflection_emphasis", Hint: "Reflection emphasis (default: 'Strong')"},
			},
		},
		{
			Name:        Gamification,
			Description: "Applies game design elements to increase engagement, motivation, and learning outcomes.",
			Parameters: []Parameter{
				{Name: "game_mechanics", Hint: "Game mechanics (default: 'Points, badges, levels')"},
				{Name: "competition_level", Hint: "Competition level (default: 'Moderate')"},
				{Name: "technology_platform", Hint: "Technology platform (default: 'Web-based')"},
			},
		},
		{
			Name:        PeerLearning,
			Description: "Students learn from and with each other through structured collaborative activities.",
			Parameters: []Parameter{
				{Name: "group_size", Hint: "Group size (default: '3-4 students')"},
				{Name: "collaboration_type", Hint: "Collaboration type (default: 'Mixed')"},
				{Name: "skill_diversity", Hint: "Skill diversity level (default: 'Moderate')"},
			},
		},
	}
}

// defaults seed the parameter form and fill unset values on submit.
var defaults = map[string][]Parameter{
	BloomsTaxonomy: {
		{Name: "grade_level", Hint: "High School"},
		{Name: "target_level", Hint: "Intermediate"},
	},
	SocraticQuestioning: {
		{Name: "depth_level", Hint: "Intermediate"},
		{Name: "student_level", Hint: "High School"},
	},
	ProjectBasedLearning: {
		{Name: "project_duration", Hint: "4-6 weeks"},
		{Name: "team_size", Hint: "3-4 students"},
		{Name: "industry_focus", Hint: "General"},
	},
	FlippedClassroom: {
		{Name: "class_duration", Hint: "50 minutes"},
		{Name: "prep_time", Hint: "30-45 minutes"},
		{Name: "technology_level", Hint: "Moderate"},
	},
	InquiryBasedLearning: {
		{Name: "inquiry_type", Hint: "Guided"},
		{Name: "investigation_scope", Hint: "Moderate"},
		{Name: "student_autonomy", Hint: "Balanced"},
	},
	Constructivist: {
		{Name: "prior_knowledge_level", Hint: "Mixed"},
		{Name: "social_interaction_focus", Hint: "High"},
		{Name: "reflection_emphasis", Hint: "Strong"},
	},
	Gamification: {
		{Name: "game_mechanics", Hint: "Points, badges, levels"},
		{Name: "competition_level", Hint: "Moderate"},
		{Name: "technology_platform", Hint: "Web-based"},
	},
	PeerLearning: {
		{Name: "group_size", Hint: "3-4 students"},
		{Name: "collaboration_type", Hint: "Mixed"},
		{Name: "skill_diversity", Hint: "Moderate"},
	},
}

// DefaultParams returns a fresh copy of the default parameter values for id.
// Unknown identifiers have no defaults.
func DefaultParams(id string) map[string]string {
	out := make(map[string]string, len(defaults[id]))
	for _, p := range defaults[id] {
		out[p.Name] = p.Hint
	}
	return out
}

// DefaultParamNames returns the defaulted parameter names of id in form order.
func DefaultParamNames(id string) []string {
	names := make([]string, 0, len(defaults[id]))
	for _, p := range defaults[id] {
		names = append(names, p.Name)
	}
	return names
}

var options = map[string][]string{
	"grade_level":  {"Elementary", "Middle School", "High School", "College", "University"},
	"target_level": {"Beginner", "Intermediate", "Advanced", "Expert"},

	"depth_level":   {"Basic", "Intermediate", "Advanced", "Expert"},
	"student_level": {"Elementary", "Middle School", "High School", "College", "University"},

	"project_duration": {"1-2 weeks", "2-4 weeks", "4-6 weeks", "6-8 weeks", "8+ weeks"},
	"team_size":        {"Individual", "2 students", "3-4 students", "5-6 students", "7+ students"},
	"industry_focus":   {"General", "Technology", "Healthcare", "Education", "Business", "Arts", "Science", "Engineering"},

	"class_duration":   {"30 minutes", "45 minutes", "50 minutes", "60 minutes", "90 minutes", "120 minutes"},
	"prep_time":        {"15-20 minutes", "20-30 minutes", "30-45 minutes", "45-60 minutes", "60+ minutes"},
	"technology_level": {"Basic", "Moderate", "Advanced", "Expert"},

	"inquiry_type":        {"Structured", "Guided", "Open", "Free"},
	"investigation_scope": {"Limited", "Moderate", "Extensive", "Comprehensive"},
	"student_autonomy":    {"Low", "Balanced", "High", "Complete"},

	"prior_knowledge_level":    {"None", "Basic", "Mixed", "Advanced", "Expert"},
	"social_interaction_focus": {"Low", "Medium", "High", "Essential"},
	"reflection_emphasis":      {"Minimal", "Moderate", "Strong", "Critical"},

	"game_mechanics":      {"Points, badges, levels", "Leaderboards", "Achievements", "Quests", "Story-based", "Competition", "Collaboration"},
	"competition_level":   {"None", "Low", "Moderate", "High", "Intense"},
	"technology_platform": {"Web-based", "Mobile app", "Desktop software", "Mixed reality", "Board games", "Hybrid"},

	"group_size":         {"2 students", "3-4 students", "5-6 students", "7-8 students", "9+ students"},
	"collaboration_type": {"Individual", "Pairs", "Small groups", "Large groups", "Mixed"},
	"skill_diversity":    {"Low", "Moderate", "High", "Mixed", "Random"},
}

var fallbackOptions = []string{"Option 1", "Option 2", "Option 3"}

// Options returns the selectable values for a parameter name.
func Options(param string) []string {
	src, ok := options[param]
	if !ok {
		src = fallbackOptions
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
