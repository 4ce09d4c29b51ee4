package render

// knownGroups are the synonym groups the generic layout looks for, in display
// order. Within a group the first truthy key wins and names the section.
var knownGroups = [][]string{
	{"driving_question"},
	{"project_overview", "overview", "summary"},
	{"learning_objectives", "objectives"},
	{"project_phases", "phases"},
	{"activities", "tasks", "stations"},
	{"assessment", "evaluation", "rubric"},
	{"resources", "materials", "references"},
	{"timeline", "schedule", "plan"},
	{"steps", "procedure"},
}

// RawSectionTitle titles the diagnostic block holding the whole payload.
const RawSectionTitle = "Full Details"

func (r *resolver) generic() *View {
	v := r.newView()
	v.Header = r.standardHeader(r.id)

	for _, group := range knownGroups {
		key, val, ok := r.content.First(group...)
		if !ok {
			continue
		}
		section(v, Humanize(key), text(val))
	}

	v.Sections = append(v.Sections, Section{
		Title:  RawSectionTitle,
		Blocks: []Block{{Kind: BlockCode, Text: r.content.Pretty()}},
	})
	return v
}
