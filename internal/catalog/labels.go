package catalog

import (
	"strings"

	"github.com/brvagas/jobhub/internal/jobsource"
)

// TagUnknown is the value reported when no label matches a vocabulary.
const TagUnknown = "Não informado"

// MaxDisplayTechnologies caps how many technology tags are shown on a card.
// Filtering is not capped.
const MaxDisplayTechnologies = 3

// Vocabularies for tag inference. Labels are an unstructured bag of free
// text; these are the only magic strings in the system.
var (
	modalityVocab = []string{"Remoto", "Presencial", "Híbrido", "Alocado"}

	levelVocab = []string{"Júnior", "Pleno", "Sênior", "Senior", "Trainee", "Estágio", "Especialista"}

	techVocab = []string{
		"React", "Angular", "Vue.js", "Node.js", "Python", "Java",
		"JavaScript", "TypeScript", "PHP", "Ruby", "Go",
	}
)

// Filter option lists surfaced to the presentation layer.
var (
	FilterTechnologies = []string{
		"JavaScript", "TypeScript", "React", "Vue", "Angular", "Node.js",
		"Python", "Java", "C#", "PHP", "Go", "Rust", "Swift", "Kotlin",
	}
	FilterModalities   = []string{"Remoto", "Presencial", "Híbrido"}
	FilterLevels       = []string{"Júnior", "Pleno", "Sênior", "Staff"}
	FilterRepositories = []string{"backend", "frontend", "mobile", "devops", "data"}
)

// Tags is the structured classification inferred from a posting's labels.
type Tags struct {
	Modality     string
	Level        string
	Technologies []string
}

// Classify maps a label bag to modality, level and technologies using
// exact-membership vocabulary tests. At most one modality and one level are
// taken (first match in label order); technology matches are unbounded.
func Classify(labels []jobsource.Label) Tags {
	tags := Tags{Modality: TagUnknown, Level: TagUnknown}

	for _, label := range labels {
		if tags.Modality == TagUnknown && contains(modalityVocab, label.Name) {
			tags.Modality = label.Name
		}
		if tags.Level == TagUnknown && contains(levelVocab, label.Name) {
			tags.Level = label.Name
		}
		if contains(techVocab, label.Name) {
			tags.Technologies = append(tags.Technologies, label.Name)
		}
	}

	return tags
}

// DisplayTechnologies returns the technologies capped for card display.
func (t Tags) DisplayTechnologies() []string {
	if len(t.Technologies) > MaxDisplayTechnologies {
		return t.Technologies[:MaxDisplayTechnologies]
	}
	return t.Technologies
}

func contains(vocab []string, name string) bool {
	for _, v := range vocab {
		if v == name {
			return true
		}
	}
	return false
}

// hasLabelContaining reports whether any label name contains value,
// case-insensitively. This is the predicate shared by the technology,
// modality and level filters.
func hasLabelContaining(job jobsource.Job, value string) bool {
	needle := strings.ToLower(value)
	for _, label := range job.Labels {
		if strings.Contains(strings.ToLower(label.Name), needle) {
			return true
		}
	}
	return false
}

// hasLabelContainingAny is hasLabelContaining over synonym sets, used by the
// stats derivation where both localized spellings count.
func hasLabelContainingAny(job jobsource.Job, values ...string) bool {
	for _, label := range job.Labels {
		name := strings.ToLower(label.Name)
		for _, v := range values {
			if strings.Contains(name, v) {
				return true
			}
		}
	}
	return false
}
