package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brvagas/jobhub/internal/jobsource"
)

func labels(names ...string) []jobsource.Label {
	out := make([]jobsource.Label, len(names))
	for i, n := range names {
		out[i] = jobsource.Label{Name: n}
	}
	return out
}

func TestClassify_FullTagSet(t *testing.T) {
	tags := Classify(labels("Remoto", "Sênior", "React", "Node.js"))

	assert.Equal(t, "Remoto", tags.Modality)
	assert.Equal(t, "Sênior", tags.Level)
	assert.Equal(t, []string{"React", "Node.js"}, tags.Technologies)
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Postings occasionally carry conflicting labels; the first one in label
	// order is taken.
	tags := Classify(labels("Híbrido", "Remoto", "Pleno", "Júnior"))

	assert.Equal(t, "Híbrido", tags.Modality)
	assert.Equal(t, "Pleno", tags.Level)
}

func TestClassify_NoMatches(t *testing.T) {
	tags := Classify(labels("Urgente", "CLT"))

	assert.Equal(t, TagUnknown, tags.Modality)
	assert.Equal(t, TagUnknown, tags.Level)
	assert.Empty(t, tags.Technologies)
}

func TestClassify_EmptyLabels(t *testing.T) {
	tags := Classify(nil)

	assert.Equal(t, TagUnknown, tags.Modality)
	assert.Equal(t, TagUnknown, tags.Level)
}

func TestClassify_ExactMembershipOnly(t *testing.T) {
	// Classification uses exact vocabulary membership, not substring
	// matching; "Remoto - Brasil" is not a modality tag.
	tags := Classify(labels("Remoto - Brasil", "Sêniors"))

	assert.Equal(t, TagUnknown, tags.Modality)
	assert.Equal(t, TagUnknown, tags.Level)
}

func TestClassify_BothSeniorSpellings(t *testing.T) {
	assert.Equal(t, "Senior", Classify(labels("Senior")).Level)
	assert.Equal(t, "Sênior", Classify(labels("Sênior")).Level)
}

func TestDisplayTechnologies_CappedAtThree(t *testing.T) {
	tags := Classify(labels("React", "Angular", "Vue.js", "Python", "Java"))

	assert.Len(t, tags.Technologies, 5, "filtering sees every match")
	assert.Equal(t, []string{"React", "Angular", "Vue.js"}, tags.DisplayTechnologies())
}
