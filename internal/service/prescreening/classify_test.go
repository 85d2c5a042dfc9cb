package prescreening

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ang3lito/rabiesresq/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   ClassifyInput
		want string
	}{
		{
			name: "bite is category III",
			in:   ClassifyInput{TypeOfExposure: "Bite", AnimalStatus: "Alive"},
			want: model.RiskCategoryIII,
		},
		{
			name: "mucous membrane contamination is category III",
			in:   ClassifyInput{TypeOfExposure: "Contamination of Mucous Membrane"},
			want: model.RiskCategoryIII,
		},
		{
			name: "head wound is category III regardless of exposure type",
			in:   ClassifyInput{TypeOfExposure: "Scratch", AffectedArea: "Head/Face"},
			want: model.RiskCategoryIII,
		},
		{
			name: "neck is category III",
			in:   ClassifyInput{TypeOfExposure: "Non-Bite", AffectedArea: "Neck"},
			want: model.RiskCategoryIII,
		},
		{
			name: "spontaneous bleeding is category III",
			in:   ClassifyInput{TypeOfExposure: "Scratch", BleedingType: model.BleedingSpontaneous},
			want: model.RiskCategoryIII,
		},
		{
			name: "both bleeding kinds is category III",
			in:   ClassifyInput{TypeOfExposure: "Scratch", BleedingType: model.BleedingBoth},
			want: model.RiskCategoryIII,
		},
		{
			name: "punctured wound is category III",
			in:   ClassifyInput{TypeOfExposure: "Scratch", WoundDescription: "Punctured"},
			want: model.RiskCategoryIII,
		},
		{
			name: "sick animal is category III",
			in:   ClassifyInput{TypeOfExposure: "Scratch", AnimalStatus: "Sick"},
			want: model.RiskCategoryIII,
		},
		{
			name: "lost animal is category III",
			in:   ClassifyInput{TypeOfExposure: "Non-Bite", AnimalStatus: "Lost"},
			want: model.RiskCategoryIII,
		},
		{
			name: "scratch without severe indicators is category II",
			in:   ClassifyInput{TypeOfExposure: "Scratch", AnimalStatus: "Alive"},
			want: model.RiskCategoryII,
		},
		{
			name: "abrasion is category II",
			in:   ClassifyInput{WoundDescription: "Abrasion"},
			want: model.RiskCategoryII,
		},
		{
			name: "induced bleeding alone is category II",
			in:   ClassifyInput{BleedingType: model.BleedingInduced},
			want: model.RiskCategoryII,
		},
		{
			name: "no indicators falls through to category I",
			in:   ClassifyInput{TypeOfExposure: "Lick on intact skin", AnimalStatus: "Alive"},
			want: model.RiskCategoryI,
		},
		{
			name: "empty input is category I",
			in:   ClassifyInput{},
			want: model.RiskCategoryI,
		},
		{
			name: "whitespace is trimmed before matching",
			in:   ClassifyInput{TypeOfExposure: " Bite "},
			want: model.RiskCategoryIII,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestBleedingType(t *testing.T) {
	assert.Equal(t, model.BleedingBoth, BleedingType(true, true))
	assert.Equal(t, model.BleedingSpontaneous, BleedingType(true, false))
	assert.Equal(t, model.BleedingInduced, BleedingType(false, true))
	assert.Equal(t, model.BleedingNone, BleedingType(false, false))
}

func TestComposite(t *testing.T) {
	other := "neighbor's backyard"
	assert.Equal(t, "Other: neighbor's backyard", composite("Other", "Other", &other))
	assert.Equal(t, "Park", composite("Park", "Other", &other))
	assert.Equal(t, "Other", composite("Other", "Other", nil))

	empty := ""
	assert.Equal(t, "Other", composite("Other", "Other", &empty))
}

func TestNewReferenceCode(t *testing.T) {
	code, err := newReferenceCode()
	assert.NoError(t, err)
	assert.Regexp(t, `^RRQ-[0-9A-F]{8}$`, code)

	other, err := newReferenceCode()
	assert.NoError(t, err)
	assert.NotEqual(t, code, other)
}
