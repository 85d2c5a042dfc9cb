package prescreening

import (
	"strings"

	"github.com/Ang3lito/rabiesresq/internal/model"
)

// ClassifyInput captures the intake answers the classifier reads.
type ClassifyInput struct {
	TypeOfExposure   string
	AffectedArea     string
	WoundDescription string
	BleedingType     string
	AnimalStatus     string
}

var (
	highRiskExposures = map[string]bool{
		"Bite":                             true,
		"Contamination of Mucous Membrane": true,
	}
	highRiskAreas = map[string]bool{
		"Head/Face": true,
		"Neck":      true,
	}
	severeWounds = map[string]bool{
		"Punctured": true,
		"Lacerated": true,
		"Avulsed":   true,
	}
	highRiskAnimalStatus = map[string]bool{
		"Sick": true,
		"Died": true,
		"Lost": true,
	}
)

// Classify maps intake answers to a WHO exposure category. Any one
// severe indicator is enough for Category III; minor-wound indicators
// give Category II; everything else falls through to Category I.
func Classify(in ClassifyInput) string {
	exposure := strings.TrimSpace(in.TypeOfExposure)
	area := strings.TrimSpace(in.AffectedArea)
	wound := strings.TrimSpace(in.WoundDescription)
	bleeding := strings.TrimSpace(in.BleedingType)
	animal := strings.TrimSpace(in.AnimalStatus)

	if highRiskExposures[exposure] ||
		highRiskAreas[area] ||
		bleeding == model.BleedingSpontaneous || bleeding == model.BleedingBoth ||
		severeWounds[wound] ||
		highRiskAnimalStatus[animal] {
		return model.RiskCategoryIII
	}

	if exposure == "Scratch" || exposure == "Non-Bite" ||
		wound == "Abrasion" ||
		bleeding == model.BleedingInduced {
		return model.RiskCategoryII
	}

	return model.RiskCategoryI
}

// BleedingType folds the two intake checkboxes into the stored
// bleeding label.
func BleedingType(spontaneous, induced bool) string {
	switch {
	case spontaneous && induced:
		return model.BleedingBoth
	case spontaneous:
		return model.BleedingSpontaneous
	case induced:
		return model.BleedingInduced
	}
	return model.BleedingNone
}
