package model

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() PreScreeningSubmission {
	return PreScreeningSubmission{
		TypeOfExposure:      "Bite",
		ExposureDate:        "2026-08-29",
		AnimalType:          "Dog",
		AnimalStatus:        "Alive and Healthy",
		LocalTreatment:      "Washed with soap and water",
		PlaceOfExposure:     "Home",
		AffectedArea:        "Lower Extremities",
		TetanusImmunization: "No",
		HRTIGImmunization:   "No",
	}
}

func TestIntakeFormValidation(t *testing.T) {
	RegisterValidations()

	require.NoError(t, binding.Validator.ValidateStruct(validSubmission()))

	t.Run("other place needs the specify text", func(t *testing.T) {
		sub := validSubmission()
		sub.PlaceOfExposure = "Other"
		assert.Error(t, binding.Validator.ValidateStruct(sub))

		place := "Neighbor's backyard"
		sub.PlaceOfExposureOther = &place
		assert.NoError(t, binding.Validator.ValidateStruct(sub))
	})

	t.Run("other affected area needs the specify text", func(t *testing.T) {
		sub := validSubmission()
		sub.AffectedArea = "Other"
		assert.Error(t, binding.Validator.ValidateStruct(sub))

		area := "Left ear"
		sub.AffectedAreaOther = &area
		assert.NoError(t, binding.Validator.ValidateStruct(sub))
	})

	t.Run("immunoglobulin yes needs its date", func(t *testing.T) {
		sub := validSubmission()
		sub.HRTIGImmunization = "Yes"
		assert.Error(t, binding.Validator.ValidateStruct(sub))

		date := "2026-08-28"
		sub.HRTIGDate = &date
		assert.NoError(t, binding.Validator.ValidateStruct(sub))
	})

	t.Run("malformed exposure date is rejected", func(t *testing.T) {
		sub := validSubmission()
		sub.ExposureDate = "29/08/2026"
		assert.Error(t, binding.Validator.ValidateStruct(sub))
	})
}
