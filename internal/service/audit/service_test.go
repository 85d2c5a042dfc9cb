package audit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildEntriesWithoutChanges(t *testing.T) {
	personnelID := uuid.New()
	entityID := uuid.New()

	entries := buildEntries(personnelID, "CLOSE", "case", entityID, &LogOptions{})

	assert.Len(t, entries, 1)
	assert.Equal(t, personnelID, entries[0].PersonnelID)
	assert.Equal(t, "CLOSE", entries[0].Action)
	assert.Equal(t, "case", entries[0].EntityType)
	assert.Equal(t, entityID, entries[0].EntityID)
	assert.Nil(t, entries[0].FieldName)
	assert.Nil(t, entries[0].OldValue)
	assert.Nil(t, entries[0].NewValue)
}

func TestBuildEntriesOneRowPerChange(t *testing.T) {
	personnelID := uuid.New()
	entityID := uuid.New()
	userID := uuid.New()
	caseID := uuid.New()

	opts := &LogOptions{
		UserID: &userID,
		CaseID: &caseID,
		Changes: []FieldChange{
			{Field: "status", OldValue: strPtr("Open"), NewValue: strPtr("Closed")},
			{Field: "dose_number", NewValue: strPtr("2")},
		},
	}

	entries := buildEntries(personnelID, "UPDATE", "case", entityID, opts)

	assert.Len(t, entries, 2)

	assert.Equal(t, "status", *entries[0].FieldName)
	assert.Equal(t, "Open", *entries[0].OldValue)
	assert.Equal(t, "Closed", *entries[0].NewValue)

	assert.Equal(t, "dose_number", *entries[1].FieldName)
	assert.Nil(t, entries[1].OldValue)
	assert.Equal(t, "2", *entries[1].NewValue)

	// Context columns repeat on every row.
	for _, e := range entries {
		assert.Equal(t, &userID, e.UserID)
		assert.Equal(t, &caseID, e.CaseID)
		assert.Equal(t, "UPDATE", e.Action)
	}
}

func TestBuildEntriesFieldNamesAreIndependent(t *testing.T) {
	opts := &LogOptions{
		Changes: []FieldChange{
			{Field: "first_name", NewValue: strPtr("Ana")},
			{Field: "last_name", NewValue: strPtr("Reyes")},
		},
	}

	entries := buildEntries(uuid.New(), "UPDATE", "patient", uuid.New(), opts)

	// Each entry must hold its own copy, not a shared loop variable.
	assert.Equal(t, "first_name", *entries[0].FieldName)
	assert.Equal(t, "last_name", *entries[1].FieldName)
}

func TestDiff(t *testing.T) {
	var changes []FieldChange

	changes = Diff(changes, "both_nil", nil, nil)
	assert.Empty(t, changes)

	changes = Diff(changes, "unchanged", strPtr("same"), strPtr("same"))
	assert.Empty(t, changes)

	changes = Diff(changes, "updated", strPtr("old"), strPtr("new"))
	changes = Diff(changes, "set", nil, strPtr("value"))
	changes = Diff(changes, "cleared", strPtr("value"), nil)

	assert.Len(t, changes, 3)
	assert.Equal(t, "updated", changes[0].Field)
	assert.Equal(t, "set", changes[1].Field)
	assert.Nil(t, changes[1].OldValue)
	assert.Equal(t, "cleared", changes[2].Field)
	assert.Nil(t, changes[2].NewValue)
}
