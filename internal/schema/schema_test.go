package schema

import (
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the referential rules the services lean on.
// They need a real database; set TEST_DATABASE_URL to run them.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	require.NoError(t, Drop(db))
	require.NoError(t, Create(db))

	t.Cleanup(func() {
		_ = Drop(db)
		_ = db.Close()
	})
	return db
}

func pqCode(t *testing.T, err error) string {
	t.Helper()
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr), "expected a pq error, got %v", err)
	return string(pqErr.Code)
}

func insertUser(t *testing.T, db *sqlx.DB, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO users (id, username, email, password_hash, role)
		VALUES ($1, $2, $3, 'x', $4)`,
		id, "user-"+id.String()[:8], id.String()[:8]+"@example.com", role)
	require.NoError(t, err)
	return id
}

func insertPatient(t *testing.T, db *sqlx.DB, userID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO patients (id, user_id) VALUES ($1, $2)`, id, userID)
	require.NoError(t, err)
	return id
}

func insertClinic(t *testing.T, db *sqlx.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO clinics (id, name) VALUES ($1, 'Bite Center')`, id)
	require.NoError(t, err)
	return id
}

func insertPersonnel(t *testing.T, db *sqlx.DB, userID, clinicID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO clinic_personnel (id, user_id, clinic_id, employee_id, title)
		VALUES ($1, $2, $3, $4, 'Nurse')`, id, userID, clinicID, "EMP-"+id.String()[:8])
	require.NoError(t, err)
	return id
}

func insertCase(t *testing.T, db *sqlx.DB, patientID, clinicID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO cases (id, patient_id, clinic_id, exposure_date, risk_level)
		VALUES ($1, $2, $3, '2026-08-01', 'Category II')`, id, patientID, clinicID)
	require.NoError(t, err)
	return id
}

func TestCreateIsIdempotent(t *testing.T) {
	db := testDB(t)
	assert.NoError(t, Create(db))
}

func TestRoleCheckConstraint(t *testing.T) {
	db := testDB(t)

	_, err := db.Exec(`INSERT INTO users (id, username, email, password_hash, role)
		VALUES ($1, 'bad-role', 'bad@example.com', 'x', 'superuser')`, uuid.New())
	assert.Equal(t, "23514", pqCode(t, err))
}

func TestCaseRequiresExistingPatientAndClinic(t *testing.T) {
	db := testDB(t)

	_, err := db.Exec(`INSERT INTO cases (id, patient_id, clinic_id, exposure_date, risk_level)
		VALUES ($1, $2, $3, '2026-08-01', 'Category I')`, uuid.New(), uuid.New(), uuid.New())
	assert.Equal(t, "23503", pqCode(t, err))
}

func TestUserDeleteCascadesToPatientProfile(t *testing.T) {
	db := testDB(t)

	userID := insertUser(t, db, "patient")
	patientID := insertPatient(t, db, userID)

	_, err := db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM patients WHERE id = $1`, patientID))
	assert.Zero(t, count)
}

func TestPatientProfileIsOneToOne(t *testing.T) {
	db := testDB(t)

	userID := insertUser(t, db, "patient")
	insertPatient(t, db, userID)

	_, err := db.Exec(`INSERT INTO patients (id, user_id) VALUES ($1, $2)`, uuid.New(), userID)
	assert.Equal(t, "23505", pqCode(t, err))
}

func TestClinicWithStaffCannotBeDeleted(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	staffUser := insertUser(t, db, "clinic_personnel")
	insertPersonnel(t, db, staffUser, clinicID)

	_, err := db.Exec(`DELETE FROM clinics WHERE id = $1`, clinicID)
	assert.Equal(t, "23503", pqCode(t, err))
}

func TestPatientWithCasesCannotBeDeleted(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	userID := insertUser(t, db, "patient")
	patientID := insertPatient(t, db, userID)
	insertCase(t, db, patientID, clinicID)

	_, err := db.Exec(`DELETE FROM patients WHERE id = $1`, patientID)
	assert.Equal(t, "23503", pqCode(t, err))
}

func TestCaseDeleteCascadesToClinicalChildren(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	userID := insertUser(t, db, "patient")
	patientID := insertPatient(t, db, userID)
	caseID := insertCase(t, db, patientID, clinicID)

	_, err := db.Exec(`INSERT INTO pre_screening_details (case_id) VALUES ($1)`, caseID)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO reference_codes (id, case_id, code) VALUES ($1, $2, 'RRQ-TEST0001')`,
		uuid.New(), caseID)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM cases WHERE id = $1`, caseID)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM pre_screening_details WHERE case_id = $1`, caseID))
	assert.Zero(t, count)
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM reference_codes WHERE case_id = $1`, caseID))
	assert.Zero(t, count)
}

func TestCaseDetailIsOneToOne(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	userID := insertUser(t, db, "patient")
	patientID := insertPatient(t, db, userID)
	caseID := insertCase(t, db, patientID, clinicID)

	_, err := db.Exec(`INSERT INTO pre_screening_details (case_id) VALUES ($1)`, caseID)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO pre_screening_details (case_id) VALUES ($1)`, caseID)
	assert.Equal(t, "23505", pqCode(t, err))
}

func TestAppointmentSurvivesPersonnelDeparture(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	patientUser := insertUser(t, db, "patient")
	patientID := insertPatient(t, db, patientUser)
	caseID := insertCase(t, db, patientID, clinicID)
	staffUser := insertUser(t, db, "clinic_personnel")
	personnelID := insertPersonnel(t, db, staffUser, clinicID)

	apptID := uuid.New()
	_, err := db.Exec(`INSERT INTO appointments (id, patient_id, clinic_id, case_id, personnel_id, appointment_datetime)
		VALUES ($1, $2, $3, $4, $5, '2026-08-02T09:00:00Z')`,
		apptID, patientID, clinicID, caseID, personnelID)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM clinic_personnel WHERE id = $1`, personnelID)
	require.NoError(t, err)

	var got *string
	require.NoError(t, db.Get(&got, `SELECT personnel_id FROM appointments WHERE id = $1`, apptID))
	assert.Nil(t, got)
}

func TestVaccinationRecordRestrictsPersonnelDeletion(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	patientUser := insertUser(t, db, "patient")
	patientID := insertPatient(t, db, patientUser)
	caseID := insertCase(t, db, patientID, clinicID)
	staffUser := insertUser(t, db, "clinic_personnel")
	personnelID := insertPersonnel(t, db, staffUser, clinicID)

	_, err := db.Exec(`INSERT INTO vaccination_records (id, case_id, personnel_id, vaccine_name, dose_number, date_administered)
		VALUES ($1, $2, $3, 'PVRV', 1, '2026-08-02')`, uuid.New(), caseID, personnelID)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM clinic_personnel WHERE id = $1`, personnelID)
	assert.Equal(t, "23503", pqCode(t, err))
}

func TestAuditLogActionCheck(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	staffUser := insertUser(t, db, "clinic_personnel")
	personnelID := insertPersonnel(t, db, staffUser, clinicID)

	_, err := db.Exec(`INSERT INTO medical_audit_logs (id, personnel_id, entity_type, entity_id, action)
		VALUES ($1, $2, 'case', $3, 'MERGE')`, uuid.New(), personnelID, uuid.New())
	assert.Equal(t, "23514", pqCode(t, err))
}

func TestNotificationKeepsHistoryAfterUserDeletion(t *testing.T) {
	db := testDB(t)

	userID := insertUser(t, db, "patient")

	noteID := uuid.New()
	_, err := db.Exec(`INSERT INTO notifications (id, user_id, subject, message)
		VALUES ($1, $2, 'Reminder', 'Dose due')`, noteID, userID)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	require.NoError(t, err)

	var got *string
	require.NoError(t, db.Get(&got, `SELECT user_id FROM notifications WHERE id = $1`, noteID))
	assert.Nil(t, got)
}

func TestReferenceCodeIsUniquePerCase(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	userID := insertUser(t, db, "patient")
	patientID := insertPatient(t, db, userID)
	caseID := insertCase(t, db, patientID, clinicID)

	_, err := db.Exec(`INSERT INTO reference_codes (id, case_id, code) VALUES ($1, $2, 'RRQ-AAAA0001')`,
		uuid.New(), caseID)
	require.NoError(t, err)

	// Same case, second code.
	_, err = db.Exec(`INSERT INTO reference_codes (id, case_id, code) VALUES ($1, $2, 'RRQ-AAAA0002')`,
		uuid.New(), caseID)
	assert.Equal(t, "23505", pqCode(t, err))
}

func TestPersonnelUniquenessConstraints(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	userID := insertUser(t, db, "clinic_personnel")
	personnelID := insertPersonnel(t, db, userID, clinicID)

	var employeeID string
	require.NoError(t, db.Get(&employeeID,
		`SELECT employee_id FROM clinic_personnel WHERE id = $1`, personnelID))

	// Same employee_id at another clinic.
	otherUser := insertUser(t, db, "clinic_personnel")
	_, err := db.Exec(`INSERT INTO clinic_personnel (id, user_id, clinic_id, employee_id, title)
		VALUES ($1, $2, $3, $4, 'Doctor')`, uuid.New(), otherUser, insertClinic(t, db), employeeID)
	assert.Equal(t, "23505", pqCode(t, err))

	// Same user enrolled twice at the same clinic.
	_, err = db.Exec(`INSERT INTO clinic_personnel (id, user_id, clinic_id, employee_id, title)
		VALUES ($1, $2, $3, $4, 'Doctor')`, uuid.New(), userID, clinicID, "EMP-SECOND")
	assert.Equal(t, "23505", pqCode(t, err))
}

func TestRoleExtensionMismatchIsNotConstrained(t *testing.T) {
	db := testDB(t)

	// The schema deliberately does not cross-check users.role against
	// the extension table holding the profile; the service layer does.
	clinicID := insertClinic(t, db)
	userID := insertUser(t, db, "patient")
	insertPersonnel(t, db, userID, clinicID)

	var count int
	require.NoError(t, db.Get(&count,
		`SELECT COUNT(*) FROM clinic_personnel WHERE user_id = $1`, userID))
	assert.Equal(t, 1, count)
}

func TestEvaluationOutlivesGuidelineDeactivation(t *testing.T) {
	db := testDB(t)

	clinicID := insertClinic(t, db)
	userID := insertUser(t, db, "patient")
	patientID := insertPatient(t, db, userID)
	caseID := insertCase(t, db, patientID, clinicID)

	guidelineID := uuid.New()
	_, err := db.Exec(`INSERT INTO pre_screening_guidelines (id, criteria_name, score_value, risk_level)
		VALUES ($1, 'Animal died within observation', 3, 'Category III')`, guidelineID)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO pre_screening_evaluations (id, case_id, guideline_id, applied_score)
		VALUES ($1, $2, $3, 3)`, uuid.New(), caseID, guidelineID)
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE pre_screening_guidelines SET is_active = 0 WHERE id = $1`, guidelineID)
	require.NoError(t, err)

	// The retired entry still resolves from its evaluations.
	var criteria string
	require.NoError(t, db.Get(&criteria, `
		SELECT g.criteria_name
		FROM pre_screening_evaluations e
		JOIN pre_screening_guidelines g ON g.id = e.guideline_id
		WHERE e.case_id = $1`, caseID))
	assert.Equal(t, "Animal died within observation", criteria)

	// And cannot be deleted while referenced.
	_, err = db.Exec(`DELETE FROM pre_screening_guidelines WHERE id = $1`, guidelineID)
	assert.Equal(t, "23503", pqCode(t, err))
}
