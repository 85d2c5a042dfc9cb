package schema

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Create applies the full schema. Safe to call multiple times - every
// table and index uses IF NOT EXISTS.
func Create(db *sqlx.DB) error {
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Drop removes every table. Dependents go first so RESTRICT constraints
// never block the teardown. Intended for tests only.
func Drop(db *sqlx.DB) error {
	tables := []string{
		"medical_audit_logs",
		"notifications",
		"reference_codes",
		"case_notes",
		"vaccination_records",
		"appointments",
		"pre_screening_evaluations",
		"pre_screening_details",
		"pre_screening_guidelines",
		"cases",
		"reports",
		"patient_guidance",
		"clinic_personnel",
		"system_admins",
		"patients",
		"clinics",
		"users",
	}
	for _, t := range tables {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + t); err != nil {
			return fmt.Errorf("failed to drop %s: %w", t, err)
		}
	}
	return nil
}

const ddl = `
-- Identity
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('patient', 'clinic_personnel', 'system_admin')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Role extensions. One row per user per role, keyed back by a unique
-- user_id. Role consistency against users.role is NOT enforced here;
-- the service layer owns that.
CREATE TABLE IF NOT EXISTS patients (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
    first_name TEXT,
    last_name TEXT,
    phone_number TEXT,
    address TEXT,
    date_of_birth TEXT,
    age INTEGER,
    gender TEXT,
    allergies TEXT,
    pre_existing_conditions TEXT,
    current_medications TEXT,
    notification_settings TEXT,
    onboarding_completed INTEGER NOT NULL DEFAULT 0 CHECK (onboarding_completed IN (0, 1)),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patients_user_id ON patients(user_id);

CREATE TABLE IF NOT EXISTS system_admins (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
    first_name TEXT,
    last_name TEXT,
    employee_id TEXT NOT NULL UNIQUE,
    permissions_json TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_system_admins_user_id ON system_admins(user_id);

CREATE TABLE IF NOT EXISTS clinics (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT,
    contact_number TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS clinic_personnel (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
    clinic_id UUID NOT NULL REFERENCES clinics(id) ON DELETE RESTRICT,
    first_name TEXT,
    last_name TEXT,
    employee_id TEXT NOT NULL UNIQUE,
    license_number TEXT UNIQUE,
    title TEXT NOT NULL CHECK (title IN ('Doctor', 'Nurse')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (clinic_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_clinic_personnel_user_id ON clinic_personnel(user_id);
CREATE INDEX IF NOT EXISTS idx_clinic_personnel_clinic_id ON clinic_personnel(clinic_id);

-- Cases: the aggregation root for clinical records. Domain dates are
-- ISO-8601 text, matching intake forms.
CREATE TABLE IF NOT EXISTS cases (
    id UUID PRIMARY KEY,
    patient_id UUID NOT NULL REFERENCES patients(id) ON DELETE RESTRICT,
    clinic_id UUID NOT NULL REFERENCES clinics(id) ON DELETE RESTRICT,
    exposure_date TEXT NOT NULL,
    exposure_time TEXT,
    place_of_exposure TEXT,
    affected_area TEXT,
    type_of_exposure TEXT,
    animal_detail TEXT,
    animal_condition TEXT,
    risk_level TEXT NOT NULL,
    tetanus_prophylaxis_status TEXT,
    status TEXT NOT NULL DEFAULT 'Open',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_cases_patient_id ON cases(patient_id);
CREATE INDEX IF NOT EXISTS idx_cases_clinic_id ON cases(clinic_id);
CREATE INDEX IF NOT EXISTS idx_cases_risk_level ON cases(risk_level);

-- Strictly one detail row per case: the case id IS the primary key.
CREATE TABLE IF NOT EXISTS pre_screening_details (
    case_id UUID PRIMARY KEY REFERENCES cases(id) ON DELETE CASCADE,
    wound_description TEXT,
    bleeding_type TEXT,
    local_treatment TEXT,
    patient_prev_immunization TEXT,
    prev_vaccine_date TEXT,
    tetanus_date TEXT,
    hrtig_immunization INTEGER NOT NULL DEFAULT 0 CHECK (hrtig_immunization IN (0, 1)),
    hrtig_date TEXT,
    computed_score INTEGER,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Versioned scoring catalog. Rows are deactivated, never deleted, so
-- historical evaluations stay resolvable.
CREATE TABLE IF NOT EXISTS pre_screening_guidelines (
    id UUID PRIMARY KEY,
    criteria_name TEXT NOT NULL,
    condition_expression TEXT,
    score_value INTEGER NOT NULL,
    risk_level TEXT NOT NULL,
    version INTEGER NOT NULL DEFAULT 1,
    is_active INTEGER NOT NULL DEFAULT 1 CHECK (is_active IN (0, 1)),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_pre_screening_guidelines_is_active ON pre_screening_guidelines(is_active);

CREATE TABLE IF NOT EXISTS pre_screening_evaluations (
    id UUID PRIMARY KEY,
    case_id UUID NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
    guideline_id UUID NOT NULL REFERENCES pre_screening_guidelines(id) ON DELETE RESTRICT,
    applied_score INTEGER NOT NULL,
    evaluated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_pre_screening_evaluations_case_id ON pre_screening_evaluations(case_id);
CREATE INDEX IF NOT EXISTS idx_pre_screening_evaluations_guideline_id ON pre_screening_evaluations(guideline_id);

-- Appointments survive the departure of the assigned staff member
-- (personnel_id goes NULL), never the deletion of their case.
CREATE TABLE IF NOT EXISTS appointments (
    id UUID PRIMARY KEY,
    patient_id UUID NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
    clinic_id UUID NOT NULL REFERENCES clinics(id) ON DELETE RESTRICT,
    case_id UUID NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
    personnel_id UUID REFERENCES clinic_personnel(id) ON DELETE SET NULL,
    appointment_datetime TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'Scheduled',
    type TEXT,
    queue_position INTEGER,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments(patient_id);
CREATE INDEX IF NOT EXISTS idx_appointments_clinic_id ON appointments(clinic_id);
CREATE INDEX IF NOT EXISTS idx_appointments_case_id ON appointments(case_id);
CREATE INDEX IF NOT EXISTS idx_appointments_personnel_id ON appointments(personnel_id);

-- Vaccination history cannot be orphaned: the administering clinician
-- record is RESTRICTed while doses reference it.
CREATE TABLE IF NOT EXISTS vaccination_records (
    id UUID PRIMARY KEY,
    case_id UUID NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
    personnel_id UUID NOT NULL REFERENCES clinic_personnel(id) ON DELETE RESTRICT,
    vaccine_name TEXT NOT NULL,
    dose_number INTEGER NOT NULL,
    date_administered TEXT NOT NULL,
    route TEXT,
    site TEXT,
    remarks TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_vaccination_records_case_id ON vaccination_records(case_id);
CREATE INDEX IF NOT EXISTS idx_vaccination_records_personnel_id ON vaccination_records(personnel_id);

CREATE TABLE IF NOT EXISTS case_notes (
    id UUID PRIMARY KEY,
    case_id UUID NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
    author_user_id UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
    note TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_case_notes_case_id ON case_notes(case_id);
CREATE INDEX IF NOT EXISTS idx_case_notes_author_user_id ON case_notes(author_user_id);

-- Append-only. No UPDATE or DELETE path exists anywhere in the code.
CREATE TABLE IF NOT EXISTS medical_audit_logs (
    id UUID PRIMARY KEY,
    personnel_id UUID NOT NULL REFERENCES clinic_personnel(id) ON DELETE RESTRICT,
    user_id UUID REFERENCES users(id) ON DELETE SET NULL,
    case_id UUID REFERENCES cases(id) ON DELETE SET NULL,
    entity_type TEXT NOT NULL,
    entity_id UUID NOT NULL,
    action TEXT NOT NULL CHECK (action IN ('INSERT', 'UPDATE', 'DELETE')),
    field_name TEXT,
    old_value TEXT,
    new_value TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_medical_audit_logs_personnel_id ON medical_audit_logs(personnel_id);
CREATE INDEX IF NOT EXISTS idx_medical_audit_logs_user_id ON medical_audit_logs(user_id);
CREATE INDEX IF NOT EXISTS idx_medical_audit_logs_case_id ON medical_audit_logs(case_id);
CREATE INDEX IF NOT EXISTS idx_medical_audit_logs_entity ON medical_audit_logs(entity_type, entity_id);

CREATE TABLE IF NOT EXISTS reference_codes (
    id UUID PRIMARY KEY,
    case_id UUID NOT NULL UNIQUE REFERENCES cases(id) ON DELETE CASCADE,
    code TEXT NOT NULL UNIQUE,
    expires_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_reference_codes_case_id ON reference_codes(case_id);

-- Addressed to a user OR a role class. User deletion leaves the row
-- behind with the target cleared rather than dropping history.
CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY,
    user_id UUID REFERENCES users(id) ON DELETE SET NULL,
    recipient_role TEXT,
    case_id UUID REFERENCES cases(id) ON DELETE SET NULL,
    subject TEXT NOT NULL,
    message TEXT NOT NULL,
    is_sent INTEGER NOT NULL DEFAULT 0 CHECK (is_sent IN (0, 1)),
    sent_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
CREATE INDEX IF NOT EXISTS idx_notifications_recipient_role ON notifications(recipient_role);
CREATE INDEX IF NOT EXISTS idx_notifications_case_id ON notifications(case_id);
CREATE INDEX IF NOT EXISTS idx_notifications_is_sent ON notifications(is_sent);

CREATE TABLE IF NOT EXISTS reports (
    id UUID PRIMARY KEY,
    clinic_id UUID NOT NULL REFERENCES clinics(id) ON DELETE RESTRICT,
    generated_by UUID REFERENCES clinic_personnel(id) ON DELETE SET NULL,
    report_type TEXT NOT NULL,
    period_start TEXT,
    period_end TEXT,
    content TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_reports_clinic_id ON reports(clinic_id);
CREATE INDEX IF NOT EXISTS idx_reports_generated_by ON reports(generated_by);

CREATE TABLE IF NOT EXISTS patient_guidance (
    id UUID PRIMARY KEY,
    clinic_id UUID NOT NULL REFERENCES clinics(id) ON DELETE RESTRICT,
    author_id UUID REFERENCES clinic_personnel(id) ON DELETE SET NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    category TEXT,
    is_published INTEGER NOT NULL DEFAULT 0 CHECK (is_published IN (0, 1)),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patient_guidance_clinic_id ON patient_guidance(clinic_id);
CREATE INDEX IF NOT EXISTS idx_patient_guidance_author_id ON patient_guidance(author_id);
`
