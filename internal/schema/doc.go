/*
Package schema owns the relational schema for the rabies exposure
case-management domain.

# Schema Creation

Create applies every table and index:

	if err := schema.Create(db); err != nil {
		log.Fatal().Err(err).Msg("schema")
	}

Safe to call multiple times - uses IF NOT EXISTS throughout.

# Tables

  - users: root identity with a role tag
  - patients / system_admins / clinic_personnel: per-role extension
    tables, each keyed by a unique user_id
  - clinics: organizational locations
  - cases: one rabies-exposure incident, the clinical aggregate root
  - pre_screening_details: exactly one per case (case_id is the PK)
  - pre_screening_guidelines: versioned scoring catalog
  - pre_screening_evaluations: guideline applications per case
  - appointments: scheduled encounters with same-day queue ordering
  - vaccination_records: administered doses
  - case_notes: free-text annotations
  - medical_audit_logs: append-only change history
  - reference_codes: one access code per case
  - notifications: user- or role-targeted messages
  - reports / patient_guidance: clinic-scoped content

# Deletion Policy

Every foreign key declares an explicit ON DELETE action:

  - CASCADE: case deletion removes its detail row, evaluations,
    appointments, vaccination records, notes and reference code;
    user deletion removes the role extension row.
  - RESTRICT: clinics cannot go while personnel, cases, reports or
    guidance reference them; patients cannot go while they have cases;
    guidelines and administering personnel cannot go while referenced
    by evaluations, vaccination records or audit rows.
  - SET NULL: appointments lose their assigned staff member,
    notifications and audit rows lose their user/case linkage.

Booleans are INTEGER columns constrained to {0,1}; domain dates and
times are ISO-8601 text; notification_settings, permissions_json and
condition_expression are opaque JSON text validated by the consumer.
*/
package schema
