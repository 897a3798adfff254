package models

import "time"

// ApplicationStatus is the lifecycle state of an application
type ApplicationStatus string

const (
	StatusDraft        ApplicationStatus = "BORRADOR"
	StatusSubmitted    ApplicationStatus = "ENVIADA"
	StatusInEvaluation ApplicationStatus = "EN_EVALUACION"
	StatusApproved     ApplicationStatus = "APROBADA"
	StatusRejected     ApplicationStatus = "RECHAZADA"
)

// Application (solicitud) is a student's request for a scholarship type within a call
type Application struct {
	ID                int64             `json:"id_solicitud" db:"id"`
	StudentID         int64             `json:"id_estudiante" db:"student_id"`
	CallID            int64             `json:"id_convocatoria" db:"call_id"`
	ScholarshipTypeID int64             `json:"id_tipo_beca" db:"scholarship_type_id"`
	Status            ApplicationStatus `json:"estado" db:"status"`
	CreatedAt         time.Time         `json:"fecha_creacion" db:"created_at"`
	SubmittedAt       *time.Time        `json:"fecha_envio,omitempty" db:"submitted_at"`
}

// ApplicationSummary is the list projection joining call and scholarship type
type ApplicationSummary struct {
	ID           int64             `json:"id_solicitud"`
	Status       ApplicationStatus `json:"estado"`
	CreatedAt    time.Time         `json:"fecha_creacion"`
	CallName     string            `json:"convocatoria"`
	CallPeriod   *string           `json:"convocatoria_periodo"`
	TypeName     string            `json:"tipo_beca"`
	TypeModality *string           `json:"tipo_modalidad"`
}
