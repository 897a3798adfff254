package models

import "time"

// Scholarship is an awarded scholarship
type Scholarship struct {
	ID            int64      `json:"id_beca"`
	Status        string     `json:"estado"`
	TypeName      string     `json:"tipo_beca"`
	MonthlyAmount *float64   `json:"monto_mensual"`
	StartDate     *time.Time `json:"fecha_inicio"`
	EndDate       *time.Time `json:"fecha_fin"`
}

// ApplicationStats counts a student's applications by state
type ApplicationStats struct {
	Total        int `json:"total"`
	InEvaluation int `json:"en_evaluacion"`
	Approved     int `json:"aprobadas"`
	Rejected     int `json:"rechazadas"`
}

// DocumentStats counts document slots across a student's applications
type DocumentStats struct {
	Total   int `json:"total"`
	Valid   int `json:"validos"`
	Pending int `json:"pendientes"`
}

// Notification is a message addressed to a user
type Notification struct {
	ID        int64     `json:"id_notificacion"`
	Title     string    `json:"titulo"`
	Message   string    `json:"mensaje"`
	Read      bool      `json:"leida"`
	CreatedAt time.Time `json:"fecha"`
}

// FollowUp is a tracking entry on an awarded scholarship
type FollowUp struct {
	ID          int64     `json:"id_seguimiento"`
	Description string    `json:"descripcion"`
	Status      string    `json:"estado"`
	Date        time.Time `json:"fecha"`
}

// Renewal is a scholarship renewal request
type Renewal struct {
	ID          int64     `json:"id_renovacion"`
	Period      string    `json:"periodo"`
	Status      string    `json:"estado"`
	RequestedAt time.Time `json:"fecha_solicitud"`
}

// Panel is the student dashboard
type Panel struct {
	User          *User            `json:"usuario"`
	Student       *Student         `json:"estudiante"`
	Scholarship   *Scholarship     `json:"beca_actual"`
	Applications  ApplicationStats `json:"solicitudes"`
	Documents     DocumentStats    `json:"documentos"`
	Notifications []Notification   `json:"notificaciones"`
	FollowUps     []FollowUp       `json:"seguimientos"`
	Renewals      []Renewal        `json:"renovaciones"`
}
