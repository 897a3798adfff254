package models

import "time"

// Call (convocatoria) is a time-boxed scholarship offering
type Call struct {
	ID          int64      `json:"id_convocatoria" db:"id"`
	Name        string     `json:"nombre" db:"name"`
	Description *string    `json:"descripcion" db:"description"`
	StartDate   *time.Time `json:"fecha_inicio" db:"start_date"`
	EndDate     *time.Time `json:"fecha_fin" db:"end_date"`
	Status      string     `json:"estado" db:"status"`
	Period      *string    `json:"periodo" db:"period"`
}

// ScholarshipType (tipo_beca) is a category of scholarship
type ScholarshipType struct {
	ID         int64    `json:"id" db:"id"`
	Code       string   `json:"codigo" db:"code"`
	Name       string   `json:"nombre" db:"name"`
	Modality   *string  `json:"modalidad" db:"modality"`
	MonthlyCap *float64 `json:"tope_mensual" db:"monthly_cap"`
}

// DocumentType is a document every application must track
type DocumentType struct {
	ID        int64  `json:"id_documento" db:"id"`
	Name      string `json:"nombre" db:"name"`
	Mandatory string `json:"obligatorio" db:"mandatory"`
}
