package models

// SocioeconomicInfo is the household record attached to an application
type SocioeconomicInfo struct {
	ID               int64    `json:"id_info"`
	ApplicationID    int64    `json:"id_solicitud"`
	FatherOccupation *string  `json:"ocupacion_padre"`
	MotherOccupation *string  `json:"ocupacion_madre"`
	TotalIncome      *float64 `json:"ingreso_total"`
	TotalExpenses    *float64 `json:"egreso_total"`
	HousingType      *string  `json:"tipo_vivienda"`
	HousingCondition *string  `json:"condicion_vivienda"`
	BasicServices    *string  `json:"servicios_basicos"`
	Observations     *string  `json:"observaciones"`
}

// FamilyMember is a dependent listed in the expediente
type FamilyMember struct {
	ID             int64    `json:"id_familiar"`
	Name           string   `json:"nombre"`
	Relationship   *string  `json:"parentesco"`
	Age            *int     `json:"edad"`
	Occupation     *string  `json:"ocupacion"`
	MonthlyIncome  *float64 `json:"ingreso_mensual"`
	EducationLevel *string  `json:"nivel_educativo"`
}

// Expediente is the socioeconomic record of the latest application.
// Socioeconomic is nil when nothing has been saved yet.
type Expediente struct {
	ApplicationID *int64             `json:"id_solicitud"`
	Socioeconomic *SocioeconomicInfo `json:"socioeconomica"`
	Family        []FamilyMember     `json:"familiares"`
}

// EmptyExpediente is the shape returned before anything is recorded
func EmptyExpediente(applicationID *int64) *Expediente {
	return &Expediente{ApplicationID: applicationID, Family: []FamilyMember{}}
}
