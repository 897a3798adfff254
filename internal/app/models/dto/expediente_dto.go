package dto

// SocioeconomicInput is the socioeconomica object of an expediente update.
// Numeric fields accept numbers or numeric strings.
type SocioeconomicInput struct {
	FatherOccupation string      `json:"ocupacion_padre" binding:"max=150"`
	MotherOccupation string      `json:"ocupacion_madre" binding:"max=150"`
	TotalIncome      interface{} `json:"ingreso_total" swaggertype:"number" example:"350000"`
	TotalExpenses    interface{} `json:"egreso_total" swaggertype:"number" example:"280000"`
	HousingType      string      `json:"tipo_vivienda" binding:"max=80" example:"Propia"`
	HousingCondition string      `json:"condicion_vivienda" binding:"max=80" example:"Buena"`
	BasicServices    string      `json:"servicios_basicos" example:"Agua, luz, internet"`
	Observations     string      `json:"observaciones"`
}

// FamilyMemberInput is one entry of the familiares list
type FamilyMemberInput struct {
	Name           string      `json:"nombre" binding:"required,max=150" example:"Rosa Pérez"`
	Relationship   string      `json:"parentesco" binding:"max=80" example:"Madre"`
	Age            interface{} `json:"edad" swaggertype:"integer" example:"47"`
	Occupation     string      `json:"ocupacion" binding:"max=150" example:"Docente"`
	MonthlyIncome  interface{} `json:"ingreso_mensual" swaggertype:"number" example:"420000"`
	EducationLevel string      `json:"nivel_educativo" binding:"max=80" example:"Universitaria"`
}

// UpdateExpedienteRequest is the body of PUT /student/expediente
type UpdateExpedienteRequest struct {
	Socioeconomic SocioeconomicInput  `json:"socioeconomica"`
	Family        []FamilyMemberInput `json:"familiares" binding:"dive"`
}
