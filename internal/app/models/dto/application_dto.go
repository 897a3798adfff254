package dto

// CreateApplicationRequest is the body of POST /student/solicitud
type CreateApplicationRequest struct {
	CallID            int64 `json:"id_convocatoria" binding:"required,gt=0" example:"3"`
	ScholarshipTypeID int64 `json:"id_tipo_beca" binding:"required,gt=0" example:"1"`
}

// CreateApplicationResponse returns the new application id
type CreateApplicationResponse struct {
	ID        int64 `json:"id_solicitud" example:"42"`
	Documents int   `json:"documentos" example:"5"`
}

// UploadResponse describes a stored document
type UploadResponse struct {
	FileName    string `json:"nombre_archivo" example:"cedula.pdf"`
	ContentType string `json:"tipo_contenido" example:"application/pdf"`
	Size        int64  `json:"tamano" example:"48213"`
}

// MissingDocumentsDetails is the error detail of a rejected submission
type MissingDocumentsDetails struct {
	Missing []string `json:"faltantes" example:"Cédula de identidad,Constancia de ingresos familiares"`
}
