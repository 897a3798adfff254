package dto

import (
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/pkg/helpers"
)

// ProfileResponse is the flat perfil projection
type ProfileResponse struct {
	Name          string   `json:"nombre" example:"Ana Pérez"`
	Email         string   `json:"correo" example:"ana@ucr.ac.cr"`
	Role          string   `json:"rol" example:"estudiante"`
	StudentNumber *string  `json:"carnet" example:"B90123"`
	Program       *string  `json:"carrera" example:"Ingeniería Civil"`
	GPA           *float64 `json:"promedio" example:"8.75"`
	Phone         *string  `json:"telefono" example:"+506 8888-1234"`
	Address       *string  `json:"direccion"`
	BirthDate     *string  `json:"fecha_nacimiento" example:"2003-05-14"`
	Gender        *string  `json:"genero"`
	MaritalStatus *string  `json:"estado_civil"`
	NationalID    *string  `json:"curp"`
	Province      *string  `json:"provincia"`
	Canton        *string  `json:"canton"`
	District      *string  `json:"distrito"`
}

// NewProfileResponse flattens a profile aggregate
func NewProfileResponse(p *models.Profile) ProfileResponse {
	resp := ProfileResponse{
		Name:  p.User.Name,
		Email: p.User.Email,
		Role:  string(p.User.Role),
	}
	if s := p.Student; s != nil {
		resp.StudentNumber = s.StudentNumber
		resp.Program = s.Program
		resp.GPA = s.GPA
	}
	if i := p.Info; i != nil {
		resp.Phone = i.Phone
		resp.Address = i.Address
		resp.BirthDate = helpers.NullableString(helpers.FormatDate(i.BirthDate))
		resp.Gender = i.Gender
		resp.MaritalStatus = i.MaritalStatus
		resp.NationalID = i.NationalID
		resp.Province = i.Province
		resp.Canton = i.Canton
		resp.District = i.District
	}
	return resp
}

// UpdateProfileRequest is the body of PUT /student/perfil
type UpdateProfileRequest struct {
	Name          string `json:"nombre" binding:"required,max=150" example:"Ana Pérez"`
	Email         string `json:"correo" binding:"required,email" example:"ana@ucr.ac.cr"`
	Phone         string `json:"telefono" example:"+506 8888-1234"`
	Address       string `json:"direccion"`
	BirthDate     string `json:"fecha_nacimiento" example:"14/05/2003"`
	Gender        string `json:"genero"`
	MaritalStatus string `json:"estado_civil"`
	NationalID    string `json:"curp"`
	Province      string `json:"provincia"`
	Canton        string `json:"canton"`
	District      string `json:"distrito"`
}
