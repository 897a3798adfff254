package models

// Student is the academic profile attached to a user, created by staff
type Student struct {
	ID            int64    `json:"id" db:"id"`
	UserID        int64    `json:"id_usuario" db:"user_id"`
	StudentNumber *string  `json:"carnet" db:"student_number" example:"B90123"`
	Program       *string  `json:"carrera" db:"program" example:"Ingeniería Civil"`
	GPA           *float64 `json:"promedio" db:"gpa" example:"8.75"`
}
