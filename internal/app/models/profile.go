package models

import "time"

// PersonalInfo is the one-to-one personal record of a user
type PersonalInfo struct {
	UserID        int64      `json:"-"`
	BirthDate     *time.Time `json:"-"`
	Phone         *string    `json:"telefono"`
	Address       *string    `json:"direccion"`
	Province      *string    `json:"provincia"`
	Canton        *string    `json:"canton"`
	District      *string    `json:"distrito"`
	Gender        *string    `json:"genero"`
	MaritalStatus *string    `json:"estado_civil"`
	NationalID    *string    `json:"curp"`
}

// Profile is the aggregated view of a student's own data
type Profile struct {
	User    *User
	Student *Student
	Info    *PersonalInfo
}
