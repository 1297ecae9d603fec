package model

import "time"

// Usuario is the credential record a professor logs in with. Login itself is
// handled by an external surface; the row exists for the 1:1 link.
type Usuario struct {
	ID       uint      `gorm:"primaryKey"                        json:"id"`
	Nombre   string    `gorm:"type:varchar(100);not null"        json:"nombre"`
	Correo   string    `gorm:"type:varchar(150);not null;unique" json:"correo"`
	Rol      string    `gorm:"type:varchar(20);not null;default:'profesor'" json:"rol"`
	CreadoEn time.Time `gorm:"column:creado_en;not null;default:CURRENT_TIMESTAMP" json:"creado_en"`
}

func (Usuario) TableName() string { return "usuario" }

// Profesor is the instructor bound to classes.
type Profesor struct {
	ID        uint   `gorm:"primaryKey"                 json:"id"`
	Nombre    string `gorm:"type:varchar(100);not null" json:"nombre"`
	IDUsuario *uint  `gorm:"column:id_usuario;unique"   json:"id_usuario,omitempty"`

	Usuario *Usuario `gorm:"foreignKey:IDUsuario" json:"usuario,omitempty"`
}

func (Profesor) TableName() string { return "profesor" }
