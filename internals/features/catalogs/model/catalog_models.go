package model

// Catálogos con clave oficial (entera) como PK, igual que el padrón estatal.

type AgencyHeadModel struct {
	AgencyHeadID   int    `gorm:"column:agency_head_id;primaryKey"                json:"agency_head_id"`
	AgencyHeadName string `gorm:"column:agency_head_name;type:varchar(255);not null" json:"agency_head_name"`
}

func (AgencyHeadModel) TableName() string {
	return "agency_heads"
}

type AgencyModel struct {
	AgencyID     int              `gorm:"column:agency_id;primaryKey"                    json:"agency_id"`
	AgencyName   string           `gorm:"column:agency_name;type:varchar(255);not null"  json:"agency_name"`
	AgencyHeadID *int             `gorm:"column:agency_head_id"                          json:"agency_head_id,omitempty"`
	AgencyHead   *AgencyHeadModel `gorm:"foreignKey:AgencyHeadID;references:AgencyHeadID" json:"agency_head,omitempty"`
}

func (AgencyModel) TableName() string {
	return "agencies"
}

type MunicipalityModel struct {
	MunicipalityID   int    `gorm:"column:municipality_id;primaryKey"                   json:"municipality_id"`
	MunicipalityName string `gorm:"column:municipality_name;type:varchar(255);not null" json:"municipality_name"`
}

func (MunicipalityModel) TableName() string {
	return "municipalities"
}
