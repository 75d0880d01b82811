package models

// Name is one record of the names table. Every alias column maps
// many-to-one onto StandardKey.
type Name struct {
	JumpID      string  `gorm:"column:jump_id;type:text"`
	BroadSample string  `gorm:"column:broad_sample;type:text"`
	StandardKey string  `gorm:"column:standard_key;type:text"`
	PertType    string  `gorm:"column:pert_type;type:text"`
	PlateType   string  `gorm:"column:plate_type;type:text"`
	ControlType *string `gorm:"column:control_type;type:text"` // Nullable
	NCBIGeneID  *string `gorm:"column:NCBI_Gene_ID;type:text"` // Nullable, genes only
}

func (Name) TableName() string {
	return "names"
}
