package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON embeds datatypes.JSON and overrides the column type per dialect. It
// backs classification records, complaint media lists, authority updates and
// outbox payloads.
type JSON struct {
	datatypes.JSON
}

func (j JSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

func (j *JSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType picks a dialect-appropriate column type; SQL Server has no
// native json type, so it falls back to NVARCHAR(MAX).
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
