package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Settings keys recognized by the admin dashboard.
const (
	SettingPayments = "payment_settings"
	SettingMaps     = "maps_settings"
)

// Setting is an opaque JSON configuration blob stored under a unique key,
// mirroring the key/value settings table the admin dashboard edits.
type Setting struct {
	gorm.Model
	Key   string         `json:"key" gorm:"uniqueIndex;size:64"`
	Value datatypes.JSON `json:"value"`
}
