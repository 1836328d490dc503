package models

import "gorm.io/gorm"

type Reservation struct {
	gorm.Model
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Notes  string `json:"notes"`
}
