package model

import "time"

// Admission represents a hospital admission record
type Admission struct {
	ID                uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PatientID         uint      `json:"patient_id" gorm:"index;not null"`
	AdmissionDate     string    `json:"admission_date" gorm:"type:date"`
	DischargeDate     string    `json:"discharge_date" gorm:"type:date"`
	Diagnosis         string    `json:"diagnosis" gorm:"size:255"`
	AttendingDoctorID uint      `json:"attending_doctor_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
