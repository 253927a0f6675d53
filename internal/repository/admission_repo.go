package repository

import (
	"github.com/ducnguyen/caretrack/internal/model"
	"gorm.io/gorm"
)

// AdmissionRepository handles database operations for Admission
type AdmissionRepository struct {
	db *gorm.DB
}

func NewAdmissionRepository(db *gorm.DB) *AdmissionRepository {
	return &AdmissionRepository{db: db}
}

// List returns all admission records
func (r *AdmissionRepository) List() ([]model.Admission, error) {
	var admissions []model.Admission
	err := r.db.Order("id ASC").Find(&admissions).Error
	return admissions, err
}

// FindDuplicate looks for an admission with the exact same fields
func (r *AdmissionRepository) FindDuplicate(a *model.Admission) (*model.Admission, error) {
	var existing model.Admission
	err := r.db.
		Where("patient_id = ? AND admission_date = ? AND discharge_date = ? AND diagnosis = ? AND attending_doctor_id = ?",
			a.PatientID, a.AdmissionDate, a.DischargeDate, a.Diagnosis, a.AttendingDoctorID).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// Create inserts a new admission record
func (r *AdmissionRepository) Create(a *model.Admission) error {
	return r.db.Create(a).Error
}

// UpdateByPatientID updates all admission records for a patient.
// Records are keyed by patient id here, not by row id.
func (r *AdmissionRepository) UpdateByPatientID(patientID uint, a *model.Admission) (int64, error) {
	res := r.db.Model(&model.Admission{}).
		Where("patient_id = ?", patientID).
		Updates(map[string]interface{}{
			"patient_id":          a.PatientID,
			"admission_date":      a.AdmissionDate,
			"discharge_date":      a.DischargeDate,
			"diagnosis":           a.Diagnosis,
			"attending_doctor_id": a.AttendingDoctorID,
		})
	return res.RowsAffected, res.Error
}

// DeleteByPatientID removes all admission records for a patient
func (r *AdmissionRepository) DeleteByPatientID(patientID uint) (int64, error) {
	res := r.db.Where("patient_id = ?", patientID).Delete(&model.Admission{})
	return res.RowsAffected, res.Error
}
