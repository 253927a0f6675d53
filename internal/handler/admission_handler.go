package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ducnguyen/caretrack/internal/model"
	"github.com/ducnguyen/caretrack/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdmissionHandler handles admission record endpoints
type AdmissionHandler struct {
	admissionRepo *repository.AdmissionRepository
}

func NewAdmissionHandler(admissionRepo *repository.AdmissionRepository) *AdmissionHandler {
	return &AdmissionHandler{admissionRepo: admissionRepo}
}

// List godoc
// @Summary List all admission records
// @Tags Admissions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Admission
// @Failure 500 {object} model.ErrorResponse
// @Router /admissions [get]
func (h *AdmissionHandler) List(c *gin.Context) {
	admissions, err := h.admissionRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, admissions)
}

// Create godoc
// @Summary Create an admission record
// @Tags Admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.AdmissionRequest true "Admission"
// @Success 200 {object} model.AdmissionCreatedResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /admissions [post]
func (h *AdmissionHandler) Create(c *gin.Context) {
	var req model.AdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	admission := model.Admission{
		PatientID:         req.PatientID,
		AdmissionDate:     req.AdmissionDate,
		DischargeDate:     req.DischargeDate,
		Diagnosis:         req.Diagnosis,
		AttendingDoctorID: req.AttendingDoctorID,
	}

	if existing, err := h.admissionRepo.FindDuplicate(&admission); err == nil && existing != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Duplicate entry for admission"})
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := h.admissionRepo.Create(&admission); err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, model.AdmissionCreatedResponse{
		ID:      admission.ID,
		Message: "Admission created successfully",
	})
}

// Update godoc
// @Summary Update admission records for a patient
// @Description Records are addressed by patient id, not by row id.
// @Tags Admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param body body model.AdmissionRequest true "Admission"
// @Success 200 {object} model.SuccessResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /admissions/{id} [put]
func (h *AdmissionHandler) Update(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid patient id"})
		return
	}

	var req model.AdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	admission := model.Admission{
		PatientID:         req.PatientID,
		AdmissionDate:     req.AdmissionDate,
		DischargeDate:     req.DischargeDate,
		Diagnosis:         req.Diagnosis,
		AttendingDoctorID: req.AttendingDoctorID,
	}

	if _, err := h.admissionRepo.UpdateByPatientID(uint(patientID), &admission); err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Admission updated successfully"})
}

// Delete godoc
// @Summary Delete admission records for a patient
// @Tags Admissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /admissions/{id} [delete]
func (h *AdmissionHandler) Delete(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid patient id"})
		return
	}

	if _, err := h.admissionRepo.DeleteByPatientID(uint(patientID)); err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Admissions deleted successfully"})
}
