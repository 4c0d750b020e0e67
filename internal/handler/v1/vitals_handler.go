package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sanavia/clinica/internal/domain/vitals"
	"github.com/sanavia/clinica/internal/service"
)

type VitalsHandler struct {
	vitals *service.VitalsService
}

func NewVitalsHandler(vitals *service.VitalsService) *VitalsHandler {
	return &VitalsHandler{vitals: vitals}
}

type createRecordRequest struct {
	PatientID       uuid.UUID `json:"id_paciente"`
	RecordDate      string    `json:"record_date"`
	RecordTime      string    `json:"record_time"`
	Systolic        *float64  `json:"presion_sistolica"`
	Diastolic       *float64  `json:"presion_diastolica"`
	MeanPressure    *float64  `json:"presion_media"`
	Pulse           *float64  `json:"pulso"`
	Temperature     *float64  `json:"temperatura"`
	RespiratoryRate *float64  `json:"frecuencia_respiratoria"`
	Saturation      *float64  `json:"saturacion_oxigeno"`
	AdultWeight     *float64  `json:"peso_adulto"`
	PediatricWeight *float64  `json:"peso_pediatrico"`
	Height          *float64  `json:"talla"`
	Observations    string    `json:"observaciones"`
}

type updateRecordRequest struct {
	RecordDate      *string  `json:"record_date"`
	RecordTime      *string  `json:"record_time"`
	Systolic        *float64 `json:"presion_sistolica"`
	Diastolic       *float64 `json:"presion_diastolica"`
	MeanPressure    *float64 `json:"presion_media"`
	Pulse           *float64 `json:"pulso"`
	Temperature     *float64 `json:"temperatura"`
	RespiratoryRate *float64 `json:"frecuencia_respiratoria"`
	Saturation      *float64 `json:"saturacion_oxigeno"`
	AdultWeight     *float64 `json:"peso_adulto"`
	PediatricWeight *float64 `json:"peso_pediatrico"`
	Height          *float64 `json:"talla"`
	Observations    *string  `json:"observaciones"`
}

func (h *VitalsHandler) Create(c *gin.Context) {
	var req createRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := vitals.CreateCommand{
		PatientID:       req.PatientID,
		RecordTime:      req.RecordTime,
		Systolic:        req.Systolic,
		Diastolic:       req.Diastolic,
		MeanPressure:    req.MeanPressure,
		Pulse:           req.Pulse,
		Temperature:     req.Temperature,
		RespiratoryRate: req.RespiratoryRate,
		Saturation:      req.Saturation,
		AdultWeight:     req.AdultWeight,
		PediatricWeight: req.PediatricWeight,
		Height:          req.Height,
		Observations:    req.Observations,
	}
	if req.RecordDate != "" {
		t, ok := parseFecha(req.RecordDate)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "record_date must be a valid date"})
			return
		}
		cmd.RecordDate = t
	}

	rec, err := h.vitals.Create(c.Request.Context(), &cmd, principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, rec)
}

func (h *VitalsHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "idRegistro")
	if !ok {
		return
	}
	rec, err := h.vitals.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *VitalsHandler) ListByPatient(c *gin.Context) {
	id, ok := parseUUID(c, "idPaciente")
	if !ok {
		return
	}
	out, err := h.vitals.ListByPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *VitalsHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "idRegistro")
	if !ok {
		return
	}

	var req updateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := vitals.UpdateCommand{
		RecordTime:      req.RecordTime,
		Systolic:        req.Systolic,
		Diastolic:       req.Diastolic,
		MeanPressure:    req.MeanPressure,
		Pulse:           req.Pulse,
		Temperature:     req.Temperature,
		RespiratoryRate: req.RespiratoryRate,
		Saturation:      req.Saturation,
		AdultWeight:     req.AdultWeight,
		PediatricWeight: req.PediatricWeight,
		Height:          req.Height,
		Observations:    req.Observations,
	}
	if req.RecordDate != nil {
		t, ok := parseFecha(*req.RecordDate)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "record_date must be a valid date"})
			return
		}
		cmd.RecordDate = &t
	}

	rec, err := h.vitals.Update(c.Request.Context(), id, &cmd, principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *VitalsHandler) PatientHistory(c *gin.Context) {
	id, ok := parseUUID(c, "idPaciente")
	if !ok {
		return
	}
	rows, err := h.vitals.PatientHistory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rows)
}

func (h *VitalsHandler) VitalsHistory(c *gin.Context) {
	id, ok := parseUUID(c, "idPaciente")
	if !ok {
		return
	}
	rows, err := h.vitals.VitalsHistory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rows)
}
