package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sanavia/clinica/internal/domain/patient"
	"github.com/sanavia/clinica/internal/service"
)

type PatientHandler struct {
	patients *service.PatientService
	traces   *service.TraceService
}

func NewPatientHandler(patients *service.PatientService, traces *service.TraceService) *PatientHandler {
	return &PatientHandler{patients: patients, traces: traces}
}

type registerPatientRequest struct {
	FirstName     string  `json:"primer_nombre"`
	MiddleName    string  `json:"segundo_nombre"`
	FirstSurname  string  `json:"primer_apellido"`
	SecondSurname string  `json:"segundo_apellido"`
	IdentType     string  `json:"tipo_identificacion"`
	IdentNumber   string  `json:"numero_identificacion"`
	BirthDate     string  `json:"fecha_nacimiento"`
	Location      string  `json:"ubicacion"`
	Status        string  `json:"status"`
	CreatedAt     *string `json:"created_at"`
}

type updatePatientRequest struct {
	FirstName     *string `json:"primer_nombre"`
	MiddleName    *string `json:"segundo_nombre"`
	FirstSurname  *string `json:"primer_apellido"`
	SecondSurname *string `json:"segundo_apellido"`
	IdentType     *string `json:"tipo_identificacion"`
	IdentNumber   *string `json:"numero_identificacion"`
	BirthDate     *string `json:"fecha_nacimiento"`
	Location      *string `json:"ubicacion"`
	Status        *string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patients.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	p, err := h.patients.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Register(c *gin.Context) {
	var req registerPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := patient.CreateCommand{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		FirstSurname:  req.FirstSurname,
		SecondSurname: req.SecondSurname,
		IdentType:     req.IdentType,
		IdentNumber:   req.IdentNumber,
		Location:      req.Location,
		Status:        patient.Status(req.Status),
	}
	if req.BirthDate != "" {
		t, ok := parseFecha(req.BirthDate)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fecha_nacimiento must be a valid date"})
			return
		}
		cmd.BirthDate = t
	}
	if req.CreatedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.CreatedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "created_at must be an RFC 3339 timestamp"})
			return
		}
		cmd.CreatedAt = &t
	}

	p, err := h.patients.Register(c.Request.Context(), &cmd, principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := patient.UpdateCommand{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		FirstSurname:  req.FirstSurname,
		SecondSurname: req.SecondSurname,
		IdentType:     req.IdentType,
		IdentNumber:   req.IdentNumber,
		Location:      req.Location,
	}
	if req.BirthDate != nil {
		t, ok := parseFecha(*req.BirthDate)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fecha_nacimiento must be a valid date"})
			return
		}
		cmd.BirthDate = &t
	}
	if req.Status != nil {
		st := patient.Status(*req.Status)
		cmd.Status = &st
	}

	p, err := h.patients.Update(c.Request.Context(), id, &cmd, principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.patients.UpdateStatus(c.Request.Context(), id, patient.Status(req.Status), principalFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "estado actualizado")
}

func (h *PatientHandler) Traceability(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	entries, err := h.traces.ListByEntity(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}

func (h *PatientHandler) Download(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	data, err := h.patients.LogDownload(c.Request.Context(), id, principalFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, data)
}
