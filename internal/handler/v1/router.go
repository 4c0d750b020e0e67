package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanavia/clinica/pkg/auth"
	"github.com/sanavia/clinica/pkg/metrics"
)

type RouterDeps struct {
	Patients   *PatientHandler
	Vitals     *VitalsHandler
	Traces     *TraceHandler
	Users      *UserHandler
	JWTManager *auth.JWTManager
	Collector  *metrics.Collector
	Log        *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(Observe(deps.Collector))

	authRequired := RequireAuth(deps.JWTManager)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	router.POST("/auth/login", deps.Users.Login)

	patients := router.Group("/patients")
	{
		patients.GET("", deps.Patients.List)
		patients.POST("", authRequired, deps.Patients.Register)
		patients.GET("/:id", authRequired, deps.Patients.Get)
		patients.PUT("/:id", authRequired, deps.Patients.Update)
		patients.PATCH("/:id", authRequired, deps.Patients.UpdateStatus)
		patients.GET("/:id/traceability", deps.Patients.Traceability)
		patients.GET("/:id/download", authRequired, deps.Patients.Download)
	}

	records := router.Group("/patient-records")
	{
		records.POST("/records", authRequired, deps.Vitals.Create)
		records.GET("/records/:idPaciente", authRequired, deps.Vitals.ListByPatient)
		records.GET("/record/:idRegistro", authRequired, deps.Vitals.Get)
		records.PUT("/record/:idRegistro", authRequired, deps.Vitals.Update)
		records.GET("/history/:idPaciente", deps.Vitals.PatientHistory)
		records.GET("/patient-history/:idPaciente", deps.Vitals.VitalsHistory)
	}

	traces := router.Group("/traceability")
	{
		traces.GET("", deps.Traces.ListAll)
		traces.GET("/:id", deps.Traces.Get)
		traces.GET("/patient/:entidadId", deps.Traces.ListByEntity)
	}

	users := router.Group("/users")
	{
		users.GET("", deps.Users.List)
		users.GET("/:id", deps.Users.Get)
		users.PUT("/:id", authRequired, deps.Users.Update)
		users.PATCH("/:id/status", authRequired, deps.Users.SetActive)
		users.DELETE("/:id", authRequired, deps.Users.Delete)
	}

	return router
}
