package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/cache"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/handler"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/repository"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/config"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/services"
)

var (
	anyStaff    = []string{"admin", "doctor", "nurse", "receptionist"}
	adminDoctor = []string{"admin", "doctor"}
	adminOnly   = []string{"admin"}
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sqlx.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	patientRepo := repository.NewPatientRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	recordRepo := repository.NewMedicalRecordRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	patientService := services.NewPatientService(patientRepo)
	staffService := services.NewStaffService(staffRepo)
	schedulingService := services.NewSchedulingService(appointmentRepo, patientRepo, staffRepo)
	recordService := services.NewRecordService(recordRepo, patientRepo, staffRepo)
	billingService := services.NewBillingService(invoiceRepo, patientRepo)
	dashboardService := services.NewDashboardService(dashboardRepo, cache.NewRedisCache(redisClient))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, cache.NewRedisTokenBlacklist(redisClient))

	patientHandler := handler.NewPatientHandler(patientService)
	staffHandler := handler.NewStaffHandler(staffService)
	appointmentHandler := handler.NewAppointmentHandler(schedulingService)
	recordHandler := handler.NewRecordHandler(recordService)
	billingHandler := handler.NewBillingHandler(billingService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	healthHandler := handler.NewHealthHandler(db.DB, redisClient)

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.Handle("GET /metrics", promhttp.Handler())

	protect := authMiddleware.RequireRole

	// Patients
	mux.HandleFunc("GET /api/patients", protect(anyStaff, patientHandler.List))
	mux.HandleFunc("GET /api/patients/{id}", protect(anyStaff, patientHandler.Get))
	mux.HandleFunc("POST /api/patients", protect(anyStaff, patientHandler.Create))
	mux.HandleFunc("PUT /api/patients/{id}", protect(anyStaff, patientHandler.Update))
	mux.HandleFunc("DELETE /api/patients/{id}", protect(anyStaff, patientHandler.Delete))

	// Staff
	mux.HandleFunc("GET /api/staff", protect(anyStaff, staffHandler.List))
	mux.HandleFunc("GET /api/staff/doctors", protect(anyStaff, staffHandler.ListDoctors))
	mux.HandleFunc("GET /api/staff/stats", protect(anyStaff, staffHandler.Stats))
	mux.HandleFunc("GET /api/staff/{id}", protect(anyStaff, staffHandler.Get))
	mux.HandleFunc("POST /api/staff", protect(adminDoctor, staffHandler.Create))
	mux.HandleFunc("PUT /api/staff/{id}", protect(adminDoctor, staffHandler.Update))
	mux.HandleFunc("DELETE /api/staff/{id}", protect(adminOnly, staffHandler.Delete))

	// Appointments
	mux.HandleFunc("GET /api/appointments", protect(anyStaff, appointmentHandler.List))
	mux.HandleFunc("GET /api/appointments/check-availability", protect(anyStaff, appointmentHandler.CheckAvailability))
	mux.HandleFunc("GET /api/appointments/{id}", protect(anyStaff, appointmentHandler.Get))
	mux.HandleFunc("POST /api/appointments", protect(anyStaff, appointmentHandler.Create))
	mux.HandleFunc("PUT /api/appointments/{id}", protect(anyStaff, appointmentHandler.Update))
	mux.HandleFunc("PATCH /api/appointments/{id}/checkin", protect(anyStaff, appointmentHandler.CheckIn))
	mux.HandleFunc("PATCH /api/appointments/{id}/complete", protect(anyStaff, appointmentHandler.Complete))
	mux.HandleFunc("PATCH /api/appointments/{id}/cancel", protect(anyStaff, appointmentHandler.Cancel))
	mux.HandleFunc("DELETE /api/appointments/{id}", protect(anyStaff, appointmentHandler.Delete))

	// Medical records
	mux.HandleFunc("GET /api/medical-records", protect(anyStaff, recordHandler.List))
	mux.HandleFunc("GET /api/medical-records/patient/{patientId}", protect(anyStaff, recordHandler.ListByPatient))
	mux.HandleFunc("GET /api/medical-records/{id}", protect(anyStaff, recordHandler.Get))
	mux.HandleFunc("POST /api/medical-records", protect(anyStaff, recordHandler.Create))
	mux.HandleFunc("PUT /api/medical-records/{id}", protect(anyStaff, recordHandler.Update))
	mux.HandleFunc("DELETE /api/medical-records/{id}", protect(anyStaff, recordHandler.Delete))

	// Billing
	mux.HandleFunc("GET /api/billing", protect(anyStaff, billingHandler.List))
	mux.HandleFunc("GET /api/billing/stats", protect(anyStaff, billingHandler.Stats))
	mux.HandleFunc("GET /api/billing/{id}", protect(anyStaff, billingHandler.Get))
	mux.HandleFunc("POST /api/billing", protect(anyStaff, billingHandler.Create))
	mux.HandleFunc("PUT /api/billing/{id}", protect(anyStaff, billingHandler.Update))
	mux.HandleFunc("PATCH /api/billing/{id}/pay", protect(anyStaff, billingHandler.MarkPaid))
	mux.HandleFunc("DELETE /api/billing/{id}", protect(anyStaff, billingHandler.Delete))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/stats", protect(anyStaff, dashboardHandler.Stats))
	mux.HandleFunc("GET /api/dashboard/monthly-stats", protect(anyStaff, dashboardHandler.MonthlyStats))

	root := middleware.CORSMiddleware(cfg.AllowedOrigins)(middleware.Metrics(mux))

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, root); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
