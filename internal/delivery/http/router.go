package http

import (
	"net/http"

	"medical-data-app/internal/delivery/http/handler"
	"medical-data-app/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router                *mux.Router
	log                   *logrus.Logger
	patientHandler        *handler.PatientHandler
	doctorHandler         *handler.DoctorHandler
	appointmentHandler    *handler.AppointmentHandler
	medicationHandler     *handler.MedicationHandler
	antiForgeryMiddleware *middleware.AntiForgeryMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicationHandler *handler.MedicationHandler,
	antiForgeryMiddleware *middleware.AntiForgeryMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		log:                   log,
		patientHandler:        patientHandler,
		doctorHandler:         doctorHandler,
		appointmentHandler:    appointmentHandler,
		medicationHandler:     medicationHandler,
		antiForgeryMiddleware: antiForgeryMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(middleware.Logging(r.log))
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.antiForgeryMiddleware.Session)

	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patients
	r.router.HandleFunc("/Patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	r.router.HandleFunc("/Patients/Details/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	r.router.HandleFunc("/Patients/Create", r.patientHandler.CreateForm).Methods(http.MethodGet)
	r.router.Handle("/Patients/Create", r.protect(r.patientHandler.CreatePatient)).Methods(http.MethodPost)
	r.router.HandleFunc("/Patients/Edit/{id}", r.patientHandler.EditForm).Methods(http.MethodGet)
	r.router.Handle("/Patients/Edit/{id}", r.protect(r.patientHandler.UpdatePatient)).Methods(http.MethodPost)
	r.router.HandleFunc("/Patients/Delete/{id}", r.patientHandler.DeleteForm).Methods(http.MethodGet)
	r.router.Handle("/Patients/Delete/{id}", r.protect(r.patientHandler.DeletePatient)).Methods(http.MethodPost)

	// Doctors
	r.router.HandleFunc("/Doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	r.router.HandleFunc("/Doctors/Details/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	r.router.HandleFunc("/Doctors/Create", r.doctorHandler.CreateForm).Methods(http.MethodGet)
	r.router.Handle("/Doctors/Create", r.protect(r.doctorHandler.CreateDoctor)).Methods(http.MethodPost)
	r.router.HandleFunc("/Doctors/Edit/{id}", r.doctorHandler.EditForm).Methods(http.MethodGet)
	r.router.Handle("/Doctors/Edit/{id}", r.protect(r.doctorHandler.UpdateDoctor)).Methods(http.MethodPost)
	r.router.HandleFunc("/Doctors/Delete/{id}", r.doctorHandler.DeleteForm).Methods(http.MethodGet)
	r.router.Handle("/Doctors/Delete/{id}", r.protect(r.doctorHandler.DeleteDoctor)).Methods(http.MethodPost)

	// Appointments
	r.router.HandleFunc("/Appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	r.router.HandleFunc("/Appointments/Details/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	r.router.HandleFunc("/Appointments/Create", r.appointmentHandler.CreateForm).Methods(http.MethodGet)
	r.router.Handle("/Appointments/Create", r.protect(r.appointmentHandler.CreateAppointment)).Methods(http.MethodPost)
	r.router.HandleFunc("/Appointments/Edit/{id}", r.appointmentHandler.EditForm).Methods(http.MethodGet)
	r.router.Handle("/Appointments/Edit/{id}", r.protect(r.appointmentHandler.UpdateAppointment)).Methods(http.MethodPost)
	r.router.HandleFunc("/Appointments/Delete/{id}", r.appointmentHandler.DeleteForm).Methods(http.MethodGet)
	r.router.Handle("/Appointments/Delete/{id}", r.protect(r.appointmentHandler.DeleteAppointment)).Methods(http.MethodPost)

	// Medications
	r.router.HandleFunc("/Medications", r.medicationHandler.GetAllMedications).Methods(http.MethodGet)
	r.router.HandleFunc("/Medications/Details/{id}", r.medicationHandler.GetMedication).Methods(http.MethodGet)
	r.router.HandleFunc("/Medications/Create", r.medicationHandler.CreateForm).Methods(http.MethodGet)
	r.router.Handle("/Medications/Create", r.protect(r.medicationHandler.CreateMedication)).Methods(http.MethodPost)
	r.router.HandleFunc("/Medications/Edit/{id}", r.medicationHandler.EditForm).Methods(http.MethodGet)
	r.router.Handle("/Medications/Edit/{id}", r.protect(r.medicationHandler.UpdateMedication)).Methods(http.MethodPost)
	r.router.HandleFunc("/Medications/Delete/{id}", r.medicationHandler.DeleteForm).Methods(http.MethodGet)
	r.router.Handle("/Medications/Delete/{id}", r.protect(r.medicationHandler.DeleteMedication)).Methods(http.MethodPost)

	// Preflight requests are answered by the CORS middleware
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	return r.router
}

// protect requires a valid anti-forgery token before running h.
func (r *Router) protect(h http.HandlerFunc) http.Handler {
	return r.antiForgeryMiddleware.Verify(h)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
