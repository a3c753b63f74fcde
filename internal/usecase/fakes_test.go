package usecase

import (
	"context"
	"io"
	"sort"
	"testing"

	"medical-data-app/config"
	"medical-data-app/internal/delivery/dto"
	"medical-data-app/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// memoryStore stands in for the four tables and enforces the same primary
// key, foreign key and version rules the schema does.
type memoryStore struct {
	patients     map[string]entity.Patient
	doctors      map[string]entity.Doctor
	appointments map[string]entity.Appointment
	medications  map[string]entity.Medication

	// err, when set, is returned by every repository call
	err error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		patients:     map[string]entity.Patient{},
		doctors:      map[string]entity.Doctor{},
		appointments: map[string]entity.Appointment{},
		medications:  map[string]entity.Medication{},
	}
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func uniqueViolation(constraint string) error { return pgError("23505", constraint) }
func fkViolation(constraint string) error     { return pgError("23503", constraint) }

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// patients

type fakePatientRepo struct{ s *memoryStore }

func (r *fakePatientRepo) Create(db *gorm.DB, patient *entity.Patient) error {
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.patients[patient.PatientID]; ok {
		return uniqueViolation("patients_pkey")
	}
	r.s.patients[patient.PatientID] = *patient
	return nil
}

func (r *fakePatientRepo) FindByID(db *gorm.DB, patientID string) (*entity.Patient, error) {
	if r.s.err != nil {
		return nil, r.s.err
	}
	patient, ok := r.s.patients[patientID]
	if !ok {
		return nil, nil
	}
	return &patient, nil
}

func (r *fakePatientRepo) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	if r.s.err != nil {
		return nil, r.s.err
	}
	patients := make([]entity.Patient, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		patients = append(patients, p)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].PatientID < patients[j].PatientID })
	return patients, nil
}

func (r *fakePatientRepo) FindOptions(db *gorm.DB) ([]entity.SelectOption, error) {
	patients, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	options := make([]entity.SelectOption, len(patients))
	for i, p := range patients {
		options[i] = entity.SelectOption{Value: p.PatientID, Label: p.Name}
	}
	return options, nil
}

func (r *fakePatientRepo) Exists(db *gorm.DB, patientID string) (bool, error) {
	if r.s.err != nil {
		return false, r.s.err
	}
	_, ok := r.s.patients[patientID]
	return ok, nil
}

func (r *fakePatientRepo) Update(db *gorm.DB, patient *entity.Patient) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	current, ok := r.s.patients[patient.PatientID]
	if !ok || current.Version != patient.Version {
		return 0, nil
	}
	patient.Version++
	r.s.patients[patient.PatientID] = *patient
	return 1, nil
}

func (r *fakePatientRepo) Delete(db *gorm.DB, patientID string) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	if _, ok := r.s.patients[patientID]; !ok {
		return 0, nil
	}
	for _, a := range r.s.appointments {
		if a.PatientID == patientID {
			return 0, fkViolation("fk_appointments_patient")
		}
	}
	for _, m := range r.s.medications {
		if m.PatientID == patientID {
			return 0, fkViolation("fk_medications_patient")
		}
	}
	delete(r.s.patients, patientID)
	return 1, nil
}

// doctors

type fakeDoctorRepo struct{ s *memoryStore }

func (r *fakeDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.doctors[doctor.DoctorID]; ok {
		return uniqueViolation("doctors_pkey")
	}
	r.s.doctors[doctor.DoctorID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) FindByID(db *gorm.DB, doctorID string) (*entity.Doctor, error) {
	if r.s.err != nil {
		return nil, r.s.err
	}
	doctor, ok := r.s.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	return &doctor, nil
}

func (r *fakeDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	if r.s.err != nil {
		return nil, r.s.err
	}
	doctors := make([]entity.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		doctors = append(doctors, d)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].DoctorID < doctors[j].DoctorID })
	return doctors, nil
}

func (r *fakeDoctorRepo) FindOptions(db *gorm.DB) ([]entity.SelectOption, error) {
	doctors, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	options := make([]entity.SelectOption, len(doctors))
	for i, d := range doctors {
		options[i] = entity.SelectOption{Value: d.DoctorID, Label: d.Name}
	}
	return options, nil
}

func (r *fakeDoctorRepo) Exists(db *gorm.DB, doctorID string) (bool, error) {
	if r.s.err != nil {
		return false, r.s.err
	}
	_, ok := r.s.doctors[doctorID]
	return ok, nil
}

func (r *fakeDoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	current, ok := r.s.doctors[doctor.DoctorID]
	if !ok || current.Version != doctor.Version {
		return 0, nil
	}
	doctor.Version++
	r.s.doctors[doctor.DoctorID] = *doctor
	return 1, nil
}

// Delete follows the schema: appointments block the delete, medications
// go with the doctor.
func (r *fakeDoctorRepo) Delete(db *gorm.DB, doctorID string) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	if _, ok := r.s.doctors[doctorID]; !ok {
		return 0, nil
	}
	for _, a := range r.s.appointments {
		if a.DoctorID == doctorID {
			return 0, fkViolation("fk_appointments_doctor")
		}
	}
	for id, m := range r.s.medications {
		if m.DoctorID == doctorID {
			delete(r.s.medications, id)
		}
	}
	delete(r.s.doctors, doctorID)
	return 1, nil
}

// appointments

type fakeAppointmentRepo struct{ s *memoryStore }

func (r *fakeAppointmentRepo) checkRefs(a *entity.Appointment) error {
	if _, ok := r.s.patients[a.PatientID]; !ok {
		return fkViolation("fk_appointments_patient")
	}
	if _, ok := r.s.doctors[a.DoctorID]; !ok {
		return fkViolation("fk_appointments_doctor")
	}
	return nil
}

func (r *fakeAppointmentRepo) preload(a entity.Appointment) entity.Appointment {
	a.Patient = r.s.patients[a.PatientID]
	a.Doctor = r.s.doctors[a.DoctorID]
	return a
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.appointments[appointment.AppointmentID]; ok {
		return uniqueViolation("appointments_pkey")
	}
	if err := r.checkRefs(appointment); err != nil {
		return err
	}
	r.s.appointments[appointment.AppointmentID] = *appointment
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, appointmentID string) (*entity.Appointment, error) {
	if r.s.err != nil {
		return nil, r.s.err
	}
	appointment, ok := r.s.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	appointment = r.preload(appointment)
	return &appointment, nil
}

func (r *fakeAppointmentRepo) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	if r.s.err != nil {
		return nil, r.s.err
	}
	appointments := make([]entity.Appointment, 0, len(r.s.appointments))
	for _, a := range r.s.appointments {
		appointments = append(appointments, r.preload(a))
	}
	sort.Slice(appointments, func(i, j int) bool {
		if !appointments[i].AppointmentDate.Equal(appointments[j].AppointmentDate) {
			return appointments[i].AppointmentDate.Before(appointments[j].AppointmentDate)
		}
		return appointments[i].AppointmentID < appointments[j].AppointmentID
	})
	return appointments, nil
}

func (r *fakeAppointmentRepo) Exists(db *gorm.DB, appointmentID string) (bool, error) {
	if r.s.err != nil {
		return false, r.s.err
	}
	_, ok := r.s.appointments[appointmentID]
	return ok, nil
}

func (r *fakeAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	current, ok := r.s.appointments[appointment.AppointmentID]
	if !ok || current.Version != appointment.Version {
		return 0, nil
	}
	if err := r.checkRefs(appointment); err != nil {
		return 0, err
	}
	appointment.Version++
	r.s.appointments[appointment.AppointmentID] = *appointment
	return 1, nil
}

func (r *fakeAppointmentRepo) Delete(db *gorm.DB, appointmentID string) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	if _, ok := r.s.appointments[appointmentID]; !ok {
		return 0, nil
	}
	delete(r.s.appointments, appointmentID)
	return 1, nil
}

func (r *fakeAppointmentRepo) DeleteByPatientID(db *gorm.DB, patientID string) (int64, error) {
	return r.deleteWhere(func(a entity.Appointment) bool { return a.PatientID == patientID })
}

func (r *fakeAppointmentRepo) DeleteByDoctorID(db *gorm.DB, doctorID string) (int64, error) {
	return r.deleteWhere(func(a entity.Appointment) bool { return a.DoctorID == doctorID })
}

func (r *fakeAppointmentRepo) deleteWhere(match func(entity.Appointment) bool) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	var n int64
	for id, a := range r.s.appointments {
		if match(a) {
			delete(r.s.appointments, id)
			n++
		}
	}
	return n, nil
}

// medications

type fakeMedicationRepo struct{ s *memoryStore }

func (r *fakeMedicationRepo) checkRefs(m *entity.Medication) error {
	if _, ok := r.s.patients[m.PatientID]; !ok {
		return fkViolation("fk_medications_patient")
	}
	if _, ok := r.s.doctors[m.DoctorID]; !ok {
		return fkViolation("fk_medications_doctor")
	}
	return nil
}

func (r *fakeMedicationRepo) preload(m entity.Medication) entity.Medication {
	m.Patient = r.s.patients[m.PatientID]
	m.Doctor = r.s.doctors[m.DoctorID]
	return m
}

func (r *fakeMedicationRepo) Create(db *gorm.DB, medication *entity.Medication) error {
	if r.s.err != nil {
		return r.s.err
	}
	if _, ok := r.s.medications[medication.MedicationID]; ok {
		return uniqueViolation("medications_pkey")
	}
	if err := r.checkRefs(medication); err != nil {
		return err
	}
	r.s.medications[medication.MedicationID] = *medication
	return nil
}

func (r *fakeMedicationRepo) FindByID(db *gorm.DB, medicationID string) (*entity.Medication, error) {
	if r.s.err != nil {
		return nil, r.s.err
	}
	medication, ok := r.s.medications[medicationID]
	if !ok {
		return nil, nil
	}
	medication = r.preload(medication)
	return &medication, nil
}

func (r *fakeMedicationRepo) FindAll(db *gorm.DB) ([]entity.Medication, error) {
	if r.s.err != nil {
		return nil, r.s.err
	}
	medications := make([]entity.Medication, 0, len(r.s.medications))
	for _, m := range r.s.medications {
		medications = append(medications, r.preload(m))
	}
	sort.Slice(medications, func(i, j int) bool {
		if !medications[i].PrescribedDate.Equal(medications[j].PrescribedDate) {
			return medications[i].PrescribedDate.After(medications[j].PrescribedDate)
		}
		return medications[i].MedicationID < medications[j].MedicationID
	})
	return medications, nil
}

func (r *fakeMedicationRepo) Exists(db *gorm.DB, medicationID string) (bool, error) {
	if r.s.err != nil {
		return false, r.s.err
	}
	_, ok := r.s.medications[medicationID]
	return ok, nil
}

func (r *fakeMedicationRepo) Update(db *gorm.DB, medication *entity.Medication) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	current, ok := r.s.medications[medication.MedicationID]
	if !ok || current.Version != medication.Version {
		return 0, nil
	}
	if err := r.checkRefs(medication); err != nil {
		return 0, err
	}
	medication.Version++
	r.s.medications[medication.MedicationID] = *medication
	return 1, nil
}

func (r *fakeMedicationRepo) Delete(db *gorm.DB, medicationID string) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	if _, ok := r.s.medications[medicationID]; !ok {
		return 0, nil
	}
	delete(r.s.medications, medicationID)
	return 1, nil
}

func (r *fakeMedicationRepo) DeleteByPatientID(db *gorm.DB, patientID string) (int64, error) {
	if r.s.err != nil {
		return 0, r.s.err
	}
	var n int64
	for id, m := range r.s.medications {
		if m.PatientID == patientID {
			delete(r.s.medications, id)
			n++
		}
	}
	return n, nil
}

// fixtures

type testUsecases struct {
	store       *memoryStore
	mock        sqlmock.Sqlmock
	patient     PatientUsecase
	doctor      DoctorUsecase
	appointment AppointmentUsecase
	medication  MedicationUsecase
}

func newTestUsecases(t *testing.T, policy config.DeletePolicy) *testUsecases {
	t.Helper()

	db, mock := newTestDB(t)
	log := quietLogger()
	store := newMemoryStore()

	patientRepo := &fakePatientRepo{s: store}
	doctorRepo := &fakeDoctorRepo{s: store}
	appointmentRepo := &fakeAppointmentRepo{s: store}
	medicationRepo := &fakeMedicationRepo{s: store}

	return &testUsecases{
		store:       store,
		mock:        mock,
		patient:     NewPatientUsecase(db, log, patientRepo, appointmentRepo, medicationRepo, policy),
		doctor:      NewDoctorUsecase(db, log, doctorRepo, appointmentRepo, policy),
		appointment: NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, doctorRepo),
		medication:  NewMedicationUsecase(db, log, medicationRepo, patientRepo, doctorRepo),
	}
}

func intPtr(v int) *int { return &v }

func alice() *dto.PatientRequest {
	return &dto.PatientRequest{PatientID: "P1", Name: "Alice", Age: intPtr(30), Gender: "F", ContactInfo: "a@x.com"}
}

func bob() *dto.DoctorRequest {
	return &dto.DoctorRequest{DoctorID: "D1", Name: "Bob", Specialty: "Cardiology", ContactInfo: "b@x.com"}
}

func checkup() *dto.AppointmentRequest {
	return &dto.AppointmentRequest{AppointmentID: "A1", PatientID: "P1", DoctorID: "D1", AppointmentDate: "2025-01-01", Purpose: "Checkup"}
}

func aspirin() *dto.MedicationRequest {
	return &dto.MedicationRequest{
		MedicationID:   "M1",
		PatientID:      "P1",
		DoctorID:       "D1",
		MedicationName: "Aspirin",
		PrescribedDate: "2025-01-02T09:30",
		Dosage:         "100mg",
		Frequency:      "daily",
	}
}

// seed creates Alice and Bob.
func (tu *testUsecases) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := tu.patient.CreatePatient(ctx, alice())
	require.NoError(t, err)
	_, err = tu.doctor.CreateDoctor(ctx, bob())
	require.NoError(t, err)
}

// expectTx registers the begin/commit pair a delete runs inside.
func (tu *testUsecases) expectTx() {
	tu.mock.ExpectBegin()
	tu.mock.ExpectCommit()
}

// expectRolledBackTx registers a delete transaction that is abandoned.
func (tu *testUsecases) expectRolledBackTx() {
	tu.mock.ExpectBegin()
	tu.mock.ExpectRollback()
}
