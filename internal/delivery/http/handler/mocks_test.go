package handler

import (
	"context"

	"medical-data-app/internal/delivery/dto"

	"github.com/stretchr/testify/mock"
)

type mockAntiForgery struct {
	mock.Mock
}

func (m *mockAntiForgery) Issue(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockAntiForgery) Validate(ctx context.Context, sessionID, token string) error {
	return m.Called(ctx, sessionID, token).Error(0)
}

type mockPatientUsecase struct {
	mock.Mock
}

func (m *mockPatientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientListResponse), args.Error(1)
}

func (m *mockPatientUsecase) GetPatient(ctx context.Context, patientID string) (*dto.PatientResponse, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientResponse), args.Error(1)
}

func (m *mockPatientUsecase) GetEditForm(ctx context.Context, patientID string) (*dto.PatientFormView, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientFormView), args.Error(1)
}

func (m *mockPatientUsecase) CreatePatient(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientResponse), args.Error(1)
}

func (m *mockPatientUsecase) UpdatePatient(ctx context.Context, patientID string, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	args := m.Called(ctx, patientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientResponse), args.Error(1)
}

func (m *mockPatientUsecase) DeletePatient(ctx context.Context, patientID string) error {
	return m.Called(ctx, patientID).Error(0)
}

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentListResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) GetCreateForm(ctx context.Context) (*dto.AppointmentFormView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentFormView), args.Error(1)
}

func (m *mockAppointmentUsecase) GetEditForm(ctx context.Context, appointmentID string) (*dto.AppointmentFormView, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentFormView), args.Error(1)
}

func (m *mockAppointmentUsecase) BuildFormView(ctx context.Context, req *dto.AppointmentRequest, fieldErrors map[string]string) (*dto.AppointmentFormView, error) {
	args := m.Called(ctx, req, fieldErrors)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentFormView), args.Error(1)
}

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID string, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, appointmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string) error {
	return m.Called(ctx, appointmentID).Error(0)
}
