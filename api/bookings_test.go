package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/service/booking"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) DeleteBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingUseCase) RemindUpcomingDeadlines(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:                   1,
		FlightID:             1,
		UserID:               2,
		EmploymentID:         1,
		DateIssued:           time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
		CancellationFee:      25,
		CancellationDeadline: time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC),
	}
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	mockService.On("List", c.Request.Context()).Return([]domain.Booking{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookings": []}`, w.Body.String())

	mockService.AssertExpectations(t)
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/bookings/1", nil)

	mockService.On("GetByID", c.Request.Context(), int64(1)).Return(testBooking(), nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	b := decode(t, w)["booking"].(map[string]any)
	assert.Equal(t, "2026-04-25", b["cancellation_deadline"])
	assert.Equal(t, float64(25), b["cancellation_fee"])

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	r := newTestRouter(NewBookingHandler(mockService))

	mockService.On("CreateBooking", mock.Anything, mock.MatchedBy(func(in booking.CreateBookingInput) bool {
		return in.FlightID == 1 && in.UserID == 2 && in.EmploymentID == 1 &&
			in.DateIssued == nil &&
			in.CancellationFee == 25 &&
			in.CancellationDeadline.Equal(time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC))
	})).Return(testBooking(), nil)

	w := serve(r, http.MethodPost, "/api/bookings", `{"booking": {"flight_id": 1, "user_id": 2, "employment_id": 1,
		"cancellation_fee": 25, "cancellation_deadline": "2026-04-25"}}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["booking"].(map[string]any)["id"])
	mockService.AssertExpectations(t)
}

func TestBookingHandler_createAcceptsTimestampDeadline(t *testing.T) {
	mockService := &MockBookingUseCase{}
	r := newTestRouter(NewBookingHandler(mockService))

	mockService.On("CreateBooking", mock.Anything, mock.MatchedBy(func(in booking.CreateBookingInput) bool {
		return in.CancellationDeadline.Equal(time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC))
	})).Return(testBooking(), nil)

	w := serve(r, http.MethodPost, "/api/bookings", `{"booking": {"flight_id": 1, "user_id": 2, "employment_id": 1,
		"cancellation_deadline": "2026-04-25T00:00:00Z"}}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBookingHandler_createErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "bad deadline", body: `{"booking": {"cancellation_deadline": "next week"}}`, status: http.StatusBadRequest},
		{name: "missing flight", body: `{"booking": {"flight_id": 9}}`, err: domain.NewReferenceError("booking", "flight_id", 9), status: http.StatusUnprocessableEntity},
		{name: "missing deadline", body: `{"booking": {"flight_id": 1}}`, err: domain.NewValidationError("booking", "cancellation_deadline", "is required"), status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			if tt.err != nil {
				mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			r := newTestRouter(NewBookingHandler(mockService))

			w := serve(r, http.MethodPost, "/api/bookings", tt.body)
			assert.Equal(t, tt.status, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestBookingHandler_delete(t *testing.T) {
	mockService := &MockBookingUseCase{}
	r := newTestRouter(NewBookingHandler(mockService))

	mockService.On("DeleteBooking", mock.Anything, int64(1)).Return(nil)
	mockService.On("DeleteBooking", mock.Anything, int64(5)).Return(domain.NewNotFoundError("booking", int64(5)))

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, "/api/bookings/1", "").Code)

	w := serve(r, http.MethodDelete, "/api/bookings/5", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking 5 not found", decode(t, w)["error"])
}
