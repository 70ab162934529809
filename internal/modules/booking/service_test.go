package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campusbook/internal/domain"
	"campusbook/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, kind domain.ResourceKind, userID int64) ([]repository.UserBookingDetails, error) {
	args := m.Called(ctx, kind, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserBookingDetails), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) ActiveOverlapCounts(ctx context.Context, kind domain.ResourceKind, at time.Time) (map[int64]int64, error) {
	args := m.Called(ctx, kind, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

type MockResourceReader struct {
	mock.Mock
}

func (m *MockResourceReader) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

type MockSlotReader struct {
	mock.Mock
}

func (m *MockSlotReader) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *MockSlotReader) FirstForResource(ctx context.Context, resourceID int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingCreated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockNotifier) BookingDecided(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func defaultWindow() WindowConfig {
	return WindowConfig{MinLeadDays: 1, MaxWindowDays: 30}
}

func futureTimes(days int, startHour, endHour int) (time.Time, time.Time) {
	day := time.Now().UTC().AddDate(0, 0, days)
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, time.UTC)
	return start, end
}

func newTestService(bookings *MockBookingRepository, resources *MockResourceReader, slots *MockSlotReader, notifs *MockNotifier) *Service {
	return NewService(bookings, resources, slots, notifs, defaultWindow())
}

func TestCreateBooking_RoomSuccess(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(7)).Return(&domain.Resource{
		ID: 7, Kind: domain.KindRoom, Name: "Seminar Room 1", Quantity: 1, IsActive: true,
	}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("BookingCreated", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	start, end := futureTimes(3, 10, 12)
	b, err := service.CreateBooking(context.Background(), domain.KindRoom, 42, CreateBookingRequest{
		ResourceID: 7,
		StartTime:  &start,
		EndTime:    &end,
		Purpose:    "Thesis defense rehearsal",
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, domain.BookingApproved, b.Status)
	assert.Equal(t, int64(42), b.UserID)
	assert.NotEmpty(t, b.Reference)
	mockNotifs.AssertCalled(t, "BookingCreated", mock.Anything, mock.Anything)
}

func TestCreateBooking_PendingWhenApprovalRequired(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(3)).Return(&domain.Resource{
		ID: 3, Kind: domain.KindEquipment, Name: "Thermal Camera", Quantity: 2, RequiresApproval: true, IsActive: true,
	}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("BookingCreated", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	start, end := futureTimes(2, 9, 17)
	b, err := service.CreateBooking(context.Background(), domain.KindEquipment, 42, CreateBookingRequest{
		ResourceID: 3,
		StartTime:  &start,
		EndTime:    &end,
		Purpose:    "Heat distribution study",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
}

func TestCreateBooking_EndBeforeStartNeverReachesRepo(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(7)).Return(&domain.Resource{
		ID: 7, Kind: domain.KindRoom, Quantity: 1, IsActive: true,
	}, nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	end, start := futureTimes(3, 9, 10) // swapped: end 09:00, start 10:00
	_, err := service.CreateBooking(context.Background(), domain.KindRoom, 42, CreateBookingRequest{
		ResourceID: 7,
		StartTime:  &start,
		EndTime:    &end,
		Purpose:    "Testing",
	})

	assert.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "End time must be after start time", verr.Fields[FieldEndTime])
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_MissingEndTime(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(7)).Return(&domain.Resource{
		ID: 7, Kind: domain.KindRoom, Quantity: 1, IsActive: true,
	}, nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	start, _ := futureTimes(1, 10, 12)
	_, err := service.CreateBooking(context.Background(), domain.KindRoom, 42, CreateBookingRequest{
		ResourceID: 7,
		StartTime:  &start,
		Purpose:    "Testing",
	})

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "End time is required", verr.Fields[FieldEndTime])
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_SameDayRejected(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(7)).Return(&domain.Resource{
		ID: 7, Kind: domain.KindRoom, Quantity: 1, IsActive: true,
	}, nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	start, end := futureTimes(0, 22, 23)
	_, err := service.CreateBooking(context.Background(), domain.KindRoom, 42, CreateBookingRequest{
		ResourceID: 7,
		StartTime:  &start,
		EndTime:    &end,
		Purpose:    "Testing",
	})

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, FieldDate)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_LabDefaultsToFirstSlot(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(5)).Return(&domain.Resource{
		ID: 5, Kind: domain.KindLab, Name: "Networks Lab", Quantity: 1, RequiresApproval: true, IsActive: true,
	}, nil)
	mockSlots.On("FirstForResource", mock.Anything, int64(5)).Return(&domain.TimeSlot{
		ID: 11, ResourceID: 5, Label: "Morning", StartTime: "09:00", EndTime: "11:00", Position: 0,
	}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("BookingCreated", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	date := time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02")
	b, err := service.CreateBooking(context.Background(), domain.KindLab, 42, CreateBookingRequest{
		ResourceID: 5,
		Date:       date,
		Purpose:    "Routing practical",
	})

	assert.NoError(t, err)
	assert.NotNil(t, b.TimeSlotID)
	assert.Equal(t, int64(11), *b.TimeSlotID)
	assert.Equal(t, "09:00", b.StartTime.Format("15:04"))
	assert.Equal(t, "11:00", b.EndTime.Format("15:04"))
	assert.Equal(t, domain.BookingPending, b.Status)
}

func TestCreateBooking_LabSlotFromOtherLabRejected(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(5)).Return(&domain.Resource{
		ID: 5, Kind: domain.KindLab, Quantity: 1, IsActive: true,
	}, nil)
	mockSlots.On("GetByID", mock.Anything, int64(30)).Return(&domain.TimeSlot{
		ID: 30, ResourceID: 6, StartTime: "09:00", EndTime: "11:00",
	}, nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	date := time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02")
	slotID := int64(30)
	_, err := service.CreateBooking(context.Background(), domain.KindLab, 42, CreateBookingRequest{
		ResourceID: 5,
		Date:       date,
		TimeSlotID: &slotID,
		Purpose:    "Routing practical",
	})

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, FieldTimeSlot)
}

func TestCreateBooking_WrongKindIsNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(7)).Return(&domain.Resource{
		ID: 7, Kind: domain.KindRoom, Quantity: 1, IsActive: true,
	}, nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	start, end := futureTimes(3, 10, 12)
	_, err := service.CreateBooking(context.Background(), domain.KindEquipment, 42, CreateBookingRequest{
		ResourceID: 7,
		StartTime:  &start,
		EndTime:    &end,
		Purpose:    "Testing",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_ApproveSuccess(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID: 123, Kind: domain.KindLab, UserID: 42, Status: domain.BookingPending,
	}, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(123), domain.BookingApproved).Return(nil)
	mockNotifs.On("BookingDecided", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	admin := domain.Session{UserID: 1, Role: domain.RoleAdmin}
	b, err := service.UpdateStatus(context.Background(), domain.KindLab, 123, admin, domain.BookingApproved)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)
	mockBookings.AssertExpectations(t)
	mockNotifs.AssertCalled(t, "BookingDecided", mock.Anything, mock.Anything)
}

func TestUpdateStatus_NonAdminForbidden(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	student := domain.Session{UserID: 42, Role: domain.RoleStudent}
	_, err := service.UpdateStatus(context.Background(), domain.KindLab, 123, student, domain.BookingApproved)

	assert.ErrorIs(t, err, ErrForbidden)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_RejectedCannotBeApproved(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID: 123, Kind: domain.KindLab, Status: domain.BookingRejected,
	}, nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	admin := domain.Session{UserID: 1, Role: domain.RoleAdmin}
	_, err := service.UpdateStatus(context.Background(), domain.KindLab, 123, admin, domain.BookingApproved)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatus_ApprovedCanComplete(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockBookings.On("GetByID", mock.Anything, int64(55)).Return(&domain.Booking{
		ID: 55, Kind: domain.KindEquipment, Status: domain.BookingApproved,
	}, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(55), domain.BookingCompleted).Return(nil)
	mockNotifs.On("BookingDecided", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	admin := domain.Session{UserID: 1, Role: domain.RoleAdmin}
	b, err := service.UpdateStatus(context.Background(), domain.KindEquipment, 55, admin, domain.BookingCompleted)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
}

func TestUpdateStatus_KindMismatchIsNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID: 123, Kind: domain.KindRoom, Status: domain.BookingPending,
	}, nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	admin := domain.Session{UserID: 1, Role: domain.RoleAdmin}
	_, err := service.UpdateStatus(context.Background(), domain.KindLab, 123, admin, domain.BookingApproved)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMyBookings_MapsRows(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	created := time.Now().UTC()
	mockBookings.On("ListByUser", mock.Anything, domain.KindRoom, int64(42)).Return([]repository.UserBookingDetails{
		{ID: 1, Reference: "RM-20250710-0001", ResourceID: 7, ResourceName: "Seminar Room 1", ResourceLocation: "Building A", Status: "approved", CreatedAt: created},
	}, nil)

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	items, err := service.ListMyBookings(context.Background(), domain.KindRoom, 42)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Seminar Room 1", items[0].ResourceName)
	assert.Equal(t, "approved", items[0].Status)
}

func TestCreateBooking_RepoErrorBubbles(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockResources := new(MockResourceReader)
	mockSlots := new(MockSlotReader)
	mockNotifs := new(MockNotifier)

	mockResources.On("GetByID", mock.Anything, int64(7)).Return(&domain.Resource{
		ID: 7, Kind: domain.KindRoom, Quantity: 1, IsActive: true,
	}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	service := newTestService(mockBookings, mockResources, mockSlots, mockNotifs)

	start, end := futureTimes(3, 10, 12)
	_, err := service.CreateBooking(context.Background(), domain.KindRoom, 42, CreateBookingRequest{
		ResourceID: 7,
		StartTime:  &start,
		EndTime:    &end,
		Purpose:    "Testing",
	})

	assert.EqualError(t, err, "db down")
	mockNotifs.AssertNotCalled(t, "BookingCreated", mock.Anything, mock.Anything)
}
