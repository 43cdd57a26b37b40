package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gatepass/internal/errors"
	"gatepass/internal/model"
	"gatepass/internal/repository"
)

// MockPassRepository is a mock implementation of PassRepository.
type MockPassRepository struct {
	mock.Mock
}

func (m *MockPassRepository) Create(ctx context.Context, pass *model.Pass) error {
	args := m.Called(ctx, pass)
	return args.Error(0)
}

func (m *MockPassRepository) Update(ctx context.Context, pass *model.Pass) error {
	args := m.Called(ctx, pass)
	return args.Error(0)
}

func (m *MockPassRepository) FindByID(ctx context.Context, id uint) (*model.Pass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pass), args.Error(1)
}

func (m *MockPassRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Pass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pass), args.Error(1)
}

func (m *MockPassRepository) ListByUser(ctx context.Context, userID uint) ([]model.Pass, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pass), args.Error(1)
}

func (m *MockPassRepository) ListByStatus(ctx context.Context, status model.PassStatus) ([]model.Pass, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pass), args.Error(1)
}

func (m *MockPassRepository) ListByStatusAndDate(ctx context.Context, status model.PassStatus, date string) ([]model.Pass, error) {
	args := m.Called(ctx, status, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pass), args.Error(1)
}

func (m *MockPassRepository) CountActiveSlot(ctx context.Context, userID uint, outDate, outTime string) (int64, error) {
	args := m.Called(ctx, userID, outDate, outTime)
	return args.Get(0).(int64), args.Error(1)
}

// WithTransaction runs the callback against the mock itself so the
// transactional logic executes under test.
func (m *MockPassRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.PassRepository) error) error {
	return fn(ctx, m)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uint) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestPassService_Create(t *testing.T) {
	student := &model.User{ID: 7, Username: "ravi", Role: model.RoleStudent, Name: "Ravi Kumar"}
	input := CreatePassInput{
		OutDate:         "2024-05-01",
		OutTime:         "9:00 AM - 10:00 AM",
		InDate:          "2024-05-01",
		InTime:          "5:00 PM - 6:00 PM",
		Reason:          "family visit",
		Destination:     "city center",
		ContactNumber:   "9876543210",
		ParentContactNo: "9876543211",
	}

	t.Run("successful creation notifies every warden", func(t *testing.T) {
		mockPasses := new(MockPassRepository)
		mockUsers := new(MockUserRepository)
		mockNotifications := new(MockNotificationRepository)

		mockPasses.On("CountActiveSlot", mock.Anything, uint(7), "2024-05-01", "9:00 AM - 10:00 AM").Return(int64(0), nil)
		mockPasses.On("Create", mock.Anything, mock.AnythingOfType("*model.Pass")).Return(nil)
		mockUsers.On("ListByRole", mock.Anything, model.RoleWarden).Return([]model.User{
			{ID: 2, Role: model.RoleWarden},
			{ID: 3, Role: model.RoleWarden},
		}, nil)
		mockNotifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return strings.Contains(n.Message, "New gate pass request from Ravi Kumar")
		})).Return(nil).Times(2)

		service := NewPassService(mockPasses, mockUsers, mockNotifications)
		pass, err := service.Create(context.Background(), student, input)

		assert.NoError(t, err)
		assert.NotNil(t, pass)
		assert.Equal(t, model.PassPending, pass.Status)
		assert.Nil(t, pass.WardenID)
		assert.Nil(t, pass.WardenNote)
		assert.Equal(t, uint(7), pass.UserID)

		mockPasses.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
		mockNotifications.AssertExpectations(t)
	})

	t.Run("duplicate slot is rejected before insert", func(t *testing.T) {
		mockPasses := new(MockPassRepository)
		mockUsers := new(MockUserRepository)
		mockNotifications := new(MockNotificationRepository)

		mockPasses.On("CountActiveSlot", mock.Anything, uint(7), "2024-05-01", "9:00 AM - 10:00 AM").Return(int64(1), nil)

		service := NewPassService(mockPasses, mockUsers, mockNotifications)
		pass, err := service.Create(context.Background(), student, input)

		assert.Error(t, err)
		assert.Equal(t, errors.ErrDuplicatePass, err)
		assert.Nil(t, pass)
		mockPasses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockNotifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPassService_Review(t *testing.T) {
	warden := &model.User{ID: 2, Username: "warden", Role: model.RoleWarden, Name: "Dr. Smith (Warden)"}

	pendingPass := func() *model.Pass {
		return &model.Pass{
			ID:      11,
			UserID:  7,
			OutDate: "2024-05-01",
			OutTime: "9:00 AM - 10:00 AM",
			Status:  model.PassPending,
		}
	}

	tests := []struct {
		name           string
		input          ReviewInput
		setupMock      func(*MockPassRepository, *MockNotificationRepository)
		expectedError  error
		expectedStatus model.PassStatus
	}{
		{
			name:  "approve a pending pass",
			input: ReviewInput{PassID: 11, Status: model.PassApproved},
			setupMock: func(mPasses *MockPassRepository, mNotifications *MockNotificationRepository) {
				mPasses.On("FindByIDForUpdate", mock.Anything, uint(11)).Return(pendingPass(), nil)
				mPasses.On("Update", mock.Anything, mock.AnythingOfType("*model.Pass")).Return(nil)
				mNotifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
					return n.UserID == 7 && strings.Contains(n.Message, "approved")
				})).Return(nil).Once()
			},
			expectedStatus: model.PassApproved,
		},
		{
			name:  "reject a pending pass with a note",
			input: ReviewInput{PassID: 11, Status: model.PassRejected, WardenNote: "exams next week"},
			setupMock: func(mPasses *MockPassRepository, mNotifications *MockNotificationRepository) {
				mPasses.On("FindByIDForUpdate", mock.Anything, uint(11)).Return(pendingPass(), nil)
				mPasses.On("Update", mock.Anything, mock.AnythingOfType("*model.Pass")).Return(nil)
				mNotifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
					return n.UserID == 7 && strings.Contains(n.Message, "rejected")
				})).Return(nil).Once()
			},
			expectedStatus: model.PassRejected,
		},
		{
			name:  "pass not found",
			input: ReviewInput{PassID: 99, Status: model.PassApproved},
			setupMock: func(mPasses *MockPassRepository, mNotifications *MockNotificationRepository) {
				mPasses.On("FindByIDForUpdate", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrPassNotFound,
		},
		{
			name:  "already reviewed pass cannot be reviewed again",
			input: ReviewInput{PassID: 11, Status: model.PassRejected},
			setupMock: func(mPasses *MockPassRepository, mNotifications *MockNotificationRepository) {
				approved := pendingPass()
				approved.Status = model.PassApproved
				mPasses.On("FindByIDForUpdate", mock.Anything, uint(11)).Return(approved, nil)
			},
			expectedError: errors.ErrPassNotPending,
		},
		{
			name:          "decision must be approved or rejected",
			input:         ReviewInput{PassID: 11, Status: model.PassPending},
			setupMock:     func(mPasses *MockPassRepository, mNotifications *MockNotificationRepository) {},
			expectedError: errors.ErrPassNotPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPasses := new(MockPassRepository)
			mockUsers := new(MockUserRepository)
			mockNotifications := new(MockNotificationRepository)
			tt.setupMock(mockPasses, mockNotifications)

			service := NewPassService(mockPasses, mockUsers, mockNotifications)
			pass, err := service.Review(context.Background(), warden, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, pass)
				mockPasses.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				mockNotifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, pass)
				assert.Equal(t, tt.expectedStatus, pass.Status)
				assert.NotNil(t, pass.WardenID)
				assert.Equal(t, uint(2), *pass.WardenID)
				if tt.input.WardenNote != "" {
					assert.NotNil(t, pass.WardenNote)
					assert.Equal(t, tt.input.WardenNote, *pass.WardenNote)
				}
			}

			mockPasses.AssertExpectations(t)
			mockNotifications.AssertExpectations(t)
		})
	}
}

func TestPassService_ListByStatus(t *testing.T) {
	t.Run("without date filter", func(t *testing.T) {
		mockPasses := new(MockPassRepository)
		mockPasses.On("ListByStatus", mock.Anything, model.PassApproved).Return([]model.Pass{{ID: 1}}, nil)

		service := NewPassService(mockPasses, new(MockUserRepository), new(MockNotificationRepository))
		passes, err := service.ListByStatus(context.Background(), model.PassApproved, "")

		assert.NoError(t, err)
		assert.Len(t, passes, 1)
		mockPasses.AssertExpectations(t)
	})

	t.Run("with date filter", func(t *testing.T) {
		mockPasses := new(MockPassRepository)
		mockPasses.On("ListByStatusAndDate", mock.Anything, model.PassApproved, "2024-05-01").Return([]model.Pass{{ID: 1}, {ID: 2}}, nil)

		service := NewPassService(mockPasses, new(MockUserRepository), new(MockNotificationRepository))
		passes, err := service.ListByStatus(context.Background(), model.PassApproved, "2024-05-01")

		assert.NoError(t, err)
		assert.Len(t, passes, 2)
		mockPasses.AssertExpectations(t)
	})
}
