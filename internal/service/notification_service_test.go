package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gatepass/internal/errors"
	"gatepass/internal/model"
)

func TestNotificationService_MarkRead(t *testing.T) {
	t.Run("marks an unread notification", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Notification{ID: 5, UserID: 7, IsRead: false}, nil)
		mockRepo.On("MarkRead", mock.Anything, uint(5)).Return(nil)

		service := NewNotificationService(mockRepo)
		notification, err := service.MarkRead(context.Background(), 5)

		assert.NoError(t, err)
		assert.True(t, notification.IsRead)
		mockRepo.AssertExpectations(t)
	})

	t.Run("marking twice is idempotent", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Notification{ID: 5, UserID: 7, IsRead: true}, nil)

		service := NewNotificationService(mockRepo)
		notification, err := service.MarkRead(context.Background(), 5)

		assert.NoError(t, err)
		assert.True(t, notification.IsRead)
		mockRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("missing notification", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewNotificationService(mockRepo)
		notification, err := service.MarkRead(context.Background(), 99)

		assert.Error(t, err)
		assert.Equal(t, errors.ErrNotificationNotFound, err)
		assert.Nil(t, notification)
	})
}

func TestNotificationService_ListForUser(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	mockRepo.On("ListByUser", mock.Anything, uint(7)).Return([]model.Notification{
		{ID: 2, UserID: 7, Message: "Your gate pass request for 2024-05-01 (9:00 AM - 10:00 AM) has been approved"},
		{ID: 1, UserID: 7, Message: "New gate pass request from Ravi Kumar"},
	}, nil)

	service := NewNotificationService(mockRepo)
	notifications, err := service.ListForUser(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Equal(t, uint(2), notifications[0].ID)
	mockRepo.AssertExpectations(t)
}
