package persistence

import (
	"github.com/workhub/backend/internal/domain/calendar"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/messaging"
	"github.com/workhub/backend/internal/domain/project"
	"github.com/workhub/backend/internal/domain/task"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all entities, including
// the composite unique indexes that back Conflict detection.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&directory.Contact{},
		&task.Task{},
		&messaging.Message{},
		&document.Folder{},
		&document.Document{},
		&document.Share{},
		&calendar.Event{},
		&calendar.Participant{},
		&calendar.Reminder{},
		&project.Project{},
		&project.Member{},
		&project.TaskLink{},
		&project.DocumentLink{},
		&project.EventLink{},
		&project.Activity{},
	)
}
