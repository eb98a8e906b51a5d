package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance отметка о посещении зала участником.
type Attendance struct {
	ID         int64     `json:"id"`
	MemberID   uuid.UUID `json:"memberId"`
	MemberName string    `json:"memberName,omitempty"`
	Date       time.Time `json:"date"`
}

// AttendanceRequest ручная отметка посещения. Date принимает 2006-01-02 или RFC3339.
type AttendanceRequest struct {
	MemberID string `json:"memberId" validate:"required,uuid"`
	Date     string `json:"date" validate:"required"`
}
