// Package models содержит доменные структуры клуба: участников, посещения и платежи,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus статус абонемента участника.
type MemberStatus string

const (
	// StatusActive абонемент действует, доступ в зал открыт.
	StatusActive MemberStatus = "Active"
	// StatusExpired срок абонемента истёк.
	StatusExpired MemberStatus = "Expired"
	// StatusPending абонемент оформлен, но ещё не начался.
	StatusPending MemberStatus = "Pending"
)

// DateLayout формат дат во входящих запросах.
const DateLayout = "2006-01-02"

// Member основная модель участника клуба.
// FingerprintID равен nil, если отпечаток ещё не зарегистрирован на сканере.
type Member struct {
	ID                    uuid.UUID    `json:"id"`
	Name                  string       `json:"name"`
	PhoneNumber           string       `json:"phoneNumber"`
	MembershipType        string       `json:"membershipType"`
	FingerprintID         *int64       `json:"fingerprintId,omitempty"`
	SubscriptionStartDate time.Time    `json:"subscriptionStartDate"`
	SubscriptionEndDate   time.Time    `json:"subscriptionEndDate"`
	Status                MemberStatus `json:"status"`
	CreatedAt             time.Time    `json:"createdAt"`
	UpdatedAt             time.Time    `json:"updatedAt"`
}

// StatusAt вычисляет статус абонемента на момент now.
// Даты абонемента календарные: берутся только год, месяц и день, сравнение идёт
// в часовом поясе now. Абонемент действует включительно по день окончания.
func (m *Member) StatusAt(now time.Time) MemberStatus {
	loc := now.Location()
	end := m.SubscriptionEndDate
	dayAfterEnd := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	if !now.Before(dayAfterEnd) {
		return StatusExpired
	}
	start := m.SubscriptionStartDate
	if now.Before(time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)) {
		return StatusPending
	}
	return StatusActive
}

// UpdateStatus пересчитывает статус и сообщает, изменился ли он.
func (m *Member) UpdateStatus(now time.Time) bool {
	status := m.StatusAt(now)
	if status == m.Status {
		return false
	}
	m.Status = status
	return true
}

// Summary короткая карточка участника для ответа сканеру.
func (m *Member) Summary() MemberSummary {
	return MemberSummary{
		Name:                m.Name,
		PhoneNumber:         m.PhoneNumber,
		MembershipType:      m.MembershipType,
		Status:              m.Status,
		FingerprintID:       m.FingerprintID,
		SubscriptionEndDate: m.SubscriptionEndDate,
	}
}

// MemberSummary данные участника, возвращаемые при проверке отпечатка.
type MemberSummary struct {
	Name                string       `json:"name"`
	PhoneNumber         string       `json:"phoneNumber,omitempty"`
	MembershipType      string       `json:"membershipType"`
	Status              MemberStatus `json:"status"`
	FingerprintID       *int64       `json:"fingerprintId,omitempty"`
	SubscriptionEndDate time.Time    `json:"subscriptionEndDate"`
}

// MemberRequest используется для приёма данных участника из JSON-запроса.
// Даты приходят строками в формате 2006-01-02.
type MemberRequest struct {
	Name                  string `json:"name" validate:"required,max=200"`
	PhoneNumber           string `json:"phoneNumber" validate:"required,max=32"`
	MembershipType        string `json:"membershipType" validate:"required,max=64"`
	FingerprintID         *int64 `json:"fingerprintId,omitempty" validate:"omitempty,gt=0"`
	SubscriptionStartDate string `json:"subscriptionStartDate" validate:"required,datetime=2006-01-02"`
	SubscriptionEndDate   string `json:"subscriptionEndDate" validate:"required,datetime=2006-01-02"`
}

// RenewRequest продление абонемента на несколько месяцев с оплатой.
type RenewRequest struct {
	Months int     `json:"months" validate:"required,gt=0,lte=36"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// MemberFilter параметры выборки списка участников.
type MemberFilter struct {
	Status *MemberStatus
	Search string
	Limit  int
	Offset int
}

// ExpiringMember участник, у которого скоро заканчивается абонемент.
type ExpiringMember struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	PhoneNumber         string    `json:"phoneNumber"`
	SubscriptionEndDate time.Time `json:"subscriptionEndDate"`
}
