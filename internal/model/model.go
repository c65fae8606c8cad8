// Package model defines domain entities used by services, repositories and controllers.
package model

import (
	"fmt"
	"time"
)

// DefaultCompanyID is the single tenant every record belongs to.
// Placeholder tenancy: real tenant scoping is out of scope.
const DefaultCompanyID = "c1"

// Role is a user role within a company.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleTech  Role = "TECH"
)

// OrderStatus is the lifecycle state of a work order.
type OrderStatus string

const (
	StatusOpen       OrderStatus = "OPEN"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// Statuses lists every known status in display order.
var Statuses = []OrderStatus{StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Next returns the forward step offered to the user, if any.
// OPEN -> IN_PROGRESS -> COMPLETED; COMPLETED and CANCELLED have none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusOpen:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusCompleted, true
	}
	return "", false
}

// ParseStatus converts user input into a known status.
func ParseStatus(v string) (OrderStatus, error) {
	s := OrderStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

// Company is the tenant root.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is the session subject.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"passwordHash,omitempty"` // Argon2id, never persisted in the session
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CompanyID    string    `json:"companyId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Client is a customer of the service company.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkOrder is a unit of field work for a client.
type WorkOrder struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description,omitempty"`
	Status           OrderStatus `json:"status"`
	ClientID         string      `json:"clientId"`
	Client           *Client     `json:"client,omitempty"` // joined on list
	CompanyID        string      `json:"companyId"`
	CreatedAt        time.Time   `json:"createdAt"`
	TotalTimeMinutes *int        `json:"totalTimeMinutes,omitempty"`
}

// ServiceReport documents the completion of a work order.
type ServiceReport struct {
	ID          string     `json:"id"`
	WorkOrderID string     `json:"workOrderId"`
	WorkOrder   *WorkOrder `json:"workOrder,omitempty"` // joined on list, carries Client
	Notes       string     `json:"notes"`
	Equipment   string     `json:"equipment,omitempty"`
	CompletedAt time.Time  `json:"completedAt"`
	Photos      [][]byte   `json:"photos,omitempty"`
	PartsCost   Money      `json:"partsCost"`
	ServiceCost Money      `json:"serviceCost"`
}

// Total is partsCost + serviceCost.
func (r ServiceReport) Total() Money { return r.PartsCost + r.ServiceCost }

// WorkTimeEntry is a single logged chunk of work on an order.
type WorkTimeEntry struct {
	ID          string    `json:"id"`
	WorkOrderID string    `json:"workOrderId"`
	DurationMin int       `json:"durationMin"`
	Date        time.Time `json:"date"`
}

// ClientDraft is the create input for a client.
type ClientDraft struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
}

// ClientPatch is a partial update; nil fields are left untouched.
type ClientPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ClientPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Address == nil
}

// WorkOrderDraft is the create input for a work order.
type WorkOrderDraft struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ClientID    string      `json:"clientId"`
	Status      OrderStatus `json:"status,omitempty"` // OPEN when empty
	CompanyID   string      `json:"companyId,omitempty"`
}

// WorkOrderPatch is a partial update; nil fields are left untouched.
type WorkOrderPatch struct {
	Title            *string      `json:"title,omitempty"`
	Description      *string      `json:"description,omitempty"`
	Status           *OrderStatus `json:"status,omitempty"`
	TotalTimeMinutes *int         `json:"totalTimeMinutes,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p WorkOrderPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.TotalTimeMinutes == nil
}

// WorkOrderFilter narrows a work order list; the zero value matches everything.
type WorkOrderFilter struct {
	Status   OrderStatus `json:"status,omitempty"`
	ClientID string      `json:"clientId,omitempty"`
}

// ServiceReportDraft is the create input for a service report.
type ServiceReportDraft struct {
	WorkOrderID string   `json:"workOrderId"`
	Notes       string   `json:"notes"`
	Equipment   string   `json:"equipment,omitempty"`
	Photos      [][]byte `json:"photos,omitempty"`
	PartsCost   Money    `json:"partsCost"`
	ServiceCost Money    `json:"serviceCost"`
}

// ServiceReportPatch is a partial update; nil fields are left untouched.
type ServiceReportPatch struct {
	Notes       *string   `json:"notes,omitempty"`
	Equipment   *string   `json:"equipment,omitempty"`
	Photos      *[][]byte `json:"photos,omitempty"`
	PartsCost   *Money    `json:"partsCost,omitempty"`
	ServiceCost *Money    `json:"serviceCost,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ServiceReportPatch) Empty() bool {
	return p.Notes == nil && p.Equipment == nil && p.Photos == nil && p.PartsCost == nil && p.ServiceCost == nil
}

// ServiceReportFilter narrows a report list; the zero value matches everything.
type ServiceReportFilter struct {
	WorkOrderID string `json:"workOrderId,omitempty"`
}

// TimeEntryDraft is the create input for a work time entry.
type TimeEntryDraft struct {
	WorkOrderID string    `json:"workOrderId"`
	DurationMin int       `json:"durationMin"`
	Date        time.Time `json:"date,omitempty"` // now when zero
}

// TimeEntryPatch is a partial update; nil fields are left untouched.
type TimeEntryPatch struct {
	DurationMin *int       `json:"durationMin,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TimeEntryPatch) Empty() bool { return p.DurationMin == nil && p.Date == nil }

// TimeEntryFilter narrows a time entry list; the zero value matches everything.
type TimeEntryFilter struct {
	WorkOrderID string `json:"workOrderId,omitempty"`
}
