// Package models defines the persisted records of the invoice backend.
package models

import (
	"time"

	"github.com/scanfact/scanfact/internal/common"
)

// User is an account row. PasswordHash never leaves the storage and
// service layers. Active is a reversible switch; deleting a user removes
// the row entirely.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Role         common.Role
	PasswordHash []byte
	Active       bool
	CreatedAt    time.Time
}

// Client is a billed customer. CompanyID is the owning COMPANY or
// INDEPENDENT_ACCOUNTANT account; AssignedAccountantID is set when an
// accountant has been assigned to work the client's folders.
type Client struct {
	ID                   string
	Name                 string
	Email                string
	Phone                string
	CompanyID            string
	AssignedAccountantID string
	CreatedAt            time.Time
}

// Folder groups the invoices of one client. Favorite survives archiving;
// the views on the client side decide what an archived favorite means.
type Folder struct {
	ID          string
	ClientID    string
	FolderName  string
	Description string
	Favorite    bool
	Archived    bool
	CreatedAt   time.Time
}

// FolderDetail is a folder row joined with its client and invoice count,
// the shape the folder endpoints return.
type FolderDetail struct {
	Folder       Folder
	Client       Client
	InvoiceCount int
}

// InvoiceStatus is the review lifecycle of an uploaded invoice.
type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoiceValidated InvoiceStatus = "validated"
	InvoiceFailed    InvoiceStatus = "failed"
)

// Invoice belongs to exactly one folder. Fields is the flat key→value
// map the OCR extraction produced, stored as JSON.
type Invoice struct {
	ID          string
	FolderID    string
	InvoiceName string
	ImageURL    string
	Status      InvoiceStatus
	Fields      map[string]string
	CreatedAt   time.Time
}
