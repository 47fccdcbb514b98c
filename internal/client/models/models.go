// Package models defines the domain records the client mirrors from the
// server. Records are plain values; ids are server-assigned and stable.
package models

import (
	"time"

	"github.com/scanfact/scanfact/internal/common"
)

// Client is a billed customer belonging to one company or accountant.
type Client struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	AssignedAccountantID string `json:"assignedAccountantId,omitempty"`
}

func (c Client) EntityID() string { return c.ID }

// Folder groups the invoices of one client. Favorite and Archived are
// independent booleans: archiving keeps the prior favorite flag so it is
// restored on unarchive, but archived folders never show up in the
// favorites or active views.
type Folder struct {
	ID           string    `json:"id"`
	FolderName   string    `json:"folderName"`
	Description  string    `json:"description"`
	Client       Client    `json:"client"`
	CreatedAt    time.Time `json:"createdAt"`
	Favorite     bool      `json:"favorite"`
	Archived     bool      `json:"archived"`
	InvoiceCount int       `json:"invoiceCount"`
}

func (f Folder) EntityID() string { return f.ID }

// InvoiceStatus is the invoice review lifecycle.
type InvoiceStatus string

const (
	// InvoicePending: uploaded, extraction not yet confirmed by a human.
	InvoicePending InvoiceStatus = "pending"
	// InvoiceValidated: a user accepted the extracted fields.
	InvoiceValidated InvoiceStatus = "validated"
	// InvoiceFailed: a user rejected the extraction.
	InvoiceFailed InvoiceStatus = "failed"
)

// Invoice belongs to exactly one folder (foreign key, not ownership).
// Fields holds the flat map the OCR extraction produced.
type Invoice struct {
	ID          string            `json:"id"`
	FolderID    string            `json:"folderId"`
	InvoiceName string            `json:"invoiceName"`
	ImageURL    string            `json:"img"`
	Status      InvoiceStatus     `json:"status"`
	Fields      map[string]string `json:"fields,omitempty"`
}

func (i Invoice) EntityID() string { return i.ID }

// User is an admin-managed account. Active toggles independently of
// deletion: deactivation is reversible, deletion is terminal.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	Role        common.Role `json:"role"`
	Active      bool        `json:"active"`
	// Password is write-only: set when creating an account, never
	// returned by the server.
	Password string `json:"password,omitempty"`
}

func (u User) EntityID() string { return u.ID }
