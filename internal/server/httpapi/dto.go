// Package httpapi exposes the backend over REST with gin. It owns the
// wire shapes, the bearer-token middleware and the mapping from service
// errors to status codes.
package httpapi

import (
	"time"

	"github.com/scanfact/scanfact/internal/server/models"
)

type clientDTO struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	AssignedAccountantID string `json:"assignedAccountantId,omitempty"`
}

func toClientDTO(c models.Client) clientDTO {
	return clientDTO{
		ID:                   c.ID,
		Name:                 c.Name,
		Email:                c.Email,
		Phone:                c.Phone,
		AssignedAccountantID: c.AssignedAccountantID,
	}
}

func toClientDTOs(clients []models.Client) []clientDTO {
	out := make([]clientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientDTO(c))
	}
	return out
}

type folderDTO struct {
	ID           string    `json:"id"`
	FolderName   string    `json:"folderName"`
	Description  string    `json:"description"`
	Client       clientDTO `json:"client"`
	CreatedAt    time.Time `json:"createdAt"`
	Favorite     bool      `json:"favorite"`
	Archived     bool      `json:"archived"`
	InvoiceCount int       `json:"invoiceCount"`
}

func toFolderDTO(d models.FolderDetail) folderDTO {
	return folderDTO{
		ID:           d.Folder.ID,
		FolderName:   d.Folder.FolderName,
		Description:  d.Folder.Description,
		Client:       toClientDTO(d.Client),
		CreatedAt:    d.Folder.CreatedAt,
		Favorite:     d.Folder.Favorite,
		Archived:     d.Folder.Archived,
		InvoiceCount: d.InvoiceCount,
	}
}

func toFolderDTOs(folders []models.FolderDetail) []folderDTO {
	out := make([]folderDTO, 0, len(folders))
	for _, d := range folders {
		out = append(out, toFolderDTO(d))
	}
	return out
}

type invoiceDTO struct {
	ID          string            `json:"id"`
	FolderID    string            `json:"folderId"`
	InvoiceName string            `json:"invoiceName"`
	ImageURL    string            `json:"img"`
	Status      string            `json:"status"`
	Fields      map[string]string `json:"fields,omitempty"`
}

func toInvoiceDTO(i models.Invoice) invoiceDTO {
	return invoiceDTO{
		ID:          i.ID,
		FolderID:    i.FolderID,
		InvoiceName: i.InvoiceName,
		ImageURL:    i.ImageURL,
		Status:      string(i.Status),
		Fields:      i.Fields,
	}
}

func toInvoiceDTOs(invoices []models.Invoice) []invoiceDTO {
	out := make([]invoiceDTO, 0, len(invoices))
	for _, i := range invoices {
		out = append(out, toInvoiceDTO(i))
	}
	return out
}

type userDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
}

func toUserDTO(u models.User) userDTO {
	return userDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Active:      u.Active,
	}
}

func toUserDTOs(users []models.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}
