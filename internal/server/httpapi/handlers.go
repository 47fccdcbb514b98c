package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/server/models"
	"github.com/scanfact/scanfact/internal/server/services"
)

// Services bundles the use-case layer the handlers sit on.
type Services struct {
	Auth     *services.AuthService
	Clients  *services.ClientsService
	Folders  *services.FoldersService
	Invoices *services.InvoicesService
	Users    *services.UsersService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
}

func (s *Services) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:       res.Token,
		ID:          res.User.ID,
		Email:       res.User.Email,
		Role:        string(res.User.Role),
		DisplayName: res.User.DisplayName,
	})
}

type clientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (s *Services) listClients(c *gin.Context) {
	scope := common.ClientScope(c.Query("scope"))

	clients, err := s.Clients.List(c.Request.Context(), caller(c), scope)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toClientDTOs(clients))
}

func (s *Services) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := s.Clients.Create(c.Request.Context(), caller(c), models.Client{
		Name: req.Name, Email: req.Email, Phone: req.Phone,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClientDTO(*created))
}

func (s *Services) updateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.Clients.Update(c.Request.Context(), caller(c), models.Client{
		ID: c.Param("id"), Name: req.Name, Email: req.Email, Phone: req.Phone,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toClientDTO(*updated))
}

type assignRequest struct {
	AccountantID string `json:"accountantId"`
}

func (s *Services) assignClient(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.Clients.Assign(c.Request.Context(), caller(c), c.Param("id"), req.AccountantID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toClientDTO(*updated))
}

func (s *Services) deleteClient(c *gin.Context) {
	if err := s.Clients.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type folderRequest struct {
	FolderName  string `json:"folderName"`
	Description string `json:"description"`
	Client      struct {
		ID string `json:"id"`
	} `json:"client"`
}

func (s *Services) listFolders(c *gin.Context) {
	folders, err := s.Folders.List(c.Request.Context(), caller(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toFolderDTOs(folders))
}

func (s *Services) createFolder(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := s.Folders.Create(c.Request.Context(), caller(c), models.Folder{
		FolderName: req.FolderName, Description: req.Description, ClientID: req.Client.ID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFolderDTO(*created))
}

func (s *Services) updateFolder(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.Folders.Update(c.Request.Context(), caller(c), models.Folder{
		ID: c.Param("id"), FolderName: req.FolderName, Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toFolderDTO(*updated))
}

type flagRequest struct {
	Value bool `json:"value"`
}

func (s *Services) favoriteFolder(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.Folders.SetFavorite(c.Request.Context(), caller(c), c.Param("id"), req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toFolderDTO(*updated))
}

func (s *Services) archiveFolder(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.Folders.SetArchived(c.Request.Context(), caller(c), c.Param("id"), req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toFolderDTO(*updated))
}

func (s *Services) deleteFolder(c *gin.Context) {
	if err := s.Folders.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type invoiceRequest struct {
	FolderID    string `json:"folderId"`
	InvoiceName string `json:"invoiceName"`
	ImageURL    string `json:"img"`
}

func (s *Services) listInvoices(c *gin.Context) {
	invoices, err := s.Invoices.ListByFolder(c.Request.Context(), caller(c), c.Query("folder"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceDTOs(invoices))
}

func (s *Services) createInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := s.Invoices.Create(c.Request.Context(), caller(c), models.Invoice{
		FolderID: req.FolderID, InvoiceName: req.InvoiceName, ImageURL: req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInvoiceDTO(*created))
}

func (s *Services) updateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.Invoices.Update(c.Request.Context(), caller(c), models.Invoice{
		ID: c.Param("id"), InvoiceName: req.InvoiceName, ImageURL: req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceDTO(*updated))
}

func (s *Services) validateInvoice(c *gin.Context) {
	updated, err := s.Invoices.Validate(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceDTO(*updated))
}

func (s *Services) cancelInvoice(c *gin.Context) {
	updated, err := s.Invoices.Cancel(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceDTO(*updated))
}

func (s *Services) extractInvoice(c *gin.Context) {
	updated, err := s.Invoices.Extract(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceDTO(*updated))
}

func (s *Services) deleteInvoice(c *gin.Context) {
	if err := s.Invoices.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type userRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Password    string `json:"password"`
}

func (s *Services) listUsers(c *gin.Context) {
	users, err := s.Users.List(c.Request.Context(), caller(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTOs(users))
}

func (s *Services) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := s.Users.Create(c.Request.Context(), caller(c), models.User{
		Email: req.Email, DisplayName: req.DisplayName, Role: common.Role(req.Role),
	}, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserDTO(*created))
}

func (s *Services) updateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.Users.Update(c.Request.Context(), caller(c), models.User{
		ID: c.Param("id"), Email: req.Email, DisplayName: req.DisplayName, Role: common.Role(req.Role),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(*updated))
}

type activationRequest struct {
	Active bool `json:"active"`
}

func (s *Services) activateUser(c *gin.Context) {
	var req activationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.Users.SetActive(c.Request.Context(), caller(c), c.Param("id"), req.Active)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(*updated))
}

func (s *Services) deleteUser(c *gin.Context) {
	if err := s.Users.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
