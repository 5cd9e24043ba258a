package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/catalogs/customer"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// Type alias keeps handler signatures readable.
type customerEntityHandler = EntityHandler[
	*customer.Customer,
	dto.CreateCustomerRequest,
	dto.UpdateCustomerRequest,
]

// CustomerHandler serves the customer catalog plus its contact sub-resource.
type CustomerHandler struct {
	*customerEntityHandler
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	config := EntityHandlerConfig[
		*customer.Customer,
		dto.CreateCustomerRequest,
		dto.UpdateCustomerRequest,
	]{
		Service:    service.EntityService,
		EntityName: "customer",

		MapCreateDTO: func(req dto.CreateCustomerRequest) *customer.Customer {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *customer.Customer) any {
			return dto.FromCustomer(entity)
		},
	}

	return &CustomerHandler{
		customerEntityHandler: NewEntityHandler(base, config),
		service:               service,
	}
}

// FindByTaxID handles GET /customers/by-tax-id/:taxId.
func (h *CustomerHandler) FindByTaxID(c *gin.Context) {
	cust, err := h.service.FindByTaxID(c.Request.Context(), c.Param("taxId"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCustomer(cust))
}

// ListContacts handles GET /customers/:id/contacts.
func (h *CustomerHandler) ListContacts(c *gin.Context) {
	customerID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	includeInactive := c.Query("includeInactive") == "true"

	contacts, err := h.service.ListContacts(c.Request.Context(), customerID, includeInactive)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ContactResponse, len(contacts))
	for i, contact := range contacts {
		items[i] = dto.FromContact(contact)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddContact handles POST /customers/:id/contacts.
func (h *CustomerHandler) AddContact(c *gin.Context) {
	customerID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.CreateContactRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contact := req.ToEntity(customerID)
	if err := h.service.AddContact(c.Request.Context(), contact); err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.FromContact(*contact)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", resp)
	c.JSON(http.StatusCreated, resp)
}

// ImportContacts handles POST /customers/:id/contacts/import.
// Accepts a batch of contacts and writes them in one transaction.
func (h *CustomerHandler) ImportContacts(c *gin.Context) {
	customerID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ImportContactsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inserted, err := h.service.ImportContacts(c.Request.Context(), customerID, req.ToEntities(customerID))
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := gin.H{"imported": inserted}
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", resp)
	c.JSON(http.StatusCreated, resp)
}
