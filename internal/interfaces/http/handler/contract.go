package handler

import (
	propertyapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/property"
	"github.com/gin-gonic/gin"
)

// ContractHandler handles lease contract endpoints
type ContractHandler struct {
	BaseHandler
	contracts *propertyapp.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contracts *propertyapp.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// Terminate handles POST /property/contracts/:id/terminate
func (h *ContractHandler) Terminate(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	contract, err := h.contracts.Terminate(c.Request.Context(), session, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}
