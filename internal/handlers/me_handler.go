package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/orders-api/internal/dto"
	"github.com/BruksfildServices01/orders-api/internal/httpresp"
	ucUser "github.com/BruksfildServices01/orders-api/internal/usecase/user"
)

type MeHandler struct {
	get *ucUser.GetUser
}

func NewMeHandler(get *ucUser.GetUser) *MeHandler {
	return &MeHandler{get: get}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), p, p.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.NewUserDTO(u))
}
