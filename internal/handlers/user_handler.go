package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/orders-api/internal/dto"
	"github.com/BruksfildServices01/orders-api/internal/httpresp"
	"github.com/BruksfildServices01/orders-api/internal/middleware"
	ucUser "github.com/BruksfildServices01/orders-api/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	register *ucUser.RegisterUser
	update   *ucUser.UpdateUser
	remove   *ucUser.DeleteUser
	get      *ucUser.GetUser
	list     *ucUser.ListUsers
}

func NewUserHandler(
	register *ucUser.RegisterUser,
	update *ucUser.UpdateUser,
	remove *ucUser.DeleteUser,
	get *ucUser.GetUser,
	list *ucUser.ListUsers,
) *UserHandler {
	return &UserHandler{
		register: register,
		update:   update,
		remove:   remove,
		get:      get,
		list:     list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Sex      string `json:"sex" binding:"required,oneof=MALE FEMALE OTHER"`
	Role     string `json:"role" binding:"omitempty,oneof=ROLE_ADMIN ROLE_USER"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Sex      *string `json:"sex" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Role     *string `json:"role" binding:"omitempty,oneof=ROLE_ADMIN ROLE_USER"`
}

// ======================================================
// CREATE
// ======================================================

// Register is open to anonymous callers. A role is honoured only when
// an admin token accompanies the request.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := ucUser.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Sex:      req.Sex,
		Role:     req.Role,
	}
	if p, ok := middleware.PrincipalFrom(c); ok {
		in.Principal = &p
	}

	u, err := h.register.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, dto.NewUserDTO(u))
}

// ======================================================
// READ
// ======================================================

func (h *UserHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), p, id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.NewUserDTO(u))
}

func (h *UserHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.list.Execute(c.Request.Context(), p, q.Page, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Page(c, dto.NewUserDTOs(res.Users), res.Total, res.Page, res.Limit)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *UserHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.update.Execute(c.Request.Context(), ucUser.UpdateUserInput{
		Principal: p,
		UserID:    id,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Sex:       req.Sex,
		Role:      req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.NewUserDTO(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), p, id); err != nil {
		writeError(c, err)
		return
	}

	httpresp.NoContent(c)
}
