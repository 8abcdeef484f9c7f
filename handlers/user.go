package handlers

import (
	"fmt"
	"net/http"

	"styledecor/middleware"
	"styledecor/models"
	"styledecor/services/user"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service user.UserService
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "Invalid request body"))
		return false
	}
	return true
}

func (h *UserHandler) Sync(c *gin.Context) {
	var req models.UserSyncRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Service.Sync(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User synced successfully", "data": u})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Service.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "data": users})
}

func (h *UserHandler) Search(c *gin.Context) {
	u, err := h.Service.FindByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Service.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u, "role": u.Role})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var input struct {
		Role string `json:"role"`
	}
	if !bindJSON(c, &input) {
		return
	}
	u, err := h.Service.UpdateRole(c.Request.Context(), c.Param("userId"), input.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User role updated successfully",
		"data":    gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role},
	})
}

func (h *UserHandler) ListDecorators(c *gin.Context) {
	decorators, err := h.Service.ListDecorators(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(decorators), "data": decorators})
}

func (h *UserHandler) MakeDecorator(c *gin.Context) {
	var input struct {
		UserID      string   `json:"userId"`
		Specialties []string `json:"specialties"`
	}
	if !bindJSON(c, &input) {
		return
	}
	u, err := h.Service.MakeDecorator(c.Request.Context(), input.UserID, input.Specialties)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated to decorator", "data": u})
}

func (h *UserHandler) SetApproval(c *gin.Context) {
	var input struct {
		IsApproved bool `json:"isApproved"`
	}
	if !bindJSON(c, &input) {
		return
	}
	u, err := h.Service.SetApproval(c.Request.Context(), c.Param("decoratorId"), input.IsApproved)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	verb := "disabled"
	if input.IsApproved {
		verb = "approved"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Decorator %s successfully", verb),
		"data":    gin.H{"id": u.ID, "name": u.Name, "isApproved": input.IsApproved},
	})
}

func (h *UserHandler) UpdateDecoratorProfile(c *gin.Context) {
	var update models.DecoratorProfileUpdate
	if !bindJSON(c, &update) {
		return
	}
	identity, _ := middleware.GetIdentity(c)
	u, err := h.Service.UpdateDecoratorProfile(c.Request.Context(), identity, update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "data": u})
}

func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registration successful", "data": resp})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "data": resp})
}

func (h *UserHandler) Me(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	u, err := h.Service.Me(c.Request.Context(), identity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}
