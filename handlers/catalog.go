package handlers

import (
	"net/http"

	"styledecor/middleware"
	"styledecor/services/catalog"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

// maxImageSize caps catalog image uploads.
const maxImageSize = 5 << 20

type CatalogHandler struct {
	Service catalog.CatalogService
}

func (h *CatalogHandler) List(c *gin.Context) {
	var params catalog.ListParams
	_ = c.ShouldBindQuery(&params)

	page, err := h.Service.List(c.Request.Context(), params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       page.Services,
		"pagination": page.Pagination,
	})
}

func (h *CatalogHandler) Featured(c *gin.Context) {
	services, err := h.Service.Featured(c.Request.Context(), c.Query("limit"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services})
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.Service.Categories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

func (h *CatalogHandler) Get(c *gin.Context) {
	svc, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc})
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var in catalog.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "Invalid request body"))
		return
	}

	identity, _ := middleware.GetIdentity(c)
	svc, err := h.Service.Create(c.Request.Context(), identity, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Service created successfully",
		"data":    svc,
	})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var patch catalog.ServicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "Invalid request body"))
		return
	}

	svc, err := h.Service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service updated successfully",
		"data":    svc,
	})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted successfully"})
}

func (h *CatalogHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "Image file is required"))
		return
	}
	if header.Size > maxImageSize {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "Image cannot exceed 5MB"))
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, utils.Internal("Failed to read upload", err))
		return
	}
	defer file.Close()

	url, err := h.Service.UploadImage(c.Request.Context(), file, header.Filename)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Image uploaded successfully",
		"data":    gin.H{"url": url},
	})
}
