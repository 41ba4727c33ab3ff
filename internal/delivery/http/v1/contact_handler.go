package v1

import (
	"net/http"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{contactUC: contactUC}
	public.POST("/contact", handler.Submit)
}

// Submit godoc
// @Summary      Submit the contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ContactMessage  true  "Contact message"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var msg domain.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.contactUC.Submit(c.Request.Context(), msg); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Message sent", nil)
}
