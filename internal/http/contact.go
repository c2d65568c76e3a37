package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/moderation"
)

// ContactController accepts public contact form submissions. No
// authentication is required; the message queue is reviewed by admins.
type ContactController struct {
	moderation *moderation.Service
}

func NewContactController(service *moderation.Service) *ContactController {
	return &ContactController{moderation: service}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
func (controller *ContactController) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	message, err := controller.moderation.Submit(req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		switch err {
		case moderation.ErrNameRequired, moderation.ErrEmailRequired,
			moderation.ErrEmailInvalid, moderation.ErrSubjectRequired,
			moderation.ErrMessageRequired:
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "submit contact message")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": message.ID, "message": "message received"})
}
