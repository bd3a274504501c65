package handler

import (
	"net/http"

	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

// SubmitContact 处理联系表单。
func (a *API) SubmitContact(c *gin.Context) {
	var form service.ContactForm
	if !bindJSON(c, &form, "invalid contact form") {
		return
	}
	ack, err := a.leads.SubmitContact(c.Request.Context(), form)
	a.respondLead(c, ack, err)
}

// SubmitConsultation 处理咨询预约表单。
func (a *API) SubmitConsultation(c *gin.Context) {
	var form service.ConsultationForm
	if !bindJSON(c, &form, "invalid consultation form") {
		return
	}
	ack, err := a.leads.SubmitConsultation(c.Request.Context(), form)
	a.respondLead(c, ack, err)
}

// SubmitFreelancer 处理自由职业者注册表单。
func (a *API) SubmitFreelancer(c *gin.Context) {
	var form service.FreelancerForm
	if !bindJSON(c, &form, "invalid freelancer form") {
		return
	}
	ack, err := a.leads.SubmitFreelancer(c.Request.Context(), form)
	a.respondLead(c, ack, err)
}

// SubmitQuote 处理报价请求表单。
func (a *API) SubmitQuote(c *gin.Context) {
	var form service.QuoteForm
	if !bindJSON(c, &form, "invalid quote form") {
		return
	}
	ack, err := a.leads.SubmitQuote(c.Request.Context(), form)
	a.respondLead(c, ack, err)
}

func (a *API) respondLead(c *gin.Context, ack *service.Acknowledgement, err error) {
	if err != nil {
		a.respondServiceError(c, err, "failed to submit form, please try again later")
		return
	}
	c.JSON(http.StatusOK, ack)
}
