package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"invoice-engine/internal/http/middleware"
	"invoice-engine/internal/invoice"
	"invoice-engine/internal/render"
	"invoice-engine/internal/services"
	"invoice-engine/internal/utils"
)

// InvoiceHandler serves invoice previews, PDFs and email dispatch. A fresh
// DocsService is built for every request.
type InvoiceHandler struct {
	Records      services.RecordLoader
	Composer     invoice.Composer
	Surfaces     render.SurfaceFactory
	AssetTimeout time.Duration
	FlowMode     bool
	Mailer       services.Sender
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Variant string `json:"variant"`
}

func (h InvoiceHandler) service(c *gin.Context) services.DocsService {
	return services.DocsService{
		Records:      h.Records,
		Composer:     h.Composer,
		Surfaces:     h.Surfaces,
		AssetTimeout: h.AssetTimeout,
		FlowMode:     h.FlowMode,
		Mailer:       h.Mailer,
		RequestID:    middleware.GetRequestID(c),
	}
}

func invoiceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_invoice_id", "id invoice tidak valid", nil)
		return 0, false
	}
	return id, true
}

// GET /api/invoices/:id/document
func (h InvoiceHandler) GetDocument(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	doc, _, err := h.service(c).ComposeDocument(c.Request.Context(), id, services.ParseVariant(c.Query("variant")))
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "invoice", "get_document", err)
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc, "total_pages": doc.PageCount()})
}

// GET /api/invoices/:id/pdf
func (h InvoiceHandler) GetPDF(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	pdfBytes, filename, err := h.service(c).GenerateInvoice(c.Request.Context(), id, services.ParseVariant(c.Query("variant")))
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "invoice", "get_pdf", err)
		RespondDomainError(c, err)
		return
	}

	disposition := "inline"
	if c.Query("download") == "1" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// POST /api/invoices/:id/email
func (h InvoiceHandler) SendEmail(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "payload tidak valid", nil)
		return
	}

	res, err := h.service(c).EmailInvoice(c.Request.Context(), id, services.EmailInput{
		To:      req.To,
		Subject: req.Subject,
		Message: req.Message,
		Variant: services.ParseVariant(req.Variant),
	})
	if err != nil {
		status, code := StatusFor(err)
		msg := res.Message
		if msg == "" || status == http.StatusInternalServerError {
			msg = "gagal mengirim email"
		}
		c.JSON(status, gin.H{
			"success":    false,
			"message":    msg,
			"code":       code,
			"request_id": middleware.GetRequestID(c),
		})
		return
	}
	c.JSON(http.StatusOK, res)
}
