package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/config"
	"github.com/alexisbeaulieu97/qdxstudio/internal/editor"
	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
	"github.com/alexisbeaulieu97/qdxstudio/internal/theme"
	qdxerrors "github.com/alexisbeaulieu97/qdxstudio/pkg/errors"
)

type displayInfo struct {
	Type            catalog.DisplayType `json:"type"`
	Slots           []catalog.Slot      `json:"slots"`
	DefaultLocation catalog.Location    `json:"defaultLocation"`
}

type catalogResponse struct {
	Source   catalog.Source    `json:"source"`
	Displays []displayInfo     `json:"displays"`
	Codes    catalog.CodeTable `json:"codes"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (s *Server) handleSurface(c *gin.Context) {
	html, err := s.page.Surface(SocketPath)
	if err != nil {
		s.log.Error(err, "preview page failed")
		c.String(http.StatusInternalServerError, "preview page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleCatalog(c *gin.Context) {
	codes, source := s.catalog.Load(c.Request.Context())

	resp := catalogResponse{Source: source, Codes: codes}
	for _, dt := range catalog.DisplayTypes() {
		cfg := catalog.Config(string(dt))
		resp.Displays = append(resp.Displays, displayInfo{
			Type:            dt,
			Slots:           cfg.Slots.List(),
			DefaultLocation: cfg.DefaultLocation,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleThemes(c *gin.Context) {
	display := c.Query("display")
	var filter catalog.DisplayType
	if display != "" {
		dt, ok := catalog.ParseDisplayType(display)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown display type " + strconv.Quote(display)})
			return
		}
		filter = dt
	}

	rows := []theme.Row{}
	for _, row := range theme.Table() {
		if filter == "" || row.Display == filter {
			rows = append(rows, row)
		}
	}
	c.JSON(http.StatusOK, rows)
}

// handlePayload assembles a settings document. With ?strict=true the
// document must also pass submit validation. The payload is pushed to every
// connected preview surface.
func (s *Server) handlePayload(c *gin.Context) {
	session, ok := s.bindSession(c)
	if !ok {
		return
	}
	if strict, _ := strconv.ParseBool(c.Query("strict")); strict {
		if err := session.Validate(); err != nil {
			respondValidation(c, err)
			return
		}
	}

	pl := session.Payload()
	if err := s.hub.Send(c.Request.Context(), preview.ShowPreview{Data: pl}); err != nil {
		s.log.Warn("preview broadcast failed", "error", err.Error())
	}
	c.JSON(http.StatusOK, pl)
}

func (s *Server) handleHTML(c *gin.Context) {
	session, ok := s.bindSession(c)
	if !ok {
		return
	}
	id := c.Query("id")
	if id == "" {
		id = preview.NewMessageID()
	}

	html, err := s.page.Popup(id, session.Payload())
	if err != nil {
		s.log.Error(qdxerrors.NewRenderError(id, err), "popup page failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "popup page unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) bindSession(c *gin.Context) (*editor.Session, bool) {
	var doc config.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if err := config.ValidateDocument(&doc); err != nil {
		respondValidation(c, err)
		return nil, false
	}
	return editor.FromDocument(doc, s.log), true
}

func respondValidation(c *gin.Context, err error) {
	var ves qdxerrors.ValidationErrors
	var ve *qdxerrors.ValidationError
	fields := []fieldError{}
	switch {
	case errors.As(err, &ves):
		for _, v := range ves {
			fields = append(fields, fieldError{Field: v.Field, Message: v.Message})
		}
	case errors.As(err, &ve):
		fields = append(fields, fieldError{Field: ve.Field, Message: ve.Message})
	default:
		fields = append(fields, fieldError{Message: err.Error()})
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
}
