package server

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/pipeline"
)

// Request-level error codes.
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(
		RequestID(),
		Logging(s.logger),
		Recovery(s.logger),
		BodyLimit(s.cfg.MaxBodyBytes),
	)
	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, CodeNotFound, "route not found")
	})

	api := r.Group("/api/v1")
	api.GET("/health", s.health)
	api.POST("/format", s.format)
	api.POST("/highlight", s.highlight)
	api.POST("/views", s.views)
	api.POST("/preview", s.preview)
	api.POST("/print", s.print)
	api.POST("/download", s.download)
	api.POST("/export/pdf", s.exportPDF)
	return r
}

// bindRecord decodes the request body, responding on failure.
func bindRecord(c *gin.Context) (xmlview.Record, bool) {
	rec, err := xmlview.DecodeRecord(c.Request.Body)
	if err != nil {
		respondErr(c, err)
		return xmlview.Record{}, false
	}
	return rec, true
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "pdf": s.exporter != nil})
}

func (s *Server) format(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	vs := s.renderer.Open(rec)
	c.JSON(http.StatusOK, gin.H{"empty": vs.Empty(), "formatted": vs.Formatted})
}

type spanJSON struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

func (s *Server) highlight(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	vs := s.renderer.Open(rec)

	var spans []xmlview.Span
	switch source := c.DefaultQuery("source", "formatted"); source {
	case "formatted":
		spans = vs.Code
	case "raw":
		spans = vs.Raw
	default:
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "source must be formatted or raw, got "+source)
		return
	}

	out := make([]spanJSON, len(spans))
	for i, sp := range spans {
		out[i] = spanJSON{Text: sp.Text, Style: string(sp.Style)}
	}
	c.JSON(http.StatusOK, gin.H{"spans": out, "html": pipeline.RenderHTML(spans)})
}

type viewsJSON struct {
	Empty         bool              `json:"empty"`
	Formatted     string            `json:"formatted"`
	Tree          *xmlview.Element  `json:"tree,omitempty"`
	TreeError     string            `json:"treeError,omitempty"`
	Document      *xmlview.Document `json:"document,omitempty"`
	DocumentError string            `json:"documentError,omitempty"`
}

func (s *Server) views(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	vs := s.renderer.Open(rec)

	out := viewsJSON{Empty: vs.Empty(), Formatted: vs.Formatted}
	if !vs.Empty() {
		// Trees over the depth limit are withheld: encoding recurses.
		if vs.TreeErr != nil {
			out.TreeError = vs.TreeErr.Error()
		} else {
			out.Tree = vs.Tree
		}
		if vs.DocumentErr != nil {
			out.DocumentError = vs.DocumentErr.Error()
		} else {
			out.Document = &vs.Document
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) preview(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	exp := xmlview.NewExpansion(c.QueryArray("expand")...)
	if c.Query("expandAll") == "true" {
		exp.ExpandAll(true)
	}

	page, err := s.renderer.PreviewHTML(s.renderer.Open(rec), exp)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) print(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	md, err := s.renderer.PrintMarkdown(s.renderer.Open(rec))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

func (s *Server) download(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	name, err := xmlview.Download(&buf, rec)
	if err != nil {
		respondErr(c, err)
		return
	}
	attachment(c, name)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func (s *Server) exportPDF(c *gin.Context) {
	if s.exporter == nil {
		respondError(c, http.StatusServiceUnavailable, CodeUnavailable, "PDF export is disabled")
		return
	}
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	pdf, err := s.exporter.Export(c.Request.Context(), rec)
	if err != nil {
		respondErr(c, err)
		return
	}
	attachment(c, rec.BaseName()+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}
