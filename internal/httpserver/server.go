package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	errx "github.com/alraulpm-lang/checador/internal/core/error"
	"github.com/alraulpm-lang/checador/internal/lookup/catalog"
	"github.com/alraulpm-lang/checador/internal/lookup/handler"
	"github.com/alraulpm-lang/checador/internal/lookup/messages"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/alraulpm-lang/checador/internal/lookup/source"
	"github.com/alraulpm-lang/checador/internal/lookup/tools"
	"github.com/alraulpm-lang/checador/internal/lookup/view"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
	"github.com/gin-gonic/gin"
)

// HTTPSourceName tags decode events posted over HTTP.
const HTTPSourceName = "http"

type Deps struct {
	Queue   *source.Queue
	Catalog *catalog.Catalog
	View    *view.Controller
	Handler *handler.Handler
	Tools   *tools.Registry
	Display model.DisplayConfig
}

type Server struct {
	deps Deps
	text messages.Set
}

func New(d Deps) http.Handler {
	s := &Server{deps: d, text: messages.For(d.Display.Language)}

	r := gin.New()
	r.Use(gin.Recovery(), logging())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	v1 := r.Group("/v1")
	v1.GET("/view", s.getView)
	v1.POST("/view/back", s.postBack)
	v1.POST("/scans", s.postScan)
	v1.GET("/products/:code", s.getProduct)
	v1.GET("/catalog", s.getCatalog)
	v1.GET("/tools", s.listTools)
	v1.POST("/tools/:name", s.invokeTool)

	return r
}

func (s *Server) getView(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.View.Snapshot())
}

func (s *Server) postBack(c *gin.Context) {
	s.deps.Handler.Back()
	c.JSON(http.StatusOK, s.deps.View.Snapshot())
}

type postScanDTO struct {
	Code string `json:"code"`
}

func (s *Server) postScan(c *gin.Context) {
	var dto postScanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	code := strings.TrimSpace(dto.Code)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	ev := model.NewDecodeEvent(HTTPSourceName, code)
	if err := s.deps.Queue.Enqueue(c.Request.Context(), ev); err != nil {
		if errors.Is(err, source.ErrQueueClosed) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scanner is shutting down"})
			return
		}
		c.JSON(http.StatusRequestTimeout, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": ev.ID, "code": ev.Code})
}

func (s *Server) getProduct(c *gin.Context) {
	code := c.Param("code")
	rec, outcome := s.deps.Catalog.Lookup(code)
	switch outcome {
	case model.OutcomeFound:
		c.JSON(http.StatusOK, gin.H{
			"product": handler.BuildDisplay(rec, s.deps.Display),
			"fields":  rec.Values,
		})
	case model.OutcomeLoading:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": s.text.StillLoading})
	default:
		c.JSON(errx.StatusOf(errx.LookupMiss(code)), gin.H{"error": s.text.NotFound(code)})
	}
}

func (s *Server) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":      s.deps.Catalog.State().String(),
		"count":      s.deps.Catalog.Len(),
		"code_field": s.deps.Catalog.CodeField(),
	})
}

func (s *Server) listTools(c *gin.Context) {
	infos, err := s.deps.Tools.Infos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": s.text.System})
		return
	}
	c.JSON(http.StatusOK, infos)
}

func (s *Server) invokeTool(c *gin.Context) {
	name := c.Param("name")
	if _, ok := s.deps.Tools.Get(name); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool"})
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	args := strings.TrimSpace(string(body))
	if args == "" {
		args = "{}"
	}

	out, err := s.deps.Tools.Invoke(c.Request.Context(), name, args)
	if err != nil {
		logx.Debug().Err(err).Str("tool", name).Msg("tool invocation failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(out))
}

func logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logx.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
