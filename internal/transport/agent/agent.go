package agent

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	"github.com/alanyang/agent-console/internal/render"
	agentsvc "github.com/alanyang/agent-console/internal/service/agent"
	"github.com/alanyang/agent-console/internal/state"
)

func Register(rg *gin.RouterGroup, svc *agentsvc.Service) {
	rg.GET("", listAgents(svc))
	rg.POST("", createAgent(svc))
	rg.GET("/:id", getAgent(svc))
	rg.PATCH("/:id", updateAgent(svc))
	rg.DELETE("/:id", deleteAgent(svc))
	rg.GET("/:id/prompt", renderPrompt(svc))
}

// RegisterClassifications serves the fixed industry and function tables.
func RegisterClassifications(rg *gin.RouterGroup) {
	rg.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"industries": domainagent.Industries,
			"functions":  domainagent.Functions,
		})
	})
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domainagent.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainagent.ErrInvalid), errors.Is(err, domainagent.ErrMissingID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func listAgents(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domainagent.Filter(c.DefaultQuery("filter", string(domainagent.FilterAll)))

		list := state.NewList(svc)
		list.Load(c.Request.Context(), filter)

		v := list.View()
		if v.Error != "" {
			c.JSON(http.StatusInternalServerError, v)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func getAgent(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail := state.NewDetail(svc)
		detail.Load(c.Request.Context(), c.Param("id"))

		v := detail.View()
		if v.Error != "" {
			c.JSON(StatusFor(detail.LastError()), v)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func createAgent(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domainagent.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		a, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			c.JSON(StatusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func updateAgent(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch domainagent.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		a, err := svc.Update(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			c.JSON(StatusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func deleteAgent(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(StatusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// renderPrompt serves the hydrated agent's prompt as sanitized HTML, so agents
// without a stored prompt preview the default one.
func renderPrompt(svc *agentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail := state.NewDetail(svc)
		detail.Load(c.Request.Context(), c.Param("id"))

		v := detail.View()
		if v.Agent == nil {
			c.JSON(StatusFor(detail.LastError()), gin.H{"error": v.Error})
			return
		}

		html, err := render.Prompt(v.Agent.Prompt)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "prompt render failed", "agent_id", v.Agent.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render prompt"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}
