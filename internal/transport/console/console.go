package console

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/agent-console/internal/state"
)

type consoleResponse struct {
	ID      string           `json:"id"`
	AgentID string           `json:"agentId"`
	View    state.DetailView `json:"view"`
}

func respond(c *gin.Context, code int, con *state.Console) {
	c.JSON(code, consoleResponse{ID: con.ID, AgentID: con.AgentID, View: con.Detail.View()})
}

func Register(rg *gin.RouterGroup, consoles *state.Consoles) {
	rg.POST("", openConsole(consoles))
	rg.GET("/:cid", withConsole(consoles, func(c *gin.Context, con *state.Console) {
		respond(c, http.StatusOK, con)
	}))
	rg.DELETE("/:cid", closeConsole(consoles))
	rg.POST("/:cid/reload", withConsole(consoles, func(c *gin.Context, con *state.Console) {
		con.Reload(c.Request.Context())
		respond(c, http.StatusOK, con)
	}))
	rg.POST("/:cid/roleplay", withConsole(consoles, func(c *gin.Context, con *state.Console) {
		con.Detail.OpenRolePlay()
		respond(c, http.StatusOK, con)
	}))
	rg.DELETE("/:cid/roleplay", withConsole(consoles, func(c *gin.Context, con *state.Console) {
		con.Detail.CloseRolePlay()
		respond(c, http.StatusOK, con)
	}))
	rg.POST("/:cid/call", withConsole(consoles, startCall))
	rg.DELETE("/:cid/call", withConsole(consoles, func(c *gin.Context, con *state.Console) {
		con.Detail.EndDirectCall()
		respond(c, http.StatusOK, con)
	}))
}

// withConsole resolves :cid before running fn and marks the console as used.
func withConsole(consoles *state.Consoles, fn func(*gin.Context, *state.Console)) gin.HandlerFunc {
	return func(c *gin.Context) {
		con, ok := consoles.Touch(c.Param("cid"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "console not found"})
			return
		}
		fn(c, con)
	}
}

type openReq struct {
	AgentID string `json:"agentId"`
	Draft   bool   `json:"draft"`
}

func openConsole(consoles *state.Consoles) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req openReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		con := consoles.Open(c.Request.Context(), req.AgentID, req.Draft)
		respond(c, http.StatusCreated, con)
	}
}

func closeConsole(consoles *state.Consoles) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !consoles.Close(c.Param("cid")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "console not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type callReq struct {
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	MicrophoneID string `json:"microphoneId"`
	SpeakerID    string `json:"speakerId"`
}

func startCall(c *gin.Context, con *state.Console) {
	var req callReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	con.Detail.StartDirectCall(req.PhoneNumber, state.DeviceSettings{
		MicrophoneID: req.MicrophoneID,
		SpeakerID:    req.SpeakerID,
	})
	respond(c, http.StatusOK, con)
}
