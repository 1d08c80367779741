package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/medassist/internal/chat"
	"github.com/Skufu/medassist/internal/patient"
	"github.com/Skufu/medassist/internal/risk"
)

type symptomRequest struct {
	Symptom string `json:"symptom"`
}

type conditionRequest struct {
	Condition string `json:"condition"`
}

type messageRequest struct {
	Text string `json:"text"`
}

func (a *App) session(c *gin.Context) (*chat.Session, bool) {
	sess, err := a.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return sess, true
}

func (a *App) createSession(c *gin.Context) {
	sess := a.sessions.Create()
	c.JSON(http.StatusCreated, sess.View())
}

func (a *App) getSession(c *gin.Context) {
	sess, ok := a.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.View())
}

func (a *App) deleteSession(c *gin.Context) {
	if err := a.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *App) addSymptom(c *gin.Context) {
	sess, ok := a.session(c)
	if !ok {
		return
	}
	var req symptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := sess.AddSymptom(req.Symptom); err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess.View())
}

func (a *App) addCondition(c *gin.Context) {
	sess, ok := a.session(c)
	if !ok {
		return
	}
	var req conditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := sess.AddCondition(req.Condition); err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess.View())
}

func (a *App) setVitals(c *gin.Context) {
	sess, ok := a.session(c)
	if !ok {
		return
	}
	var v risk.Vitals
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if problems := v.Validate(); len(problems) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_failed", "details": problems})
		return
	}
	sess.SetVitals(v)
	c.JSON(http.StatusOK, sess.View())
}

// postMessage records the message and answers 202 while the reply is pending.
// With ?wait=true it holds the request until the reply lands.
func (a *App) postMessage(c *gin.Context) {
	sess, ok := a.session(c)
	if !ok {
		return
	}
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	turn, err := sess.Submit(req.Text)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	wait, _ := strconv.ParseBool(c.Query("wait"))
	if !wait {
		c.JSON(http.StatusAccepted, gin.H{"turn": turn, "pending": sess.Pending()})
		return
	}

	if err := sess.Wait(c.Request.Context()); err != nil {
		c.JSON(http.StatusAccepted, gin.H{"turn": turn, "pending": true})
		return
	}
	reply, _ := sess.LastReply()
	c.JSON(http.StatusOK, gin.H{"turn": turn, "reply": reply, "pending": false})
}

func writeStateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, patient.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, patient.ErrEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
