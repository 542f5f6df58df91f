package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tasneemkhan/portfolio/internal/nav"
	"github.com/tasneemkhan/portfolio/internal/view"
)

func (s *Server) handleIndex(c *gin.Context) {
	s.html(c, view.PageTemplate, s.renderer.Page(nav.Initial()))
}

// html renders the whole template before writing, so a failing template
// yields a 500 rather than a truncated 200.
func (s *Server) html(c *gin.Context, name string, data any) {
	var buf bytes.Buffer
	if err := s.renderer.Execute(&buf, name, data); err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// eventForm is the state a nav control posts: the hidden #nav-state
// fields plus the target section for select.
type eventForm struct {
	Active string `form:"active" binding:"required"`
	Menu   bool   `form:"menu"`
	Loaded bool   `form:"loaded"`
	Target string `form:"target"`
}

func (f eventForm) state() (s nav.State, err error) {
	s.Active, err = nav.ParseSection(f.Active)
	s.MenuOpen = f.Menu
	s.Loaded = f.Loaded
	return s, err
}

// handleEvent applies one transition and returns the re-rendered nav.
// The post-mount event also returns the hero content out of band.
func (s *Server) handleEvent(c *gin.Context) {
	var form eventForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid nav state")
		return
	}

	state, err := form.state()
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	action, err := nav.ParseAction(c.Param("action"), form.Target)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	next := nav.Reduce(state, action)
	s.log.Debug("nav transition",
		zap.String("action", string(action.Kind)),
		zap.String("from", string(state.Active)),
		zap.String("to", string(next.Active)),
		zap.Bool("menu_open", next.MenuOpen),
	)

	if action.Kind == nav.ActionMount {
		s.html(c, view.MountedTemplate, s.renderer.Mounted(next))
		return
	}
	s.html(c, view.NavTemplate, s.renderer.Nav(next))
}
