package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kegliz/qasmc/alloc"
	"github.com/kegliz/qasmc/compiler"
	"github.com/kegliz/qasmc/internal/program"
)

var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// HealthHandler is the handler for the /health endpoint.
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// CompileResponse reports the emitted program plus the allocator's
// resolved routing cost.
type CompileResponse struct {
	Source     string `json:"source"`
	Cost       int    `json:"cost"`
	Operations int    `json:"operations"`
}

// CompileProgram is the handler for POST /api/compile: it builds a
// module from the request body, runs it through compiler.Compile, and
// returns the emitted source plus the allocator's cost.
func (a *appServer) CompileProgram(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}
	l.Debug().Msg("serving compile endpoint")

	var req program.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if req.Qubits <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "qubits must be positive"})
		return
	}
	if req.Architecture.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "architecture.size must be positive"})
		return
	}

	cfg := a.cfg
	program.ApplyOverride(&cfg, req.Config)

	m, err := program.BuildModule(&req)
	if err != nil {
		l.Error().Err(err).Msg("building module failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to build program: " + err.Error()})
		return
	}

	target, err := program.BuildTarget(&req)
	if err != nil {
		l.Error().Err(err).Msg("building target architecture failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to build target: " + err.Error()})
		return
	}

	initial := program.IdentityMapping(req.Architecture.Size)
	if len(req.InitialMapping) > 0 {
		initial = alloc.Mapping(req.InitialMapping)
	}

	result, err := compiler.Compile(m, initial, target, cfg, l)
	if err != nil {
		l.Error().Err(err).Msg("compile failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, CompileResponse{
		Source:     result.Module.String(true, false),
		Cost:       result.Solution.Cost,
		Operations: len(result.Solution.OpSeqs),
	})
}
