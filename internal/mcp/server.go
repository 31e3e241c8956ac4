// Package mcp exposes the tracker read-only to MCP clients over stdio, so
// an LLM assistant can query training history without touching the vault
// directly.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/stats"
)

// DataSource is the read side of the tracker consumed by tool handlers.
type DataSource interface {
	Snapshot() *models.Document
	Streak(now models.Date) stats.StreakResult
	Stats(now models.Date) stats.Totals
	PersonalRecords() []stats.PR
	ActiveExercises() []models.ExerciseDef
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepVault", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepVault workout tracker. Query workouts, streaks, aggregate stats, personal records, body measurements, and the exercise library. All data is local and read-only through this server."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetStreak, Handler: h.getStreak},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetMeasurements, Handler: h.getMeasurements},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTrainingSummary, Handler: h.trainingSummary},
		server.ServerResource{Resource: resPersonalRecords, Handler: h.personalRecords},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resTrainingSummary = mcp.NewResource(
	"repvault://training_summary",
	"Training Summary",
	mcp.WithResourceDescription("Workout totals, current and best streaks, and per-exercise volume"),
	mcp.WithMIMEType("application/json"),
)

var resPersonalRecords = mcp.NewResource(
	"repvault://personal_records",
	"Personal Records",
	mcp.WithResourceDescription("Heaviest recorded set per exercise across all workouts"),
	mcp.WithMIMEType("application/json"),
)
