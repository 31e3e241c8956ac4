package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/stats"
)

func (h *handlers) trainingSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := models.Today()
	doc := h.ds.Snapshot()

	computed := h.ds.Streak(now)
	summary := map[string]any{
		"date":   now.String(),
		"totals": h.ds.Stats(now),
		"streak": stats.DisplayStreak(computed, doc.Settings.ManualStreakWeeks),
		"volume": stats.VolumeByExercise(doc.Workouts),
		"unit":   doc.Settings.WeightUnit,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) personalRecords(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.ds.PersonalRecords())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
