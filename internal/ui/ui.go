// Package ui provides the main entry point for the UI.
package ui

import (
	"context"

	"github.com/palemoky/infinity-box/internal/ui/model"
	"github.com/palemoky/infinity-box/internal/ui/view"
)

// NewArcadeModel creates the arcade model with its view renderer wired in.
func NewArcadeModel(ctx context.Context, engine model.Engine, sounds model.Sounds) *model.ArcadeModel {
	m := model.NewArcadeModel(ctx, engine, sounds)
	m.SetViewRenderer(view.CreateViewRenderer())
	return m
}
