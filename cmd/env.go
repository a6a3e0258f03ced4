package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ozleads/lead-engine/internal/business"
	"github.com/ozleads/lead-engine/internal/gazetteer"
	"github.com/ozleads/lead-engine/internal/notify"
	"github.com/ozleads/lead-engine/internal/review"
	"github.com/ozleads/lead-engine/internal/scorer"
	"github.com/ozleads/lead-engine/internal/servicearea"
	"github.com/ozleads/lead-engine/internal/store"
	"github.com/ozleads/lead-engine/pkg/anthropic"
)

// appEnv bundles the wired components shared by the CLI commands.
type appEnv struct {
	Store      store.Store
	Gazetteer  *gazetteer.Gazetteer
	Classifier *servicearea.Classifier
	Scorer     *scorer.Scorer
	Business   *business.ContextLoader
	Manager    *review.Manager
	Notifier   *notify.Notifier
}

// initEnv builds the full environment from config: store (migrated),
// gazetteer, geo engine, classifier, scorer, review manager, notifier.
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	gaz := gazetteer.New(cfg.Gazetteer.DatasetPath)

	ai := anthropic.NewClient(cfg.Anthropic.Key)
	loader := business.NewContextLoader(cfg.Business.ContextDir)
	pipeline := review.NewPipeline(ai, loader, cfg.Anthropic, cfg.Review)

	return &appEnv{
		Store:      st,
		Gazetteer:  gaz,
		Classifier: servicearea.NewClassifier(gaz, cfg.ServiceArea),
		Scorer:     scorer.New(cfg.Scoring),
		Business:   loader,
		Manager:    review.NewManager(pipeline),
		Notifier:   notify.NewNotifier(cfg.Notify),
	}, nil
}

// openStore picks the backend from config.
func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// classifierFor returns the service-area classifier for a business,
// honoring a per-business profile override when one exists.
func (e *appEnv) classifierFor(businessID string) *servicearea.Classifier {
	p, err := e.Business.Profile(businessID)
	if err != nil {
		zap.L().Warn("env: bad business profile, using global service area",
			zap.String("business_id", businessID),
			zap.Error(err),
		)
		return e.Classifier
	}
	if p == nil || p.ServiceArea.BaseSuburb == "" {
		return e.Classifier
	}
	return servicearea.NewClassifier(e.Gazetteer, p.ServiceArea)
}

// Close drains in-flight reviews, then closes the store.
func (e *appEnv) Close() {
	e.Manager.Close()
	e.Store.Close() //nolint:errcheck
}
