package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cartolab/venicemap/internal/classify"
	"github.com/cartolab/venicemap/internal/dataset"
)

// appEnv holds the loaded datasets and their cached classifications.
// A nil collection marks a dataset whose load failed.
type appEnv struct {
	buildings     *dataset.Collection
	neighborhoods *dataset.Collection
	store         *classify.Store
}

// loadDatasets fetches both collections concurrently and classifies
// every supported attribute up front. The two loads are independent:
// a failure logs and disables only its own dataset.
func loadDatasets(ctx context.Context) *appEnv {
	env := &appEnv{store: classify.NewStore(cfg.Classify.Classes)}
	timeout := time.Duration(cfg.Data.FetchTimeoutSecs) * time.Second

	var g errgroup.Group
	g.Go(func() error {
		col, err := dataset.Load(ctx, dataset.Buildings, cfg.Data.BuildingsPath, timeout)
		if err != nil {
			zap.L().Error("buildings dataset unavailable", zap.Error(err))
			return nil
		}
		env.buildings = col
		return nil
	})
	g.Go(func() error {
		col, err := dataset.Load(ctx, dataset.Neighborhoods, cfg.Data.NeighborhoodsPath, timeout)
		if err != nil {
			zap.L().Error("neighborhoods dataset unavailable", zap.Error(err))
			return nil
		}
		env.neighborhoods = col
		return nil
	})
	_ = g.Wait()

	if env.buildings != nil {
		for _, attr := range dataset.BuildingAttrs {
			env.store.Set(string(dataset.Buildings), attr, env.buildings.Values(attr))
		}
	}
	if env.neighborhoods != nil {
		for _, attr := range dataset.NeighborhoodAttrs {
			env.store.Set(string(dataset.Neighborhoods), attr, env.neighborhoods.Values(attr))
		}
	}

	return env
}

// collection returns the requested dataset from the environment, or nil.
func (e *appEnv) collection(kind dataset.Kind) *dataset.Collection {
	if kind == dataset.Buildings {
		return e.buildings
	}
	return e.neighborhoods
}
