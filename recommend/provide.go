package recommend

import (
	"go.uber.org/zap"

	"github.com/mager/cochlea/catalog"
	"github.com/mager/cochlea/config"
	"github.com/mager/cochlea/features"
	"github.com/mager/cochlea/matcher"
)

// ProvideRegistry loads the catalog and builds every configured mode. Any
// configuration problem fails startup.
func ProvideRegistry(cfg config.Config, log *zap.SugaredLogger) (*Registry, error) {
	cfgs, err := features.Presets(cfg.Modes, cfg.CategoryColumn)
	if err != nil {
		return nil, err
	}
	mm, err := matcher.ParseMode(cfg.MatchMode)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.LoadFile(cfg.CatalogPath, catalog.LoadOptions{
		Categories:       []string{cfg.CategoryColumn},
		RequiredFeatures: features.Required(cfgs),
	})
	if err != nil {
		log.Errorw("Failed to load catalog", "path", cfg.CatalogPath, "error", err)
		return nil, err
	}
	log.Infow("Loaded catalog", "path", cfg.CatalogPath, "rows", cat.Len(), "dropped", cat.Dropped())

	reg, err := NewRegistry(cat, cfgs, Settings{K: cfg.Neighbors, MatchMode: mm})
	if err != nil {
		log.Errorw("Failed to build recommendation modes", "error", err)
		return nil, err
	}
	if cfg.DefaultMode != "" {
		if err := reg.SetDefault(cfg.DefaultMode); err != nil {
			return nil, err
		}
	}

	for _, m := range reg.Modes() {
		e, _ := reg.Engine(m)
		log.Infow("Built recommendation mode", "mode", m, "dim", e.Matrix().Dim(), "k", e.K())
	}
	return reg, nil
}

var Options = ProvideRegistry
