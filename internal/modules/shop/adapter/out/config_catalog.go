package out

import (
	"sync/atomic"

	"lifeos/internal/modules/shop/domain"
	shopout "lifeos/internal/modules/shop/port/out"
	"lifeos/internal/platform/config"
)

// ConfigCatalog serves the catalog from configuration and can be swapped at
// runtime when the config file changes.
type ConfigCatalog struct {
	current atomic.Pointer[domain.Catalog]
}

var _ shopout.CatalogSource = (*ConfigCatalog)(nil)

func NewConfigCatalog(cfg config.ShopConfig) *ConfigCatalog {
	c := &ConfigCatalog{}
	c.Reload(cfg)
	return c
}

func (c *ConfigCatalog) Catalog() domain.Catalog { return *c.current.Load() }

func (c *ConfigCatalog) Reload(cfg config.ShopConfig) {
	cat := domain.Catalog{
		Items:        make([]domain.Item, 0, len(cfg.Items)),
		Achievements: make([]domain.AchievementRule, 0, len(cfg.Achievements)),
	}
	for _, it := range cfg.Items {
		cat.Items = append(cat.Items, domain.Item{Key: it.Key, Title: it.Title, Icon: it.Icon, Price: it.Price})
	}
	for _, r := range cfg.Achievements {
		cat.Achievements = append(cat.Achievements, domain.AchievementRule{
			Key:       r.Key,
			Title:     r.Title,
			Icon:      r.Icon,
			Kind:      domain.AchievementKind(r.Kind),
			Threshold: r.Threshold,
		})
	}
	c.current.Store(&cat)
}
