package allocation

import (
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

// Cache caché en memoria de consultas de disponibilidad y estadísticas.
//
// Dos niveles de TTL: "hot" (~60s) para listados de disponibilidad y "warm"
// (~180s) para resúmenes y estadísticas pre-agregadas. Es local al proceso y
// no es fuertemente consistente entre instancias: la invalidación tras cada
// mutación es de mejor esfuerzo y el TTL actúa de respaldo.
//
// Todas las claves llevan el patio como segundo segmento
// ("<clase>:<yard>[:resto]"), lo que permite invalidar por patio completo
// tras un assign/release.
type Cache struct {
	hot  *gocache.Cache
	warm *gocache.Cache
}

// NewCache construye la caché con los TTL de cada nivel.
func NewCache(hotTTL, warmTTL time.Duration) *Cache {
	return &Cache{
		hot:  gocache.New(hotTTL, 2*hotTTL),
		warm: gocache.New(warmTTL, 2*warmTTL),
	}
}

func availableKey(yardID string, size, pool *string) string {
	return "available:" + yardID + ":" + derefOr(size, "-") + ":" + derefOr(pool, "-")
}

func summaryKey(yardID string) string   { return "summary:" + yardID }
func yardStatsKey(yardID string) string { return "yardstats:" + yardID }
func stackStatsKey(yardID string, stackNumber int) string {
	return "stackstats:" + yardID + ":" + strconv.Itoa(stackNumber)
}

// GetAvailable devuelve el listado cacheado de disponibilidad, si existe.
func (c *Cache) GetAvailable(yardID string, size, pool *string) ([]*entity.Location, bool) {
	if v, ok := c.hot.Get(availableKey(yardID, size, pool)); ok {
		return v.([]*entity.Location), true
	}
	return nil, false
}

// SetAvailable guarda un listado de disponibilidad en el nivel hot.
func (c *Cache) SetAvailable(yardID string, size, pool *string, locs []*entity.Location) {
	c.hot.SetDefault(availableKey(yardID, size, pool), locs)
}

// GetSummary devuelve el resumen cacheado del patio, si existe.
func (c *Cache) GetSummary(yardID string) (*repository.AvailabilitySummary, bool) {
	if v, ok := c.warm.Get(summaryKey(yardID)); ok {
		return v.(*repository.AvailabilitySummary), true
	}
	return nil, false
}

// SetSummary guarda el resumen del patio en el nivel warm.
func (c *Cache) SetSummary(yardID string, s *repository.AvailabilitySummary) {
	c.warm.SetDefault(summaryKey(yardID), s)
}

// GetYardStats devuelve las estadísticas cacheadas del patio, si existen.
func (c *Cache) GetYardStats(yardID string) (*repository.YardStatistics, bool) {
	if v, ok := c.warm.Get(yardStatsKey(yardID)); ok {
		return v.(*repository.YardStatistics), true
	}
	return nil, false
}

// SetYardStats guarda las estadísticas del patio en el nivel warm.
func (c *Cache) SetYardStats(yardID string, s *repository.YardStatistics) {
	c.warm.SetDefault(yardStatsKey(yardID), s)
}

// GetStackStats devuelve las estadísticas cacheadas de la pila, si existen.
func (c *Cache) GetStackStats(yardID string, stackNumber int) (*repository.StackStatistics, bool) {
	if v, ok := c.warm.Get(stackStatsKey(yardID, stackNumber)); ok {
		return v.(*repository.StackStatistics), true
	}
	return nil, false
}

// SetStackStats guarda las estadísticas de la pila en el nivel warm.
func (c *Cache) SetStackStats(yardID string, stackNumber int, s *repository.StackStatistics) {
	c.warm.SetDefault(stackStatsKey(yardID, stackNumber), s)
}

// InvalidateYard elimina toda entrada (hot y warm) cuyo patio coincida.
// Se invoca tras cada assign/release exitoso sobre una ubicación del patio.
func (c *Cache) InvalidateYard(yardID string) {
	for _, tier := range []*gocache.Cache{c.hot, c.warm} {
		for key := range tier.Items() {
			parts := strings.SplitN(key, ":", 3)
			if len(parts) >= 2 && parts[1] == yardID {
				tier.Delete(key)
			}
		}
	}
}

// Flush vacía ambos niveles.
func (c *Cache) Flush() {
	c.hot.Flush()
	c.warm.Flush()
}

func derefOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
