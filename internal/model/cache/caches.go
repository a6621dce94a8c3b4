package cache

import (
	"sync"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/pkg/cache"
)

type Flusher func() error

var (
	// ProductTrend is keyed by "<start>|<end>|<lineId>".
	ProductTrend *cache.Set[model.ProductTrend]

	// OEETrend is keyed by "<start>|<end>|<lineId>".
	OEETrend *cache.Set[[]model.OEEDailyRow]

	DailySummary *cache.Set[model.DailySummary]

	Lines    *cache.Singular[[]*model.ProductionLine]
	Products *cache.Singular[[]*model.Product]
	Shifts   *cache.Singular[[]*model.Shift]

	once sync.Once

	SetFlusherMap      map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize() {
	once.Do(initializeCaches)
}

func initializeCaches() {
	ProductTrend = cache.NewSet[model.ProductTrend]("productTrend")
	OEETrend = cache.NewSet[[]model.OEEDailyRow]("oeeTrend")
	DailySummary = cache.NewSet[model.DailySummary]("dailySummary")

	Lines = cache.NewSingular[[]*model.ProductionLine]()
	Products = cache.NewSingular[[]*model.Product]()
	Shifts = cache.NewSingular[[]*model.Shift]()

	SetFlusherMap = map[string]Flusher{
		"productTrend": ProductTrend.Flush,
		"oeeTrend":     OEETrend.Flush,
		"dailySummary": DailySummary.Flush,
	}
	SingularFlusherMap = map[string]Flusher{
		"lines":    Lines.Delete,
		"products": Products.Delete,
		"shifts":   Shifts.Delete,
	}
}

// Purge drops every cached result. Used by the admin surface after bulk data
// fixes.
func Purge() error {
	for _, flush := range SetFlusherMap {
		if err := flush(); err != nil {
			return err
		}
	}
	for _, flush := range SingularFlusherMap {
		if err := flush(); err != nil {
			return err
		}
	}
	return nil
}
