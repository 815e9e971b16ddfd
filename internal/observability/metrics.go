package observability

// Lookup sources for ObserveLookup.
const (
	SourceCache = "cache"
	SourceStore = "store"
)

type Metrics interface {
	ObserveLookup(source string, cacheMs, dbMs float64)
	ObservePricing(durMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObservePublish(durMs float64, ok bool)
	IncCacheHit()
	IncCacheMiss()
	IncCacheError()
}

type Noop struct{}

func (Noop) ObserveLookup(string, float64, float64)   {}
func (Noop) ObservePricing(float64)                   {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObservePublish(float64, bool)             {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
func (Noop) IncCacheError()                           {}

func NewNoop() Noop { return Noop{} }
