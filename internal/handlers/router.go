package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/tropicaldog17/zakat/internal/metrics"
	"github.com/tropicaldog17/zakat/internal/services"
	"github.com/tropicaldog17/zakat/internal/zakat"
)

// RouterDeps carries everything NewRouter mounts.
type RouterDeps struct {
	Prices    services.PriceResolver
	Converter services.CurrencyConverter
	Nisab     services.NisabResolver
	Zakat     services.ZakatService
	Policy    zakat.ThresholdPolicy
	Health    map[string]HealthChecker
	Logger    *zap.Logger
	Metrics   metrics.Recorder
	// MetricsHandler is mounted at MetricsPath when set.
	MetricsHandler http.Handler
	MetricsPath    string
	Swagger        bool
}

func NewRouter(d RouterDeps) http.Handler {
	prices := NewPriceHandler(d.Prices)
	fx := NewFXHandler(d.Prices, d.Converter)
	nisab := NewNisabHandler(d.Nisab, d.Policy)
	calc := NewZakatHandler(d.Zakat, d.Logger)
	health := NewHealthHandler(d.Health)

	router := mux.NewRouter()
	router.Use(RequestID, Instrument(d.Logger, d.Metrics))

	router.HandleFunc("/health", health.HandleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/prices/metals", prices.HandleMetalPrices).Methods("GET")
	api.HandleFunc("/prices/crypto", prices.HandleCryptoPrices).Methods("GET")
	api.HandleFunc("/nisab", nisab.HandleNisab).Methods("GET")
	api.HandleFunc("/fx/rate", fx.HandleRate).Methods("GET")
	api.HandleFunc("/fx/convert", fx.HandleConvert).Methods("GET")
	api.HandleFunc("/zakat/calculate", calc.HandleCalculate).Methods("POST")

	if d.MetricsHandler != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, d.MetricsHandler).Methods("GET")
	}
	if d.Swagger {
		router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	}

	return CORS(router)
}
