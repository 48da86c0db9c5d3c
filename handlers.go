package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/kotrzina/gas-wizard/pkg/config"
	"github.com/kotrzina/gas-wizard/pkg/gwgp"
	"github.com/kotrzina/gas-wizard/pkg/hook"
	"github.com/kotrzina/gas-wizard/pkg/prometheus"
	"github.com/kotrzina/gas-wizard/pkg/store"
	"github.com/kotrzina/gas-wizard/pkg/utils"
)

const (
	defaultCheapestLimit = 5
	maxCheapestLimit     = 50
)

type HandlerRepository struct {
	snapshot *gwgp.Snapshot
	storage  store.Storage
	config   *config.Config
	monitor  *prometheus.Monitor
	logger   *logrus.Logger
}

// metricsHandler returns HTTP handler for metrics endpoint
func (hr *HandlerRepository) metricsHandler() http.Handler {
	return promhttp.HandlerFor(
		hr.monitor.Registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			Registry:          hr.monitor.Registry,
		},
	)
}

func (hr *HandlerRepository) healthHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write(utils.GetOkJSON())
		if err != nil {
			hr.logger.Errorf("Could not write response: %v", err)
		}
	}
}

func (hr *HandlerRepository) pricesHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		if hr.snapshot == nil {
			http.Error(w, "No price data available", http.StatusServiceUnavailable)
			return
		}

		hr.writeJSON(w, http.StatusOK, hr.snapshot)
	}
}

func (hr *HandlerRepository) cityHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		city := mux.Vars(r)["city"]

		price, found := hr.snapshot.Lookup(city)
		hr.monitor.Lookups.WithLabelValues(strconv.FormatBool(found)).Inc()
		if err := hr.storage.AddLookup(city, found); err != nil {
			hr.logger.Warnf("could not store lookup of %q: %v", city, err)
		}

		if !found {
			http.Error(w, hook.NotFoundReply, http.StatusNotFound)
			return
		}

		type output struct {
			City     string        `json:"city"`
			DateInfo string        `json:"date_info"`
			Price    gwgp.OilPrice `json:"price"`
		}

		hr.writeJSON(w, http.StatusOK, output{
			City:     city,
			DateInfo: hr.snapshot.DateInfo(),
			Price:    price,
		})
	}
}

func (hr *HandlerRepository) cheapestHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := gwgp.ParseCategory(r.URL.Query().Get("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		limit := defaultCheapestLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
		}
		limit = min(limit, maxCheapestLimit)

		type output struct {
			Category gwgp.Category `json:"category"`
			DateInfo string        `json:"date_info"`
			Cities   []gwgp.Ranked `json:"cities"`
		}

		hr.writeJSON(w, http.StatusOK, output{
			Category: category,
			DateInfo: hr.snapshot.DateInfo(),
			Cities:   hr.snapshot.Cheapest(category, limit),
		})
	}
}

func (hr *HandlerRepository) eventsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		events, err := hr.storage.GetEvents()
		if err != nil {
			hr.logger.Errorf("could not get events: %v", err)
			http.Error(w, "Could not get events", http.StatusInternalServerError)
			return
		}

		hr.writeJSON(w, http.StatusOK, events)
	}
}

func (hr *HandlerRepository) writeJSON(w http.ResponseWriter, status int, data any) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Could not marshal data to JSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(res)
	if err != nil {
		hr.logger.Errorf("Could not write response: %v", err)
	}
}
