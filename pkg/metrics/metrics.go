// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics holds the Prometheus collectors of the progression
// engine. Collectors are package-level and registered once by the
// metrics server; incrementing an unregistered collector is harmless.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "focus_warrior"

var (
	ExperienceGainedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "experience_gained_total",
			Help:      "Total experience points granted to the character",
		},
	)

	LevelUpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_ups_total",
			Help:      "Total number of level-ups, by class held at level-up",
		},
		[]string{"class"},
	)

	ClassChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "class_changes_total",
			Help:      "Total number of class changes, by new class",
		},
		[]string{"class"},
	)

	SessionsCompletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_completed_total",
			Help:      "Total number of completed focus sessions",
		},
	)

	BattlesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battles_total",
			Help:      "Total number of resolved battles, by winner",
		},
		[]string{"winner"},
	)

	PersistenceFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Total number of failed character storage operations",
		},
		[]string{"operation"},
	)

	CharacterLevel = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "character_level",
			Help:      "Current character level",
		},
	)

	CharacterPower = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "character_power",
			Help:      "Current character power level",
		},
	)
)

// Collectors returns every collector of this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ExperienceGainedTotal,
		LevelUpsTotal,
		ClassChangesTotal,
		SessionsCompletedTotal,
		BattlesTotal,
		PersistenceFailuresTotal,
		CharacterLevel,
		CharacterPower,
	}
}

// Register adds every collector to registry.
func Register(registry prometheus.Registerer) {
	registry.MustRegister(Collectors()...)
}
