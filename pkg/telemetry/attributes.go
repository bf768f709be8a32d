package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Стандартные ключи атрибутов
const (
	// Граф
	AttrGraphVertices = "graph.vertices"
	AttrGraphEdges    = "graph.edges"
	AttrGraphSourceID = "graph.source_id"

	// Выборка
	AttrSampleIndex         = "sample.index"
	AttrSampleDepartureTime = "sample.departure_time"

	// Маршрут
	AttrSourcesProcessed = "journey.sources_processed"
	AttrPathLength       = "journey.path_length"

	// Валидация
	AttrValidationLevel  = "validation.level"
	AttrValidationErrors = "validation.errors"
	AttrValidationPassed = "validation.passed"
)

// GraphAttributes возвращает атрибуты графа
func GraphAttributes(vertices, edges int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrGraphVertices, vertices),
		attribute.Int(AttrGraphEdges, edges),
	}
}

// SampleAttributes возвращает атрибуты одной временной выборки суммаризатора
func SampleAttributes(index int, departureTime float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrSampleIndex, index),
		attribute.Float64(AttrSampleDepartureTime, departureTime),
	}
}

// JourneyAttributes возвращает атрибуты одного прогона солвера из источника
func JourneyAttributes(sourceID string, sourcesProcessed int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrGraphSourceID, sourceID),
		attribute.Int(AttrSourcesProcessed, sourcesProcessed),
	}
}

// ValidationAttributes возвращает атрибуты валидации
func ValidationAttributes(level string, errorsCount int, passed bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrValidationLevel, level),
		attribute.Int(AttrValidationErrors, errorsCount),
		attribute.Bool(AttrValidationPassed, passed),
	}
}
