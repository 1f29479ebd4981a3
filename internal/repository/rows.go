package repository

import (
	"sync/atomic"
	"time"

	"github.com/levinOo/fleet-stats-collector/internal/models"
)

// RowStat — плоская строка для массовой вставки в промежуточную таблицу.
type RowStat[T models.Number] struct {
	BatchID  int64
	Machine  string
	StatName string
	Instant  int64
	Value    T
	Quality  int8
}

// appendRows разворачивает замеры одного пакета в строки с общим идентификатором партии.
func appendRows[T models.Number](dst []RowStat[T], batchID int64, p *models.StatsPackage, samples []models.SampleValue[T]) []RowStat[T] {
	for _, s := range samples {
		dst = append(dst, RowStat[T]{
			BatchID:  batchID,
			Machine:  p.Machine,
			StatName: s.Name,
			Instant:  p.TimestampMillis,
			Value:    s.Value,
			Quality:  int8(s.Quality),
		})
	}
	return dst
}

// flatten собирает строки обоих типов для всей партии.
func flatten(batch []*models.StatsPackage, floatID, intID int64, floats []RowStat[float32], ints []RowStat[int32]) ([]RowStat[float32], []RowStat[int32]) {
	for _, p := range batch {
		if p == nil {
			continue
		}
		floats = appendRows(floats, floatID, p, p.FloatSamples)
		ints = appendRows(ints, intID, p, p.IntSamples)
	}
	return floats, ints
}

// BatchIDGenerator выдаёт строго возрастающие идентификаторы партий.
// Стартовое значение берётся из текущего времени в наносекундах, поэтому после
// перезапуска процесса идентификаторы не пересекаются с оставшимися в промежуточных таблицах.
type BatchIDGenerator struct {
	last atomic.Int64
}

// NewBatchIDGenerator создаёт генератор, начинающий с текущего времени.
func NewBatchIDGenerator() *BatchIDGenerator {
	return NewBatchIDGeneratorFrom(time.Now().UnixNano())
}

// NewBatchIDGeneratorFrom создаёт генератор, первый идентификатор которого равен seed+1.
func NewBatchIDGeneratorFrom(seed int64) *BatchIDGenerator {
	g := &BatchIDGenerator{}
	g.last.Store(seed)
	return g
}

// Next возвращает следующий идентификатор.
func (g *BatchIDGenerator) Next() int64 {
	return g.last.Add(1)
}
