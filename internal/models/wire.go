package models

//go:generate easyjson wire.go

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload возвращается, когда тело запроса не проходит проверку на границе транспорта.
var ErrMalformedPayload = errors.New("malformed stats payload")

// StatEntryFloat32 — замер с вещественным значением в формате передачи.
//
//easyjson:json
type StatEntryFloat32 struct {
	StatName  string  `json:"statName"`
	StatValue float32 `json:"statValue"`
	Quality   Quality `json:"quality"`
}

// StatEntryInt32 — замер с целым значением в формате передачи.
//
//easyjson:json
type StatEntryInt32 struct {
	StatName  string  `json:"statName"`
	StatValue int32   `json:"statValue"`
	Quality   Quality `json:"quality"`
}

// StatsSample — полезная нагрузка запроса SendStatsSample.
//
//easyjson:json
type StatsSample struct {
	// Time — момент замера в миллисекундах с начала эпохи Unix.
	Time         int64              `json:"time"`
	Machine      string             `json:"machine"`
	StatsFloat32 []StatEntryFloat32 `json:"statsFloat32"`
	StatsInt32   []StatEntryInt32   `json:"statsInt32"`
}

// SendStatsSampleRequest — тело запроса агента к коллектору.
//
//easyjson:json
type SendStatsSampleRequest struct {
	Key     string      `json:"key"`
	Payload StatsSample `json:"payload"`
}

// StatusResponse — ответ сервера на SendStatsSample и CloseService.
//
//easyjson:json
type StatusResponse struct {
	Status bool `json:"status"`
}

// AuditEvent описывает принятый пакет для системы аудита.
//
//easyjson:json
type AuditEvent struct {
	TS          int64    `json:"ts"`
	Machine     string   `json:"machine"`
	MetricNames []string `json:"metrics"`
	IP          string   `json:"ip_address"`
}

// Validate проверяет полезную нагрузку до того, как она попадёт в ядро сервера.
func (s *StatsSample) Validate() error {
	if s.Machine == "" {
		return fmt.Errorf("%w: machine is empty", ErrMalformedPayload)
	}
	for i, e := range s.StatsFloat32 {
		if err := validateEntry(e.StatName, e.Quality); err != nil {
			return fmt.Errorf("%w: statsFloat32[%d]: %v", ErrMalformedPayload, i, err)
		}
	}
	for i, e := range s.StatsInt32 {
		if err := validateEntry(e.StatName, e.Quality); err != nil {
			return fmt.Errorf("%w: statsInt32[%d]: %v", ErrMalformedPayload, i, err)
		}
	}
	return nil
}

// Len возвращает общее число значений в запросе.
func (s *StatsSample) Len() int {
	return len(s.StatsFloat32) + len(s.StatsInt32)
}

func validateEntry(name string, q Quality) error {
	if name == "" {
		return errors.New("stat name is empty")
	}
	if !q.Valid() {
		return fmt.Errorf("unknown quality code %d", int8(q))
	}
	return nil
}

// CopyTo переносит данные запроса в пакет для обработки.
// Пакет предварительно очищается, поэтому его можно брать из пула.
func (s *StatsSample) CopyTo(p *StatsPackage) {
	p.Reset()
	p.TimestampMillis = s.Time
	p.Machine = s.Machine

	for _, e := range s.StatsFloat32 {
		p.FloatSamples = append(p.FloatSamples, SampleValue[float32]{
			Name:    e.StatName,
			Value:   e.StatValue,
			Quality: e.Quality,
		})
	}
	for _, e := range s.StatsInt32 {
		p.IntSamples = append(p.IntSamples, SampleValue[int32]{
			Name:    e.StatName,
			Value:   e.StatValue,
			Quality: e.Quality,
		})
	}
}

// NewAuditEvent собирает событие аудита для принятого пакета.
func NewAuditEvent(ts int64, s *StatsSample, ip string) AuditEvent {
	names := make([]string, 0, len(s.StatsFloat32)+len(s.StatsInt32))
	for _, e := range s.StatsFloat32 {
		names = append(names, e.StatName)
	}
	for _, e := range s.StatsInt32 {
		names = append(names, e.StatName)
	}
	return AuditEvent{
		TS:          ts,
		Machine:     s.Machine,
		MetricNames: names,
		IP:          ip,
	}
}
