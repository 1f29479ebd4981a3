// Package models содержит структуры данных, описывающие основные сущности предметной области.
// Пакет не содержит бизнес-логику и используется для передачи данных между слоями приложения:
// агентом, транспортом, очередью задач и хранилищем.
package models

import "strconv"

// Quality описывает, насколько можно доверять значению отдельного замера.
// Числовые коды записываются в базу данных как есть, поэтому менять их нельзя.
type Quality int8

const (
	// QualityGood означает, что значение получено без ошибок.
	QualityGood Quality = 0

	// QualityInvalid означает, что агент исправен, но само значение недостоверно.
	QualityInvalid Quality = 4

	// QualityError означает ошибку выполнения на стороне агента (подробности в его логе).
	QualityError Quality = 8

	// QualityUnknown означает неизвестное или неожиданное состояние.
	QualityUnknown Quality = 12
)

// Valid сообщает, является ли код одним из известных значений.
func (q Quality) Valid() bool {
	switch q {
	case QualityGood, QualityInvalid, QualityError, QualityUnknown:
		return true
	default:
		return false
	}
}

func (q Quality) String() string {
	switch q {
	case QualityGood:
		return "good"
	case QualityInvalid:
		return "invalid"
	case QualityError:
		return "error"
	case QualityUnknown:
		return "unknown"
	default:
		return "quality(" + strconv.Itoa(int(q)) + ")"
	}
}

// Credential представляет пару "машина — ключ", по которой аутентифицируются агенты.
type Credential struct {
	Machine string
	Key     string
}

// Number ограничивает типы значений, которые умеет хранить бэкенд.
type Number interface {
	~float32 | ~int32
}

// SampleValue содержит один замер именованной статистики.
type SampleValue[T Number] struct {
	Name    string
	Value   T
	Quality Quality
}

// StatsPackage — все замеры одной машины, принятые в рамках одного вызова.
// После аутентификации пакет принадлежит очереди, затем писателю в хранилище.
type StatsPackage struct {
	// TimestampMillis — момент замера в миллисекундах с начала эпохи Unix.
	TimestampMillis int64

	// Machine — идентификатор машины-источника.
	Machine string

	FloatSamples []SampleValue[float32]
	IntSamples   []SampleValue[int32]
}

// StorageWriteTask — синоним StatsPackage с точки зрения писателя в хранилище.
type StorageWriteTask = StatsPackage

// Reset очищает пакет для повторного использования через pool.Pool.
// Ёмкость срезов сохраняется.
func (p *StatsPackage) Reset() {
	p.TimestampMillis = 0
	p.Machine = ""
	clear(p.FloatSamples)
	clear(p.IntSamples)
	p.FloatSamples = p.FloatSamples[:0]
	p.IntSamples = p.IntSamples[:0]
}

// SampleCount возвращает общее количество замеров в пакете.
func (p *StatsPackage) SampleCount() int {
	return len(p.FloatSamples) + len(p.IntSamples)
}
