// Package auth содержит кэш учётных данных агентов.
//
// Кэш хранит отсортированный по имени машины список пар "машина — ключ" и отвечает на
// запросы аутентификации без обращения к хранилищу. Список целиком перечитывается
// методом Refresh на каждом цикле сервера. Если перечитать не удалось, остаётся прежний список.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/levinOo/fleet-stats-collector/internal/models"
)

// CredentialSource отдаёт полный список учётных данных, упорядоченный по имени машины.
type CredentialSource interface {
	LoadCredentials(ctx context.Context) ([]models.Credential, error)
}

// Authenticator — кэш учётных данных с разделяемой блокировкой для читателей
// и эксклюзивной для обновления.
type Authenticator struct {
	mu          sync.RWMutex
	creds       []models.Credential
	lastRefresh time.Time

	source CredentialSource
}

// New создаёт пустой кэш. До первого успешного Refresh любой запрос отклоняется.
func New(source CredentialSource) *Authenticator {
	return &Authenticator{source: source}
}

// IsAuthentic сообщает, известна ли пара machine/key.
// Отсутствие машины в кэше не является ошибкой.
func (a *Authenticator) IsAuthentic(machine, key string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i := sort.Search(len(a.creds), func(i int) bool {
		return a.creds[i].Machine >= machine
	})
	if i == len(a.creds) || a.creds[i].Machine != machine {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(a.creds[i].Key), []byte(key)) == 1
}

// Refresh заново загружает все учётные данные из источника.
// Загрузка идёт без блокировки, под эксклюзивной блокировкой только подменяется список,
// поэтому читатели не ждут медленный источник и не видят промежуточного состояния.
// При ошибке источника кэш не изменяется.
func (a *Authenticator) Refresh(ctx context.Context) error {
	creds, err := a.source.LoadCredentials(ctx)
	if err != nil {
		return fmt.Errorf("refresh credentials: %w", err)
	}

	if !sort.SliceIsSorted(creds, func(i, j int) bool { return creds[i].Machine < creds[j].Machine }) {
		sort.SliceStable(creds, func(i, j int) bool { return creds[i].Machine < creds[j].Machine })
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.creds = creds
	a.lastRefresh = time.Now()
	return nil
}

// Len возвращает количество закэшированных пар.
func (a *Authenticator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.creds)
}

// LastRefresh возвращает момент последнего успешного обновления.
func (a *Authenticator) LastRefresh() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastRefresh
}
