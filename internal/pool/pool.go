// Package pool предоставляет обобщённый пул объектов T, ограниченных Reset().
// Пример использования:
//
//	snapPool := pool.New[*models.Snapshot](func() *models.Snapshot { return &models.Snapshot{} })
//	snap := snapPool.Get()
//	// использовать snap
//	snapPool.Put(snap)
package pool

import (
	"sync"
)

// Resettable ограничивает тип тем, у кого есть метод Reset()
type Resettable interface {
	Reset()
}

// Pool хранит свободные объекты типа T, ограниченных Resettable.
// T обычно является указателем на структуру, например *Snapshot.
type Pool[T Resettable] struct {
	mu      sync.Mutex
	free    []T
	factory func() T
}

// New создаёт новый Pool[T]. Фабрика должна возвращать новый экземпляр T.
func New[T Resettable](factory func() T) *Pool[T] {
	return &Pool[T]{factory: factory}
}

// Get возвращает объект из пула. Если пул пуст, создаёт новый через фабрику.
func (p *Pool[T]) Get() T {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		p.free = p.free[:n-1]
		p.mu.Unlock()
		return v
	}
	p.mu.Unlock()

	if p.factory != nil {
		return p.factory()
	}
	var zero T
	return zero
}

// Put вызывает Reset() и возвращает объект обратно в пул.
func (p *Pool[T]) Put(v T) {
	v.Reset()

	p.mu.Lock()
	p.free = append(p.free, v)
	p.mu.Unlock()
}
