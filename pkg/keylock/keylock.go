// Package keylock serializa operaciones por clave sin bloquear claves distintas.
package keylock

import "sync"

type Locker[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*sync.Mutex
}

func New[K comparable]() *Locker[K] {
	return &Locker[K]{locks: make(map[K]*sync.Mutex)}
}

// Lock bloquea la clave y devuelve la función que la libera.
// Las entradas no se eliminan: las claves son pocas (semanas del curso, usuarios de la familia).
func (l *Locker[K]) Lock(key K) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
