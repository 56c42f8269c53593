package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Lotes-api/internal/domain"
)

// ProductGuard serializa las operaciones mutadoras por producto dentro del
// proceso: dos operaciones sobre el mismo productID nunca se solapan, y
// operaciones sobre productos distintos avanzan en paralelo.
//
// Complementa (no reemplaza) el SELECT FOR UPDATE de la fila del producto
// dentro de la transacción, que serializa escritores de otros procesos.
type ProductGuard struct {
	timeout time.Duration

	mu    sync.Mutex
	locks map[string]*keyLock
}

// keyLock es el candado de un producto. El canal con buffer 1 actúa de
// mutex adquirible con contexto; refs cuenta los que esperan o lo tienen,
// para retirar la entrada del mapa cuando nadie la usa.
type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewProductGuard construye el guard. timeout acota la espera de adquisición;
// vencida la espera la operación falla con ErrLockTimeout (no se reintenta).
func NewProductGuard(timeout time.Duration) *ProductGuard {
	return &ProductGuard{
		timeout: timeout,
		locks:   make(map[string]*keyLock),
	}
}

// Acquire toma la sección exclusiva del producto. Devuelve la función de
// liberación, que debe llamarse exactamente una vez (tras commit o abort).
// Falla con ErrLockTimeout si el candado no se libera dentro del timeout,
// o con el error del contexto si el caller cancela antes.
func (g *ProductGuard) Acquire(ctx context.Context, productID string) (func(), error) {
	g.mu.Lock()
	kl, ok := g.locks[productID]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		g.locks[productID] = kl
	}
	kl.refs++
	g.mu.Unlock()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case kl.ch <- struct{}{}:
		return func() {
			<-kl.ch
			g.release(productID, kl)
		}, nil
	case <-ctx.Done():
		g.release(productID, kl)
		return nil, ctx.Err()
	case <-timer.C:
		g.release(productID, kl)
		return nil, domain.ErrLockTimeout
	}
}

func (g *ProductGuard) release(productID string, kl *keyLock) {
	g.mu.Lock()
	kl.refs--
	if kl.refs == 0 {
		delete(g.locks, productID)
	}
	g.mu.Unlock()
}
