package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lotes-api/internal/domain"
)

// Dos adquisiciones sobre el mismo producto no se solapan: la sección
// exclusiva serializa un contador no atómico.
func TestProductGuard_ExclusionMutuaPorProducto(t *testing.T) {
	guard := NewProductGuard(5 * time.Second)

	const workers = 64
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			release, err := guard.Acquire(context.Background(), "p1")
			require.NoError(t, err)
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

// Productos distintos no se bloquean entre sí: con "p1" tomado, "p2"
// se adquiere de inmediato.
func TestProductGuard_ProductosDistintosEnParalelo(t *testing.T) {
	guard := NewProductGuard(time.Second)

	releaseP1, err := guard.Acquire(context.Background(), "p1")
	require.NoError(t, err)
	defer releaseP1()

	done := make(chan struct{})
	go func() {
		releaseP2, err := guard.Acquire(context.Background(), "p2")
		assert.NoError(t, err)
		releaseP2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("la adquisición de p2 no debería esperar por p1")
	}
}

// Espera acotada: si el candado no se libera a tiempo, la adquisición falla
// con ErrLockTimeout y no se reintenta.
func TestProductGuard_TimeoutDeAdquisicion(t *testing.T) {
	guard := NewProductGuard(50 * time.Millisecond)

	release, err := guard.Acquire(context.Background(), "p1")
	require.NoError(t, err)
	defer release()

	_, err = guard.Acquire(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

// Cancelación del caller antes de obtener el candado: se devuelve el error
// del contexto y no queda nada tomado.
func TestProductGuard_CancelacionDeContexto(t *testing.T) {
	guard := NewProductGuard(5 * time.Second)

	release, err := guard.Acquire(context.Background(), "p1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = guard.Acquire(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)

	// Tras liberar, el producto vuelve a adquirirse con normalidad.
	release()
	release2, err := guard.Acquire(context.Background(), "p1")
	require.NoError(t, err)
	release2()
}

// El mapa interno no acumula entradas: al no haber nadie esperando ni
// teniendo el candado, la entrada del producto se retira.
func TestProductGuard_LimpiaEntradasSinUso(t *testing.T) {
	guard := NewProductGuard(time.Second)

	release, err := guard.Acquire(context.Background(), "p1")
	require.NoError(t, err)
	release()

	guard.mu.Lock()
	defer guard.mu.Unlock()
	assert.Empty(t, guard.locks)
}
