package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/config"
)

type countingPurger struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context, time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return 2, p.err
}

func (p *countingPurger) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func testConfig(txTimeout string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Database.TxTimeout = txTimeout
	return cfg
}

func TestTimeoutsFollowTransactionTimeout(t *testing.T) {
	timeouts := TimeoutsFor(testConfig("20s"))

	assert.Equal(t, 20*time.Second+renderBudget, timeouts.Write)
	assert.Equal(t, 20*time.Second, timeouts.Shutdown)
	assert.Greater(t, timeouts.Write, timeouts.Read)

	unset := TimeoutsFor(testConfig(""))
	assert.Equal(t, 30*time.Second, unset.Shutdown)
}

func TestPurgeRevocationsRunsUntilCancelled(t *testing.T) {
	purger := &countingPurger{}
	s := New(testConfig("1s"), http.NotFoundHandler(), purger, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.purgeRevocations(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return purger.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestPurgeRevocationsDisabled(t *testing.T) {
	purger := &countingPurger{}
	s := New(testConfig("1s"), http.NotFoundHandler(), purger, zerolog.Nop())

	// returns immediately instead of ticking
	s.purgeRevocations(context.Background(), 0)
	assert.Zero(t, purger.count())

	New(testConfig("1s"), http.NotFoundHandler(), nil, zerolog.Nop()).
		purgeRevocations(context.Background(), time.Millisecond)
}

func TestPurgeOnceToleratesStoreFailure(t *testing.T) {
	purger := &countingPurger{err: errors.New("connection reset")}
	s := New(testConfig("1s"), http.NotFoundHandler(), purger, zerolog.Nop())

	s.purgeOnce(context.Background(), time.Now())
	assert.Equal(t, 1, purger.count())
}

func TestShutdownWithoutStart(t *testing.T) {
	s := New(testConfig("1s"), http.NotFoundHandler(), nil, zerolog.Nop())
	assert.NoError(t, s.Shutdown(context.Background()))
}
