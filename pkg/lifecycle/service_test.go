package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/snapserve/internal/logger"
)

// logBuffer collects log output written from timer and server goroutines.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureLogs(t *testing.T) *logBuffer {
	t.Helper()
	buf := &logBuffer{}
	logger.InitWithWriter(buf, "INFO", "text", false)
	t.Cleanup(func() { logger.InitWithWriter(os.Stdout, "INFO", "text", false) })
	return buf
}

type fakeStatic struct {
	startErr error
	port     int
	stopped  atomic.Int32
}

func (f *fakeStatic) Start(ctx context.Context, onReady func(net.Addr)) error {
	if f.startErr != nil {
		return f.startErr
	}
	onReady(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: f.port})
	<-ctx.Done()
	return nil
}

func (f *fakeStatic) Stop(context.Context) error {
	f.stopped.Add(1)
	return nil
}

func (f *fakeStatic) Port() int { return f.port }

type fakeAux struct {
	startErr error
	started  atomic.Bool
	stopped  atomic.Bool
}

func (f *fakeAux) Start(ctx context.Context) error {
	f.started.Store(true)
	if f.startErr != nil {
		return f.startErr
	}
	<-ctx.Done()
	return nil
}

func (f *fakeAux) Stop(context.Context) error {
	f.stopped.Store(true)
	return nil
}

func (f *fakeAux) Port() int { return 9090 }

func TestService_ArmsTimerWhenReady(t *testing.T) {
	exited := make(chan int, 1)
	timer := NewTimer(10*time.Millisecond, WithExitFunc(func(code int) { exited <- code }))
	static := &fakeStatic{port: 8888}
	svc := New(static, timer, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	select {
	case <-timer.Armed():
	case <-time.After(2 * time.Second):
		t.Fatal("timer not armed")
	}

	select {
	case code := <-exited:
		assert.Equal(t, 0, code)
	case <-time.After(2 * time.Second):
		t.Fatal("exit not called")
	}

	cancel()
	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, static.stopped.Load(), int32(1))
}

func TestService_DisabledTimerRunsUntilCancelled(t *testing.T) {
	timer := NewTimer(0, WithExitFunc(func(int) { t.Error("exit must not be called") }))
	aux := &fakeAux{}
	svc := New(&fakeStatic{port: 8888}, timer, 0)
	svc.SetMetricsServer(aux)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, svc.Serve(ctx))
	assert.True(t, aux.started.Load())
	assert.True(t, aux.stopped.Load())
}

func TestService_StaticStartFailure(t *testing.T) {
	timer := NewTimer(time.Millisecond, WithExitFunc(func(int) { t.Error("exit must not be called") }))
	svc := New(&fakeStatic{startErr: errors.New("address in use")}, timer, 0)

	err := svc.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address in use")

	select {
	case <-timer.Armed():
		t.Fatal("timer armed without a listener")
	default:
	}
}

func TestService_MetricsFailure(t *testing.T) {
	svc := New(&fakeStatic{port: 8888}, nil, 0)
	svc.SetMetricsServer(&fakeAux{startErr: errors.New("port taken")})

	err := svc.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics server error")
}

func TestService_ServeOnce(t *testing.T) {
	svc := New(&fakeStatic{port: 8888}, nil, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, svc.Serve(ctx))
	assert.Error(t, svc.Serve(ctx))

	assert.Panics(t, func() { svc.SetMetricsServer(&fakeAux{}) })
}

func TestService_LogsListenLine(t *testing.T) {
	logs := captureLogs(t)

	timer := NewTimer(time.Hour, WithExitFunc(func(int) {}))
	svc := New(&fakeStatic{port: 4321}, timer, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	select {
	case <-timer.Armed():
	case <-time.After(2 * time.Second):
		t.Fatal("timer not armed")
	}

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, logs.String(), "Server on 4321")
}
