package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/boxrec-service/internal/adapter/memory"
	"github.com/user/boxrec-service/internal/entity"
	"github.com/user/boxrec-service/pkg/metrics"
	"go.uber.org/zap"
)

const profileMarkup = `<html><body>
<div class="boxerTitle"><h1>Tyson Fury</h1><span class="nickname">"The Gypsy King"</span></div>
<div class="profileWLD"><span class="bgW">34</span><span class="bgL">1</span><span class="bgD">1</span><span class="textWon">24KOs</span></div>
</body></html>`

const searchMarkup = `<html><body><table class="dataTable"><tbody>
<tr><td>1</td><td><a href="/en/proboxer/356831">Saul Alvarez</a></td><td>Canelo</td><td>60-2-2</td><td>2023-09-30</td></tr>
</tbody></table></body></html>`

const ratingsMarkup = `<html><body><table class="dataTable"><tbody>
<tr><td>1</td><td><a href="/en/proboxer/659772">Oleksandr Usyk</a></td><td>37</td><td>1,234.5</td><td>southpaw</td><td>22-0-0</td></tr>
</tbody></table></body></html>`

var errStoreDown = errors.New("store down")

type fakeFetcher struct {
	mu      sync.Mutex
	paths   []string
	tokens  []string
	calls   atomic.Int32
	markup  string
	err     error
	started chan struct{} // closed on the first call when set
	release chan struct{} // fetch blocks until closed when set
	once    sync.Once
}

func (f *fakeFetcher) Fetch(_ context.Context, resourcePath, sessionToken string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.paths = append(f.paths, resourcePath)
	f.tokens = append(f.tokens, sessionToken)
	f.mu.Unlock()
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
	}
	if f.release != nil {
		<-f.release
	}
	return f.markup, f.err
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreDown }
func (brokenStore) SetEX(context.Context, string, []byte, time.Duration) error {
	return errStoreDown
}
func (brokenStore) Delete(context.Context, string) error         { return errStoreDown }
func (brokenStore) Exists(context.Context, string) (bool, error) { return false, errStoreDown }
func (brokenStore) Ping(context.Context) error                   { return errStoreDown }

type fakeFailures struct {
	mu      sync.Mutex
	saved   []*entity.UpstreamFailure
	saveErr error
	recent  []*entity.UpstreamFailure
	limits  []int
	pingErr error
}

func (f *fakeFailures) SaveOrUpdate(_ context.Context, failure *entity.UpstreamFailure) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, failure)
	return f.saveErr
}

func (f *fakeFailures) FindRecent(_ context.Context, limit int) ([]*entity.UpstreamFailure, error) {
	f.limits = append(f.limits, limit)
	return f.recent, nil
}

func (f *fakeFailures) Ping(context.Context) error { return f.pingErr }

type fakeSessions struct {
	cookies []*http.Cookie
	err     error
	calls   int
}

func (f *fakeSessions) Login(context.Context, string, string) ([]*http.Cookie, error) {
	f.calls++
	return f.cookies, f.err
}

type fakeCounter struct {
	count   int64
	resetIn time.Duration
	err     error
}

func (f *fakeCounter) Hit(context.Context, string, time.Duration) (int64, time.Duration, error) {
	f.count++
	return f.count, f.resetIn, f.err
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func newMemoryCache() *Cache {
	store, err := memory.NewCacheRepo(64)
	if err != nil {
		panic(err)
	}
	return NewCache(store, newTestMetrics(), zap.NewNop())
}

var testTTLs = TTLs{Boxer: time.Hour, Search: 30 * time.Minute, Ratings: time.Hour}
