package boxrec

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/boxrec-service/internal/entity"
	"go.uber.org/zap"
)

const testOrigin = "https://boxrec.test"

func newTestFetcher(t *testing.T) *FetcherImpl {
	t.Helper()
	f, err := NewFetcher(testOrigin, "", 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	httpmock.ActivateNonDefault(f.client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return f
}

func TestDivisionCode(t *testing.T) {
	assert.Equal(t, "4", DivisionCode("heavyweight"))
	assert.Equal(t, "4", DivisionCode("HeavyWeight"))
	assert.Equal(t, "11", DivisionCode("lightweight"))
	assert.Equal(t, "8", DivisionCode("featherweight"))
	assert.Equal(t, "14", DivisionCode("superLightweight"))
	assert.Equal(t, "S", DivisionCode("superfeatherweight"))
	assert.Equal(t, "strawweight", DivisionCode("strawweight"))
	assert.Len(t, Divisions(), 17)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/en/proboxer/356831", ProfilePath("356831"))
	assert.Equal(t, "/en/ratings?division=4", RatingsPath("4"))
	assert.Equal(t,
		"/en/search?p%5Bfirst_name%5D=saul+alvarez&p%5Blast_name%5D=&p%5Brole%5D=proboxer&p%5Bstatus%5D=&p%5Bcountry%5D="+
			"&p%5Bdivision%5D=&p%5Bsex%5D=&p%5Bstance%5D=&p%5Bresidence%5D=&p%5Bbirthplace%5D=",
		SearchPath("saul alvarez"))
}

func TestFetchAttachesSessionAndUserAgent(t *testing.T) {
	f := newTestFetcher(t)
	httpmock.RegisterResponder(http.MethodGet, testOrigin+"/en/proboxer/356831",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "PHPSESSID=abc; REMEMBERME=xyz", req.Header.Get("Cookie"))
			assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
			return httpmock.NewStringResponse(http.StatusOK, "<html><body><h1>ok</h1></body></html>"), nil
		})

	body, err := f.Fetch(context.Background(), ProfilePath("356831"), "PHPSESSID=abc; REMEMBERME=xyz")
	require.NoError(t, err)
	assert.Equal(t, "<html><body><h1>ok</h1></body></html>", body)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestFetchKeepsQueryString(t *testing.T) {
	f := newTestFetcher(t)
	httpmock.RegisterResponder(http.MethodGet, testOrigin+"/en/ratings",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "4", req.URL.Query().Get("division"))
			return httpmock.NewStringResponse(http.StatusOK, "<html><body><table></table></body></html>"), nil
		})

	_, err := f.Fetch(context.Background(), RatingsPath("4"), "PHPSESSID=abc")
	require.NoError(t, err)
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		wantErr   error
		wantAuth  bool
		status    int
	}{
		{
			name:      "transport error",
			responder: httpmock.NewErrorResponder(errors.New("connection refused")),
			wantErr:   entity.ErrUpstreamUnavailable,
		},
		{
			name:      "server error",
			responder: httpmock.NewStringResponder(http.StatusServiceUnavailable, "down"),
			wantErr:   entity.ErrUpstreamRejected,
			status:    http.StatusServiceUnavailable,
		},
		{
			name:      "not found",
			responder: httpmock.NewStringResponder(http.StatusNotFound, "missing"),
			wantErr:   entity.ErrUpstreamRejected,
			status:    http.StatusNotFound,
		},
		{
			name: "redirect to login",
			responder: func(*http.Request) (*http.Response, error) {
				resp := httpmock.NewStringResponse(http.StatusFound, "")
				resp.Header.Set("Location", "https://boxrec.test/en/login")
				return resp, nil
			},
			wantErr:  entity.ErrUpstreamRejected,
			wantAuth: true,
			status:   http.StatusFound,
		},
		{
			name: "redirect elsewhere",
			responder: func(*http.Request) (*http.Response, error) {
				resp := httpmock.NewStringResponse(http.StatusMovedPermanently, "")
				resp.Header.Set("Location", "/en/proboxer/1")
				return resp, nil
			},
			wantErr: entity.ErrUpstreamRejected,
			status:  http.StatusMovedPermanently,
		},
		{
			name: "login form served",
			responder: httpmock.NewStringResponder(http.StatusOK,
				`<form><input name="_csrf_token" value="t"><input name="_username"><input name="_password"></form>`),
			wantErr:  entity.ErrUpstreamRejected,
			wantAuth: true,
			status:   http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t)
			httpmock.RegisterResponder(http.MethodGet, testOrigin+"/en/proboxer/1", tt.responder)

			_, err := f.Fetch(context.Background(), ProfilePath("1"), "PHPSESSID=abc")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantAuth, errors.Is(err, entity.ErrUnauthenticated))

			var rejected *entity.UpstreamRejectedError
			if errors.As(err, &rejected) {
				assert.Equal(t, tt.status, rejected.StatusCode)
			}
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	f, err := NewFetcher(testOrigin, "", 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	httpmock.ActivateNonDefault(f.client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testOrigin+"/en/proboxer/1",
		httpmock.NewStringResponder(http.StatusOK, "<html></html>").Delay(200*time.Millisecond))

	_, err = f.Fetch(context.Background(), ProfilePath("1"), "PHPSESSID=abc")
	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
}

const loginPage = `<html><body><form method="post">
<input type="hidden" name="_csrf_token" value="tok123">
<input name="_username"><input type="password" name="_password">
</form></body></html>`

func newTestSessionRepo(t *testing.T) *SessionRepoImpl {
	t.Helper()
	s, err := NewSessionRepo(testOrigin, "", 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	httpmock.ActivateNonDefault(s.client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodGet, testOrigin+loginPath,
		func(*http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(http.StatusOK, loginPage)
			resp.Header.Add("Set-Cookie", "PHPSESSID=initial; Path=/; HttpOnly")
			resp.Header.Add("Set-Cookie", "tracking=1; Path=/")
			return resp, nil
		})
	return s
}

func TestLoginSuccess(t *testing.T) {
	s := newTestSessionRepo(t)
	httpmock.RegisterResponder(http.MethodPost, testOrigin+loginPath,
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, req.ParseForm())
			assert.Equal(t, "tok123", req.PostForm.Get("_csrf_token"))
			assert.Equal(t, "fan", req.PostForm.Get("_username"))
			assert.Equal(t, "secret", req.PostForm.Get("_password"))
			_, hasGo := req.PostForm["login[go]"]
			assert.True(t, hasGo)

			c, err := req.Cookie("PHPSESSID")
			require.NoError(t, err)
			assert.Equal(t, "initial", c.Value)

			resp := httpmock.NewStringResponse(http.StatusFound, "")
			resp.Header.Set("Location", "/en/")
			resp.Header.Add("Set-Cookie", "PHPSESSID=authed; Path=/; HttpOnly")
			resp.Header.Add("Set-Cookie", "REMEMBERME=r1; Path=/")
			return resp, nil
		})

	cookies, err := s.Login(context.Background(), "fan", "secret")
	require.NoError(t, err)

	got := map[string]string{}
	var names []string
	for _, c := range cookies {
		got[c.Name] = c.Value
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"PHPSESSID", "tracking", "REMEMBERME"}, names)
	assert.Equal(t, "authed", got["PHPSESSID"])
	assert.Equal(t, "1", got["tracking"])
	assert.Equal(t, "r1", got["REMEMBERME"])
}

func TestLoginRefused(t *testing.T) {
	s := newTestSessionRepo(t)
	httpmock.RegisterResponder(http.MethodPost, testOrigin+loginPath,
		httpmock.NewStringResponder(http.StatusOK, loginPage))

	_, err := s.Login(context.Background(), "fan", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestLoginPageWithoutToken(t *testing.T) {
	s, err := NewSessionRepo(testOrigin, "", 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	httpmock.ActivateNonDefault(s.client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testOrigin+loginPath,
		httpmock.NewStringResponder(http.StatusOK, "<html><body>maintenance</body></html>"))

	_, err = s.Login(context.Background(), "fan", "secret")
	assert.ErrorIs(t, err, entity.ErrMalformedDocument)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestLoginPageUnavailable(t *testing.T) {
	s, err := NewSessionRepo(testOrigin, "", 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	httpmock.ActivateNonDefault(s.client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testOrigin+loginPath,
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	_, err = s.Login(context.Background(), "fan", "secret")
	assert.ErrorIs(t, err, entity.ErrUpstreamRejected)
}
